package infra

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tripcrew/internal/models/db_models"
)

// InitPostgresql opens the plan archive. An empty dsn disables archiving
// and returns a nil *gorm.DB.
func InitPostgresql(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		log.Println("POSTGRES_URL not set, plan archive disabled")
		return nil, nil
	}

	connectionPool, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		return nil, err
	}

	if err := connectionPool.AutoMigrate(&db_models.PlanRecord{}); err != nil {
		log.Printf("Error migrating plan archive: %v", err)
		return nil, err
	}

	log.Println("PostgreSQL plan archive ready")
	return connectionPool, nil
}

func ClosePostgresql(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("PostgreSQL database connection closed successfully")
	}
}
