package db_fx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripcrew/internal/config"
	"tripcrew/internal/infra"
	"tripcrew/internal/repositories"
)

var Module = fx.Provide(
	provideDB, providePlanRepo)

// provideDB yields a nil *gorm.DB when POSTGRES_URL is unset.
func provideDB(lc fx.Lifecycle, cfg config.Config) (*gorm.DB, error) {
	db, err := infra.InitPostgresql(cfg.PostgresURL)
	if err != nil {
		return nil, err
	}
	if db == nil {
		return nil, nil
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db)
			return nil
		},
	})
	return db, nil
}

func providePlanRepo(db *gorm.DB) repositories.IPlanRepository {
	if db == nil {
		return nil
	}
	return repositories.NewPlanRepository(db)
}
