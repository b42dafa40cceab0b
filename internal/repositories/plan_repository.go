package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tripcrew/internal/models/db_models"
	"tripcrew/pkg/utils"
)

type IPlanRepository interface {
	CreatePlan(ctx context.Context, rec *db_models.PlanRecord) error
	GetPlanByID(ctx context.Context, planID string) (*db_models.PlanRecord, error)
}

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) IPlanRepository {
	return &PlanRepository{db: db}
}

func (p *PlanRepository) CreatePlan(ctx context.Context, rec *db_models.PlanRecord) error {
	if err := p.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("%w: create plan: %v", utils.ErrDatabaseError, err)
	}
	return nil
}

// GetPlanByID returns nil, nil when no plan has that id.
func (p *PlanRepository) GetPlanByID(ctx context.Context, planID string) (*db_models.PlanRecord, error) {
	var rec db_models.PlanRecord
	err := p.db.WithContext(ctx).First(&rec, "id = ?", planID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get plan: %v", utils.ErrDatabaseError, err)
	}

	return &rec, nil
}
