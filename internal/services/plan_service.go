package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"tripcrew/internal/models/db_models"
	"tripcrew/internal/models/request_models"
	"tripcrew/internal/models/response_models"
	"tripcrew/internal/repositories"
	"tripcrew/pkg/utils"
)

// PlanServiceInterface archives finished plans. With no repository every
// call returns utils.ErrArchiveDisabled.
type PlanServiceInterface interface {
	Enabled() bool
	SavePlan(ctx context.Context, req request_models.PlanRequest, plan *response_models.FinalPlan) (string, error)
	GetPlanByID(ctx context.Context, planID string) (*response_models.FinalPlan, error)
}

func NewPlanService(planRepo repositories.IPlanRepository) PlanServiceInterface {
	return &PlanService{
		planRepo: planRepo,
	}
}

type PlanService struct {
	planRepo repositories.IPlanRepository
}

func (p *PlanService) Enabled() bool { return p.planRepo != nil }

func (p *PlanService) SavePlan(ctx context.Context, req request_models.PlanRequest, plan *response_models.FinalPlan) (string, error) {
	if p.planRepo == nil {
		return "", utils.ErrArchiveDisabled
	}

	id := uuid.New()
	plan.PlanID = id.String()
	doc, err := json.Marshal(plan)
	if err != nil {
		plan.PlanID = ""
		return "", fmt.Errorf("encode plan: %w", err)
	}

	rec := &db_models.PlanRecord{
		BaseModel:     db_models.BaseModel{ID: id},
		Destination:   plan.Destination,
		Origin:        plan.Origin,
		DepartureDate: plan.DepartureDate,
		ReturnDate:    plan.ReturnDate,
		DurationDays:  req.Days(),
		ExecutionTime: plan.ExecutionTime,
		Document:      string(doc),
	}
	if err := p.planRepo.CreatePlan(ctx, rec); err != nil {
		plan.PlanID = ""
		return "", err
	}
	return id.String(), nil
}

func (p *PlanService) GetPlanByID(ctx context.Context, planID string) (*response_models.FinalPlan, error) {
	if p.planRepo == nil {
		return nil, utils.ErrArchiveDisabled
	}
	if _, err := uuid.Parse(planID); err != nil {
		return nil, utils.ErrPlanNotFound
	}

	rec, err := p.planRepo.GetPlanByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, utils.ErrPlanNotFound
	}

	var plan response_models.FinalPlan
	if err := json.Unmarshal([]byte(rec.Document), &plan); err != nil {
		return nil, fmt.Errorf("%w: decode archived plan %s: %v", utils.ErrDatabaseError, planID, err)
	}
	plan.PlanID = rec.ID.String()
	return &plan, nil
}
