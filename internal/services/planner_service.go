package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"tripcrew/internal/agents"
	"tripcrew/internal/models/request_models"
	"tripcrew/internal/models/response_models"
	"tripcrew/internal/pipeline"
	"tripcrew/internal/resolver"
	"tripcrew/pkg/metrics"
	"tripcrew/pkg/utils"
)

type PlannerServiceInterface interface {
	CreatePlan(ctx context.Context, req request_models.PlanRequest) (*response_models.FinalPlan, error)
	PopularDestinations() []response_models.PopularDestination
}

type PlannerService struct {
	resolver *resolver.Resolver
	toolbox  agents.Toolbox
	engine   *pipeline.Engine
	plans    PlanServiceInterface
}

func NewPlannerService(res *resolver.Resolver, toolbox agents.Toolbox, engine *pipeline.Engine, plans PlanServiceInterface) PlannerServiceInterface {
	return &PlannerService{
		resolver: res,
		toolbox:  toolbox,
		engine:   engine,
		plans:    plans,
	}
}

func (s *PlannerService) CreatePlan(ctx context.Context, req request_models.PlanRequest) (*response_models.FinalPlan, error) {
	start := time.Now()

	params, err := s.prepare(req)
	if err != nil {
		metrics.PlansTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}
	log.Printf("Planning trip to %s from %s: %s to %s (%d days, travel month %s)",
		params.Destination, params.Origin, params.DepartureDate, params.ReturnDate, params.DurationDays, params.TravelMonth)

	params.Codes = s.resolveCodes(params.Origin, params.Destination)

	results, err := s.engine.Run(ctx, agents.BuildStages(s.toolbox, params))
	if err != nil {
		metrics.PlansTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("%w: %v", utils.ErrPlanningFailed, err)
	}
	if err := ctx.Err(); err != nil {
		metrics.PlansTotal.WithLabelValues("cancelled").Inc()
		return nil, err
	}

	plan := pipeline.Assemble(results, params.Destination, params.Origin)
	plan.TravelMonth = params.TravelMonth
	plan.DepartureDate = params.DepartureDate
	plan.ReturnDate = params.ReturnDate
	plan.ExecutionTime = time.Since(start).Seconds()

	if s.plans != nil && s.plans.Enabled() {
		if _, err := s.plans.SavePlan(ctx, req, &plan); err != nil {
			log.Printf("Could not archive plan for %s: %v", params.Destination, err)
		}
	}

	outcome := "complete"
	if len(plan.DegradedStages) > 0 {
		outcome = "degraded"
	}
	metrics.PlansTotal.WithLabelValues(outcome).Inc()
	log.Printf("Planning complete for %s in %.1fs (degraded stages: %v)", params.Destination, plan.ExecutionTime, plan.DegradedStages)

	return &plan, nil
}

// prepare applies defaults and derives travel month and return date.
func (s *PlannerService) prepare(req request_models.PlanRequest) (agents.TripParams, error) {
	req = req.WithDefaults()
	req.Destination = strings.TrimSpace(req.Destination)
	if req.Destination == "" {
		return agents.TripParams{}, fmt.Errorf("%w: destination is required", utils.ErrInvalidInput)
	}
	days := req.Days()
	if days < 1 || days > 30 {
		return agents.TripParams{}, fmt.Errorf("%w: duration_days must be between 1 and 30", utils.ErrInvalidInput)
	}

	month, err := utils.TravelMonth(req.DepartureDate)
	if err != nil {
		return agents.TripParams{}, err
	}

	returnDate := req.ReturnDate
	if returnDate == "" {
		if returnDate, err = utils.ReturnDate(req.DepartureDate, days); err != nil {
			return agents.TripParams{}, err
		}
	} else {
		dep, _ := utils.ParseDate(req.DepartureDate)
		ret, err := utils.ParseDate(returnDate)
		if err != nil {
			return agents.TripParams{}, err
		}
		if !ret.After(dep) {
			return agents.TripParams{}, fmt.Errorf("%w: return_date must be after departure_date", utils.ErrInvalidInput)
		}
	}

	return agents.TripParams{
		Destination:   req.Destination,
		Origin:        strings.TrimSpace(req.Origin),
		DepartureDate: req.DepartureDate,
		ReturnDate:    returnDate,
		TravelMonth:   month,
		DurationDays:  days,
		BudgetLevel:   req.BudgetLevel,
		TripType:      req.TripType,
		Interests:     req.Interests,
	}, nil
}

// resolveCodes keeps every code that resolves. Unresolved slots stay empty
// and the stages fall back to the raw text.
func (s *PlannerService) resolveCodes(origin, destination string) resolver.ResolvedCodes {
	var codes resolver.ResolvedCodes
	var err error

	logFailure := func(err error) {
		var rerr *resolver.ResolutionError
		if errors.As(err, &rerr) {
			log.Printf("Code resolution: %v", rerr)
			return
		}
		log.Printf("Code resolution failed: %v", err)
	}

	if codes.OriginCode, err = s.resolver.AirportCode(origin); err != nil {
		logFailure(err)
	} else {
		log.Printf("Origin: %s -> %s", origin, codes.OriginCode)
	}
	if codes.DestinationAirportCode, err = s.resolver.AirportCode(destination); err != nil {
		logFailure(err)
	} else {
		log.Printf("Destination (airport): %s -> %s", destination, codes.DestinationAirportCode)
	}
	if codes.DestinationCityCode, err = s.resolver.CityCode(destination); err != nil {
		logFailure(err)
	} else {
		log.Printf("Destination (city): %s -> %s", destination, codes.DestinationCityCode)
	}
	return codes
}

func (s *PlannerService) PopularDestinations() []response_models.PopularDestination {
	list := s.resolver.PopularDestinations()
	out := make([]response_models.PopularDestination, 0, len(list))
	for _, d := range list {
		out = append(out, response_models.PopularDestination{Name: d.Name, Code: d.Code, Region: d.Region})
	}
	return out
}
