package planner_fx

import (
	"go.uber.org/fx"

	"tripcrew/internal/agents"
	"tripcrew/internal/config"
	"tripcrew/internal/pipeline"
	"tripcrew/internal/repositories"
	"tripcrew/internal/resolver"
	"tripcrew/internal/services"
	"tripcrew/pkg/llm"
)

var Module = fx.Provide(
	provideResolver, provideEngine, providePlanService, providePlannerService,
)

func provideResolver() *resolver.Resolver {
	return resolver.Default()
}

func provideEngine(cfg config.Config, gen llm.GeneratorInterface) *pipeline.Engine {
	return pipeline.NewEngine(gen, cfg.Pipeline.Concurrency)
}

func providePlanService(planRepo repositories.IPlanRepository) services.PlanServiceInterface {
	return services.NewPlanService(planRepo)
}

func providePlannerService(res *resolver.Resolver, toolbox agents.Toolbox, engine *pipeline.Engine, planService services.PlanServiceInterface) services.PlannerServiceInterface {
	return services.NewPlannerService(res, toolbox, engine, planService)
}
