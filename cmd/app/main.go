package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/fx"

	"tripcrew/cmd/fx/config_fx"
	"tripcrew/cmd/fx/controllers_fx"
	"tripcrew/cmd/fx/db_fx"
	"tripcrew/cmd/fx/llm_fx"
	"tripcrew/cmd/fx/planner_fx"
	"tripcrew/cmd/fx/tools_fx"
	"tripcrew/internal/api/controllers"
	"tripcrew/internal/config"
	"tripcrew/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		llm_fx.Module,
		tools_fx.Module,
		db_fx.Module,
		planner_fx.Module,
		controllers_fx.Module,

		fx.Invoke(StartServer),
		fx.Provide(ProvideRouter, ProvideServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, srv *http.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at %s", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

// ProvideServer wraps the router with CORS open to any origin. No endpoint
// uses cookies or auth headers, so credentials are not allowed.
func ProvideServer(cfg config.Config, r *gin.Engine) *http.Server {
	return &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: corsHandler(r),
	}
}

func corsHandler(h http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{middleware.TraceIDHeader},
	}).Handler(h)
}

func ProvideRouter(
	planController *controllers.PlanController,
	metaController *controllers.MetaController) *gin.Engine {

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, planController, metaController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	planController *controllers.PlanController,
	metaController *controllers.MetaController) {

	r.GET("/", metaController.RootHandler)
	r.GET("/health", metaController.HealthHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/plan", planController.CreatePlanHandler)

	plansGroup := r.Group("/plans")
	plansGroup.GET("/:id", planController.GetPlanHandler)

	destinationsGroup := r.Group("/destinations")
	destinationsGroup.GET("/popular", metaController.PopularDestinationsHandler)
}
