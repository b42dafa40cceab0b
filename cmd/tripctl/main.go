// Command tripctl resolves IATA codes and runs single travel plans from the
// command line, without the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tripcrew/cmd/fx/llm_fx"
	"tripcrew/internal/agents"
	"tripcrew/internal/config"
	"tripcrew/internal/infra"
	"tripcrew/internal/models/request_models"
	"tripcrew/internal/pipeline"
	"tripcrew/internal/repositories"
	"tripcrew/internal/resolver"
	"tripcrew/internal/services"
	"tripcrew/internal/tools"
	"tripcrew/pkg/llm"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tripctl",
		Short:         "Travel planner command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(resolveCmd(), planCmd())
	return cmd
}

func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <text>",
		Short: "Resolve a city, country or code to IATA airport and city codes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := resolver.Default()
			out := cmd.OutOrStdout()

			airport, aerr := res.AirportCode(args[0])
			city, cerr := res.CityCode(args[0])
			if aerr != nil && cerr != nil {
				return aerr
			}
			fmt.Fprintf(out, "airport: %s\n", orDash(airport))
			fmt.Fprintf(out, "city:    %s\n", orDash(city))
			return nil
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

type planFlags struct {
	destination string
	origin      string
	departure   string
	returnDate  string
	days        int
	budget      string
	tripType    string
	interests   []string
}

func (f planFlags) request(cmd *cobra.Command) request_models.PlanRequest {
	req := request_models.PlanRequest{
		Destination:   f.destination,
		Origin:        f.origin,
		DepartureDate: f.departure,
		ReturnDate:    f.returnDate,
		BudgetLevel:   f.budget,
		TripType:      f.tripType,
		Interests:     f.interests,
	}
	if cmd.Flags().Changed("days") {
		days := f.days
		req.DurationDays = &days
	}
	return req
}

func planCmd() *cobra.Command {
	var f planFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Run the planning pipeline once and print the plan as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			planner, cleanup, err := buildPlanner(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			plan, err := planner.CreatePlan(ctx, f.request(cmd))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(plan)
		},
	}

	cmd.Flags().StringVarP(&f.destination, "destination", "d", "", "Destination city or country")
	cmd.Flags().StringVarP(&f.origin, "origin", "o", request_models.DefaultOrigin, "Origin city or airport code")
	cmd.Flags().StringVar(&f.departure, "departure", request_models.DefaultDepartureDate, "Departure date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.returnDate, "return", "", "Return date (YYYY-MM-DD), derived from --days when empty")
	cmd.Flags().IntVar(&f.days, "days", request_models.DefaultDurationDays, "Trip length in days")
	cmd.Flags().StringVar(&f.budget, "budget", request_models.DefaultBudgetLevel, "Budget level (tight, moderate, flexible)")
	cmd.Flags().StringVar(&f.tripType, "trip-type", request_models.DefaultTripType, "Trip type (solo, couple, family, friends)")
	cmd.Flags().StringSliceVar(&f.interests, "interest", nil, "Interest, repeatable")
	_ = cmd.MarkFlagRequired("destination")

	return cmd
}

// buildPlanner wires the same components the server gets from fx.
func buildPlanner(ctx context.Context, cfg config.Config) (services.PlannerServiceInterface, func(), error) {
	gen, err := llm.New(ctx, llm_fx.GeneratorConfig(cfg.LLM))
	if err != nil {
		return nil, nil, err
	}

	db, err := infra.InitPostgresql(cfg.PostgresURL)
	if err != nil {
		return nil, nil, err
	}
	var planRepo repositories.IPlanRepository
	if db != nil {
		planRepo = repositories.NewPlanRepository(db)
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	amadeus := tools.NewAmadeusClient(cfg.Amadeus, httpClient)
	toolbox := agents.Toolbox{
		Flights: tools.NewFlightTool(amadeus),
		Hotels:  tools.NewHotelTool(amadeus, cfg.Amadeus.OffersPerSecond),
		Places:  tools.NewPlacesTool(cfg.Places, httpClient),
		Budget:  tools.NewBudgetTool(),
	}

	planner := services.NewPlannerService(
		resolver.Default(),
		toolbox,
		pipeline.NewEngine(gen, cfg.Pipeline.Concurrency),
		services.NewPlanService(planRepo),
	)

	cleanup := func() {
		if closer, ok := gen.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
		infra.ClosePostgresql(db)
	}
	return planner, cleanup, nil
}
