package tools_fx

import (
	"net/http"
	"time"

	"go.uber.org/fx"

	"tripcrew/internal/agents"
	"tripcrew/internal/config"
	"tripcrew/internal/tools"
)

var Module = fx.Provide(provideHTTPClient, provideAmadeus, provideToolbox)

func provideHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

func provideAmadeus(cfg config.Config, httpClient *http.Client) *tools.AmadeusClient {
	return tools.NewAmadeusClient(cfg.Amadeus, httpClient)
}

func provideToolbox(cfg config.Config, amadeus *tools.AmadeusClient, httpClient *http.Client) agents.Toolbox {
	return agents.Toolbox{
		Flights: tools.NewFlightTool(amadeus),
		Hotels:  tools.NewHotelTool(amadeus, cfg.Amadeus.OffersPerSecond),
		Places:  tools.NewPlacesTool(cfg.Places, httpClient),
		Budget:  tools.NewBudgetTool(),
	}
}
