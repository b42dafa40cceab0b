package agents

import (
	"context"
	"fmt"

	"tripcrew/internal/pipeline"
	"tripcrew/internal/tools"
)

var FlightAgent = Agent{
	Role: "Flight Search Specialist",
	Goal: "Search for flights and analyze flight options to provide recommendations",
	Backstory: "You are an expert flight search specialist who analyzes flight options, compares prices, " +
		"and identifies the best deals considering duration, number of stops, and value for money.",
}

func FlightStage(flights tools.FlightToolInterface, p TripParams) pipeline.Stage {
	origin := firstNonEmpty(p.Codes.OriginCode, p.Origin)
	destination := firstNonEmpty(p.Codes.DestinationAirportCode, p.Destination)

	return pipeline.Stage{
		Kind:   pipeline.StageFlight,
		System: FlightAgent.SystemPrompt(p.Destination),
		JSON:   true,
		Tool: func(ctx context.Context) string {
			return renderResult("flight", flights.Search(ctx, tools.FlightQuery{
				Origin:        origin,
				Destination:   destination,
				DepartureDate: p.DepartureDate,
				ReturnDate:    p.ReturnDate,
			}))
		},
		Prompt: func(toolData string, _ pipeline.Upstream) string {
			return flightPrompt(origin, destination, p.DepartureDate, p.ReturnDate, toolData)
		},
	}
}

func flightPrompt(origin, destination, departure, ret, toolData string) string {
	returnLine := ""
	if ret != "" {
		returnLine = "- return_date: " + ret + "\n"
	}
	return fmt.Sprintf(`Analyze flight options from %[1]s to %[2]s.

Search parameters:
- origin: %[1]s
- destination: %[2]s
- departure_date: %[3]s
%[4]s
Flight search results:
%[5]s

Using the flight data:
1. Identify 3-5 representative flight options
2. Calculate price range (min-max)
3. Summarize average duration
4. Note if flights are direct or have connections

Respond with a single JSON object in this format:
{
    "origin": "%[1]s",
    "destination": "%[2]s",
    "flights": [
        {
            "price": float,
            "currency": "SGD",
            "duration": "duration string",
            "segments": int,
            "one_way": boolean
        }
    ],
    "price_range": {"min": float, "max": float},
    "average_duration": "duration string",
    "notes": "any relevant observations"
}`, origin, destination, departure, returnLine, toolData)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
