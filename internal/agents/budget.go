package agents

import (
	"context"
	"fmt"
	"strings"

	"tripcrew/internal/pipeline"
	"tripcrew/internal/tools"
	"tripcrew/pkg/utils"
)

var BudgetAgent = Agent{
	Role: "Travel Budget Analyst",
	Goal: "Provide comprehensive budget estimates for traveling to {destination} across different spending tiers",
	Backstory: "You are a financial travel advisor with expertise in analyzing travel costs worldwide. You " +
		"combine flight and hotel data with local cost-of-living information to give accurate budget " +
		"estimates for tight, moderate, and flexible spending levels.",
}

func BudgetStage(budget tools.BudgetToolInterface, p TripParams) pipeline.Stage {
	return pipeline.Stage{
		Kind:      pipeline.StageBudget,
		System:    BudgetAgent.SystemPrompt(p.Destination),
		DependsOn: []pipeline.StageKind{pipeline.StageFlight, pipeline.StageHotel},
		JSON:      true,
		Tool: func(ctx context.Context) string {
			return renderResult("budget", budget.Lookup(ctx, tools.BudgetQuery{City: p.Destination}))
		},
		Prompt: func(toolData string, up pipeline.Upstream) string {
			return budgetPrompt(p.Destination, p.DurationDays, FlightSummary(up), HotelSummary(up), toolData)
		},
	}
}

// FlightSummary condenses the flight stage output for downstream prompts.
func FlightSummary(up pipeline.Upstream) string {
	obj := up.Object(pipeline.StageFlight)
	pr, ok := obj["price_range"].(map[string]any)
	if !ok {
		return ""
	}
	lo, okLo := number(pr["min"])
	hi, okHi := number(pr["max"])
	if !okLo || !okHi {
		return ""
	}
	cur := summaryCurrency(obj, "flights")
	line := fmt.Sprintf("Flight costs: %s - %s", utils.FormatPrice(lo, cur), utils.FormatPrice(hi, cur))
	if d := flightDuration(obj); d != "" && d != "N/A" {
		line += " (typical duration " + d + ")"
	}
	return line
}

func flightDuration(obj map[string]any) string {
	if d, ok := obj["average_duration"].(string); ok && d != "" {
		return utils.FormatISODuration(d)
	}
	if flights, ok := obj["flights"].([]any); ok && len(flights) > 0 {
		if f, ok := flights[0].(map[string]any); ok {
			if d, ok := f["duration"].(string); ok {
				return utils.FormatISODuration(d)
			}
		}
	}
	return ""
}

// HotelSummary condenses the hotel stage output for downstream prompts.
func HotelSummary(up pipeline.Upstream) string {
	obj := up.Object(pipeline.StageHotel)
	pr, ok := obj["price_range"].(map[string]any)
	if !ok {
		return ""
	}
	lo, okLo := number(pr["min_per_night"])
	hi, okHi := number(pr["max_per_night"])
	if !okLo || !okHi {
		return ""
	}
	cur := summaryCurrency(obj, "hotels")
	return fmt.Sprintf("Hotel costs per night: %s - %s", utils.FormatPrice(lo, cur), utils.FormatPrice(hi, cur))
}

// summaryCurrency takes the stage's top-level currency, then the first
// listed option's, and defaults to SGD.
func summaryCurrency(obj map[string]any, listKey string) string {
	if c, ok := obj["currency"].(string); ok && c != "" {
		return strings.ToUpper(c)
	}
	if items, ok := obj[listKey].([]any); ok && len(items) > 0 {
		if first, ok := items[0].(map[string]any); ok {
			if c, ok := first["currency"].(string); ok && c != "" {
				return strings.ToUpper(c)
			}
		}
	}
	return "SGD"
}

func budgetPrompt(destination string, days int, flightCtx, hotelCtx, toolData string) string {
	var lines []string
	for _, line := range []string{flightCtx, hotelCtx} {
		if line != "" {
			lines = append(lines, line)
		}
	}
	contextText := "No flight or hotel pricing available; rely on the local cost data."
	if len(lines) > 0 {
		contextText = strings.Join(lines, "\n")
	}

	return fmt.Sprintf(`Estimate the travel budget for %[1]s for a %[2]d-day trip.

Local cost data:
%[4]s

Context from other searches:
%[3]s

Using this data:
1. Combine flight, hotel, and daily costs
2. Provide estimates for THREE budget tiers:
   - **Tight**: Budget travel (hostels, street food, public transport)
   - **Moderate**: Mid-range travel (3-4 star hotels, mix of restaurants)
   - **Flexible**: Comfortable travel (4-5 star hotels, nice dining)
3. Break down daily costs:
   - Accommodation (per night)
   - Meals (breakfast, lunch, dinner)
   - Local transport
   - Activities/attractions
4. Calculate total trip cost including flights

Respond with a single JSON object in this format:
{
    "destination": "%[1]s",
    "duration_days": %[2]d,
    "budget_tiers": {
        "tight": {
            "daily_total": float,
            "meals": float,
            "transport": float,
            "accommodation": float,
            "activities": float,
            "trip_total": float
        },
        "moderate": {...},
        "flexible": {...}
    },
    "notes": "budget tips and money-saving advice"
}`, destination, days, contextText, toolData)
}
