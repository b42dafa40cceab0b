package agents

import (
	"fmt"

	"tripcrew/internal/pipeline"
)

var SeasonalityAgent = Agent{
	Role: "Travel Seasonality Expert",
	Goal: "Determine the best months to visit {destination} based on weather, festivals, and seasonal factors",
	Backstory: "You are a world-renowned travel timing expert with deep knowledge of global weather " +
		"patterns, seasonal tourism trends, and cultural festivals. You give detailed insight on the best " +
		"and worst times to visit any destination, weighing weather, crowd levels and special events.",
}

func SeasonalityStage(p TripParams) pipeline.Stage {
	return pipeline.Stage{
		Kind:   pipeline.StageSeasonality,
		System: SeasonalityAgent.SystemPrompt(p.Destination),
		JSON:   true,
		Prompt: func(_ string, _ pipeline.Upstream) string {
			return seasonalityPrompt(p.Destination, p.TravelMonth)
		},
	}
}

func seasonalityPrompt(destination, travelMonth string) string {
	monthLine := ""
	if travelMonth != "" {
		monthLine = fmt.Sprintf("The traveler is interested in visiting in %s. Comment on this timing.\n", travelMonth)
	}
	return fmt.Sprintf(`Analyze the best times to visit %s. Provide:

1. **Best Months to Visit**: List the 2-3 best months with reasons
2. **Weather Summary**: Describe typical weather conditions throughout the year
3. **Seasonal Highlights**: Major festivals, events, or seasonal attractions
4. **Months to Avoid**: Times with extreme weather, overcrowding, or closures
5. **Peak vs Off-Peak**: Tourist season information

%s
Respond with a single JSON object in this format:
{
    "best_months": ["month1", "month2", "month3"],
    "weather_summary": "detailed weather description",
    "seasonal_highlights": ["highlight1", "highlight2"],
    "months_to_avoid": ["month1", "month2"],
    "peak_season": "months",
    "off_peak_season": "months",
    "travel_month_assessment": "assessment if specific month provided"
}`, destination, monthLine)
}
