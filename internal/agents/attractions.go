package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"tripcrew/internal/pipeline"
	"tripcrew/internal/tools"
)

var AttractionsAgent = Agent{
	Role: "Local Attractions Expert",
	Goal: "Discover must-see attractions and activities in {destination} tailored to traveler interests",
	Backstory: "You are a local guide and cultural expert who knows the hidden gems and popular attractions " +
		"in cities worldwide. You curate personalized lists of things to see and do based on interests " +
		"like culture, adventure, food, or relaxation.",
}

// PlaceCategories are the Places types queried for the attractions stage.
var PlaceCategories = []string{
	"tourist_attraction",
	"museum",
	"park",
	"restaurant",
	"shopping_mall",
}

// AttractionCategories are the groups the attractions stage sorts into, in
// display order.
var AttractionCategories = []string{
	"culture",
	"landmarks",
	"nature",
	"food_districts",
	"markets",
	"day_trips",
}

func AttractionsStage(places tools.PlacesToolInterface, p TripParams) pipeline.Stage {
	return pipeline.Stage{
		Kind:   pipeline.StageAttractions,
		System: AttractionsAgent.SystemPrompt(p.Destination),
		JSON:   true,
		Tool: func(ctx context.Context) string {
			return searchCategories(ctx, places, p.Destination)
		},
		Prompt: func(toolData string, _ pipeline.Upstream) string {
			return attractionsPrompt(p.Destination, p.Interests, toolData)
		},
	}
}

func searchCategories(ctx context.Context, places tools.PlacesToolInterface, destination string) string {
	type categoryResult struct {
		Category string                     `json:"category"`
		Fallback bool                       `json:"fallback"`
		Result   tools.PlacesSearchResponse `json:"result"`
	}

	results := make([]categoryResult, 0, len(PlaceCategories))
	for _, cat := range PlaceCategories {
		r := places.Search(ctx, tools.PlacesQuery{Destination: destination, Category: cat})
		r.Match(
			func(resp tools.PlacesSearchResponse) {
				results = append(results, categoryResult{Category: cat, Result: resp})
			},
			func(resp tools.PlacesSearchResponse, err error) {
				log.Printf("[places] %s search for %q degraded: %v", cat, destination, err)
				results = append(results, categoryResult{Category: cat, Fallback: true, Result: resp})
			},
		)
	}

	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(b)
}

func attractionsPrompt(destination string, interests []string, toolData string) string {
	interestsLine := ""
	if len(interests) > 0 {
		interestsLine = "\nUser interests: " + strings.Join(interests, ", ") + "\n"
	}
	return fmt.Sprintf(`Find and categorize top attractions in %[1]s.
%[2]s
Places search results by category (%[4]s):
%[3]s

Using this data:
1. Categorize attractions into groups:
   - **Culture**: Museums, temples, historical sites
   - **Landmarks**: Famous monuments, viewpoints
   - **Nature/Outdoors**: Parks, gardens, beaches
   - **Food Districts**: Markets, food streets, famous restaurants
   - **Markets/Shopping**: Traditional markets, shopping districts
   - **Day Trips**: Nearby destinations for day excursions
2. For each attraction, provide:
   - Name and location
   - Brief description (enhance with your own knowledge)
   - Rating and popularity
   - Recommended duration
   - Best time to visit
3. Prioritize based on:
   - High ratings and reviews
   - Cultural significance
   - User interests: %[5]s

Respond with a single JSON object in this format:
{
    "destination": "%[1]s",
    "categories": {
        "culture": [
            {
                "name": "attraction name",
                "description": "enriched description",
                "rating": float,
                "location": "area/district",
                "recommended_duration": "1-2 hours",
                "best_time": "morning/afternoon/evening",
                "coordinates": {"lat": float, "lng": float}
            }
        ],
        "landmarks": [...],
        "nature": [...],
        "food_districts": [...],
        "markets": [...],
        "day_trips": [...]
    },
    "top_picks": ["attraction1", "attraction2", "attraction3"],
    "notes": "general tips for sightseeing"
}`, destination, interestsLine, toolData, strings.Join(PlaceCategories, ", "), interestsText(interests))
}
