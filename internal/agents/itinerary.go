package agents

import (
	"fmt"
	"sort"
	"strings"

	"tripcrew/internal/pipeline"
)

var ItineraryAgent = Agent{
	Role: "Itinerary Planning Expert",
	Goal: "Create a detailed, optimized day-by-day itinerary for {destination} that balances activities, rest, and travel time",
	Backstory: "You are a master itinerary planner who creates balanced travel schedules. You understand " +
		"pacing and geographic clustering, and you mix different types of activities so that every " +
		"itinerary is practical and enjoyable.",
}

func ItineraryStage(p TripParams) pipeline.Stage {
	return pipeline.Stage{
		Kind:      pipeline.StageItinerary,
		System:    ItineraryAgent.SystemPrompt(p.Destination),
		DependsOn: []pipeline.StageKind{pipeline.StageSeasonality, pipeline.StageAttractions},
		Prompt: func(_ string, up pipeline.Upstream) string {
			return itineraryPrompt(p, AttractionsSummary(up), WeatherSummary(up))
		},
	}
}

// AttractionsSummary lists the attraction category names produced upstream.
func AttractionsSummary(up pipeline.Upstream) string {
	cats, ok := up.Object(pipeline.StageAttractions)["categories"].(map[string]any)
	if !ok || len(cats) == 0 {
		return "Available attractions across various categories"
	}

	names := make([]string, 0, len(cats))
	for _, c := range AttractionCategories {
		if _, ok := cats[c]; ok {
			names = append(names, c)
		}
	}
	var extra []string
	for c := range cats {
		if !contains(AttractionCategories, c) {
			extra = append(extra, c)
		}
	}
	sort.Strings(extra)
	names = append(names, extra...)

	return "Available attractions: " + strings.Join(names, ", ")
}

func WeatherSummary(up pipeline.Upstream) string {
	w, _ := up.Object(pipeline.StageSeasonality)["weather_summary"].(string)
	if w == "" {
		return ""
	}
	return "Weather consideration: " + w
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func itineraryDayGuidelines(days int) string {
	switch {
	case days <= 1:
		return "1. **Day 1**: Arrival and departure on the same day - a compact schedule close to the hotel and airport"
	case days == 2:
		return "1. **Day 1**: Arrival day - lighter schedule, nearby attractions, orientation\n" +
			"2. **Day 2**: Departure day - morning activities, travel to airport"
	default:
		middle := "Day 2"
		if days > 3 {
			middle = fmt.Sprintf("Day 2-%d", days-1)
		}
		return fmt.Sprintf("1. **Day 1**: Arrival day - lighter schedule, nearby attractions, orientation\n"+
			"2. **%s**: Full days with morning, afternoon, and evening activities\n"+
			"3. **Day %d**: Departure day - morning activities, travel to airport", middle, days)
	}
}

func itineraryPrompt(p TripParams, attractions, weather string) string {
	available := attractions
	if weather != "" {
		available += "\n" + weather
	}
	return fmt.Sprintf(`Create a detailed %[1]d-day itinerary for %[2]s.

Trip Details:
- Duration: %[1]d days
- Budget level: %[3]s
- Trip type: %[4]s
- Interests: %[5]s

Available Data:
%[6]s

Itinerary Guidelines:
%[7]s

For each day include:
   - **Morning** (9:00 AM - 12:00 PM): 1-2 activities
   - **Afternoon** (2:00 PM - 5:00 PM): 1-2 activities
   - **Evening** (6:00 PM - 9:00 PM): Dinner and evening activity

Optimization principles:
   - Group attractions by geographic area (minimize travel time)
   - Mix activity types (culture, nature, food, shopping)
   - Include rest breaks and meal times
   - Consider opening hours and best visiting times
   - Balance energetic and relaxed activities

Include practical details:
   - Estimated time at each location
   - Travel time between locations
   - Meal suggestions (specific restaurants/areas)
   - Tips for each day

Respond in Markdown using this layout:

# %[1]d-Day %[2]s Itinerary

## Overview
Brief intro about the itinerary's focus and highlights

## Day 1: Arrival & Orientation
**Morning (Arrival)**
- Arrive at airport
- Transfer to hotel in [neighborhood] (~time)
- Check-in and freshen up

**Afternoon**
- 2:00 PM: [Attraction name] - [description] (~duration)
- Travel tip: [transportation advice]

**Evening**
- 6:00 PM: Dinner at [area/restaurant suggestion]
- 8:00 PM: [Evening activity]

**Day 1 Tips:** [practical advice]

## Day 2: [Theme for the day]
...

[Continue for all days]

## Practical Notes
- Best way to get around: [transport advice]
- Must-try foods: [food recommendations]
- Money-saving tips: [budget advice]`,
		p.DurationDays, p.Destination, p.BudgetLevel, p.TripType, interestsText(p.Interests),
		available, itineraryDayGuidelines(p.DurationDays))
}
