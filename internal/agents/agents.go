// Package agents defines the seven planning roles and turns a trip request
// into the pipeline stages they run.
package agents

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"tripcrew/internal/pipeline"
	"tripcrew/internal/resolver"
	"tripcrew/internal/tools"
)

// Agent is the persona a stage speaks as. Goal may reference {destination}.
type Agent struct {
	Role      string
	Goal      string
	Backstory string
}

func (a Agent) SystemPrompt(destination string) string {
	goal := strings.ReplaceAll(a.Goal, "{destination}", destination)
	return fmt.Sprintf("You are a %s.\n\nGoal: %s\n\n%s", a.Role, goal, a.Backstory)
}

// TripParams is everything the stage builders need from one request.
type TripParams struct {
	Destination   string
	Origin        string
	Codes         resolver.ResolvedCodes
	DepartureDate string
	ReturnDate    string
	TravelMonth   string
	DurationDays  int
	BudgetLevel   string
	TripType      string
	Interests     []string
}

type Toolbox struct {
	Flights tools.FlightToolInterface
	Hotels  tools.HotelToolInterface
	Places  tools.PlacesToolInterface
	Budget  tools.BudgetToolInterface
}

// BuildStages returns the seven stages in canonical order.
func BuildStages(tb Toolbox, p TripParams) []pipeline.Stage {
	return []pipeline.Stage{
		SeasonalityStage(p),
		FlightStage(tb.Flights, p),
		HotelStage(tb.Hotels, p),
		BudgetStage(tb.Budget, p),
		AttractionsStage(tb.Places, p),
		ItineraryStage(p),
		TipsStage(p),
	}
}

// renderResult turns a tool result into prompt text. Degraded results are
// still rendered, with a marker so the model does not present them as live.
func renderResult[T any](tool string, r tools.Result[T]) string {
	var out string
	r.Match(
		func(T) {
			out = r.JSON()
		},
		func(_ T, err error) {
			log.Printf("[%s] using fallback data: %v", tool, err)
			out = "NOTE: live data was unavailable, the figures below are generic fallback estimates.\n" + r.JSON()
		},
	)
	return out
}

func interestsText(interests []string) string {
	if len(interests) == 0 {
		return "general tourism"
	}
	return strings.Join(interests, ", ")
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}
