package tools

import (
	"context"
	"log"
	"strings"
)

const (
	TierExpensive = "expensive"
	TierModerate  = "moderate"
	TierBudget    = "budget"
	tierGeneric   = "generic"
)

type BudgetQuery struct {
	City    string
	Country string
}

type CostBreakdown struct {
	DailyTotal      float64 `json:"daily_total"`
	Meals           float64 `json:"meals"`
	Transport       float64 `json:"transport"`
	Accommodation   float64 `json:"accommodation"`
	AirportTransfer float64 `json:"airport_transfer"`
	Activities      float64 `json:"activities"`
}

type BudgetResponse struct {
	Success     bool                     `json:"success"`
	Location    string                   `json:"location"`
	City        string                   `json:"city"`
	Country     string                   `json:"country"`
	CostTier    string                   `json:"cost_tier"`
	BudgetTiers map[string]CostBreakdown `json:"budget_tiers"`
	Currency    string                   `json:"currency"`
	Error       string                   `json:"error"`
	Note        string                   `json:"note"`
}

type costTier struct {
	name   string
	cities []string
	tiers  map[string]CostBreakdown
}

// costTiers is checked in order; the first tier naming a substring of the
// city wins. The last tier is the default.
var costTiers = []costTier{
	{
		name: TierExpensive,
		cities: []string{
			"tokyo", "singapore", "zurich", "geneva", "london", "new york",
			"san francisco", "hong kong", "paris", "sydney", "oslo", "copenhagen",
		},
		tiers: map[string]CostBreakdown{
			"tight":    {DailyTotal: 80, Meals: 30, Transport: 15, Accommodation: 35, AirportTransfer: 50},
			"moderate": {DailyTotal: 220, Meals: 80, Transport: 40, Accommodation: 100, AirportTransfer: 70},
			"flexible": {DailyTotal: 500, Meals: 180, Transport: 70, Accommodation: 250, AirportTransfer: 100},
		},
	},
	{
		name: TierModerate,
		cities: []string{
			"barcelona", "rome", "berlin", "amsterdam", "prague", "budapest",
			"lisbon", "athens", "mexico city", "buenos aires", "bangkok", "kuala lumpur",
		},
		tiers: map[string]CostBreakdown{
			"tight":    {DailyTotal: 50, Meals: 20, Transport: 10, Accommodation: 20, AirportTransfer: 25},
			"moderate": {DailyTotal: 120, Meals: 45, Transport: 20, Accommodation: 55, AirportTransfer: 40},
			"flexible": {DailyTotal: 280, Meals: 100, Transport: 40, Accommodation: 140, AirportTransfer: 60},
		},
	},
	{
		name: TierBudget,
		cities: []string{
			"hanoi", "ho chi minh", "phnom penh", "manila", "delhi", "cairo",
			"marrakech", "lima", "bogota", "kiev", "sofia", "tirana",
		},
		tiers: map[string]CostBreakdown{
			"tight":    {DailyTotal: 30, Meals: 12, Transport: 5, Accommodation: 13, AirportTransfer: 15},
			"moderate": {DailyTotal: 75, Meals: 30, Transport: 12, Accommodation: 33, AirportTransfer: 25},
			"flexible": {DailyTotal: 180, Meals: 70, Transport: 25, Accommodation: 85, AirportTransfer: 40},
		},
	},
}

var genericTiers = map[string]CostBreakdown{
	"tight":    {DailyTotal: 50, Meals: 15, Transport: 10, Accommodation: 25},
	"moderate": {DailyTotal: 150, Meals: 50, Transport: 25, Accommodation: 75},
	"flexible": {DailyTotal: 350, Meals: 120, Transport: 50, Accommodation: 180},
}

type BudgetToolInterface interface {
	Lookup(ctx context.Context, q BudgetQuery) Result[BudgetResponse]
}

type BudgetTool struct{}

func NewBudgetTool() BudgetToolInterface {
	return &BudgetTool{}
}

func (t *BudgetTool) Lookup(ctx context.Context, q BudgetQuery) Result[BudgetResponse] {
	location := q.City
	if q.Country != "" {
		location = q.City + ", " + q.Country
	}

	if err := ctx.Err(); err != nil {
		log.Printf("Budget lookup for %q aborted: %v", location, err)
		recordFallback("budget")
		return Degraded(BudgetResponse{
			Success:     false,
			Location:    location,
			City:        q.City,
			Country:     q.Country,
			CostTier:    tierGeneric,
			BudgetTiers: copyTiers(genericTiers),
			Currency:    "SGD",
			Error:       err.Error(),
			Note:        "Using generic fallback estimates",
		}, err)
	}

	tier := classifyCity(q.City)
	return Live(BudgetResponse{
		Success:     true,
		Location:    location,
		City:        q.City,
		Country:     q.Country,
		CostTier:    tier.name,
		BudgetTiers: copyTiers(tier.tiers),
		Currency:    "SGD",
		Note:        "Estimates based on typical traveler budgets. Actual costs may vary.",
	})
}

func classifyCity(city string) costTier {
	key := strings.ToLower(city)
	for _, tier := range costTiers {
		for _, c := range tier.cities {
			if strings.Contains(key, c) {
				return tier
			}
		}
	}
	return costTiers[len(costTiers)-1]
}

func copyTiers(in map[string]CostBreakdown) map[string]CostBreakdown {
	out := make(map[string]CostBreakdown, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
