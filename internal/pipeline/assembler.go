package pipeline

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"tripcrew/internal/models/response_models"
)

const (
	defaultBestDates = "Year-round"
	defaultWeather   = "No weather information available."
	defaultItinerary = "# Itinerary\n\nNo itinerary generated."
)

var errNotObject = errors.New("stage output is not a JSON object")

// StripFences removes a leading ```json or ``` fence and a trailing ```.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// ParseObject parses fenced or bare JSON text into an object.
func ParseObject(text string) (map[string]any, error) {
	var v any
	if err := json.Unmarshal([]byte(StripFences(text)), &v); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return obj, nil
}

// AssembleOrdered maps outputs by canonical position. Fewer than seven
// outputs leave the remaining fields at their defaults.
func AssembleOrdered(outputs []string, destination, origin string) response_models.FinalPlan {
	results := make([]StageResult, 0, len(outputs))
	for i, out := range outputs {
		if i >= len(CanonicalOrder) {
			break
		}
		results = append(results, StageResult{Kind: CanonicalOrder[i], Raw: out, OK: true})
	}
	return Assemble(results, destination, origin)
}

// Assemble maps stage results by kind. Stages that are missing, failed or
// unparseable fall back to defaults and are listed in DegradedStages.
func Assemble(results []StageResult, destination, origin string) response_models.FinalPlan {
	byKind := make(map[StageKind]StageResult, len(results))
	for _, r := range results {
		byKind[r.Kind] = r
	}

	plan := response_models.FinalPlan{
		Destination:   destination,
		Origin:        origin,
		BestDates:     defaultBestDates,
		Weather:       defaultWeather,
		FlightOptions: []response_models.FlightOption{},
		HotelOptions:  []response_models.HotelOption{},
		Budget:        map[string]response_models.BudgetBreakdown{},
		Attractions:   map[string][]response_models.Attraction{},
		Itinerary:     defaultItinerary,
		Tips:          map[string]any{},
	}

	objects := make(map[StageKind]map[string]any, len(CanonicalOrder))
	for _, kind := range CanonicalOrder {
		r, ok := byKind[kind]
		if !ok || !r.OK {
			plan.DegradedStages = append(plan.DegradedStages, string(kind))
			continue
		}
		if kind == StageItinerary {
			if strings.TrimSpace(r.Raw) == "" {
				plan.DegradedStages = append(plan.DegradedStages, string(kind))
				continue
			}
			plan.Itinerary = r.Raw
			continue
		}
		obj, err := ParseObject(r.Raw)
		if err != nil {
			log.Printf("[%s] could not parse stage output: %v", kind, err)
			plan.DegradedStages = append(plan.DegradedStages, string(kind))
			obj = map[string]any{}
		}
		objects[kind] = obj
	}

	if s := objects[StageSeasonality]; s != nil {
		if months := stringList(s["best_months"]); len(months) > 0 {
			plan.BestDates = strings.Join(months, ", ")
		}
		if w, ok := s["weather_summary"].(string); ok {
			plan.Weather = w
		}
	}
	if f := objects[StageFlight]; f != nil {
		plan.FlightOptions = decodeList[response_models.FlightOption](f["flights"])
	}
	if h := objects[StageHotel]; h != nil {
		plan.HotelOptions = decodeList[response_models.HotelOption](h["hotels"])
	}
	if b := objects[StageBudget]; b != nil {
		if tiers, ok := b["budget_tiers"].(map[string]any); ok {
			for name, raw := range tiers {
				var bd response_models.BudgetBreakdown
				if decodeInto(raw, &bd) {
					plan.Budget[name] = bd
				}
			}
		}
	}
	if a := objects[StageAttractions]; a != nil {
		if cats, ok := a["categories"].(map[string]any); ok {
			for name, raw := range cats {
				plan.Attractions[name] = decodeList[response_models.Attraction](raw)
			}
		}
	}
	if t := objects[StageTips]; t != nil {
		plan.Tips = t
	}

	return plan
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// decodeList converts each element independently. Element types decode
// mismatched scalars leniently, so only non-object elements are dropped.
func decodeList[T any](v any) []T {
	out := []T{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, it := range items {
		var item T
		if decodeInto(it, &item) {
			out = append(out, item)
		}
	}
	return out
}

func decodeInto(v any, out any) bool {
	if _, ok := v.(map[string]any); !ok {
		return false
	}
	b, err := json.Marshal(v)
	if err != nil {
		return false
	}
	return json.Unmarshal(b, out) == nil
}
