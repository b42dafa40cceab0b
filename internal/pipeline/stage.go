// Package pipeline runs planning stages against a text generator and
// assembles their outputs into a FinalPlan.
package pipeline

import (
	"context"
	"time"
)

type StageKind string

const (
	StageSeasonality StageKind = "seasonality"
	StageFlight      StageKind = "flight"
	StageHotel       StageKind = "hotel"
	StageBudget      StageKind = "budget"
	StageAttractions StageKind = "attractions"
	StageItinerary   StageKind = "itinerary"
	StageTips        StageKind = "tips"
)

// CanonicalOrder is the order stages run in when concurrency is 1, and the
// positional contract of AssembleOrdered.
var CanonicalOrder = []StageKind{
	StageSeasonality,
	StageFlight,
	StageHotel,
	StageBudget,
	StageAttractions,
	StageItinerary,
	StageTips,
}

// Stage is one unit of work: an optional tool call followed by one
// text-generation call.
type Stage struct {
	Kind      StageKind
	System    string
	DependsOn []StageKind
	// JSON marks stages whose output is parsed as a JSON object.
	JSON bool
	// Tool fetches external data for the prompt. It must not fail; degraded
	// data is still rendered.
	Tool func(ctx context.Context) string
	// Prompt renders the user prompt from the tool data and the results of
	// the stages listed in DependsOn.
	Prompt func(toolData string, upstream Upstream) string
}

type StageResult struct {
	Kind     StageKind
	Raw      string
	OK       bool
	Err      error
	Duration time.Duration
}

// Upstream exposes finished dependency results to a Prompt func.
type Upstream map[StageKind]StageResult

// Object returns the parsed JSON object of an upstream stage, or an empty
// map when the stage failed or is not a dependency.
func (u Upstream) Object(kind StageKind) map[string]any {
	r, ok := u[kind]
	if !ok || !r.OK {
		return map[string]any{}
	}
	obj, err := ParseObject(r.Raw)
	if err != nil {
		return map[string]any{}
	}
	return obj
}
