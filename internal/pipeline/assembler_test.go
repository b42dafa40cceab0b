package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	tests := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}```":       `{"a":1}`,
		"  {\"a\":1}  ":           `{"a":1}`,
		"```json{}":               `{}`,
		"":                        "",
	}
	for in, want := range tests {
		assert.Equal(t, want, StripFences(in), "input %q", in)
	}
}

func TestParseObject(t *testing.T) {
	obj, err := ParseObject("```json\n{\"best_months\":[\"May\"]}\n```")
	require.NoError(t, err)
	assert.Equal(t, []any{"May"}, obj["best_months"])

	_, err = ParseObject(`["not","an","object"]`)
	assert.True(t, errors.Is(err, errNotObject))

	_, err = ParseObject("Sure! Here is your plan.")
	assert.Error(t, err)
}

func TestAssembleOrdered_FewerThanSevenOutputs(t *testing.T) {
	plan := AssembleOrdered([]string{
		`{"best_months":["March","April","November"],"weather_summary":"Mild spring, humid summer."}`,
		"```json\n" + `{"flights":[{"price":450,"currency":"SGD","duration":"PT8H30M","segments":1,"one_way":false}]}` + "\n```",
	}, "Tokyo", "SIN")

	assert.Equal(t, "Tokyo", plan.Destination)
	assert.Equal(t, "SIN", plan.Origin)
	assert.Equal(t, "March, April, November", plan.BestDates)
	assert.Equal(t, "Mild spring, humid summer.", plan.Weather)
	require.Len(t, plan.FlightOptions, 1)
	assert.Equal(t, 450.0, plan.FlightOptions[0].Price)

	assert.Empty(t, plan.HotelOptions)
	assert.NotNil(t, plan.HotelOptions)
	assert.Empty(t, plan.Budget)
	assert.Empty(t, plan.Attractions)
	assert.Equal(t, "# Itinerary\n\nNo itinerary generated.", plan.Itinerary)
	assert.Empty(t, plan.Tips)
	assert.Equal(t, []string{"hotel", "budget", "attractions", "itinerary", "tips"}, plan.DegradedStages)
}

func TestAssembleOrdered_EmptyInput(t *testing.T) {
	plan := AssembleOrdered(nil, "Paris", "SIN")
	assert.Equal(t, "Year-round", plan.BestDates)
	assert.Equal(t, "No weather information available.", plan.Weather)
	assert.Len(t, plan.DegradedStages, 7)
}

func TestAssemble_ByKind(t *testing.T) {
	results := []StageResult{
		{Kind: StageTips, OK: true, Raw: `{"destination":"Rome","general_tips":["Carry cash"]}`},
		{Kind: StageItinerary, OK: true, Raw: "# 3-Day Rome Itinerary\n\n## Day 1"},
		{Kind: StageHotel, OK: true, Raw: `{"hotels":[
			{"name":"Hotel Artemide","rating":"4","price_per_night":180,"total_price":540,"currency":"SGD","area":"Esquilino"},
			{"name":"Broken","price_per_night":"cheap"},
			"not an object"
		]}`},
		{Kind: StageBudget, OK: true, Raw: `{"budget_tiers":{
			"tight":{"daily_total":50,"meals":20,"transport":10,"accommodation":20,"activities":5,"trip_total":650},
			"moderate":"unknown"
		}}`},
		{Kind: StageAttractions, OK: true, Raw: `{"categories":{
			"culture":[{"name":"Colosseum","rating":4.8,"location":"Centro Storico","recommended_duration":"2-3 hours"}],
			"markets":[]
		}}`},
		{Kind: StageSeasonality, OK: true, Raw: `{"best_months":[],"weather_summary":""}`},
		{Kind: StageFlight, OK: false, Err: errors.New("timeout")},
	}

	plan := Assemble(results, "Rome", "SIN")

	assert.Equal(t, "Year-round", plan.BestDates)
	assert.Equal(t, "", plan.Weather)
	assert.Empty(t, plan.FlightOptions)

	require.Len(t, plan.HotelOptions, 2)
	assert.Equal(t, "Hotel Artemide", plan.HotelOptions[0].Name)
	assert.Equal(t, "Broken", plan.HotelOptions[1].Name)
	assert.Zero(t, plan.HotelOptions[1].PricePerNight)

	require.Contains(t, plan.Budget, "tight")
	assert.NotContains(t, plan.Budget, "moderate")
	require.NotNil(t, plan.Budget["tight"].TripTotal)
	assert.Equal(t, 650.0, *plan.Budget["tight"].TripTotal)
	assert.Nil(t, plan.Budget["tight"].AirportTransfer)

	require.Len(t, plan.Attractions["culture"], 1)
	assert.Equal(t, "Colosseum", plan.Attractions["culture"][0].Name)
	assert.Equal(t, 4.8, *plan.Attractions["culture"][0].Rating)
	assert.Empty(t, plan.Attractions["markets"])

	assert.Equal(t, "# 3-Day Rome Itinerary\n\n## Day 1", plan.Itinerary)
	assert.Equal(t, "Rome", plan.Tips["destination"])
	assert.Equal(t, []string{"flight"}, plan.DegradedStages)
}

func TestAssemble_UnparseableStageIsDegraded(t *testing.T) {
	plan := Assemble([]StageResult{
		{Kind: StageSeasonality, OK: true, Raw: "The best time to visit is spring."},
		{Kind: StageFlight, OK: true, Raw: "{}"},
		{Kind: StageHotel, OK: true, Raw: "{}"},
		{Kind: StageBudget, OK: true, Raw: "{}"},
		{Kind: StageAttractions, OK: true, Raw: "{}"},
		{Kind: StageItinerary, OK: true, Raw: "   "},
		{Kind: StageTips, OK: true, Raw: "{}"},
	}, "Lisbon", "SIN")

	assert.Equal(t, "Year-round", plan.BestDates)
	assert.Equal(t, []string{"seasonality", "itinerary"}, plan.DegradedStages)
	assert.Equal(t, "# Itinerary\n\nNo itinerary generated.", plan.Itinerary)
}

func TestAssembleOrdered_KeepsMixedTypeElements(t *testing.T) {
	plan := AssembleOrdered([]string{
		`{}`,
		`{"flights":[
			{"price":450,"currency":"SGD","duration":"PT8H30M","segments":1},
			{"price":"620.50","currency":"SGD","duration":"PT10H","segments":"2","one_way":"true"}
		]}`,
		`{"hotels":[
			{"name":"Shinjuku Granbell","rating":"4","price_per_night":150,"total_price":1050},
			{"name":"Park Hyatt","rating":5,"price_per_night":"S$1,200","total_price":"8400"}
		]}`,
		`{"budget_tiers":{
			"tight":{"daily_total":80,"meals":30,"transport":15,"accommodation":35},
			"flexible":{"daily_total":"500","meals":"180","transport":70,"accommodation":250,"trip_total":"3,500"}
		}}`,
		`{"categories":{"culture":[
			{"name":"Senso-ji","rating":4.6},
			{"name":"Meiji Shrine","rating":"4.7/5","types":"shrine","coordinates":"35.67,139.69"},
			42
		]}}`,
	}, "Tokyo", "SIN")

	require.Len(t, plan.FlightOptions, 2)
	assert.Equal(t, 620.5, plan.FlightOptions[1].Price)
	assert.Equal(t, 2, plan.FlightOptions[1].Segments)
	assert.True(t, plan.FlightOptions[1].OneWay)

	require.Len(t, plan.HotelOptions, 2)
	assert.Equal(t, "5", plan.HotelOptions[1].Rating)
	assert.Equal(t, 1200.0, plan.HotelOptions[1].PricePerNight)
	assert.Equal(t, 8400.0, plan.HotelOptions[1].TotalPrice)

	require.Len(t, plan.Budget, 2)
	assert.Equal(t, 500.0, plan.Budget["flexible"].DailyTotal)
	require.NotNil(t, plan.Budget["flexible"].TripTotal)
	assert.Equal(t, 3500.0, *plan.Budget["flexible"].TripTotal)

	culture := plan.Attractions["culture"]
	require.Len(t, culture, 2)
	require.NotNil(t, culture[1].Rating)
	assert.Equal(t, 4.7, *culture[1].Rating)
	assert.Equal(t, []string{"shrine"}, culture[1].Types)
	assert.Nil(t, culture[1].Coordinates)

	assert.NotContains(t, plan.DegradedStages, "flight")
	assert.NotContains(t, plan.DegradedStages, "hotel")
	assert.NotContains(t, plan.DegradedStages, "budget")
	assert.NotContains(t, plan.DegradedStages, "attractions")
}
