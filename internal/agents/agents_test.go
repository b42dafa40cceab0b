package agents

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcrew/internal/models/response_models"
	"tripcrew/internal/pipeline"
	"tripcrew/internal/resolver"
	"tripcrew/internal/tools"
)

type fakeFlights struct{ got []tools.FlightQuery }

func (f *fakeFlights) Search(_ context.Context, q tools.FlightQuery) tools.Result[tools.FlightSearchResponse] {
	f.got = append(f.got, q)
	return tools.Live(tools.FlightSearchResponse{
		Success: true,
		Origin:  q.Origin,
		Flights: []response_models.FlightOption{{Price: 512, Currency: "SGD", Duration: "PT7H5M", Segments: 1}},
	})
}

type fakeHotels struct{ got []tools.HotelQuery }

func (f *fakeHotels) Search(_ context.Context, q tools.HotelQuery) tools.Result[tools.HotelSearchResponse] {
	f.got = append(f.got, q)
	return tools.Degraded(tools.HotelSearchResponse{Location: q.Location, Note: "Using fallback data due to API error"}, errors.New("quota"))
}

type fakePlaces struct{ categories []string }

func (f *fakePlaces) Search(_ context.Context, q tools.PlacesQuery) tools.Result[tools.PlacesSearchResponse] {
	f.categories = append(f.categories, q.Category)
	return tools.Live(tools.PlacesSearchResponse{Success: true, Destination: q.Destination, Category: q.Category})
}

func params() TripParams {
	return TripParams{
		Destination: "Tokyo",
		Origin:      "Singapore",
		Codes: resolver.ResolvedCodes{
			OriginCode:             "SIN",
			DestinationAirportCode: "NRT",
			DestinationCityCode:    "TYO",
		},
		DepartureDate: "2025-06-01",
		ReturnDate:    "2025-06-08",
		TravelMonth:   "June",
		DurationDays:  7,
		BudgetLevel:   "moderate",
		TripType:      "couple",
		Interests:     []string{"food", "anime"},
	}
}

func TestBuildStages_OrderAndDependencies(t *testing.T) {
	stages := BuildStages(Toolbox{
		Flights: &fakeFlights{},
		Hotels:  &fakeHotels{},
		Places:  &fakePlaces{},
		Budget:  tools.NewBudgetTool(),
	}, params())

	require.Len(t, stages, 7)
	for i, s := range stages {
		assert.Equal(t, pipeline.CanonicalOrder[i], s.Kind)
		assert.NotEmpty(t, s.System)
	}
	assert.ElementsMatch(t, []pipeline.StageKind{pipeline.StageFlight, pipeline.StageHotel}, stages[3].DependsOn)
	assert.ElementsMatch(t, []pipeline.StageKind{pipeline.StageSeasonality, pipeline.StageAttractions}, stages[5].DependsOn)

	assert.False(t, stages[5].JSON, "itinerary is markdown")
	assert.Nil(t, stages[0].Tool)
	assert.Nil(t, stages[6].Tool)
	assert.NotNil(t, stages[1].Tool)
}

func TestSystemPromptSubstitutesDestination(t *testing.T) {
	sys := HotelAgent.SystemPrompt("Lisbon")
	assert.Contains(t, sys, "Accommodation Search Specialist")
	assert.Contains(t, sys, "options in Lisbon")
	assert.NotContains(t, sys, "{destination}")
}

func TestFlightStage_UsesResolvedCodes(t *testing.T) {
	flights := &fakeFlights{}
	s := FlightStage(flights, params())

	data := s.Tool(context.Background())
	require.Len(t, flights.got, 1)
	assert.Equal(t, tools.FlightQuery{Origin: "SIN", Destination: "NRT", DepartureDate: "2025-06-01", ReturnDate: "2025-06-08"}, flights.got[0])

	prompt := s.Prompt(data, nil)
	assert.Contains(t, prompt, "from SIN to NRT")
	assert.Contains(t, prompt, "- return_date: 2025-06-08")
	assert.Contains(t, prompt, `"price": 512`)
	assert.NotContains(t, prompt, "NOTE: live data was unavailable")
}

func TestFlightStage_FallsBackToRawTextWhenUnresolved(t *testing.T) {
	p := params()
	p.Codes = resolver.ResolvedCodes{}
	flights := &fakeFlights{}
	FlightStage(flights, p).Tool(context.Background())
	assert.Equal(t, "Singapore", flights.got[0].Origin)
	assert.Equal(t, "Tokyo", flights.got[0].Destination)
}

func TestHotelStage_MarksDegradedData(t *testing.T) {
	hotels := &fakeHotels{}
	s := HotelStage(hotels, params())

	data := s.Tool(context.Background())
	require.Len(t, hotels.got, 1)
	assert.Equal(t, tools.HotelQuery{Location: "TYO", CheckInDate: "2025-06-01", CheckOutDate: "2025-06-08"}, hotels.got[0])
	assert.True(t, strings.HasPrefix(data, "NOTE: live data was unavailable"))
	assert.Contains(t, s.Prompt(data, nil), "moderate budget level")
}

func TestAttractionsStage_QueriesEveryCategory(t *testing.T) {
	places := &fakePlaces{}
	s := AttractionsStage(places, params())

	data := s.Tool(context.Background())
	assert.Equal(t, PlaceCategories, places.categories)
	assert.Contains(t, data, `"category": "museum"`)

	prompt := s.Prompt(data, nil)
	assert.Contains(t, prompt, "User interests: food, anime")
	for _, c := range AttractionCategories {
		assert.Contains(t, prompt, `"`+c+`"`)
	}
}

func TestBudgetStage_UsesUpstreamSummaries(t *testing.T) {
	up := pipeline.Upstream{
		pipeline.StageFlight: {Kind: pipeline.StageFlight, OK: true, Raw: "```json\n" +
			`{"price_range":{"min":450,"max":620.5},"average_duration":"PT8H30M"}` + "\n```"},
		pipeline.StageHotel: {Kind: pipeline.StageHotel, OK: true, Raw: `{"price_range":{"min_per_night":"85","max_per_night":220}}`},
	}
	assert.Equal(t, "Flight costs: S$450.00 - S$620.50 (typical duration 8h 30m)", FlightSummary(up))
	assert.Equal(t, "Hotel costs per night: S$85.00 - S$220.00", HotelSummary(up))

	s := BudgetStage(tools.NewBudgetTool(), params())
	data := s.Tool(context.Background())
	prompt := s.Prompt(data, up)
	assert.Contains(t, prompt, "for a 7-day trip")
	assert.Contains(t, prompt, "Flight costs: S$450.00 - S$620.50")
	assert.Contains(t, prompt, `"cost_tier": "expensive"`)
}

func TestBudgetSummaries_UseReportedCurrency(t *testing.T) {
	up := pipeline.Upstream{
		pipeline.StageFlight: {Kind: pipeline.StageFlight, OK: true, Raw: `{"currency":"usd","price_range":{"min":1450,"max":2100}}`},
		pipeline.StageHotel: {Kind: pipeline.StageHotel, OK: true, Raw: `{"hotels":[{"name":"Ritz","currency":"EUR"}],` +
			`"price_range":{"min_per_night":300,"max_per_night":1250}}`},
	}
	assert.Equal(t, "Flight costs: $1,450.00 - $2,100.00", FlightSummary(up))
	assert.Equal(t, "Hotel costs per night: €300.00 - €1,250.00", HotelSummary(up))
}

func TestBudgetStage_FailedUpstream(t *testing.T) {
	up := pipeline.Upstream{
		pipeline.StageFlight: {Kind: pipeline.StageFlight, OK: false, Err: errors.New("timeout")},
		pipeline.StageHotel:  {Kind: pipeline.StageHotel, OK: true, Raw: "not json"},
	}
	assert.Empty(t, FlightSummary(up))
	assert.Empty(t, HotelSummary(up))
	assert.Contains(t, BudgetStage(tools.NewBudgetTool(), params()).Prompt("{}", up), "No flight or hotel pricing available")
}

func TestItineraryStage_Context(t *testing.T) {
	up := pipeline.Upstream{
		pipeline.StageSeasonality: {OK: true, Raw: `{"weather_summary":"Warm and humid, rainy season in June."}`},
		pipeline.StageAttractions: {OK: true, Raw: `{"categories":{"nature":[],"zen_gardens":[],"culture":[],"landmarks":[]}}`},
	}
	assert.Equal(t, "Available attractions: culture, landmarks, nature, zen_gardens", AttractionsSummary(up))
	assert.Equal(t, "Weather consideration: Warm and humid, rainy season in June.", WeatherSummary(up))

	prompt := ItineraryStage(params()).Prompt("", up)
	assert.Contains(t, prompt, "# 7-Day Tokyo Itinerary")
	assert.Contains(t, prompt, "**Day 2-6**: Full days")
	assert.Contains(t, prompt, "**Day 7**: Departure day")
	assert.Contains(t, prompt, "Trip type: couple")
	assert.Contains(t, prompt, "Weather consideration: Warm and humid")

	assert.Equal(t, "Available attractions across various categories", AttractionsSummary(pipeline.Upstream{}))
}

func TestItineraryDayGuidelines_ShortTrips(t *testing.T) {
	assert.Contains(t, itineraryDayGuidelines(1), "same day")
	two := itineraryDayGuidelines(2)
	assert.Contains(t, two, "**Day 2**: Departure day")
	assert.NotContains(t, two, "Full days")
	assert.Contains(t, itineraryDayGuidelines(3), "**Day 2**: Full days")
}

func TestSeasonalityAndTipsPrompts(t *testing.T) {
	s := SeasonalityStage(params()).Prompt("", nil)
	assert.Contains(t, s, "visiting in June")
	assert.Contains(t, s, `"travel_month_assessment"`)

	tips := TipsStage(params()).Prompt("", nil)
	for _, key := range []string{"culture_etiquette", "safety", "transportation", "communication", "money", "general_tips"} {
		assert.Contains(t, tips, `"`+key+`"`)
	}
	assert.Contains(t, tips, "safety tips for couple travelers")
}
