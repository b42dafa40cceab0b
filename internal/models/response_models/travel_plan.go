package response_models

type FlightOption struct {
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	Duration string  `json:"duration"`
	Segments int     `json:"segments"`
	OneWay   bool    `json:"one_way"`
}

type HotelOption struct {
	Name          string  `json:"name"`
	Rating        string  `json:"rating"`
	PricePerNight float64 `json:"price_per_night"`
	TotalPrice    float64 `json:"total_price"`
	Currency      string  `json:"currency"`
	Area          string  `json:"area"`
}

// Attraction is a curated point of interest. Only name is guaranteed, the
// text-generation stage decides which of the other fields to fill in.
type Attraction struct {
	Name                string             `json:"name"`
	Rating              *float64           `json:"rating,omitempty"`
	Types               []string           `json:"types,omitempty"`
	Vicinity            string             `json:"vicinity,omitempty"`
	Location            string             `json:"location,omitempty"`
	Coordinates         map[string]float64 `json:"coordinates,omitempty"`
	Description         string             `json:"description,omitempty"`
	RecommendedDuration string             `json:"recommended_duration,omitempty"`
	BestTime            string             `json:"best_time,omitempty"`
}

type BudgetBreakdown struct {
	DailyTotal      float64  `json:"daily_total"`
	Meals           float64  `json:"meals"`
	Transport       float64  `json:"transport"`
	Accommodation   float64  `json:"accommodation"`
	AirportTransfer *float64 `json:"airport_transfer,omitempty"`
	Activities      *float64 `json:"activities,omitempty"`
	TripTotal       *float64 `json:"trip_total,omitempty"`
}

// FinalPlan is the document returned by POST /plan and archived under PlanID.
type FinalPlan struct {
	PlanID        string                     `json:"plan_id,omitempty"`
	Destination   string                     `json:"destination"`
	Origin        string                     `json:"origin"`
	TravelMonth   string                     `json:"travel_month,omitempty"`
	DepartureDate string                     `json:"departure_date,omitempty"`
	ReturnDate    string                     `json:"return_date,omitempty"`
	BestDates     string                     `json:"best_dates"`
	Weather       string                     `json:"weather_summary"`
	FlightOptions []FlightOption             `json:"flight_options"`
	HotelOptions  []HotelOption              `json:"hotel_options"`
	Budget        map[string]BudgetBreakdown `json:"budget_estimate"`
	Attractions   map[string][]Attraction    `json:"attractions"`
	Itinerary     string                     `json:"itinerary"`
	Tips          map[string]any             `json:"tips"`
	ExecutionTime float64                    `json:"execution_time"`

	DegradedStages []string `json:"degraded_stages,omitempty"`
}

type PopularDestination struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Region string `json:"region"`
}

type PopularDestinationsResponse struct {
	Destinations []PopularDestination `json:"destinations"`
}
