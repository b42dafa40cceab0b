package request_models

const (
	DefaultOrigin        = "SIN"
	DefaultDepartureDate = "2026-06-01"
	DefaultBudgetLevel   = "moderate"
	DefaultTripType      = "solo"
	DefaultDurationDays  = 7
)

type PlanRequest struct {
	Destination   string   `json:"destination" binding:"required"`
	Origin        string   `json:"origin"`
	DepartureDate string   `json:"departure_date" binding:"omitempty,datetime=2006-01-02"`
	ReturnDate    string   `json:"return_date" binding:"omitempty,datetime=2006-01-02"`
	BudgetLevel   string   `json:"budget_level" binding:"omitempty,oneof=tight moderate flexible"`
	Interests     []string `json:"interests"`
	TripType      string   `json:"trip_type" binding:"omitempty,oneof=solo couple family friends"`
	DurationDays  *int     `json:"duration_days" binding:"omitempty,min=1,max=30"`
}

// WithDefaults returns a copy with every optional field filled in.
func (r PlanRequest) WithDefaults() PlanRequest {
	if r.Origin == "" {
		r.Origin = DefaultOrigin
	}
	if r.DepartureDate == "" {
		r.DepartureDate = DefaultDepartureDate
	}
	if r.BudgetLevel == "" {
		r.BudgetLevel = DefaultBudgetLevel
	}
	if r.TripType == "" {
		r.TripType = DefaultTripType
	}
	if r.Interests == nil {
		r.Interests = []string{}
	}
	if r.DurationDays == nil {
		d := DefaultDurationDays
		r.DurationDays = &d
	}
	return r
}

func (r PlanRequest) Days() int {
	if r.DurationDays == nil {
		return DefaultDurationDays
	}
	return *r.DurationDays
}
