package db_models

// PlanRecord archives one generated FinalPlan as a JSON document.
type PlanRecord struct {
	BaseModel
	Destination   string `gorm:"index"`
	Origin        string
	DepartureDate string
	ReturnDate    string
	DurationDays  int
	ExecutionTime float64
	Document      string `gorm:"type:jsonb;not null"`
}
