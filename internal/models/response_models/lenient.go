package response_models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"unicode"
)

// LooseString accepts a JSON string or number. Anything else decodes as "".
type LooseString string

func (s *LooseString) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = LooseString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err == nil {
		*s = LooseString(num.String())
		return nil
	}
	*s = ""
	return nil
}

// LooseFloat accepts a JSON number or a string holding one, such as "450.00",
// "S$1,250" or "4.6/5". Values with no leading number decode as 0.
type LooseFloat float64

func (f *LooseFloat) UnmarshalJSON(b []byte) error {
	var num float64
	if err := json.Unmarshal(b, &num); err == nil {
		*f = LooseFloat(num)
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*f = LooseFloat(leadingNumber(str))
		return nil
	}
	*f = 0
	return nil
}

func leadingNumber(s string) float64 {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '-' && r != '.'
	})
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.' || end == 0 && s[end] == '-') {
		end++
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}

// LooseBool accepts true/false as JSON booleans or strings.
type LooseBool bool

func (v *LooseBool) UnmarshalJSON(b []byte) error {
	var x bool
	if err := json.Unmarshal(b, &x); err == nil {
		*v = LooseBool(x)
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		x, _ = strconv.ParseBool(strings.TrimSpace(str))
	}
	*v = LooseBool(x)
	return nil
}

// looseStrings accepts a list of strings or a single string.
type looseStrings []string

func (l *looseStrings) UnmarshalJSON(b []byte) error {
	var items []LooseString
	if err := json.Unmarshal(b, &items); err == nil {
		out := make([]string, 0, len(items))
		for _, it := range items {
			if it != "" {
				out = append(out, string(it))
			}
		}
		*l = out
		return nil
	}
	var one LooseString
	_ = json.Unmarshal(b, &one)
	if one != "" {
		*l = []string{string(one)}
	} else {
		*l = nil
	}
	return nil
}

// looseCoordinates keeps the numeric entries of an object and ignores any
// other JSON value.
type looseCoordinates map[string]float64

func (c *looseCoordinates) UnmarshalJSON(b []byte) error {
	var m map[string]LooseFloat
	if err := json.Unmarshal(b, &m); err != nil || len(m) == 0 {
		*c = nil
		return nil
	}
	out := make(looseCoordinates, len(m))
	for k, v := range m {
		out[k] = float64(v)
	}
	*c = out
	return nil
}

func optionalFloat(v *LooseFloat) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

func isNull(b []byte) bool { return bytes.Equal(bytes.TrimSpace(b), []byte("null")) }

func (o *FlightOption) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		return nil
	}
	var raw struct {
		Price    LooseFloat  `json:"price"`
		Currency LooseString `json:"currency"`
		Duration LooseString `json:"duration"`
		Segments LooseFloat  `json:"segments"`
		OneWay   LooseBool   `json:"one_way"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*o = FlightOption{
		Price:    float64(raw.Price),
		Currency: string(raw.Currency),
		Duration: string(raw.Duration),
		Segments: int(raw.Segments),
		OneWay:   bool(raw.OneWay),
	}
	return nil
}

func (o *HotelOption) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		return nil
	}
	var raw struct {
		Name          LooseString `json:"name"`
		Rating        LooseString `json:"rating"`
		PricePerNight LooseFloat  `json:"price_per_night"`
		TotalPrice    LooseFloat  `json:"total_price"`
		Currency      LooseString `json:"currency"`
		Area          LooseString `json:"area"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*o = HotelOption{
		Name:          string(raw.Name),
		Rating:        string(raw.Rating),
		PricePerNight: float64(raw.PricePerNight),
		TotalPrice:    float64(raw.TotalPrice),
		Currency:      string(raw.Currency),
		Area:          string(raw.Area),
	}
	return nil
}

func (a *Attraction) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		return nil
	}
	var raw struct {
		Name                LooseString      `json:"name"`
		Rating              *LooseFloat      `json:"rating"`
		Types               looseStrings     `json:"types"`
		Vicinity            LooseString      `json:"vicinity"`
		Location            LooseString      `json:"location"`
		Coordinates         looseCoordinates `json:"coordinates"`
		Description         LooseString      `json:"description"`
		RecommendedDuration LooseString      `json:"recommended_duration"`
		BestTime            LooseString      `json:"best_time"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*a = Attraction{
		Name:                string(raw.Name),
		Rating:              optionalFloat(raw.Rating),
		Types:               []string(raw.Types),
		Vicinity:            string(raw.Vicinity),
		Location:            string(raw.Location),
		Coordinates:         map[string]float64(raw.Coordinates),
		Description:         string(raw.Description),
		RecommendedDuration: string(raw.RecommendedDuration),
		BestTime:            string(raw.BestTime),
	}
	return nil
}

func (bd *BudgetBreakdown) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		return nil
	}
	var raw struct {
		DailyTotal      LooseFloat  `json:"daily_total"`
		Meals           LooseFloat  `json:"meals"`
		Transport       LooseFloat  `json:"transport"`
		Accommodation   LooseFloat  `json:"accommodation"`
		AirportTransfer *LooseFloat `json:"airport_transfer"`
		Activities      *LooseFloat `json:"activities"`
		TripTotal       *LooseFloat `json:"trip_total"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*bd = BudgetBreakdown{
		DailyTotal:      float64(raw.DailyTotal),
		Meals:           float64(raw.Meals),
		Transport:       float64(raw.Transport),
		Accommodation:   float64(raw.Accommodation),
		AirportTransfer: optionalFloat(raw.AirportTransfer),
		Activities:      optionalFloat(raw.Activities),
		TripTotal:       optionalFloat(raw.TripTotal),
	}
	return nil
}
