package tools

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"tripcrew/internal/models/response_models"
	"tripcrew/internal/resolver"
)

const (
	flightOffersPath    = "/v2/shopping/flight-offers"
	flightSearchTimeout = 30 * time.Second
	maxFlightOffers     = 5
)

// ErrInvalidAirportCode is returned through Result.Err when a query fails
// local validation. No request is sent in that case.
var ErrInvalidAirportCode = errors.New("invalid airport code")

type FlightQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	// ReturnDate is optional; empty means one-way.
	ReturnDate string
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type FlightSearchResponse struct {
	Success       bool                           `json:"success"`
	Origin        string                         `json:"origin"`
	Destination   string                         `json:"destination"`
	DepartureDate string                         `json:"departure_date"`
	ReturnDate    string                         `json:"return_date"`
	Flights       []response_models.FlightOption `json:"flights"`
	PriceRange    PriceRange                     `json:"price_range"`
	Error         string                         `json:"error"`
	Note          string                         `json:"note"`
}

type FlightToolInterface interface {
	Search(ctx context.Context, q FlightQuery) Result[FlightSearchResponse]
}

type FlightTool struct {
	amadeus *AmadeusClient
}

func NewFlightTool(amadeus *AmadeusClient) FlightToolInterface {
	return &FlightTool{amadeus: amadeus}
}

func (t *FlightTool) Search(ctx context.Context, q FlightQuery) Result[FlightSearchResponse] {
	q.Origin = strings.ToUpper(strings.TrimSpace(q.Origin))
	q.Destination = strings.ToUpper(strings.TrimSpace(q.Destination))

	resp, err := t.search(ctx, q)
	if err != nil {
		log.Printf("Flight search error: %v", err)
		recordFallback("flight")
		return Degraded(flightFallback(q, err), err)
	}
	return Live(resp)
}

func (t *FlightTool) search(ctx context.Context, q FlightQuery) (FlightSearchResponse, error) {
	if !resolver.IsCode(q.Origin) {
		return FlightSearchResponse{}, fmt.Errorf("%w: origin %q must be a 3-letter IATA code (e.g. 'LAX', 'JFK')", ErrInvalidAirportCode, q.Origin)
	}
	if !resolver.IsCode(q.Destination) {
		return FlightSearchResponse{}, fmt.Errorf("%w: destination %q must be a 3-letter IATA code (e.g. 'CDG', 'NRT'); use city airport codes, not country names", ErrInvalidAirportCode, q.Destination)
	}

	token, err := t.amadeus.accessToken(ctx)
	if err != nil {
		return FlightSearchResponse{}, err
	}

	params := url.Values{}
	params.Set("originLocationCode", q.Origin)
	params.Set("destinationLocationCode", q.Destination)
	params.Set("departureDate", q.DepartureDate)
	params.Set("adults", "1")
	params.Set("max", "5")
	params.Set("currencyCode", "SGD")
	if q.ReturnDate != "" {
		params.Set("returnDate", q.ReturnDate)
	}

	var body struct {
		Data []struct {
			Price struct {
				Total    string `json:"total"`
				Currency string `json:"currency"`
			} `json:"price"`
			Itineraries []struct {
				Duration string `json:"duration"`
				Segments []struct {
					CarrierCode string `json:"carrierCode"`
				} `json:"segments"`
			} `json:"itineraries"`
		} `json:"data"`
	}
	if err := t.amadeus.getJSON(ctx, token, flightOffersPath, params, flightSearchTimeout, &body); err != nil {
		return FlightSearchResponse{}, err
	}

	offers := body.Data
	if len(offers) > maxFlightOffers {
		offers = offers[:maxFlightOffers]
	}

	flights := make([]response_models.FlightOption, 0, len(offers))
	for _, offer := range offers {
		price, err := parseAmount(offer.Price.Total)
		if err != nil {
			return FlightSearchResponse{}, err
		}
		opt := response_models.FlightOption{
			Price:    price,
			Currency: offer.Price.Currency,
			OneWay:   q.ReturnDate == "",
		}
		if opt.Currency == "" {
			opt.Currency = "SGD"
		}
		if len(offer.Itineraries) > 0 {
			opt.Duration = offer.Itineraries[0].Duration
			opt.Segments = len(offer.Itineraries[0].Segments)
		}
		flights = append(flights, opt)
	}

	return FlightSearchResponse{
		Success:       true,
		Origin:        q.Origin,
		Destination:   q.Destination,
		DepartureDate: q.DepartureDate,
		ReturnDate:    q.ReturnDate,
		Flights:       flights,
		PriceRange:    flightPriceRange(flights),
	}, nil
}

func flightPriceRange(flights []response_models.FlightOption) PriceRange {
	if len(flights) == 0 {
		return PriceRange{}
	}
	r := PriceRange{Min: flights[0].Price, Max: flights[0].Price}
	for _, f := range flights[1:] {
		if f.Price < r.Min {
			r.Min = f.Price
		}
		if f.Price > r.Max {
			r.Max = f.Price
		}
	}
	return r
}

func flightFallback(q FlightQuery, err error) FlightSearchResponse {
	oneWay := q.ReturnDate == ""
	return FlightSearchResponse{
		Success:       false,
		Origin:        q.Origin,
		Destination:   q.Destination,
		DepartureDate: q.DepartureDate,
		ReturnDate:    q.ReturnDate,
		Flights: []response_models.FlightOption{
			{Price: 450, Currency: "SGD", Duration: "PT8H30M", Segments: 1, OneWay: oneWay},
			{Price: 620, Currency: "SGD", Duration: "PT10H15M", Segments: 2, OneWay: oneWay},
			{Price: 580, Currency: "SGD", Duration: "PT9H45M", Segments: 1, OneWay: oneWay},
		},
		PriceRange: PriceRange{Min: 450, Max: 620},
		Error:      err.Error(),
		Note:       "Using fallback data due to API error",
	}
}
