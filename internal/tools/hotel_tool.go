package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"tripcrew/internal/models/response_models"
	"tripcrew/internal/resolver"
)

const (
	cityLookupPath   = "/v1/reference-data/locations"
	hotelsByCityPath = "/v1/reference-data/locations/hotels/by-city"
	hotelOffersPath  = "/v3/shopping/hotel-offers"

	cityLookupTimeout   = 15 * time.Second
	hotelListTimeout    = 30 * time.Second
	hotelOfferTimeout   = 15 * time.Second
	maxHotelIDs         = 10
	maxHotelOptions     = 5
	defaultOffersPerSec = 5
)

var errNoAvailability = errors.New("no hotels available for selected dates")

type HotelQuery struct {
	// Location is a 3-letter city code or a city name to look up.
	Location     string
	CheckInDate  string
	CheckOutDate string
}

type NightlyRange struct {
	MinPerNight float64 `json:"min_per_night"`
	MaxPerNight float64 `json:"max_per_night"`
}

type HotelSearchResponse struct {
	Success      bool                          `json:"success"`
	Location     string                        `json:"location"`
	CityCode     string                        `json:"city_code"`
	CheckInDate  string                        `json:"check_in_date"`
	CheckOutDate string                        `json:"check_out_date"`
	Hotels       []response_models.HotelOption `json:"hotels"`
	PriceRange   NightlyRange                  `json:"price_range"`
	Error        string                        `json:"error"`
	Note         string                        `json:"note"`
}

type HotelToolInterface interface {
	Search(ctx context.Context, q HotelQuery) Result[HotelSearchResponse]
}

type HotelTool struct {
	amadeus         *AmadeusClient
	offersPerSecond float64
}

func NewHotelTool(amadeus *AmadeusClient, offersPerSecond float64) HotelToolInterface {
	if offersPerSecond <= 0 {
		offersPerSecond = defaultOffersPerSec
	}
	return &HotelTool{amadeus: amadeus, offersPerSecond: offersPerSecond}
}

func (t *HotelTool) Search(ctx context.Context, q HotelQuery) Result[HotelSearchResponse] {
	resp, cityCode, err := t.search(ctx, q)
	if err != nil {
		log.Printf("Hotel search failed for %q: %v", q.Location, err)
		recordFallback("hotel")
		return Degraded(hotelFallback(q, cityCode, err), err)
	}
	return Live(resp)
}

type hotelOffer struct {
	Hotel struct {
		Name     string                      `json:"name"`
		Rating   response_models.LooseString `json:"rating"`
		CityCode string                      `json:"cityCode"`
	} `json:"hotel"`
	Offers []struct {
		Price struct {
			Base     string `json:"base"`
			Total    string `json:"total"`
			Currency string `json:"currency"`
		} `json:"price"`
	} `json:"offers"`
}

func (t *HotelTool) search(ctx context.Context, q HotelQuery) (HotelSearchResponse, string, error) {
	token, err := t.amadeus.accessToken(ctx)
	if err != nil {
		return HotelSearchResponse{}, "", err
	}

	cityCode := strings.ToUpper(strings.TrimSpace(q.Location))
	if resolver.IsCode(cityCode) {
		log.Printf("Hotel search: using city code %s directly", cityCode)
	} else {
		cityCode = t.lookupCityCode(ctx, token, q.Location)
		if cityCode == "" {
			return HotelSearchResponse{}, "", fmt.Errorf("could not find city code for %q", q.Location)
		}
		log.Printf("Hotel search: resolved %q to city code %s", q.Location, cityCode)
	}

	ids, err := t.hotelIDs(ctx, token, cityCode)
	if err != nil {
		return HotelSearchResponse{}, cityCode, err
	}
	if len(ids) == 0 {
		return HotelSearchResponse{}, cityCode, fmt.Errorf("no hotels found in %s", cityCode)
	}
	log.Printf("Hotel search: found %d hotels in %s, fetching offers one at a time", len(ids), cityCode)

	collected := t.collectOffers(ctx, token, ids, q)
	log.Printf("Hotel search: %d hotels with offers", len(collected))

	hotels := make([]response_models.HotelOption, 0, maxHotelOptions)
	for _, h := range collected {
		if len(hotels) == maxHotelOptions {
			break
		}
		if len(h.Offers) == 0 {
			continue
		}
		price := h.Offers[0].Price
		base, err := parseAmount(price.Base)
		if err != nil {
			return HotelSearchResponse{}, cityCode, err
		}
		total, err := parseAmount(price.Total)
		if err != nil {
			return HotelSearchResponse{}, cityCode, err
		}
		opt := response_models.HotelOption{
			Name:          h.Hotel.Name,
			Rating:        string(h.Hotel.Rating),
			PricePerNight: base,
			TotalPrice:    total,
			Currency:      price.Currency,
			Area:          h.Hotel.CityCode,
		}
		if opt.Name == "" {
			opt.Name = "Unknown Hotel"
		}
		if opt.Rating == "" {
			opt.Rating = "N/A"
		}
		if opt.Currency == "" {
			opt.Currency = "SGD"
		}
		if opt.Area == "" {
			opt.Area = cityCode
		}
		hotels = append(hotels, opt)
	}

	if len(hotels) == 0 {
		return HotelSearchResponse{}, cityCode, errNoAvailability
	}

	return HotelSearchResponse{
		Success:      true,
		Location:     q.Location,
		CityCode:     cityCode,
		CheckInDate:  q.CheckInDate,
		CheckOutDate: q.CheckOutDate,
		Hotels:       hotels,
		PriceRange:   nightlyRange(hotels),
	}, cityCode, nil
}

// lookupCityCode returns "" on any failure.
func (t *HotelTool) lookupCityCode(ctx context.Context, token, keyword string) string {
	params := url.Values{}
	params.Set("keyword", keyword)
	params.Set("subType", "CITY")

	var body struct {
		Data []struct {
			IataCode string `json:"iataCode"`
		} `json:"data"`
	}
	if err := t.amadeus.getJSON(ctx, token, cityLookupPath, params, cityLookupTimeout, &body); err != nil {
		log.Printf("City code lookup for %q failed: %v", keyword, err)
		return ""
	}
	if len(body.Data) == 0 {
		return ""
	}
	return body.Data[0].IataCode
}

func (t *HotelTool) hotelIDs(ctx context.Context, token, cityCode string) ([]string, error) {
	params := url.Values{}
	params.Set("cityCode", cityCode)
	params.Set("radius", "1")
	params.Set("radiusUnit", "KM")
	params.Set("hotelSource", "ALL")

	var body struct {
		Data []struct {
			HotelID string `json:"hotelId"`
		} `json:"data"`
	}
	if err := t.amadeus.getJSON(ctx, token, hotelsByCityPath, params, hotelListTimeout, &body); err != nil {
		return nil, err
	}

	ids := make([]string, 0, maxHotelIDs)
	for _, h := range body.Data {
		if len(ids) == maxHotelIDs {
			break
		}
		ids = append(ids, h.HotelID)
	}
	return ids, nil
}

// collectOffers queries one hotel at a time. A 429 ends the loop and keeps
// what was gathered so far; other failures skip the hotel.
func (t *HotelTool) collectOffers(ctx context.Context, token string, ids []string, q HotelQuery) []hotelOffer {
	limiter := rate.NewLimiter(rate.Limit(t.offersPerSecond), 1)
	var collected []hotelOffer

	for i, id := range ids {
		n := i + 1
		if err := limiter.Wait(ctx); err != nil {
			log.Printf("  Hotel %d/%d: %v", n, len(ids), err)
			break
		}

		params := url.Values{}
		params.Set("hotelIds", id)
		params.Set("checkInDate", q.CheckInDate)
		params.Set("checkOutDate", q.CheckOutDate)
		params.Set("adults", "1")
		params.Set("currency", "SGD")
		params.Set("bestRateOnly", "true")

		resp, cancel, err := t.amadeus.get(ctx, token, hotelOffersPath, params, hotelOfferTimeout)
		if err != nil {
			log.Printf("  Hotel %d/%d: %v", n, len(ids), err)
			continue
		}

		stop := false
		switch {
		case resp.StatusCode == http.StatusOK:
			var body struct {
				Data []hotelOffer `json:"data"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				log.Printf("  Hotel %d/%d: decode offers: %v", n, len(ids), err)
			} else if len(body.Data) == 0 {
				log.Printf("  Hotel %d/%d: no offers available", n, len(ids))
			} else {
				collected = append(collected, body.Data...)
				log.Printf("  Hotel %d/%d: found offers", n, len(ids))
			}
		case resp.StatusCode == http.StatusTooManyRequests:
			log.Printf("  Hotel %d/%d: rate limited, stopping search", n, len(ids))
			stop = true
		default:
			log.Printf("  Hotel %d/%d: %d - %s", n, len(ids), resp.StatusCode, amadeusErrorDetail(resp.Body))
		}
		resp.Body.Close()
		cancel()

		if stop {
			break
		}
	}
	return collected
}

func nightlyRange(hotels []response_models.HotelOption) NightlyRange {
	if len(hotels) == 0 {
		return NightlyRange{}
	}
	r := NightlyRange{MinPerNight: hotels[0].PricePerNight, MaxPerNight: hotels[0].PricePerNight}
	for _, h := range hotels[1:] {
		if h.PricePerNight < r.MinPerNight {
			r.MinPerNight = h.PricePerNight
		}
		if h.PricePerNight > r.MaxPerNight {
			r.MaxPerNight = h.PricePerNight
		}
	}
	return r
}

func hotelFallback(q HotelQuery, cityCode string, err error) HotelSearchResponse {
	note := "Using fallback data due to API error"
	if errors.Is(err, errNoAvailability) {
		note = "Using fallback data - no availability for selected dates"
	}
	return HotelSearchResponse{
		Success:      false,
		Location:     q.Location,
		CityCode:     cityCode,
		CheckInDate:  q.CheckInDate,
		CheckOutDate: q.CheckOutDate,
		Hotels: []response_models.HotelOption{
			{Name: "City Center Hotel", Rating: "4", PricePerNight: 120, TotalPrice: 360, Currency: "SGD", Area: "Downtown"},
			{Name: "Historic District Inn", Rating: "3", PricePerNight: 85, TotalPrice: 255, Currency: "SGD", Area: "Old Town"},
			{Name: "Modern Business Hotel", Rating: "4", PricePerNight: 150, TotalPrice: 450, Currency: "SGD", Area: "Business District"},
			{Name: "Boutique Riverside Hotel", Rating: "5", PricePerNight: 220, TotalPrice: 660, Currency: "SGD", Area: "Riverside"},
			{Name: "Budget Traveler Hostel", Rating: "3", PricePerNight: 45, TotalPrice: 135, Currency: "SGD", Area: "Student Quarter"},
		},
		PriceRange: NightlyRange{MinPerNight: 45, MaxPerNight: 220},
		Error:      err.Error(),
		Note:       note,
	}
}
