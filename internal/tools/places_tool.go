package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"tripcrew/internal/config"
	"tripcrew/pkg/utils"
)

const (
	geocodePath       = "/maps/api/geocode/json"
	nearbySearchPath  = "/maps/api/place/nearbysearch/json"
	placesTimeout     = 15 * time.Second
	nearbyRadiusMeter = 5000
	maxPlaces         = 20
)

var errMissingPlacesKey = errors.New("google places api key not configured")

type PlacesQuery struct {
	Destination string
	// Category is a Places type such as tourist_attraction or museum.
	Category string
	Keyword  string
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Place struct {
	Name             string      `json:"name"`
	Rating           float64     `json:"rating"`
	UserRatingsTotal int         `json:"user_ratings_total"`
	Types            []string    `json:"types"`
	Vicinity         string      `json:"vicinity"`
	Coordinates      Coordinates `json:"coordinates"`
	PriceLevel       *int        `json:"price_level"`
	PhotoReference   *string     `json:"photo_reference"`
}

type PlacesSearchResponse struct {
	Success           bool        `json:"success"`
	Destination       string      `json:"destination"`
	Category          string      `json:"category"`
	Keyword           string      `json:"keyword"`
	CenterCoordinates Coordinates `json:"center_coordinates"`
	Attractions       []Place     `json:"attractions"`
	TotalFound        int         `json:"total_found"`
	Error             string      `json:"error"`
	Note              string      `json:"note"`
}

type PlacesToolInterface interface {
	Search(ctx context.Context, q PlacesQuery) Result[PlacesSearchResponse]
}

type PlacesTool struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL *url.URL
}

func NewPlacesTool(cfg config.PlacesConfig, httpClient *http.Client) PlacesToolInterface {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		log.Printf("Invalid places base url %q: %v", cfg.BaseURL, err)
		base = &url.URL{Scheme: "https", Host: "maps.googleapis.com"}
	}
	return &PlacesTool{HTTP: httpClient, APIKey: cfg.APIKey, BaseURL: base}
}

func (t *PlacesTool) Search(ctx context.Context, q PlacesQuery) Result[PlacesSearchResponse] {
	resp, err := t.search(ctx, q)
	if err != nil {
		log.Printf("Places search failed for %q: %v", q.Destination, err)
		recordFallback("places")
		return Degraded(placesFallback(q, err), err)
	}
	return Live(resp)
}

func (t *PlacesTool) search(ctx context.Context, q PlacesQuery) (PlacesSearchResponse, error) {
	if t.APIKey == "" {
		return PlacesSearchResponse{}, errMissingPlacesKey
	}

	var geo struct {
		Status  string `json:"status"`
		Results []struct {
			Geometry struct {
				Location Coordinates `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}
	params := url.Values{}
	params.Set("address", q.Destination)
	params.Set("key", t.APIKey)
	if err := t.getJSON(ctx, geocodePath, params, &geo); err != nil {
		return PlacesSearchResponse{}, err
	}
	if len(geo.Results) == 0 {
		return PlacesSearchResponse{}, fmt.Errorf("could not geocode destination %q (status %s)", q.Destination, geo.Status)
	}
	center := geo.Results[0].Geometry.Location

	params = url.Values{}
	params.Set("location", fmt.Sprintf("%v,%v", center.Lat, center.Lng))
	params.Set("radius", fmt.Sprint(nearbyRadiusMeter))
	params.Set("key", t.APIKey)
	if q.Category != "" {
		params.Set("type", q.Category)
	}
	if q.Keyword != "" {
		params.Set("keyword", q.Keyword)
	}

	var nearby struct {
		Status  string `json:"status"`
		Results []struct {
			Name             string   `json:"name"`
			Rating           float64  `json:"rating"`
			UserRatingsTotal int      `json:"user_ratings_total"`
			Types            []string `json:"types"`
			Vicinity         string   `json:"vicinity"`
			Geometry         struct {
				Location Coordinates `json:"location"`
			} `json:"geometry"`
			PriceLevel *int `json:"price_level"`
			Photos     []struct {
				PhotoReference string `json:"photo_reference"`
			} `json:"photos"`
		} `json:"results"`
	}
	if err := t.getJSON(ctx, nearbySearchPath, params, &nearby); err != nil {
		return PlacesSearchResponse{}, err
	}
	if nearby.Status != "" && nearby.Status != "OK" && nearby.Status != "ZERO_RESULTS" {
		return PlacesSearchResponse{}, fmt.Errorf("%w: nearby search status %s", utils.ErrProviderResponse, nearby.Status)
	}

	results := nearby.Results
	if len(results) > maxPlaces {
		results = results[:maxPlaces]
	}
	places := make([]Place, 0, len(results))
	for _, r := range results {
		p := Place{
			Name:             r.Name,
			Rating:           r.Rating,
			UserRatingsTotal: r.UserRatingsTotal,
			Types:            r.Types,
			Vicinity:         r.Vicinity,
			Coordinates:      r.Geometry.Location,
			PriceLevel:       r.PriceLevel,
		}
		if p.Name == "" {
			p.Name = "Unknown"
		}
		if p.Types == nil {
			p.Types = []string{}
		}
		if len(r.Photos) > 0 {
			ref := r.Photos[0].PhotoReference
			p.PhotoReference = &ref
		}
		places = append(places, p)
	}

	return PlacesSearchResponse{
		Success:           true,
		Destination:       q.Destination,
		Category:          q.Category,
		Keyword:           q.Keyword,
		CenterCoordinates: center,
		Attractions:       places,
		TotalFound:        len(places),
	}, nil
}

func (t *PlacesTool) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, placesTimeout)
	defer cancel()

	u := *t.BaseURL
	u.Path = path
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	resp, err := t.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("GET %s: %w: status %d", path, utils.ErrProviderResponse, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func placesFallback(q PlacesQuery, err error) PlacesSearchResponse {
	places := []Place{
		{Name: "Historic City Center", Rating: 4.6, UserRatingsTotal: 2543, Types: []string{"tourist_attraction", "point_of_interest"}, Vicinity: "Downtown"},
		{Name: "National Museum", Rating: 4.8, UserRatingsTotal: 1876, Types: []string{"museum", "tourist_attraction"}, Vicinity: "Cultural District"},
		{Name: "Central Park", Rating: 4.7, UserRatingsTotal: 3421, Types: []string{"park", "tourist_attraction"}, Vicinity: "City Center"},
		{Name: "Old Town Market", Rating: 4.5, UserRatingsTotal: 987, Types: []string{"shopping_mall", "tourist_attraction"}, Vicinity: "Old Town"},
		{Name: "Riverside Promenade", Rating: 4.4, UserRatingsTotal: 1234, Types: []string{"park", "point_of_interest"}, Vicinity: "Riverside"},
	}
	return PlacesSearchResponse{
		Success:     false,
		Destination: q.Destination,
		Category:    q.Category,
		Keyword:     q.Keyword,
		Attractions: places,
		TotalFound:  len(places),
		Error:       err.Error(),
		Note:        "Using fallback data due to API error",
	}
}
