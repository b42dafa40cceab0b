// Package resolver maps free-text origins and destinations to IATA codes.
package resolver

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed codes.yaml
var codesYAML []byte

type CodeKind string

const (
	KindAirport CodeKind = "airport"
	KindCity    CodeKind = "city"
)

// ResolutionError reports input that no table entry matches.
type ResolutionError struct {
	Input string
	Kind  CodeKind
}

func (e *ResolutionError) Error() string {
	example := "'Paris' or 'CDG'"
	if e.Kind == KindCity {
		example = "'Tokyo' or 'TYO'"
	}
	return fmt.Sprintf("cannot resolve %q to an %s code: use a specific city name or a 3-letter IATA %s code (e.g. %s)",
		e.Input, e.Kind, e.Kind, example)
}

type entry struct {
	Name string `yaml:"name"`
	Code string `yaml:"code"`
}

// Destination is one of the curated destinations advertised to clients.
type Destination struct {
	Name   string `yaml:"name" json:"name"`
	Code   string `yaml:"code" json:"code"`
	Region string `yaml:"region" json:"region"`
}

type tables struct {
	Airports []entry       `yaml:"airports"`
	Cities   []entry       `yaml:"cities"`
	Popular  []Destination `yaml:"popular"`
}

// ResolvedCodes is computed once per request and shared by every stage.
type ResolvedCodes struct {
	OriginCode             string
	DestinationAirportCode string
	DestinationCityCode    string
}

type Resolver struct {
	airports []entry
	cities   []entry
	popular  []Destination
}

// New parses a YAML document with airports, cities and popular lists.
func New(doc []byte) (*Resolver, error) {
	var t tables
	if err := yaml.Unmarshal(doc, &t); err != nil {
		return nil, fmt.Errorf("parse code tables: %w", err)
	}
	for i := range t.Airports {
		t.Airports[i].Name = strings.ToLower(strings.TrimSpace(t.Airports[i].Name))
	}
	for i := range t.Cities {
		t.Cities[i].Name = strings.ToLower(strings.TrimSpace(t.Cities[i].Name))
	}
	return &Resolver{airports: t.Airports, cities: t.Cities, popular: t.Popular}, nil
}

var (
	defaultOnce     sync.Once
	defaultResolver *Resolver
)

// Default returns the resolver built from the embedded tables.
func Default() *Resolver {
	defaultOnce.Do(func() {
		r, err := New(codesYAML)
		if err != nil {
			panic(err)
		}
		defaultResolver = r
	})
	return defaultResolver
}

func ResolveAirportCode(text string) (string, error) { return Default().AirportCode(text) }

func ResolveCityCode(text string) (string, error) { return Default().CityCode(text) }

func (r *Resolver) AirportCode(text string) (string, error) {
	return lookup(r.airports, text, KindAirport)
}

func (r *Resolver) CityCode(text string) (string, error) {
	return lookup(r.cities, text, KindCity)
}

// Resolve resolves the origin airport plus the destination airport and city codes.
// The first failure is returned.
func (r *Resolver) Resolve(origin, destination string) (ResolvedCodes, error) {
	var codes ResolvedCodes
	var err error
	if codes.OriginCode, err = r.AirportCode(origin); err != nil {
		return ResolvedCodes{}, err
	}
	if codes.DestinationAirportCode, err = r.AirportCode(destination); err != nil {
		return ResolvedCodes{}, err
	}
	if codes.DestinationCityCode, err = r.CityCode(destination); err != nil {
		return ResolvedCodes{}, err
	}
	return codes, nil
}

func (r *Resolver) PopularDestinations() []Destination {
	out := make([]Destination, len(r.popular))
	copy(out, r.popular)
	return out
}

// IsCode reports whether s is exactly three ASCII letters.
func IsCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}

func lookup(table []entry, text string, kind CodeKind) (string, error) {
	if IsCode(text) {
		return strings.ToUpper(text), nil
	}

	key := strings.ToLower(strings.TrimSpace(text))
	if key == "" {
		return "", &ResolutionError{Input: text, Kind: kind}
	}

	for _, e := range table {
		if e.Name == key {
			return e.Code, nil
		}
	}
	for _, e := range table {
		if strings.Contains(key, e.Name) || strings.Contains(e.Name, key) {
			return e.Code, nil
		}
	}

	return "", &ResolutionError{Input: text, Kind: kind}
}
