package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, s)
	}
	return t, nil
}

// TravelMonth returns the English month name of a YYYY-MM-DD date.
func TravelMonth(departure string) (string, error) {
	t, err := ParseDate(departure)
	if err != nil {
		return "", err
	}
	return t.Month().String(), nil
}

// ReturnDate adds days calendar days to departure. No timezone adjustment is made.
func ReturnDate(departure string, days int) (string, error) {
	t, err := ParseDate(departure)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, days).Format(DateLayout), nil
}

var isoDuration = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?`)

// FormatISODuration renders PT11H30M as "11h 30m".
func FormatISODuration(d string) string {
	if d == "" {
		return "N/A"
	}
	m := isoDuration.FindStringSubmatch(d)
	if m == nil {
		return d
	}
	var parts []string
	if m[1] != "" && strings.TrimLeft(m[1], "0") != "" {
		parts = append(parts, m[1]+"h")
	}
	if m[2] != "" && strings.TrimLeft(m[2], "0") != "" {
		parts = append(parts, m[2]+"m")
	}
	if len(parts) == 0 {
		return "N/A"
	}
	return strings.Join(parts, " ")
}

var currencySymbols = map[string]string{
	"SGD": "S$",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

func FormatPrice(amount float64, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency
	}
	return symbol + formatThousands(amount)
}

func formatThousands(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
