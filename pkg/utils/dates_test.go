package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReturnDate(t *testing.T) {
	tests := []struct {
		departure string
		days      int
		want      string
	}{
		{"2025-06-01", 7, "2025-06-08"},
		{"2025-06-01", 1, "2025-06-02"},
		{"2025-06-01", 30, "2025-07-01"},
		{"2024-02-28", 1, "2024-02-29"},
		{"2025-12-30", 3, "2026-01-02"},
	}
	for _, tt := range tests {
		got, err := ReturnDate(tt.departure, tt.days)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s + %d", tt.departure, tt.days)
	}
}

func TestTravelMonth(t *testing.T) {
	m, err := TravelMonth("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, "June", m)

	_, err = TravelMonth("01/06/2025")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestFormatISODuration(t *testing.T) {
	assert.Equal(t, "8h 30m", FormatISODuration("PT8H30M"))
	assert.Equal(t, "11h", FormatISODuration("PT11H"))
	assert.Equal(t, "45m", FormatISODuration("PT45M"))
	assert.Equal(t, "N/A", FormatISODuration(""))
	assert.Equal(t, "N/A", FormatISODuration("PT0H0M"))
	assert.Equal(t, "about 9 hours", FormatISODuration("about 9 hours"))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "S$1,234.50", FormatPrice(1234.5, "SGD"))
	assert.Equal(t, "$450.00", FormatPrice(450, "USD"))
	assert.Equal(t, "THB1,000,000.00", FormatPrice(1e6, "THB"))
}
