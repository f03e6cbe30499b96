package format

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	f := Default()

	tests := []struct {
		name   string
		amount float64
		code   string
		want   string
	}{
		{"grouped", 1234.5, "USD", "$1,234.50"},
		{"zero", 0, "USD", "$0.00"},
		{"rounds half away", 2.345, "USD", "$2.35"},
		{"negative", -50, "USD", "-$50.00"},
		{"millions", 1250000, "USD", "$1,250,000.00"},
		{"unknown code", 10, "???", "$10.00"},
		{"nan", math.NaN(), "USD", Placeholder},
		{"inf", math.Inf(1), "USD", Placeholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Currency(tt.amount, tt.code))
		})
	}
}

func TestPercent(t *testing.T) {
	f := Default()

	assert.Equal(t, "12.5%", f.Percent(12.5))
	assert.Equal(t, "-3.3%", f.Percent(-3.333))
	assert.Equal(t, "50.0%", f.Ratio(0.5))
	assert.Equal(t, Placeholder, f.Percent(math.NaN()))
}

func TestNumber(t *testing.T) {
	f := Default()

	assert.Equal(t, "1,235", f.Number(1234.6))
	assert.Equal(t, Placeholder, f.Number(math.Inf(-1)))
}

func TestDate(t *testing.T) {
	f := Default()
	d := time.Date(2024, 3, 5, 15, 4, 0, 0, time.UTC)
	zero := time.Time{}

	assert.Equal(t, "Mar 5, 2024", f.Date(&d))
	assert.Equal(t, Placeholder, f.Date(nil))
	assert.Equal(t, Placeholder, f.Date(&zero))
}
