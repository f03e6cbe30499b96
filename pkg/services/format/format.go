// Package format renders amounts, percentages and dates for display. Invalid input renders
// Placeholder instead of failing.
package format

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	Placeholder     = "N/A"
	DateLayout      = "Jan 2, 2006"
	DefaultCurrency = "USD"
)

// Formatter is bound to a display language. The zero value is not usable; use New.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

func New(tag language.Tag) *Formatter {
	return &Formatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
	}
}

// Default formats for US English.
func Default() *Formatter {
	return New(language.AmericanEnglish)
}

// Currency formats amount with two decimals, grouped thousands and the currency symbol,
// e.g. "$1,234.50" or "-$50.00". Unknown currency codes fall back to USD.
func (f *Formatter) Currency(amount float64, code string) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Placeholder
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.USD
	}
	symbol := f.printer.Sprint(currency.NarrowSymbol(unit))

	rounded := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}

	return sign + symbol + f.printer.Sprint(number.Decimal(rounded.InexactFloat64(), number.Scale(2)))
}

// Percent formats v (already in percent units) with one decimal.
func (f *Formatter) Percent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	return f.printer.Sprint(number.Decimal(v, number.Scale(1))) + "%"
}

// Ratio formats a 0..1 ratio as a percentage.
func (f *Formatter) Ratio(v float64) string {
	return f.Percent(v * 100)
}

// Number formats v with grouped thousands and no decimals.
func (f *Formatter) Number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	return f.printer.Sprint(number.Decimal(decimal.NewFromFloat(v).Round(0).IntPart()))
}

// Date formats t as "Jan 2, 2006". Nil and zero dates render the placeholder.
func (f *Formatter) Date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return Placeholder
	}
	return t.Format(DateLayout)
}

func (f *Formatter) String() string {
	return fmt.Sprintf("Formatter(%s)", f.tag)
}
