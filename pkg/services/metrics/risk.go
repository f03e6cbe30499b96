package metrics

import (
	"math"

	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// Settings contains the thresholds used to classify record risk
type Settings struct {
	// CriticalVariancePct flags records whose actual cost exceeds budget by more than this percentage (default: 10)
	CriticalVariancePct float64 `mapstructure:"critical_variance_pct"`
	// HighVariancePct flags records over budget by more than this percentage as high risk (default: 5)
	HighVariancePct float64 `mapstructure:"high_variance_pct"`
	// LowRatingThreshold flags rated records below this rating as high risk (default: 2.5)
	LowRatingThreshold float64 `mapstructure:"low_rating_threshold"`
}

// DefaultSettings returns the default risk thresholds
func DefaultSettings() Settings {
	return Settings{
		CriticalVariancePct: 10,
		HighVariancePct:     5,
		LowRatingThreshold:  2.5,
	}
}

// RecordVariancePct is (actual - budget) / budget * 100, or 0 for an unbudgeted record.
func RecordVariancePct(r domain.Record) float64 {
	return variancePct(finite(r.Actual), finite(r.Budget))
}

// Classify returns the risk level of a single record.
func (s Settings) Classify(r domain.Record) domain.RiskLevel {
	variance := RecordVariancePct(r)
	rated := r.Rating > 0

	switch {
	case variance > s.CriticalVariancePct:
		return domain.RiskCritical
	case variance > s.HighVariancePct, rated && r.Rating < s.LowRatingThreshold:
		return domain.RiskHigh
	case variance > 0, hasPendingChangeOrders(r):
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

func hasPendingChangeOrders(r domain.Record) bool {
	for _, co := range r.ChangeOrders {
		if co.Status == domain.ChangeOrderPending {
			return true
		}
	}
	return false
}

func variancePct(actual, budget decimal.Decimal) float64 {
	if budget.IsZero() {
		return 0
	}
	return toFloat(actual.Sub(budget).Div(budget).Mul(decimal.NewFromInt(100)))
}

// finite converts v for summing. NaN and infinities count as 0.
func finite(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// toFloat saturates sums beyond the float64 range at ±math.MaxFloat64.
func toFloat(d decimal.Decimal) float64 {
	f := d.InexactFloat64()
	switch {
	case math.IsInf(f, 1):
		return math.MaxFloat64
	case math.IsInf(f, -1):
		return -math.MaxFloat64
	}
	return f
}
