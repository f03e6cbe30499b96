// Package insights evaluates an ordered list of threshold rules against summary metrics.
package insights

import "github.com/de-tools/project-atlas/pkg/models/domain"

type Engine struct {
	rules []Rule
}

func NewEngine(rules []Rule) *Engine {
	return &Engine{rules: rules}
}

// NewDefaultEngine builds an engine over DefaultRules.
func NewDefaultEngine(s Settings) *Engine {
	return NewEngine(DefaultRules(s))
}

// DeriveInsights evaluates every rule independently. An empty record set yields no insights.
func (e *Engine) DeriveInsights(m domain.SummaryMetrics, records []domain.Record) []domain.Insight {
	insights := make([]domain.Insight, 0)
	if m.RecordCount == 0 && len(records) == 0 {
		return insights
	}

	for _, rule := range e.rules {
		if insight, ok := rule.Evaluate(m, records); ok {
			insights = append(insights, insight)
		}
	}
	return insights
}
