package normalize

import (
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

var (
	idKeys              = []string{"id", "uuid", "key"}
	nameKeys            = []string{"name", "title", "vendor", "vendorName", "fullName", "description"}
	projectKeys         = []string{"projectId", "project", "assignedProject", "jobNumber"}
	statusKeys          = []string{"status", "state", "stage"}
	budgetKeys          = []string{"budget", "budgetAmount", "originalBudget", "estimatedCost"}
	contractValueKeys   = []string{"contractValue", "contractAmount", "value", "awardedAmount"}
	actualKeys          = []string{"actual", "actualCost", "actualAmount", "committed", "committedCost", "spent"}
	ratingKeys          = []string{"rating", "vendorRating", "performanceRating", "score"}
	percentCompleteKeys = []string{"percentComplete", "progress", "completion", "completionPercentage"}
	startDateKeys       = []string{"startDate", "start", "bidDate", "hireDate"}
	dueDateKeys         = []string{"dueDate", "due", "targetDate", "endDate", "deadline"}
	milestoneKeys       = []string{"milestones", "phases"}
	changeOrderKeys     = []string{"changeOrders", "cos"}
	taskKeys            = []string{"tasks", "checklist"}
	amountKeys          = []string{"amount", "value", "cost"}
	completedKeys       = []string{"completedDate", "completed", "completedAt", "actualDate"}
	doneKeys            = []string{"done", "completed", "isComplete"}
)

// dateLayouts cast does not try on its own.
var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04",
	"Jan 2, 2006",
}

// fieldKey folds camelCase, snake_case and kebab-case spellings onto one key.
func fieldKey(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}

// fields is a raw record indexed by folded key.
type fields map[string]any

func newFields(raw map[string]any) fields {
	f := make(fields, len(raw))
	for k, v := range raw {
		f[fieldKey(k)] = v
	}
	return f
}

func (f fields) lookup(keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := f[fieldKey(k)]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// toNumber returns a finite number. ok is false when v was present but unusable.
func toNumber(v any) (n float64, ok bool) {
	switch x := v.(type) {
	case nil:
		return 0, true
	case bool:
		return 0, false
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, true
		}
		negative := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
		s = strings.NewReplacer("$", "", ",", "", "%", "", " ", "", "(", "", ")", "").Replace(s)
		f, err := cast.ToFloat64E(s)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		if negative {
			f = -f
		}
		return f, true
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// toDate returns a valid date or nil. ok is false when v was present but unusable.
func toDate(v any) (t *time.Time, ok bool) {
	switch x := v.(type) {
	case nil:
		return nil, true
	case bool:
		return nil, false
	case *time.Time:
		if x == nil || x.IsZero() {
			return nil, true
		}
		d := *x
		return &d, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil, true
		}
		for _, layout := range dateLayouts {
			if d, err := time.Parse(layout, s); err == nil {
				return &d, true
			}
		}
		v = s
	}

	d, err := cast.ToTimeE(v)
	if err != nil {
		return nil, false
	}
	if d.IsZero() {
		return nil, true
	}
	return &d, true
}

func toString(v any) string {
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func toBool(v any) (b bool, ok bool) {
	if s, isString := v.(string); isString {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "done", "complete", "completed", "yes", "y":
			return true, true
		case "", "no", "n", "open", "pending", "todo":
			return false, true
		}
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, false
	}
	return b, true
}

// toList accepts a JSON/YAML array of objects and skips entries that are not objects.
func toList(v any) (items []map[string]any, ok bool) {
	list, isList := v.([]any)
	if !isList {
		if typed, isTyped := v.([]map[string]any); isTyped {
			return typed, true
		}
		return nil, v == nil
	}

	ok = true
	for _, item := range list {
		m, err := cast.ToStringMapE(item)
		if err != nil {
			ok = false
			continue
		}
		items = append(items, m)
	}
	return items, ok
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
