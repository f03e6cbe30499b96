// Package normalize coerces raw records of unknown completeness into domain.Record.
//
// Normalization never fails: a numeric field that is missing or unparseable becomes 0,
// a date that is missing or invalid becomes nil, and an unrecognized status falls back to
// the default bucket of the record kind.
package normalize

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Result is a normalized record plus the number of present fields that had to be degraded.
type Result struct {
	Record  domain.Record
	Coerced int
}

// Normalize converts one raw record. Records without an id keep an empty ID; use NormalizeAll
// to get positional ids.
func Normalize(kind domain.RecordKind, raw domain.RawRecord) Result {
	n := &normalizer{f: newFields(raw)}

	rec := domain.Record{
		ID:              n.str(idKeys),
		Kind:            kind,
		Name:            n.str(nameKeys),
		ProjectID:       n.str(projectKeys),
		Status:          n.status(kind),
		Budget:          n.number(budgetKeys),
		ContractValue:   n.number(contractValueKeys),
		Actual:          n.number(actualKeys),
		Rating:          clamp(n.number(ratingKeys), 0, 5),
		PercentComplete: clamp(n.number(percentCompleteKeys), 0, 100),
		StartDate:       n.date(startDateKeys),
		DueDate:         n.date(dueDateKeys),
	}

	for i, item := range n.list(milestoneKeys) {
		m := &normalizer{f: newFields(item)}
		name := m.str(nameKeys)
		if name == "" {
			name = fmt.Sprintf("milestone-%d", i+1)
		}
		rec.Milestones = append(rec.Milestones, domain.Milestone{
			Name:      name,
			Due:       m.date(dueDateKeys),
			Completed: m.date(completedKeys),
		})
		n.coerced += m.coerced
	}

	for i, item := range n.list(changeOrderKeys) {
		c := &normalizer{f: newFields(item)}
		id := c.str(idKeys)
		if id == "" {
			id = fmt.Sprintf("co-%d", i+1)
		}
		rec.ChangeOrders = append(rec.ChangeOrders, domain.ChangeOrder{
			ID:     id,
			Amount: c.number(amountKeys),
			Status: changeOrderStatus(c.str(statusKeys)),
		})
		n.coerced += c.coerced
	}

	for i, item := range n.list(taskKeys) {
		t := &normalizer{f: newFields(item)}
		id := t.str(idKeys)
		if id == "" {
			id = fmt.Sprintf("task-%d", i+1)
		}
		done := t.boolean(doneKeys)
		if !done {
			switch fieldKey(t.str(statusKeys)) {
			case "done", "complete", "completed", "closed":
				done = true
			}
		}
		rec.Tasks = append(rec.Tasks, domain.Task{
			ID:   id,
			Name: t.str(nameKeys),
			Done: done,
		})
		n.coerced += t.coerced
	}

	return Result{Record: rec, Coerced: n.coerced}
}

// NormalizeAll converts raws in order and assigns "<kind>-<position>" ids to records without one.
func NormalizeAll(ctx context.Context, kind domain.RecordKind, raws []domain.RawRecord) []domain.Record {
	logger := zerolog.Ctx(ctx)

	records := make([]domain.Record, 0, len(raws))
	coerced := 0
	for i, raw := range raws {
		res := Normalize(kind, raw)
		if res.Record.ID == "" {
			res.Record.ID = fmt.Sprintf("%s-%d", kind, i+1)
		}
		coerced += res.Coerced
		records = append(records, res.Record)
	}

	if coerced > 0 {
		logger.Debug().
			Str("kind", string(kind)).
			Int("records", len(records)).
			Int("coerced_fields", coerced).
			Msg("degraded malformed record fields to defaults")
	}

	return records
}

type normalizer struct {
	f       fields
	coerced int
}

func (n *normalizer) str(keys []string) string {
	v, ok := n.f.lookup(keys)
	if !ok {
		return ""
	}
	return toString(v)
}

func (n *normalizer) number(keys []string) float64 {
	v, present := n.f.lookup(keys)
	if !present {
		return 0
	}
	f, ok := toNumber(v)
	if !ok {
		n.coerced++
	}
	return f
}

func (n *normalizer) status(kind domain.RecordKind) domain.Status {
	raw := n.str(statusKeys)
	st, ok := kind.LookupStatus(raw)
	if !ok {
		if raw != "" {
			n.coerced++
		}
		return kind.DefaultStatus()
	}
	return st
}

func (n *normalizer) date(keys []string) *time.Time {
	v, present := n.f.lookup(keys)
	if !present {
		return nil
	}
	d, ok := toDate(v)
	if !ok {
		n.coerced++
	}
	return d
}

func (n *normalizer) boolean(keys []string) bool {
	v, present := n.f.lookup(keys)
	if !present {
		return false
	}
	b, ok := toBool(v)
	if !ok {
		n.coerced++
	}
	return b
}

func (n *normalizer) list(keys []string) []map[string]any {
	v, present := n.f.lookup(keys)
	if !present {
		return nil
	}
	items, ok := toList(v)
	if !ok {
		n.coerced++
	}
	return items
}

func changeOrderStatus(s string) domain.ChangeOrderStatus {
	switch domain.ChangeOrderStatus(fieldKey(s)) {
	case domain.ChangeOrderApproved:
		return domain.ChangeOrderApproved
	case domain.ChangeOrderRejected:
		return domain.ChangeOrderRejected
	default:
		return domain.ChangeOrderPending
	}
}
