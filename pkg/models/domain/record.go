package domain

import (
	"strings"
	"time"
)

type RecordKind string

const (
	RecordKindBuyout   RecordKind = "buyout"
	RecordKindProject  RecordKind = "project"
	RecordKindEmployee RecordKind = "employee"
)

// RecordKinds lists every kind in the order syncs pull them.
var RecordKinds = []RecordKind{RecordKindProject, RecordKindBuyout, RecordKindEmployee}

// ParseRecordKind accepts singular and plural forms ("buyouts", "employees").
func ParseRecordKind(s string) (RecordKind, bool) {
	k := RecordKind(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s"))
	switch k {
	case RecordKindBuyout, RecordKindProject, RecordKindEmployee:
		return k, true
	default:
		return "", false
	}
}

type Status string

const (
	StatusPending     Status = "pending"
	StatusBidding     Status = "bidding"
	StatusNegotiating Status = "negotiating"
	StatusAwarded     Status = "awarded"
	StatusExecuted    Status = "executed"
	StatusCancelled   Status = "cancelled"

	StatusPlanning  Status = "planning"
	StatusActive    Status = "active"
	StatusOnHold    Status = "on_hold"
	StatusCompleted Status = "completed"

	StatusAvailable Status = "available"
	StatusAssigned  Status = "assigned"
	StatusOnLeave   Status = "on_leave"
)

type statusCatalog struct {
	statuses []Status
	fallback Status
	executed Status
}

var catalogs = map[RecordKind]statusCatalog{
	RecordKindBuyout: {
		statuses: []Status{StatusPending, StatusBidding, StatusNegotiating, StatusAwarded, StatusExecuted, StatusCancelled},
		fallback: StatusPending,
		executed: StatusExecuted,
	},
	RecordKindProject: {
		statuses: []Status{StatusPlanning, StatusActive, StatusOnHold, StatusCompleted},
		fallback: StatusPlanning,
		executed: StatusCompleted,
	},
	RecordKindEmployee: {
		statuses: []Status{StatusAvailable, StatusAssigned, StatusOnLeave},
		fallback: StatusAvailable,
		executed: StatusAssigned,
	},
}

// Statuses lists the closed status set of the kind in lifecycle order.
func (k RecordKind) Statuses() []Status {
	return append([]Status(nil), catalogs[k].statuses...)
}

// DefaultStatus is the bucket unrecognized values degrade to.
func (k RecordKind) DefaultStatus() Status {
	if c, ok := catalogs[k]; ok {
		return c.fallback
	}
	return StatusPending
}

// ParseStatus maps s onto the kind's status set, falling back to DefaultStatus.
func (k RecordKind) ParseStatus(s string) Status {
	if st, ok := k.LookupStatus(s); ok {
		return st
	}
	return k.DefaultStatus()
}

// LookupStatus matches s case-insensitively, treating spaces and hyphens as underscores.
func (k RecordKind) LookupStatus(s string) (Status, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	for _, st := range catalogs[k].statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// IsExecuted reports whether st counts towards the completion rate of the kind.
func (k RecordKind) IsExecuted(st Status) bool {
	c, ok := catalogs[k]
	return ok && c.executed == st
}

type ChangeOrderStatus string

const (
	ChangeOrderPending  ChangeOrderStatus = "pending"
	ChangeOrderApproved ChangeOrderStatus = "approved"
	ChangeOrderRejected ChangeOrderStatus = "rejected"
)

type Milestone struct {
	Name      string
	Due       *time.Time
	Completed *time.Time
}

type ChangeOrder struct {
	ID     string
	Amount float64
	Status ChangeOrderStatus
}

type Task struct {
	ID   string
	Name string
	Done bool
}

// Record is the canonical shape of a buyout, project or employee.
// Numeric fields are always finite and unset dates are nil.
type Record struct {
	ID              string
	Kind            RecordKind
	Name            string
	ProjectID       string
	Status          Status
	Budget          float64
	ContractValue   float64
	Actual          float64
	Rating          float64 // 0 means unrated
	PercentComplete float64
	StartDate       *time.Time
	DueDate         *time.Time
	Milestones      []Milestone
	ChangeOrders    []ChangeOrder
	Tasks           []Task
}

// RawRecord is a record as decoded from a data source, before normalization.
type RawRecord map[string]any
