package domain

import "time"

// Report represents a complete dashboard report for one project and record kind
type Report struct {
	Title       string
	ProjectID   string
	Kind        RecordKind
	GeneratedAt time.Time
	Sections    []ReportSection
	TotalAmount float64
	Currency    string
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title   string
	Summary map[string]string
	Details []ReportDetail
}

// ReportDetail represents one row within a section
type ReportDetail struct {
	Name        string
	Value       string
	Unit        string
	Description string
}
