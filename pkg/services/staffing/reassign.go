// Package staffing applies reassignment commands to employee records.
package staffing

import (
	"sort"
	"strings"

	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
)

// NewReassignCommand returns a command with a fresh id.
func NewReassignCommand(employeeID, toProjectID string) domain.ReassignCommand {
	return domain.ReassignCommand{
		ID:          uuid.NewString(),
		EmployeeID:  strings.TrimSpace(employeeID),
		ToProjectID: strings.TrimSpace(toProjectID),
	}
}

// Reassign returns a copy of records with the employee moved to cmd.ToProjectID and marked
// assigned. The input slice is not modified.
func Reassign(records []domain.Record, cmd domain.ReassignCommand) ([]domain.Record, error) {
	if cmd.EmployeeID == "" {
		return nil, eris.Wrap(domain.ErrInvalidCommand, "employee id is required")
	}
	if cmd.ToProjectID == "" {
		return nil, eris.Wrap(domain.ErrInvalidCommand, "target project is required")
	}

	out := make([]domain.Record, len(records))
	copy(out, records)

	for i, r := range out {
		if r.ID != cmd.EmployeeID {
			continue
		}
		if r.Kind != domain.RecordKindEmployee {
			return nil, eris.Wrapf(domain.ErrInvalidCommand, "record %s is a %s, not an employee", r.ID, r.Kind)
		}
		if r.Status == domain.StatusOnLeave {
			return nil, eris.Wrapf(domain.ErrInvalidCommand, "employee %s is on leave", r.ID)
		}
		out[i].ProjectID = cmd.ToProjectID
		out[i].Status = domain.StatusAssigned
		return out, nil
	}

	return nil, eris.Wrapf(domain.ErrNotFound, "employee %s", cmd.EmployeeID)
}

// Allocation counts employees per project, sorted by project id. Employees without a project
// are reported under an empty project id.
func Allocation(records []domain.Record) []domain.Allocation {
	byProject := map[string]*domain.Allocation{}
	for _, r := range records {
		if r.Kind != domain.RecordKindEmployee {
			continue
		}
		a, ok := byProject[r.ProjectID]
		if !ok {
			a = &domain.Allocation{ProjectID: r.ProjectID}
			byProject[r.ProjectID] = a
		}
		switch r.Status {
		case domain.StatusAssigned:
			a.Assigned++
		case domain.StatusOnLeave:
			a.OnLeave++
		default:
			a.Available++
		}
	}

	out := make([]domain.Allocation, 0, len(byProject))
	for _, a := range byProject {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProjectID < out[j].ProjectID })
	return out
}
