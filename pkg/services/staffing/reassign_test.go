package staffing

import (
	"testing"

	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func crew() []domain.Record {
	return []domain.Record{
		{ID: "e1", Kind: domain.RecordKindEmployee, ProjectID: "P1", Status: domain.StatusAssigned},
		{ID: "e2", Kind: domain.RecordKindEmployee, ProjectID: "", Status: domain.StatusAvailable},
		{ID: "e3", Kind: domain.RecordKindEmployee, ProjectID: "P1", Status: domain.StatusOnLeave},
		{ID: "b1", Kind: domain.RecordKindBuyout, ProjectID: "P1", Status: domain.StatusPending},
	}
}

func TestReassign(t *testing.T) {
	records := crew()

	out, err := Reassign(records, NewReassignCommand("e2", "P2"))
	require.NoError(t, err)

	assert.Equal(t, "P2", out[1].ProjectID)
	assert.Equal(t, domain.StatusAssigned, out[1].Status)
	assert.Equal(t, "", records[1].ProjectID, "input must not be mutated")
	assert.Equal(t, domain.StatusAvailable, records[1].Status)
}

func TestReassign_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cmd     domain.ReassignCommand
		wantErr error
	}{
		{"missing employee", NewReassignCommand("", "P2"), domain.ErrInvalidCommand},
		{"missing project", NewReassignCommand("e1", " "), domain.ErrInvalidCommand},
		{"unknown employee", NewReassignCommand("e9", "P2"), domain.ErrNotFound},
		{"not an employee", NewReassignCommand("b1", "P2"), domain.ErrInvalidCommand},
		{"on leave", NewReassignCommand("e3", "P2"), domain.ErrInvalidCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Reassign(crew(), tt.cmd)
			assert.Nil(t, out)
			require.Error(t, err)
			assert.True(t, eris.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestNewReassignCommand(t *testing.T) {
	a := NewReassignCommand(" e1 ", "P2")
	b := NewReassignCommand("e1", "P2")

	assert.Equal(t, "e1", a.EmployeeID)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestAllocation(t *testing.T) {
	got := Allocation(crew())

	assert.Equal(t, []domain.Allocation{
		{ProjectID: "", Available: 1},
		{ProjectID: "P1", Assigned: 1, OnLeave: 1},
	}, got)
}
