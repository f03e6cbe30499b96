package lifecycle

import (
	"testing"

	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_HappyPath(t *testing.T) {
	rec := domain.Record{ID: "BO-1", Kind: domain.RecordKindBuyout, Status: domain.StatusPending, ContractValue: 5000}

	steps := []struct {
		event string
		want  domain.Status
	}{
		{EventSolicit, domain.StatusBidding},
		{EventNegotiate, domain.StatusNegotiating},
		{EventAward, domain.StatusAwarded},
		{EventExecute, domain.StatusExecuted},
	}

	for _, step := range steps {
		var err error
		rec, err = Apply(rec, step.event)
		require.NoError(t, err, step.event)
		assert.Equal(t, step.want, rec.Status)
	}
}

func TestApply_CancelAndReopen(t *testing.T) {
	rec := domain.Record{ID: "BO-2", Kind: domain.RecordKindBuyout, Status: domain.StatusBidding}

	rec, err := Apply(rec, EventCancel)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, rec.Status)

	rec, err = Apply(rec, EventReopen)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, rec.Status)
}

func TestApply_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name   string
		record domain.Record
		event  string
	}{
		{"skip bidding", domain.Record{Status: domain.StatusPending, ContractValue: 1}, EventAward},
		{"award without contract value", domain.Record{Status: domain.StatusNegotiating}, EventAward},
		{"reopen active buyout", domain.Record{Status: domain.StatusAwarded}, EventReopen},
		{"unknown event", domain.Record{Status: domain.StatusPending}, "sign"},
		{"execute cancelled", domain.Record{Status: domain.StatusCancelled}, EventExecute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.record.ID = "BO-3"
			tt.record.Kind = domain.RecordKindBuyout

			_, err := Apply(tt.record, tt.event)
			require.Error(t, err)
			assert.True(t, eris.Is(err, domain.ErrInvalidTransition), "got %v", err)
		})
	}
}

func TestApply_RejectsOtherKinds(t *testing.T) {
	_, err := Apply(domain.Record{ID: "P1", Kind: domain.RecordKindProject, Status: domain.StatusActive}, EventCancel)

	require.Error(t, err)
	assert.True(t, eris.Is(err, domain.ErrInvalidCommand))
}

func TestNewBuyoutMachine_UnknownStatusStartsPending(t *testing.T) {
	m, err := NewBuyoutMachine(domain.Record{ID: "BO-4", Kind: domain.RecordKindBuyout, Status: "signed"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, m.Current())
}
