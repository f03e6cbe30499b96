// Package lifecycle drives buyout status changes through a state machine.
package lifecycle

import (
	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/felixgeelhaar/statekit"
	"github.com/rotisserie/eris"
)

// Buyout events.
const (
	EventSolicit   = "solicit"
	EventNegotiate = "negotiate"
	EventAward     = "award"
	EventExecute   = "execute"
	EventCancel    = "cancel"
	EventReopen    = "reopen"
)

// BuyoutContext carries the record the guards inspect.
type BuyoutContext struct {
	Record domain.Record
}

// BuyoutMachine wraps a statekit interpreter started at the record's current status.
type BuyoutMachine struct {
	interpreter *statekit.Interpreter[BuyoutContext]
}

func state(s domain.Status) statekit.StateID {
	return statekit.StateID(s)
}

func NewBuyoutMachine(record domain.Record) (*BuyoutMachine, error) {
	if record.Kind != domain.RecordKindBuyout {
		return nil, eris.Wrapf(domain.ErrInvalidCommand, "record %s is a %s, not a buyout", record.ID, record.Kind)
	}

	builder := statekit.NewMachine[BuyoutContext]("buyout-machine").
		WithInitial(state(domain.RecordKindBuyout.ParseStatus(string(record.Status)))).
		WithContext(BuyoutContext{Record: record}).
		WithGuard("hasContractValue", func(ctx BuyoutContext, _ statekit.Event) bool {
			return ctx.Record.ContractValue > 0
		})

	builder.State(state(domain.StatusPending)).
		On(EventSolicit).Target(state(domain.StatusBidding)).
		On(EventCancel).Target(state(domain.StatusCancelled)).
		Done()

	builder.State(state(domain.StatusBidding)).
		On(EventNegotiate).Target(state(domain.StatusNegotiating)).
		On(EventCancel).Target(state(domain.StatusCancelled)).
		Done()

	builder.State(state(domain.StatusNegotiating)).
		On(EventAward).Target(state(domain.StatusAwarded)).Guard("hasContractValue").
		On(EventCancel).Target(state(domain.StatusCancelled)).
		Done()

	builder.State(state(domain.StatusAwarded)).
		On(EventExecute).Target(state(domain.StatusExecuted)).
		On(EventCancel).Target(state(domain.StatusCancelled)).
		Done()

	// An executed contract can only be terminated.
	builder.State(state(domain.StatusExecuted)).
		On(EventCancel).Target(state(domain.StatusCancelled)).
		Done()

	builder.State(state(domain.StatusCancelled)).
		On(EventReopen).Target(state(domain.StatusPending)).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, eris.Wrap(err, "lifecycle: build buyout machine")
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &BuyoutMachine{interpreter: interpreter}, nil
}

// Transition applies event and fails with ErrInvalidTransition when the status did not change.
func (m *BuyoutMachine) Transition(event string) error {
	before := m.Current()
	m.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	if m.Current() != before {
		return nil
	}
	return eris.Wrapf(domain.ErrInvalidTransition, "%q is not allowed while the buyout is %s", event, before)
}

func (m *BuyoutMachine) Current() domain.Status {
	return domain.Status(m.interpreter.State().Value)
}

// Apply transitions record by event and returns the updated copy.
func Apply(record domain.Record, event string) (domain.Record, error) {
	m, err := NewBuyoutMachine(record)
	if err != nil {
		return domain.Record{}, err
	}
	if err := m.Transition(event); err != nil {
		return domain.Record{}, eris.Wrapf(err, "buyout %s", record.ID)
	}
	record.Status = m.Current()
	return record, nil
}
