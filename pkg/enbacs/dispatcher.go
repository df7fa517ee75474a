package enbacs

import (
	"errors"
	"fmt"

	"github.com/enbacsd/enbacsd/internal/acserrors"
	"github.com/enbacsd/enbacsd/internal/logging"
	"github.com/enbacsd/enbacsd/pkg/cwmp"
)

// Dispatcher is the sole mutator of a StateMachine's current state, per
// spec.md §4.1. It owns the state catalog and drives transitions in
// response to inbound CWMP traffic, timer fires, and operator commands.
type Dispatcher struct {
	sm      *StateMachine
	catalog map[string]State
}

// NewDispatcher builds a Dispatcher over the given catalog. The
// StateMachine's CurrentState must already name a key present in catalog.
func NewDispatcher(sm *StateMachine, catalog map[string]State) *Dispatcher {
	d := &Dispatcher{sm: sm, catalog: catalog}
	sm.bindDispatcher(d)
	return d
}

func (d *Dispatcher) current() State {
	return d.catalog[d.sm.CurrentState()]
}

// HandleInbound routes msg to the current state's read handler, performs
// any resulting transition, and returns the outbound message (if any) the
// (possibly new) current state produces in response.
func (d *Dispatcher) HandleInbound(msg cwmp.Message) (cwmp.Message, error) {
	cur := d.current()
	result, err := cur.HandleRead(d.sm, msg)
	if err != nil {
		if recovered, ok := d.recoverTr069Error(cur, err); ok {
			return recovered, nil
		}
		return nil, err
	}

	switch result.Outcome {
	case NotHandled:
		logging.WithState(d.sm.Device, cur.Name()).Warn("unexpected message for current state")
		return nil, fmt.Errorf("%s: %w", cur.Name(), acserrors.ErrProtocolDeviation)
	case HandledTransition:
		d.performTransition(cur, result.NextState)
	case HandledNoTransition:
		// stay put
	}

	next := d.current()
	sendResult, err := next.HandleSend(d.sm)
	if err != nil {
		if recovered, ok := d.recoverTr069Error(next, err); ok {
			return recovered, nil
		}
		return nil, err
	}
	if sendResult.NextState != "" && sendResult.NextState != next.Name() {
		d.performTransition(next, sendResult.NextState)
	}
	return sendResult.Msg, nil
}

// HandleTimerTransition performs a transition requested by a timer
// callback, but only if callerState is still the current state — a timer
// that fires after the machine has already moved on is a no-op, per
// spec.md §4.4.
func (d *Dispatcher) HandleTimerTransition(callerState, nextState string) {
	if d.sm.CurrentState() != callerState {
		logging.WithState(d.sm.Device, callerState).WithField("target", nextState).
			Debug("stale timer ignored, state has already changed")
		return
	}
	d.performTransition(d.current(), nextState)
}

// ForceTransition moves the machine to nextState regardless of what read or
// send logic would otherwise decide — used for operator-issued commands
// such as a manual reboot.
func (d *Dispatcher) ForceTransition(nextState string) {
	d.performTransition(d.current(), nextState)
}

func (d *Dispatcher) performTransition(cur State, next string) {
	cur.Exit(d.sm)
	d.sm.transition(next)
	if newState, ok := d.catalog[next]; ok {
		newState.Enter(d.sm)
	}
}

// recoverTr069Error classifies an error returned by a state handler. A
// Tr069Error drives the machine to the absorbing Error state and is
// swallowed into a log line, returning the Error state's own outbound
// (DummyInput) so the transport still has something to answer with. Any
// other error (ConfigurationError chief among them) is left for the caller
// to escalate to the host process.
func (d *Dispatcher) recoverTr069Error(cur State, err error) (cwmp.Message, bool) {
	var tr069Err *acserrors.Tr069Error
	if !errors.As(err, &tr069Err) {
		return nil, false
	}

	logging.WithState(d.sm.Device, cur.Name()).WithField("error", err.Error()).
		Error("tr-069 protocol failure, moving to error state")
	if d.sm.Status != nil {
		_ = d.sm.Status.PutStatus(d.sm.Device, StateNameError, err.Error())
	}
	d.performTransition(cur, StateNameError)

	errState := d.current()
	sendResult, sendErr := errState.HandleSend(d.sm)
	if sendErr != nil {
		return nil, true
	}
	return sendResult.Msg, true
}
