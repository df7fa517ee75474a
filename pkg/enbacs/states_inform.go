package enbacs

import (
	"github.com/enbacsd/enbacsd/pkg/cwmp"
)

// informState is the shared shape of Disconnected, UnexpectedInform, and
// BaicellsDisconnected: all three read an Inform, record it, and on send
// reply with InformResponse and move to a configured target. They exist as
// distinct catalog entries (rather than one shared state) only so the
// surrounding machine can tell, from the current state name alone, which
// circumstance led here — a fresh session, a mid-provisioning reset, or a
// vendor REM-wait entry point.
type informState struct {
	name   string
	target string
}

// NewDisconnectedState builds the terminal-idle entry point: the state a
// freshly-registered or newly-reconnected device starts in.
func NewDisconnectedState(target string) State {
	return &informState{name: StateNameDisconnected, target: target}
}

// NewUnexpectedInformState builds the state entered when an Inform arrives
// mid-provisioning, letting the parent machine reset cleanly.
func NewUnexpectedInformState(target string) State {
	return &informState{name: StateNameUnexpectedInform, target: target}
}

// NewBaicellsDisconnectedState builds the vendor-specific entry point used
// when provisioning must wait for Baicells REM to finish first.
func NewBaicellsDisconnectedState(target string) State {
	return &informState{name: StateNameBaicellsDisconnected, target: target}
}

func (s *informState) Name() string           { return s.name }
func (s *informState) Enter(sm *StateMachine) {}
func (s *informState) Exit(sm *StateMachine)  {}

func (s *informState) HandleRead(sm *StateMachine, msg cwmp.Message) (ReadResult, error) {
	inform, ok := msg.(cwmp.Inform)
	if !ok {
		return notHandled(), nil
	}
	applyInform(sm, inform)
	return handled(), nil
}

func (s *informState) HandleSend(sm *StateMachine) (SendResult, error) {
	return SendResult{Msg: cwmp.NewInformResponse(), NextState: s.target}, nil
}

// applyInform records an Inform's contents into the device's known
// configuration: every event code is logged, and every parameter value the
// device chose to push in ParameterList is written into DeviceConfig the
// same way the discovery states store a GetParameterValuesResponse.
func applyInform(sm *StateMachine, inform cwmp.Inform) {
	logEntry := sm.logEntry()
	for _, evt := range inform.Event {
		logEntry.WithField("event_code", evt.EventCode).Debug("inform event")
	}
	for _, pv := range inform.ParameterList {
		name, p, ok := lookupByPath(sm.Model, pv.Name)
		if !ok {
			continue
		}
		if native, err := p.ToNative(pv.Value.Data); err == nil {
			sm.DeviceConfig.SetParameter(name, native)
		}
	}
}

// hasEventCode reports whether an Inform carries the named event code.
func hasEventCode(inform cwmp.Inform, code string) bool {
	for _, evt := range inform.Event {
		if evt.EventCode == code {
			return true
		}
	}
	return false
}

// baicellsRemWaitState delays provisioning for a fixed duration while
// vendor firmware completes its initial radio environment measurement.
// Grounded on the original's BaicellsRemWaitState, which refuses to
// configure the device until this window elapses.
type baicellsRemWaitState struct {
	target string
}

// BaicellsREMWaitSeconds is the fixed delay before provisioning resumes,
// per spec.md §6's timer constants.
const BaicellsREMWaitSeconds = 600

// NewBaicellsRemWaitState builds the REM-wait state.
func NewBaicellsRemWaitState(target string) State {
	return &baicellsRemWaitState{target: target}
}

func (s *baicellsRemWaitState) Name() string { return StateNameBaicellsRemWait }

func (s *baicellsRemWaitState) Enter(sm *StateMachine) {
	sm.ScheduleTimer("rem-wait", BaicellsREMWaitSeconds, func() {
		sm.RequestTimerTransition(StateNameBaicellsRemWait, s.target)
	})
}

func (s *baicellsRemWaitState) Exit(sm *StateMachine) {}

func (s *baicellsRemWaitState) HandleRead(sm *StateMachine, msg cwmp.Message) (ReadResult, error) {
	return handled(), nil
}

func (s *baicellsRemWaitState) HandleSend(sm *StateMachine) (SendResult, error) {
	return SendResult{Msg: cwmp.DummyInput{}}, nil
}

// waitEmptyMessageState absorbs the device's empty follow-up POST after an
// InformResponse before moving on to the configured target.
type waitEmptyMessageState struct {
	unimplementedState
	target string
}

// NewWaitEmptyMessageState builds the state.
func NewWaitEmptyMessageState(target string) State {
	return &waitEmptyMessageState{
		unimplementedState: unimplementedState{name: StateNameWaitEmptyMessage},
		target:             target,
	}
}

func (s *waitEmptyMessageState) HandleRead(sm *StateMachine, msg cwmp.Message) (ReadResult, error) {
	if _, ok := msg.(cwmp.DummyInput); ok {
		return transitionTo(s.target), nil
	}
	return notHandled(), nil
}
