package enbacs

import (
	"github.com/enbacsd/enbacsd/internal/acserrors"
	"github.com/enbacsd/enbacsd/internal/logging"
	"github.com/enbacsd/enbacsd/pkg/cwmp"
)

// sendRebootState issues the Reboot request and moves straight on to its
// target on send. Any inbound message that arrives while it is still
// current (before the Reboot has gone out) is consumed and dropped rather
// than letting it confuse a state built to expect exactly one response shape.
type sendRebootState struct {
	target string
}

// NewSendRebootState builds the state.
func NewSendRebootState(target string) State {
	return &sendRebootState{target: target}
}

func (s *sendRebootState) Name() string           { return StateNameSendReboot }
func (s *sendRebootState) Enter(sm *StateMachine) {}
func (s *sendRebootState) Exit(sm *StateMachine)  {}

func (s *sendRebootState) HandleSend(sm *StateMachine) (SendResult, error) {
	return SendResult{Msg: cwmp.Reboot{CommandKey: ""}, NextState: s.target}, nil
}

func (s *sendRebootState) HandleRead(sm *StateMachine, msg cwmp.Message) (ReadResult, error) {
	return handled(), nil
}

// waitRebootResponseState waits for the device's RebootResponse before
// moving on to await the post-reboot Inform.
type waitRebootResponseState struct {
	unimplementedState
	target string
}

// NewWaitRebootResponseState builds the state.
func NewWaitRebootResponseState(target string) State {
	return &waitRebootResponseState{
		unimplementedState: unimplementedState{name: StateNameWaitRebootResponse},
		target:             target,
	}
}

func (s *waitRebootResponseState) HandleRead(sm *StateMachine, msg cwmp.Message) (ReadResult, error) {
	switch m := msg.(type) {
	case cwmp.RebootResponse:
		return transitionTo(s.target), nil
	case cwmp.Fault:
		return ReadResult{}, acserrors.NewTr069Error("reboot fault: %s", m.FaultString)
	default:
		return notHandled(), nil
	}
}

// RebootInformTimeoutSeconds is how long WaitInformMRebootState waits for
// the post-reboot Inform before giving up, per spec.md §6.
const RebootInformTimeoutSeconds = 300

// waitInformMRebootState waits for the device's post-reboot Inform carrying
// the "M Reboot" event code. A Fault arriving before that Inform is
// tolerated (some devices fault while still coming up); anything else is a
// protocol deviation.
type waitInformMRebootState struct {
	timeoutTarget    string
	postRebootTarget string
}

// NewWaitInformMRebootState builds the state.
func NewWaitInformMRebootState(timeoutTarget, postRebootTarget string) State {
	return &waitInformMRebootState{timeoutTarget: timeoutTarget, postRebootTarget: postRebootTarget}
}

func (s *waitInformMRebootState) Name() string { return StateNameWaitInformMReboot }

func (s *waitInformMRebootState) Enter(sm *StateMachine) {
	sm.SetReceivedRebootInform(false)
	sm.ScheduleTimer("reboot-inform-timeout", RebootInformTimeoutSeconds, func() {
		// The original raises Tr069Error synchronously alongside the forced
		// transition, since its single-threaded reactor lets that exception
		// reach the same call stack driving the timeout. A Go timer fires on
		// its own goroutine with no caller waiting on it, so there is nothing
		// to propagate the error to — we log it and drive the machine to the
		// timeout target instead, leaving Error-state entry to whatever
		// watchdog monitors timeoutTarget.
		logging.WithState(sm.Device, StateNameWaitInformMReboot).
			Error("timed out waiting for post-reboot inform")
		sm.RequestTimerTransition(StateNameWaitInformMReboot, s.timeoutTarget)
	})
}

func (s *waitInformMRebootState) Exit(sm *StateMachine) {}

func (s *waitInformMRebootState) HandleRead(sm *StateMachine, msg cwmp.Message) (ReadResult, error) {
	switch m := msg.(type) {
	case cwmp.Inform:
		if !hasEventCode(m, cwmp.RebootEventCode) {
			return ReadResult{}, acserrors.NewTr069Error("post-reboot inform missing %q event", cwmp.RebootEventCode)
		}
		sm.SetReceivedRebootInform(true)
		applyInform(sm, m)
		return handled(), nil
	case cwmp.Fault:
		return handled(), nil
	default:
		return notHandled(), nil
	}
}

func (s *waitInformMRebootState) HandleSend(sm *StateMachine) (SendResult, error) {
	if sm.ReceivedRebootInform() {
		return SendResult{Msg: cwmp.NewInformResponse(), NextState: s.postRebootTarget}, nil
	}
	return SendResult{Msg: cwmp.DummyInput{}}, nil
}

// RebootSettleDelaySeconds is the pause after a post-reboot Inform before
// resuming normal provisioning, per spec.md §6.
const RebootSettleDelaySeconds = 10

// waitRebootDelayState absorbs the short window where a device can
// reconnect faster than it can honor a fresh configuration sequence.
type waitRebootDelayState struct {
	target string
}

// NewWaitRebootDelayState builds the state.
func NewWaitRebootDelayState(target string) State {
	return &waitRebootDelayState{target: target}
}

func (s *waitRebootDelayState) Name() string { return StateNameWaitRebootDelay }

func (s *waitRebootDelayState) Enter(sm *StateMachine) {
	sm.ScheduleTimer("reboot-settle", RebootSettleDelaySeconds, func() {
		sm.RequestTimerTransition(StateNameWaitRebootDelay, s.target)
	})
}

func (s *waitRebootDelayState) Exit(sm *StateMachine) {}

func (s *waitRebootDelayState) HandleRead(sm *StateMachine, msg cwmp.Message) (ReadResult, error) {
	return handled(), nil
}

func (s *waitRebootDelayState) HandleSend(sm *StateMachine) (SendResult, error) {
	return SendResult{Msg: cwmp.DummyInput{}}, nil
}
