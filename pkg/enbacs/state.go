package enbacs

import "github.com/enbacsd/enbacsd/pkg/cwmp"

// ReadOutcome classifies how a state's read half disposed of an inbound
// message.
type ReadOutcome int

const (
	// NotHandled means the message does not belong in this state; the
	// dispatcher reports a protocol deviation to the transport.
	NotHandled ReadOutcome = iota
	// HandledNoTransition means the message was consumed and the machine
	// stays in the same state (a self-loop, or simply absorbing traffic).
	HandledNoTransition
	// HandledTransition means the message was consumed and NextState names
	// the state to move to.
	HandledTransition
)

// ReadResult is what a state's read half returns for one inbound message.
type ReadResult struct {
	Outcome   ReadOutcome
	NextState string
}

// notHandled is the zero-value "this message isn't mine" result.
func notHandled() ReadResult { return ReadResult{Outcome: NotHandled} }

// handled keeps the machine in its current state.
func handled() ReadResult { return ReadResult{Outcome: HandledNoTransition} }

// transitionTo moves the machine to next after handling the message.
func transitionTo(next string) ReadResult {
	return ReadResult{Outcome: HandledTransition, NextState: next}
}

// SendResult is what a state's send half returns: the outbound message to
// emit, and optionally the next state to move to immediately afterward.
// NextState == "" means stay put (e.g. BaicellsRemWait issuing DummyInput
// while its timer is still pending).
type SendResult struct {
	Msg       cwmp.Message
	NextState string
}

// State is one node of the provisioning catalog. Per spec.md §4.1, enter()
// may schedule timers but must never send messages; exit() must cancel
// every timer it scheduled. Most states implement both halves; a few are
// read-only or send-only, and invoking the half they don't implement is a
// ConfigurationError (see base.go's unimplementedState and values.go's
// NewUnsupportedHalfError).
type State interface {
	// Name is the catalog key this state is registered under, and the
	// value other states reference as a transition target.
	Name() string

	// Enter runs once, immediately after the dispatcher binds this state as
	// current. It may arm timers through sm.ScheduleTimer.
	Enter(sm *StateMachine)

	// Exit runs once, immediately before the dispatcher unbinds this state.
	// Any timer armed in Enter is canceled by transition() right after Exit
	// returns, so most Exit implementations are no-ops; states
	// that need to observe "did my timer fire before I was replaced" do
	// that inside the timer callback itself, not here.
	Exit(sm *StateMachine)

	// HandleRead processes one inbound message.
	HandleRead(sm *StateMachine, msg cwmp.Message) (ReadResult, error)

	// HandleSend produces the next outbound message, if any.
	HandleSend(sm *StateMachine) (SendResult, error)
}
