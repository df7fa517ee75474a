package enbacs

import "github.com/enbacsd/enbacsd/pkg/cwmp"

// errorState is the absorbing sink a machine lands in after a Tr069Error.
// It never transitions on its own — only an operator-issued force
// transition (e.g. triggering a reboot) moves the machine out of it.
type errorState struct{}

// NewErrorState builds the state.
func NewErrorState() State {
	return &errorState{}
}

func (s *errorState) Name() string           { return StateNameError }
func (s *errorState) Enter(sm *StateMachine) {}
func (s *errorState) Exit(sm *StateMachine)  {}

func (s *errorState) HandleRead(sm *StateMachine, msg cwmp.Message) (ReadResult, error) {
	return handled(), nil
}

func (s *errorState) HandleSend(sm *StateMachine) (SendResult, error) {
	return SendResult{Msg: cwmp.DummyInput{}}, nil
}
