package enbacs

import "github.com/enbacsd/enbacsd/pkg/cwmp"

// unimplementedState can be embedded by states that only implement one
// half, so the other half raises a ConfigurationError instead of a nil
// pointer panic. Every concrete state still names itself via Name(); this
// only supplies the "wrong half invoked" fallback.
type unimplementedState struct {
	name string
}

func (u unimplementedState) Name() string { return u.name }

func (u unimplementedState) Enter(sm *StateMachine) {}
func (u unimplementedState) Exit(sm *StateMachine)  {}

func (u unimplementedState) HandleRead(sm *StateMachine, msg cwmp.Message) (ReadResult, error) {
	return ReadResult{}, NewUnsupportedHalfError(u.name, "read")
}

func (u unimplementedState) HandleSend(sm *StateMachine) (SendResult, error) {
	return SendResult{}, NewUnsupportedHalfError(u.name, "send")
}
