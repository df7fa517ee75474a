// Package acserrors defines the two error kinds the provisioning state
// machine surfaces: ConfigurationError for programmer misuse of a state's
// read/send half, and Tr069Error for protocol-level failures.
package acserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors so callers can classify with errors.Is without depending
// on the concrete wrapping type.
var (
	// ErrConfiguration marks a state invoked on the half it doesn't implement
	// (a read-only state asked to send, or vice versa).
	ErrConfiguration = errors.New("state machine misuse")

	// ErrTr069 marks a protocol-level failure: non-zero response status, a
	// Fault where none is tolerated, a reboot-inform timeout, or an
	// unsupported parameter type on set.
	ErrTr069 = errors.New("tr-069 protocol failure")

	// ErrProtocolDeviation marks an inbound message a state's read handler
	// does not recognize at all — the device sent something outside the
	// current state's expected vocabulary.
	ErrProtocolDeviation = errors.New("unexpected message for current state")
)

// ConfigurationError represents a programmer misuse of the state machine:
// not recoverable, and escalates to the host process rather than driving a
// transition.
type ConfigurationError struct {
	State  string
	Detail string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.State, e.Detail)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// NewConfigurationError builds a ConfigurationError for the named state.
func NewConfigurationError(state, detail string) *ConfigurationError {
	return &ConfigurationError{State: state, Detail: detail}
}

// Tr069Error represents a protocol-level failure. The dispatcher catches
// this, moves the machine to the Error absorbing state, and logs it with
// the device identifier — the device stays reachable for an
// operator-triggered reboot.
type Tr069Error struct {
	Detail string
}

func (e *Tr069Error) Error() string {
	return e.Detail
}

func (e *Tr069Error) Unwrap() error {
	return ErrTr069
}

// NewTr069Error builds a Tr069Error from a formatted message.
func NewTr069Error(format string, args ...interface{}) *Tr069Error {
	return &Tr069Error{Detail: fmt.Sprintf(format, args...)}
}
