package acserrors

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigurationErrorUnwraps(t *testing.T) {
	err := NewConfigurationError("GET_PARAMETERS", "HandleSend not implemented for this half")
	if !errors.Is(err, ErrConfiguration) {
		t.Error("ConfigurationError should unwrap to ErrConfiguration")
	}
	if !strings.Contains(err.Error(), "GET_PARAMETERS") {
		t.Errorf("Error() = %q, want it to contain the state name", err.Error())
	}
}

func TestTr069ErrorUnwraps(t *testing.T) {
	err := NewTr069Error("SetParameterValues failed with status %d", 9005)
	if !errors.Is(err, ErrTr069) {
		t.Error("Tr069Error should unwrap to ErrTr069")
	}
	if !strings.Contains(err.Error(), "9005") {
		t.Errorf("Error() = %q, want it to contain the formatted status", err.Error())
	}
}

func TestErrProtocolDeviationIsDistinctSentinel(t *testing.T) {
	if errors.Is(ErrProtocolDeviation, ErrTr069) {
		t.Error("ErrProtocolDeviation should not classify as a Tr069Error")
	}
}
