package enbacs

import (
	"fmt"
	"strconv"

	"github.com/enbacsd/enbacsd/internal/acserrors"
)

// NewUnknownParameterError reports a lookup for a parameter name the data
// model has no metadata for — a ConfigurationError, since it means a state
// handler referenced a name outside the fixed enumeration.
func NewUnknownParameterError(name ParamName) error {
	return acserrors.NewConfigurationError("DataModel", fmt.Sprintf("unknown parameter %q", name))
}

// NewUnsupportedHalfError reports a state invoked on the half it doesn't
// implement — a read-only state asked to produce outbound, or a send-only
// state handed an inbound message.
func NewUnsupportedHalfError(state, half string) error {
	return acserrors.NewConfigurationError(state, fmt.Sprintf("state does not implement %s", half))
}

// identityToNative returns the wire->native conversion function for a scalar
// type. Int and unsignedInt parse to int64, boolean parses the CWMP "0"/"1"
// convention to bool, and string passes through unchanged.
func identityToNative(t ScalarType) func(string) (interface{}, error) {
	switch t {
	case TypeInt, TypeUnsignedInt:
		return func(wire string) (interface{}, error) {
			n, err := strconv.ParseInt(wire, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parse %s value %q: %w", t, wire, err)
			}
			return n, nil
		}
	case TypeBoolean:
		return func(wire string) (interface{}, error) {
			switch wire {
			case "1", "true", "True":
				return true, nil
			case "0", "false", "False":
				return false, nil
			default:
				return nil, fmt.Errorf("parse boolean value %q", wire)
			}
		}
	default:
		return func(wire string) (interface{}, error) {
			return wire, nil
		}
	}
}

// identityToWire returns the native->wire conversion function for a scalar
// type. Booleans are encoded "0"/"1" per TR-069 convention, matching the
// original implementation's str(int(value)) on boolean parameters.
func identityToWire(t ScalarType) func(interface{}) string {
	switch t {
	case TypeBoolean:
		return func(native interface{}) string {
			if b, ok := native.(bool); ok && b {
				return "1"
			}
			return "0"
		}
	case TypeInt, TypeUnsignedInt:
		return func(native interface{}) string {
			return fmt.Sprintf("%d", native)
		}
	default:
		return func(native interface{}) string {
			return fmt.Sprintf("%v", native)
		}
	}
}

// String names a ScalarType for error messages.
func (t ScalarType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeUnsignedInt:
		return "unsignedInt"
	case TypeBoolean:
		return "boolean"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}
