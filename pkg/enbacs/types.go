// Package enbacs implements the per-device CWMP/TR-069 provisioning state
// machine: the state catalog, the dispatcher that drives it, and the pure
// reconciliation helpers that diff a desired configuration against an
// observed one.
package enbacs

import "fmt"

// ParamName is a symbolic parameter name from the data model's fixed
// enumeration — never a device-side dotted path.
type ParamName string

// Scalar status/config parameters the state machine names directly.
const (
	ParamOpState     ParamName = "OpState"
	ParamRFTxStatus  ParamName = "RFTxStatus"
	ParamGPSStatus   ParamName = "GPSStatus"
	ParamGPSLat      ParamName = "GPSLat"
	ParamGPSLong     ParamName = "GPSLong"
	ParamPTPStatus   ParamName = "PTPStatus"
	ParamMMEStatus   ParamName = "MMEStatus"
	ParamNumPLMNs    ParamName = "NumPLMNs"
	ParamAdminEnable ParamName = "AdminEnable"
)

// Sub-parameters carried by each numbered PLMN object instance.
const (
	SubParamPLMNPLMNID              ParamName = "PLMNID"
	SubParamPLMNCellReservedForOper ParamName = "CellReservedForOper"
)

// ObjectTemplate is the template name of a multi-instance object, e.g. the
// family every PLMN.<n> instance belongs to.
type ObjectTemplate string

// PLMNTemplate is the template name for PLMN list entries.
const PLMNTemplate ObjectTemplate = "PLMN"

// ObjectName returns the concrete instance name for a template and index,
// e.g. ObjectName(PLMNTemplate, 2) == "PLMN.2". This is the Go analogue of the
// original's "%d"-formatted template name substitution on AddObjectResponse.
func ObjectName(tmpl ObjectTemplate, instance int) string {
	return fmt.Sprintf("%s.%d", tmpl, instance)
}

// ScalarType is the wire type tag a data model assigns a parameter.
type ScalarType int

const (
	TypeInt ScalarType = iota
	TypeUnsignedInt
	TypeBoolean
	TypeString
)

// WireType returns the xsd wire type string for a scalar type, or ("", false)
// for an unsupported tag — callers raise Tr069Error("Unsupported type...")
// in that case, per spec.md §4.2 SetParameterValues.
func (t ScalarType) WireType() (string, bool) {
	switch t {
	case TypeInt:
		return "xsd:int", true
	case TypeUnsignedInt:
		return "xsd:unsignedInt", true
	case TypeBoolean:
		return "xsd:boolean", true
	case TypeString:
		return "xsd:string", true
	default:
		return "", false
	}
}

// Presence records whether a data-model parameter is known to exist on the
// device, known to be absent, or not yet probed.
type Presence int

const (
	PresenceUnknown Presence = iota
	PresencePresent
	PresenceAbsent
)
