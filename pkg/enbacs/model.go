package enbacs

import (
	"strconv"
	"sync"
)

// Parameter describes one addressable device setting: its device-side
// dotted path, its scalar wire type, and the functions that translate
// between device (wire) and native (magma-side) representations.
type Parameter struct {
	Name ParamName
	Path string
	Type ScalarType

	// ToNative converts a wire string (as received in a
	// GetParameterValuesResponse) to a native Go value.
	ToNative func(wire string) (interface{}, error)

	// ToWire converts a native Go value to its wire string representation
	// for a SetParameterValues request. For boolean parameters it produces
	// the CWMP "0"/"1" form (see identityToWire in values.go); the set
	// states call it directly to fill in each value's data.
	ToWire func(native interface{}) string
}

// DataModel is the read-only, shareable facade over parameter metadata: name
// to device path, scalar type, presence tracking, and native<->device value
// transforms. It is an external collaborator per spec.md §6; this package
// defines the interface the state machine consumes and a reference
// in-memory implementation usable in tests and the acsctl demo.
type DataModel interface {
	// GetParameter returns the parameter metadata for name. ok is false if
	// name is not in the model at all (distinct from "presence unknown").
	GetParameter(name ParamName) (Parameter, bool)

	// GetObjectParameter returns parameter metadata for a sub-parameter of
	// a specific object instance (e.g. "PLMN.2" + PLMNID) — distinct from
	// GetParameter because the device path differs per instance.
	GetObjectParameter(objName string, sub ParamName) (Parameter, bool)

	// IsParameterPresent reports whether name is known-present on the
	// device. Parameters with unknown or absent presence return false.
	IsParameterPresent(name ParamName) bool

	// IsParameterPresentOrUnknown reports whether name has not been
	// confirmed absent — true for both present and not-yet-checked
	// parameters. ParamsToGet uses this: there is no reason to fetch a
	// parameter the device has already told us it doesn't have.
	IsParameterPresentOrUnknown(name ParamName) bool

	// SetParameterPresence records a just-learned presence outcome.
	SetParameterPresence(name ParamName, present bool)

	// OptionalParamToCheck returns the next parameter whose presence is
	// still unknown, or ("", false) if none remain.
	OptionalParamToCheck() (ParamName, bool)

	// AllParamNames returns every parameter name in the model (excluding
	// object sub-parameters), in a stable order.
	AllParamNames() []ParamName

	// NumberedParamNames returns, for each object template, the ordered
	// list of sub-parameter names every instance carries.
	NumberedParamNames() map[ObjectTemplate][]ParamName

	// TransformForMagma converts a wire value to its native representation.
	TransformForMagma(name ParamName, wire string) (interface{}, error)

	// TransformForEnb converts a native value to its wire string.
	TransformForEnb(name ParamName, native interface{}) string
}

// ReferenceDataModel is a concrete, in-memory DataModel suitable for tests
// and demos. Production deployments would back GetParameter/NumberedParamNames
// with a generated table derived from the device's TR-069 data model XML —
// out of scope here per spec.md §1.
type ReferenceDataModel struct {
	mu       sync.RWMutex
	params   map[ParamName]Parameter
	presence map[ParamName]Presence
	numbered map[ObjectTemplate][]ParamName
	order    []ParamName
}

// NewReferenceDataModel builds the standard eNodeB parameter set described
// in spec.md §4.2 (transient status parameters, PLMN object sub-parameters,
// NumPLMNs, AdminEnable), all known-present except where noted.
func NewReferenceDataModel() *ReferenceDataModel {
	m := &ReferenceDataModel{
		params:   make(map[ParamName]Parameter),
		presence: make(map[ParamName]Presence),
		numbered: map[ObjectTemplate][]ParamName{
			PLMNTemplate: {SubParamPLMNPLMNID, SubParamPLMNCellReservedForOper},
		},
	}

	add := func(name ParamName, path string, typ ScalarType, present bool) {
		m.params[name] = Parameter{
			Name:     name,
			Path:     path,
			Type:     typ,
			ToNative: identityToNative(typ),
			ToWire:   identityToWire(typ),
		}
		if present {
			m.presence[name] = PresencePresent
		} else {
			m.presence[name] = PresenceUnknown
		}
		m.order = append(m.order, name)
	}

	add(ParamOpState, "Device.DeviceInfo.X_OPSTATE", TypeString, true)
	add(ParamRFTxStatus, "Device.FAP.GPS.RFTxStatus", TypeBoolean, true)
	add(ParamGPSStatus, "Device.FAP.GPS.Status", TypeBoolean, false)
	add(ParamGPSLat, "Device.FAP.GPS.LatitudeValue", TypeString, false)
	add(ParamGPSLong, "Device.FAP.GPS.LongitudeValue", TypeString, false)
	add(ParamPTPStatus, "Device.Services.FAPService.1.FAPControl.LTE.X_PTP_STATUS", TypeBoolean, false)
	add(ParamMMEStatus, "Device.Services.FAPService.1.FAPControl.LTE.X_MME_STATUS", TypeBoolean, true)
	add(ParamNumPLMNs, "Device.Services.FAPService.1.CellConfig.LTE.EPC.PLMNListNumberOfEntries", TypeUnsignedInt, true)
	add(ParamAdminEnable, "Device.Services.FAPService.1.FAPControl.LTE.AdminState", TypeBoolean, true)

	for i := 1; i <= 8; i++ {
		obj := ObjectName(PLMNTemplate, i)
		base := "Device.Services.FAPService.1.CellConfig.LTE.EPC.PLMNList." +
			strconv.Itoa(i) + "."
		m.params[plmnSubKey(obj, SubParamPLMNPLMNID)] = Parameter{
			Name: SubParamPLMNPLMNID, Path: base + "PLMNID", Type: TypeString,
			ToNative: identityToNative(TypeString), ToWire: identityToWire(TypeString),
		}
		m.params[plmnSubKey(obj, SubParamPLMNCellReservedForOper)] = Parameter{
			Name: SubParamPLMNCellReservedForOper, Path: base + "CellReservedForOperatorUse",
			Type: TypeBoolean, ToNative: identityToNative(TypeBoolean), ToWire: identityToWire(TypeBoolean),
		}
	}

	return m
}

// plmnSubKey namespaces a numbered sub-parameter lookup by its owning
// instance, since the same sub-parameter name repeats across instances with
// different device paths.
func plmnSubKey(objName string, sub ParamName) ParamName {
	return ParamName(objName + "/" + string(sub))
}

func (m *ReferenceDataModel) GetParameter(name ParamName) (Parameter, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.params[name]
	return p, ok
}

// GetObjectParameter returns metadata for a sub-parameter of a specific
// object instance (e.g. "PLMN.2" + PLMNID), distinct from GetParameter
// because the device path differs per instance.
func (m *ReferenceDataModel) GetObjectParameter(objName string, sub ParamName) (Parameter, bool) {
	return m.GetParameter(plmnSubKey(objName, sub))
}

func (m *ReferenceDataModel) IsParameterPresent(name ParamName) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.presence[name] == PresencePresent
}

func (m *ReferenceDataModel) IsParameterPresentOrUnknown(name ParamName) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.presence[name] != PresenceAbsent
}

func (m *ReferenceDataModel) SetParameterPresence(name ParamName, present bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if present {
		m.presence[name] = PresencePresent
	} else {
		m.presence[name] = PresenceAbsent
	}
}

func (m *ReferenceDataModel) OptionalParamToCheck() (ParamName, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, name := range m.order {
		if m.presence[name] == PresenceUnknown {
			return name, true
		}
	}
	return "", false
}

func (m *ReferenceDataModel) AllParamNames() []ParamName {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ParamName, len(m.order))
	copy(out, m.order)
	return out
}

func (m *ReferenceDataModel) NumberedParamNames() map[ObjectTemplate][]ParamName {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[ObjectTemplate][]ParamName, len(m.numbered))
	for k, v := range m.numbered {
		cp := make([]ParamName, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

func (m *ReferenceDataModel) TransformForMagma(name ParamName, wire string) (interface{}, error) {
	p, ok := m.GetParameter(name)
	if !ok {
		return nil, NewUnknownParameterError(name)
	}
	return p.ToNative(wire)
}

func (m *ReferenceDataModel) TransformForEnb(name ParamName, native interface{}) string {
	p, ok := m.GetParameter(name)
	if !ok {
		return ""
	}
	return p.ToWire(native)
}
