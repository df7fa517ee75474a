package enbacs

import (
	"sort"

	"github.com/enbacsd/enbacsd/internal/acserrors"
	"github.com/enbacsd/enbacsd/pkg/cwmp"
)

// setParameterValuesState builds one SetParameterValues containing every
// scalar and object sub-parameter that differs from the desired
// configuration. excludeAdmin, when set, drops AdminEnable from the batch
// so the device isn't told to radiate before the rest of its configuration
// has landed — this is what distinguishes SetParameterValuesNotAdmin from
// SetParameterValues in spec.md §4.2.
type setParameterValuesState struct {
	unimplementedState
	target       string
	excludeAdmin bool
}

// NewSetParameterValuesState builds the state that includes every
// differing parameter, admin-enable included.
func NewSetParameterValuesState(target string) State {
	return &setParameterValuesState{
		unimplementedState: unimplementedState{name: StateNameSetParameterValues},
		target:             target,
	}
}

// NewSetParameterValuesNotAdminState builds the variant used when the set
// must not radiate yet.
func NewSetParameterValuesNotAdminState(target string) State {
	return &setParameterValuesState{
		unimplementedState: unimplementedState{name: StateNameSetParamValuesNotAdmin},
		target:             target,
		excludeAdmin:       true,
	}
}

func (s *setParameterValuesState) HandleSend(sm *StateMachine) (SendResult, error) {
	scalar := ParamValuesToSet(sm.Desired(), sm.DeviceConfig, sm.Model, s.excludeAdmin)
	objValues := ObjParamValuesToSet(sm.Desired(), sm.DeviceConfig, sm.Model)

	names := make([]ParamName, 0, len(scalar))
	for name := range scalar {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	var values []cwmp.ParameterValueStruct
	for _, name := range names {
		p, ok := sm.Model.GetParameter(name)
		if !ok {
			continue
		}
		wireType, ok := p.Type.WireType()
		if !ok {
			return SendResult{}, acserrors.NewTr069Error("Unsupported type for parameter %s", name)
		}
		values = append(values, cwmp.ParameterValueStruct{
			Name:  p.Path,
			Value: cwmp.AnySimpleType{Type: wireType, Data: p.ToWire(scalar[name])},
		})
	}

	for _, ov := range objValues {
		objName := ObjectName(ov.Template, ov.Instance)
		p, ok := sm.Model.GetObjectParameter(objName, ov.Sub)
		if !ok {
			continue
		}
		wireType, ok := p.Type.WireType()
		if !ok {
			return SendResult{}, acserrors.NewTr069Error("Unsupported type for parameter %s", ov.Sub)
		}
		values = append(values, cwmp.ParameterValueStruct{
			Name:  p.Path,
			Value: cwmp.AnySimpleType{Type: wireType, Data: p.ToWire(ov.Value)},
		})
	}

	sm.SetPendingSet(scalar, objValues)

	return SendResult{
		Msg:       cwmp.SetParameterValues{ParameterList: cwmp.NewParameterValueList(values)},
		NextState: s.target,
	}, nil
}

// waitSetParameterValuesState confirms a SetParameterValues round trip and
// mirrors the attempted values into device config, but only once the
// device reports success.
type waitSetParameterValuesState struct {
	unimplementedState
	target string
}

// NewWaitSetParameterValuesState builds the state under the given catalog
// name. The not-admin and full set passes each need their own wait state
// (different targets), so name distinguishes StateNameWaitSetParameterValues
// from StateNameWaitSetParamValuesNotAdmin — both share this implementation.
func NewWaitSetParameterValuesState(name, target string) State {
	return &waitSetParameterValuesState{
		unimplementedState: unimplementedState{name: name},
		target:             target,
	}
}

func (s *waitSetParameterValuesState) HandleRead(sm *StateMachine, msg cwmp.Message) (ReadResult, error) {
	switch m := msg.(type) {
	case cwmp.SetParameterValuesResponse:
		if m.Status != 0 {
			return ReadResult{}, acserrors.NewTr069Error("SetParameterValues failed with status %d", m.Status)
		}
		scalar, objValues := sm.PendingSet()
		for name, value := range scalar {
			sm.DeviceConfig.SetParameter(name, value)
		}
		for _, ov := range objValues {
			sm.DeviceConfig.SetParameterForObject(ov.Template, ov.Instance, ov.Sub, ov.Value)
		}
	case cwmp.Fault:
		entry := sm.logEntry()
		for _, f := range m.SetParameterValuesFault {
			entry.WithField("parameter", f.ParameterName).
				WithField("fault_code", f.FaultCode).
				WithField("fault_string", f.FaultString).
				Error("set parameter values fault")
		}
		return ReadResult{}, acserrors.NewTr069Error("SetParameterValues fault: %s", m.FaultString)
	default:
		return notHandled(), nil
	}
	return transitionTo(s.target), nil
}
