package enbacs

import (
	"github.com/enbacsd/enbacsd/internal/acserrors"
	"github.com/enbacsd/enbacsd/pkg/cwmp"
)

// checkOptionalParamsState walks the data model's presence-unknown
// parameters one at a time, probing each with its own GetParameterValues,
// until every parameter's presence is resolved.
type checkOptionalParamsState struct {
	target string
}

// NewCheckOptionalParamsState builds the state.
func NewCheckOptionalParamsState(target string) State {
	return &checkOptionalParamsState{target: target}
}

func (s *checkOptionalParamsState) Name() string           { return StateNameCheckOptionalParams }
func (s *checkOptionalParamsState) Enter(sm *StateMachine) {}
func (s *checkOptionalParamsState) Exit(sm *StateMachine)  {}

func (s *checkOptionalParamsState) HandleSend(sm *StateMachine) (SendResult, error) {
	name, ok := sm.Model.OptionalParamToCheck()
	if !ok {
		return SendResult{}, acserrors.NewTr069Error("Invalid State")
	}
	sm.SetPendingOptionalParam(name)
	path := paramPath(sm.Model, name)
	return SendResult{Msg: cwmp.GetParameterValues{ParameterNames: cwmp.NewParameterNames([]string{path})}}, nil
}

func (s *checkOptionalParamsState) HandleRead(sm *StateMachine, msg cwmp.Message) (ReadResult, error) {
	name := sm.PendingOptionalParam()
	switch m := msg.(type) {
	case cwmp.Fault:
		sm.Model.SetParameterPresence(name, false)
	case cwmp.GetParameterValuesResponse:
		sm.Model.SetParameterPresence(name, true)
		if len(m.ParameterList) > 0 {
			if p, ok := sm.Model.GetParameter(name); ok {
				if native, err := p.ToNative(m.ParameterList[0].Value.Data); err == nil {
					sm.DeviceConfig.SetParameter(name, native)
				}
			}
		}
	default:
		return notHandled(), nil
	}

	if _, more := sm.Model.OptionalParamToCheck(); more {
		return handled(), nil
	}
	return transitionTo(s.target), nil
}

// sendGetTransientParametersState issues a single GetParameterValues for
// the fixed transient status parameters spec.md §4.2 names: op-state,
// RF-TX, GPS fix/lat/long, PTP, MME.
type sendGetTransientParametersState struct {
	unimplementedState
	target string
}

// TransientParamNames is the fixed list of status parameters fetched on
// every transient-parameters cycle.
var TransientParamNames = []ParamName{
	ParamOpState,
	ParamRFTxStatus,
	ParamGPSStatus,
	ParamGPSLat,
	ParamGPSLong,
	ParamPTPStatus,
	ParamMMEStatus,
}

// NewSendGetTransientParametersState builds the state.
func NewSendGetTransientParametersState(target string) State {
	return &sendGetTransientParametersState{
		unimplementedState: unimplementedState{name: StateNameSendGetTransientParams},
		target:             target,
	}
}

func (s *sendGetTransientParametersState) HandleSend(sm *StateMachine) (SendResult, error) {
	var paths []string
	for _, name := range TransientParamNames {
		if p, ok := sm.Model.GetParameter(name); ok {
			paths = append(paths, p.Path)
		}
	}
	return SendResult{
		Msg:       cwmp.GetParameterValues{ParameterNames: cwmp.NewParameterNames(paths)},
		NextState: s.target,
	}, nil
}

// waitGetTransientParametersState parses the transient-parameters response,
// detects the RF-TX radio-stop edge, and picks the next discovery phase via
// the shared priority ladder (delete > add > set > skip, expressed here as
// get-params > get-obj-params > delete > add > skip since this is the first
// rung of the ladder).
type waitGetTransientParametersState struct {
	unimplementedState
	getParamsTarget    string
	getObjParamsTarget string
	deleteObjTarget    string
	addObjTarget       string
	skipTarget         string
}

// WaitGetTransientParametersTargets names the five next-state options this
// state's priority ladder chooses between.
type WaitGetTransientParametersTargets struct {
	GetParams    string
	GetObjParams string
	DeleteObj    string
	AddObj       string
	Skip         string
}

// NewWaitGetTransientParametersState builds the state.
func NewWaitGetTransientParametersState(t WaitGetTransientParametersTargets) State {
	return &waitGetTransientParametersState{
		unimplementedState: unimplementedState{name: StateNameWaitGetTransientParams},
		getParamsTarget:    t.GetParams,
		getObjParamsTarget: t.GetObjParams,
		deleteObjTarget:    t.DeleteObj,
		addObjTarget:       t.AddObj,
		skipTarget:         t.Skip,
	}
}

func (s *waitGetTransientParametersState) HandleRead(sm *StateMachine, msg cwmp.Message) (ReadResult, error) {
	resp, ok := msg.(cwmp.GetParameterValuesResponse)
	if !ok {
		return notHandled(), nil
	}

	for _, pv := range resp.ParameterList {
		name, p, ok := lookupByPath(sm.Model, pv.Name)
		if !ok {
			continue
		}
		native, err := p.ToNative(pv.Value.Data)
		if err != nil {
			continue
		}
		if name == ParamRFTxStatus {
			newOn, _ := native.(bool)
			wasOn := sm.WasRFTxOn()
			if wasOn && !newOn && sm.Stats != nil {
				_ = sm.Stats.ClearStats(sm.Device)
			}
			sm.SetWasRFTxOn(newOn)
		}
		sm.DeviceConfig.SetParameter(name, native)
	}

	if sm.Status != nil {
		_ = sm.Status.PutStatus(sm.Device, s.Name(), "")
	}

	return transitionTo(s.nextTarget(sm)), nil
}

func (s *waitGetTransientParametersState) nextTarget(sm *StateMachine) string {
	if len(ParamsToGet(sm.DeviceConfig, sm.Model)) > 0 {
		return s.getParamsTarget
	}
	if len(ObjectParamsToGet(sm.Desired(), sm.DeviceConfig, sm.Model)) > 0 {
		return s.getObjParamsTarget
	}
	if len(ObjectsToDelete(sm.Desired(), sm.DeviceConfig)) > 0 {
		return s.deleteObjTarget
	}
	if len(ObjectsToAdd(sm.Desired(), sm.DeviceConfig)) > 0 {
		return s.addObjTarget
	}
	return s.skipTarget
}

// getParametersState fetches every non-object parameter the device store
// still considers unknown or stale.
type getParametersState struct {
	target string
}

// NewGetParametersState builds the state.
func NewGetParametersState(target string) State {
	return &getParametersState{target: target}
}

func (s *getParametersState) Name() string           { return StateNameGetParameters }
func (s *getParametersState) Enter(sm *StateMachine) {}
func (s *getParametersState) Exit(sm *StateMachine)  {}

func (s *getParametersState) HandleRead(sm *StateMachine, msg cwmp.Message) (ReadResult, error) {
	if _, ok := msg.(cwmp.DummyInput); ok {
		return handled(), nil
	}
	return notHandled(), nil
}

func (s *getParametersState) HandleSend(sm *StateMachine) (SendResult, error) {
	var paths []string
	for _, name := range ParamsToGet(sm.DeviceConfig, sm.Model) {
		paths = append(paths, paramPath(sm.Model, name))
	}
	return SendResult{
		Msg:       cwmp.GetParameterValues{ParameterNames: cwmp.NewParameterNames(paths)},
		NextState: s.target,
	}, nil
}

// waitGetParametersState stores every value GetParametersState's request
// returned.
type waitGetParametersState struct {
	unimplementedState
	target string
}

// NewWaitGetParametersState builds the state.
func NewWaitGetParametersState(target string) State {
	return &waitGetParametersState{
		unimplementedState: unimplementedState{name: StateNameWaitGetParameters},
		target:             target,
	}
}

func (s *waitGetParametersState) HandleRead(sm *StateMachine, msg cwmp.Message) (ReadResult, error) {
	resp, ok := msg.(cwmp.GetParameterValuesResponse)
	if !ok {
		return notHandled(), nil
	}
	for _, pv := range resp.ParameterList {
		name, p, ok := lookupByPath(sm.Model, pv.Name)
		if !ok {
			continue
		}
		if native, err := p.ToNative(pv.Value.Data); err == nil {
			sm.DeviceConfig.SetParameter(name, native)
		}
	}
	return transitionTo(s.target), nil
}

// getObjectParametersState fetches the sub-parameters of every object
// instance that still needs querying.
type getObjectParametersState struct {
	unimplementedState
	target string
}

// NewGetObjectParametersState builds the state.
func NewGetObjectParametersState(target string) State {
	return &getObjectParametersState{
		unimplementedState: unimplementedState{name: StateNameGetObjectParameters},
		target:             target,
	}
}

func (s *getObjectParametersState) HandleSend(sm *StateMachine) (SendResult, error) {
	var paths []string
	for _, op := range ObjectParamsToGet(sm.Desired(), sm.DeviceConfig, sm.Model) {
		objName := ObjectName(op.Template, op.Instance)
		if p, ok := sm.Model.GetObjectParameter(objName, op.Sub); ok {
			paths = append(paths, p.Path)
		}
	}
	return SendResult{
		Msg:       cwmp.GetParameterValues{ParameterNames: cwmp.NewParameterNames(paths)},
		NextState: s.target,
	}, nil
}

// DesiredConfigBuilder builds the desired configuration from operator
// intent, the device's learned config, and the data model. Implemented by
// the caller wiring the catalog — it plays the role of the original's
// mconfig/service_cfg + postprocessor pipeline.
type DesiredConfigBuilder func(sm *StateMachine) *Config

// waitGetObjectParametersState indexes the sub-parameter response by
// object instance, builds the desired configuration on first use, and
// applies the same priority ladder as waitGetTransientParametersState.
type waitGetObjectParametersState struct {
	unimplementedState
	getParamsTarget    string
	getObjParamsTarget string
	deleteObjTarget    string
	addObjTarget       string
	skipTarget         string
	build              DesiredConfigBuilder
}

// NewWaitGetObjectParametersState builds the state.
func NewWaitGetObjectParametersState(t WaitGetTransientParametersTargets, build DesiredConfigBuilder) State {
	return &waitGetObjectParametersState{
		unimplementedState: unimplementedState{name: StateNameWaitGetObjectParams},
		getParamsTarget:    t.GetParams,
		getObjParamsTarget: t.GetObjParams,
		deleteObjTarget:    t.DeleteObj,
		addObjTarget:       t.AddObj,
		skipTarget:         t.Skip,
		build:              build,
	}
}

func (s *waitGetObjectParametersState) HandleRead(sm *StateMachine, msg cwmp.Message) (ReadResult, error) {
	resp, ok := msg.(cwmp.GetParameterValuesResponse)
	if !ok {
		return notHandled(), nil
	}

	byPath := make(map[string]string, len(resp.ParameterList))
	for _, pv := range resp.ParameterList {
		byPath[pv.Name] = pv.Value.Data
	}

	numPLMNs := 0
	if v, ok := sm.DeviceConfig.GetParameter(ParamNumPLMNs); ok {
		numPLMNs = intFromNative(v)
	}

	for tmpl, subs := range sm.Model.NumberedParamNames() {
		for i := 1; i <= numPLMNs; i++ {
			objName := ObjectName(tmpl, i)
			sm.DeviceConfig.AddObject(tmpl, i)
			for _, sub := range subs {
				p, ok := sm.Model.GetObjectParameter(objName, sub)
				if !ok {
					continue
				}
				wire, ok := byPath[p.Path]
				if !ok {
					continue
				}
				if native, err := p.ToNative(wire); err == nil {
					sm.DeviceConfig.SetParameterForObject(tmpl, i, sub, native)
				}
			}
		}
	}

	sm.EnsureDesiredConfig(func() *Config { return s.build(sm) })

	return transitionTo(s.nextTarget(sm)), nil
}

func (s *waitGetObjectParametersState) nextTarget(sm *StateMachine) string {
	if len(ParamsToGet(sm.DeviceConfig, sm.Model)) > 0 {
		return s.getParamsTarget
	}
	if len(ObjectParamsToGet(sm.Desired(), sm.DeviceConfig, sm.Model)) > 0 {
		return s.getObjParamsTarget
	}
	if len(ObjectsToDelete(sm.Desired(), sm.DeviceConfig)) > 0 {
		return s.deleteObjTarget
	}
	if len(ObjectsToAdd(sm.Desired(), sm.DeviceConfig)) > 0 {
		return s.addObjTarget
	}
	return s.skipTarget
}
