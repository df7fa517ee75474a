package enbacs

import (
	"github.com/enbacsd/enbacsd/internal/acserrors"
	"github.com/enbacsd/enbacsd/pkg/cwmp"
)

// deleteObjectsState removes object instances one at a time until device
// config matches desired config's instance set, self-looping between each
// DeleteObject/DeleteObjectResponse round trip.
type deleteObjectsState struct {
	addObjTarget string
	skipTarget   string
}

// NewDeleteObjectsState builds the state.
func NewDeleteObjectsState(addObjTarget, skipTarget string) State {
	return &deleteObjectsState{addObjTarget: addObjTarget, skipTarget: skipTarget}
}

func (s *deleteObjectsState) Name() string           { return StateNameDeleteObjects }
func (s *deleteObjectsState) Enter(sm *StateMachine) {}
func (s *deleteObjectsState) Exit(sm *StateMachine)  {}

func (s *deleteObjectsState) HandleSend(sm *StateMachine) (SendResult, error) {
	toDelete := ObjectsToDelete(sm.Desired(), sm.DeviceConfig)
	if len(toDelete) == 0 {
		return SendResult{}, acserrors.NewTr069Error("DeleteObjects entered with nothing to delete")
	}
	name := toDelete[0]
	sm.SetPendingDeleteObject(name)
	return SendResult{Msg: cwmp.DeleteObject{ObjectName: name}}, nil
}

func (s *deleteObjectsState) HandleRead(sm *StateMachine, msg cwmp.Message) (ReadResult, error) {
	switch m := msg.(type) {
	case cwmp.DeleteObjectResponse:
		if m.Status != 0 {
			return ReadResult{}, acserrors.NewTr069Error("DeleteObject failed with status %d", m.Status)
		}
	case cwmp.Fault:
		return ReadResult{}, acserrors.NewTr069Error("DeleteObject fault: %s", m.FaultString)
	default:
		return notHandled(), nil
	}

	if tmpl, instance, ok := parseObjectName(sm.PendingDeleteObject()); ok {
		sm.DeviceConfig.DeleteObject(tmpl, instance)
	}

	if len(ObjectsToDelete(sm.Desired(), sm.DeviceConfig)) > 0 {
		return handled(), nil
	}
	if len(ObjectsToAdd(sm.Desired(), sm.DeviceConfig)) == 0 {
		return transitionTo(s.skipTarget), nil
	}
	return transitionTo(s.addObjTarget), nil
}

// addObjectsState adds object instances one at a time until device config
// covers desired config's instance set.
type addObjectsState struct {
	target string
}

// NewAddObjectsState builds the state.
func NewAddObjectsState(target string) State {
	return &addObjectsState{target: target}
}

func (s *addObjectsState) Name() string           { return StateNameAddObjects }
func (s *addObjectsState) Enter(sm *StateMachine) {}
func (s *addObjectsState) Exit(sm *StateMachine)  {}

func (s *addObjectsState) HandleSend(sm *StateMachine) (SendResult, error) {
	toAdd := ObjectsToAdd(sm.Desired(), sm.DeviceConfig)
	if len(toAdd) == 0 {
		return SendResult{}, acserrors.NewTr069Error("AddObjects entered with nothing to add")
	}
	tmpl := toAdd[0]
	sm.SetPendingAddTemplate(tmpl)
	return SendResult{Msg: cwmp.AddObject{ObjectName: string(tmpl) + "."}}, nil
}

func (s *addObjectsState) HandleRead(sm *StateMachine, msg cwmp.Message) (ReadResult, error) {
	switch m := msg.(type) {
	case cwmp.AddObjectResponse:
		if m.Status != 0 {
			return ReadResult{}, acserrors.NewTr069Error("AddObject failed with status %d", m.Status)
		}
		sm.DeviceConfig.AddObject(sm.PendingAddTemplate(), m.InstanceNumber)
	case cwmp.Fault:
		return ReadResult{}, acserrors.NewTr069Error("AddObject fault: %s", m.FaultString)
	default:
		return notHandled(), nil
	}

	if len(ObjectsToAdd(sm.Desired(), sm.DeviceConfig)) > 0 {
		return handled(), nil
	}
	return transitionTo(s.target), nil
}
