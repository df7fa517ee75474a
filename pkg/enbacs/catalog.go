package enbacs

// NewCatalog wires every state in the provisioning catalog together into
// the standard session flow:
//
//	Inform -> WaitEmptyMessage -> CheckOptionalParams
//	       -> SendGetTransientParams -> WaitGetTransientParams (ladder)
//	       -> [GetParameters -> WaitGetParameters ->]
//	       -> GetObjectParameters -> WaitGetObjectParameters (ladder)
//	       -> [DeleteObjects ->] [AddObjects ->]
//	       -> SetParameterValuesNotAdmin -> WaitSetParameterValuesNotAdmin
//	       -> SetParameterValues -> WaitSetParameterValues
//	       -> SendReboot -> WaitRebootResponse -> WaitInformMReboot
//	       -> WaitRebootDelay -> Disconnected (fresh session)
//
// The two ladder states (WaitGetTransientParams, WaitGetObjectParams) can
// shortcut any of the bracketed legs depending on what's already known,
// per spec.md §4.2's priority ladder. Reboot-after-configure is this
// catalog's policy choice for how changes take effect — see DESIGN.md.
//
// build is the desired-configuration builder invoked the first time
// WaitGetObjectParameters needs one.
func NewCatalog(build DesiredConfigBuilder) map[string]State {
	ladder := WaitGetTransientParametersTargets{
		GetParams:    StateNameGetParameters,
		GetObjParams: StateNameGetObjectParameters,
		DeleteObj:    StateNameDeleteObjects,
		AddObj:       StateNameAddObjects,
		Skip:         StateNameSetParamValuesNotAdmin,
	}

	catalog := map[string]State{
		StateNameDisconnected:         NewDisconnectedState(StateNameWaitEmptyMessage),
		StateNameUnexpectedInform:     NewUnexpectedInformState(StateNameWaitEmptyMessage),
		StateNameBaicellsDisconnected: NewBaicellsDisconnectedState(StateNameBaicellsRemWait),
		StateNameBaicellsRemWait:      NewBaicellsRemWaitState(StateNameWaitEmptyMessage),
		StateNameWaitEmptyMessage:     NewWaitEmptyMessageState(StateNameCheckOptionalParams),

		StateNameCheckOptionalParams:    NewCheckOptionalParamsState(StateNameSendGetTransientParams),
		StateNameSendGetTransientParams: NewSendGetTransientParametersState(StateNameWaitGetTransientParams),
		StateNameWaitGetTransientParams: NewWaitGetTransientParametersState(ladder),

		StateNameGetParameters:     NewGetParametersState(StateNameWaitGetParameters),
		StateNameWaitGetParameters: NewWaitGetParametersState(StateNameGetObjectParameters),

		StateNameGetObjectParameters: NewGetObjectParametersState(StateNameWaitGetObjectParams),
		StateNameWaitGetObjectParams: NewWaitGetObjectParametersState(ladder, build),

		StateNameDeleteObjects: NewDeleteObjectsState(StateNameAddObjects, StateNameSetParamValuesNotAdmin),
		StateNameAddObjects:    NewAddObjectsState(StateNameSetParamValuesNotAdmin),

		StateNameSetParamValuesNotAdmin:     NewSetParameterValuesNotAdminState(StateNameWaitSetParamValuesNotAdmin),
		StateNameWaitSetParamValuesNotAdmin: NewWaitSetParameterValuesState(StateNameWaitSetParamValuesNotAdmin, StateNameSetParameterValues),
		StateNameSetParameterValues:         NewSetParameterValuesState(StateNameWaitSetParameterValues),
		StateNameWaitSetParameterValues:     NewWaitSetParameterValuesState(StateNameWaitSetParameterValues, StateNameSendReboot),

		StateNameSendReboot:         NewSendRebootState(StateNameWaitRebootResponse),
		StateNameWaitRebootResponse: NewWaitRebootResponseState(StateNameWaitInformMReboot),
		StateNameWaitInformMReboot:  NewWaitInformMRebootState(StateNameError, StateNameWaitRebootDelay),
		StateNameWaitRebootDelay:    NewWaitRebootDelayState(StateNameDisconnected),

		StateNameError: NewErrorState(),
	}

	return catalog
}
