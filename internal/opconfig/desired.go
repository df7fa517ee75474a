package opconfig

import "github.com/enbacsd/enbacsd/pkg/enbacs"

// BuildDesiredConfig builds an enbacs.DesiredConfigBuilder closed over a
// loaded Config. It is the concrete collaborator WaitGetObjectParameters
// calls the first time a session needs a desired configuration: spec.md
// treats the desired-config builder as an external collaborator, so this is
// this repo's reference implementation of it rather than part of the core.
func BuildDesiredConfig(cfg *Config) enbacs.DesiredConfigBuilder {
	return func(sm *enbacs.StateMachine) *enbacs.Config {
		intent := cfg.GetDevice(sm.Device)

		desired := enbacs.NewConfig()
		desired.SetParameter(enbacs.ParamAdminEnable, intent.AdminEnable)

		for i, plmn := range intent.PLMNs {
			instance := i + 1
			desired.AddObject(enbacs.PLMNTemplate, instance)
			desired.SetParameterForObject(enbacs.PLMNTemplate, instance, enbacs.SubParamPLMNPLMNID, plmn.PLMNID)
			desired.SetParameterForObject(enbacs.PLMNTemplate, instance, enbacs.SubParamPLMNCellReservedForOper, plmn.CellReservedForOper)
		}

		return desired
	}
}
