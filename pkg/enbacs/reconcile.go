package enbacs

import "sort"

// The functions in this file are the pure diff helpers every discovery and
// provisioning state consults to decide what to ask for or set next. None
// of them mutate device or desired config — callers apply the results
// through explicit store calls after a response confirms the device
// accepted them. Grounded on the original's get_params_to_get /
// get_obj_params_to_get / get_object_params_to_delete / ...to_add /
// get_param_values_to_set / get_obj_param_values_to_set / get_optional_param_to_check
// free functions in enb_acs_states.py, which the original also keeps free of
// side effects.

// ParamsToGet returns model parameters that are present-or-unknown and not
// yet recorded in device, in a stable (model) order.
func ParamsToGet(device *Config, model DataModel) []ParamName {
	var out []ParamName
	for _, name := range model.AllParamNames() {
		if model.IsParameterPresentOrUnknown(name) && !device.HasParameter(name) {
			out = append(out, name)
		}
	}
	return out
}

// ObjectPath names a sub-parameter of a specific object instance.
type ObjectPath struct {
	Template ObjectTemplate
	Instance int
	Sub      ParamName
}

// ObjectParamsToGet returns the sub-parameters of every object instance
// known to device (under its numbered templates) that device has not yet
// recorded — the set still needed to answer further reconciliation. The
// desired argument is not consulted; the result depends on device and
// model only.
func ObjectParamsToGet(desired, device *Config, model DataModel) []ObjectPath {
	var out []ObjectPath
	numbered := model.NumberedParamNames()
	for tmpl, subs := range numbered {
		for _, instance := range device.ObjectInstances(tmpl) {
			for _, sub := range subs {
				if _, ok := device.GetParameterForObject(tmpl, instance, sub); ok {
					continue
				}
				out = append(out, ObjectPath{Template: tmpl, Instance: instance, Sub: sub})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Template != out[j].Template {
			return out[i].Template < out[j].Template
		}
		if out[i].Instance != out[j].Instance {
			return out[i].Instance < out[j].Instance
		}
		return out[i].Sub < out[j].Sub
	})
	return out
}

// ObjectsToDelete returns object instances present in device but absent
// from desired, across every template device knows about. Until desired
// exists (not yet built), there is nothing to reconcile against, so this
// returns nothing rather than treating every device object as deletable.
func ObjectsToDelete(desired, device *Config) []string {
	if desired == nil {
		return nil
	}
	var out []string
	for tmpl, instances := range device.snapshotObjects() {
		for _, instance := range instances {
			if desired.HasObject(tmpl, instance) {
				continue
			}
			out = append(out, ObjectName(tmpl, instance))
		}
	}
	sort.Strings(out)
	return out
}

// ObjectsToAdd returns the template names to AddObject for instances present
// in desired but absent from device, one entry per missing instance. The
// returned value is the bare template name (no trailing "."; AddObjects
// appends it when building the request), not a numbered instance — the
// device assigns the instance number on success.
func ObjectsToAdd(desired, device *Config) []ObjectTemplate {
	if desired == nil {
		return nil
	}
	var out []ObjectTemplate
	for tmpl, instances := range desired.snapshotObjects() {
		for _, instance := range instances {
			if device.HasObject(tmpl, instance) {
				continue
			}
			out = append(out, tmpl)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParamValuesToSet returns scalar parameters where desired's recorded value
// differs from device's (or device has none), excluding AdminEnable when
// excludeAdmin is set (used by SetParameterValuesNotAdmin).
func ParamValuesToSet(desired, device *Config, model DataModel, excludeAdmin bool) map[ParamName]interface{} {
	out := make(map[ParamName]interface{})
	if desired == nil {
		return out
	}
	for _, name := range model.AllParamNames() {
		if excludeAdmin && name == ParamAdminEnable {
			continue
		}
		want, ok := desired.GetParameter(name)
		if !ok {
			continue
		}
		have, ok := device.GetParameter(name)
		if ok && have == want {
			continue
		}
		out[name] = want
	}
	return out
}

// ObjParamValueToSet pairs an object path with the value desired wants it
// set to.
type ObjParamValueToSet struct {
	Template ObjectTemplate
	Instance int
	Sub      ParamName
	Value    interface{}
}

// ObjParamValuesToSet is ParamValuesToSet grouped by object instance.
func ObjParamValuesToSet(desired, device *Config, model DataModel) []ObjParamValueToSet {
	if desired == nil {
		return nil
	}
	var out []ObjParamValueToSet
	numbered := model.NumberedParamNames()
	for tmpl, subs := range numbered {
		for _, instance := range desired.ObjectInstances(tmpl) {
			for _, sub := range subs {
				want, ok := desired.GetParameterForObject(tmpl, instance, sub)
				if !ok {
					continue
				}
				have, ok := device.GetParameterForObject(tmpl, instance, sub)
				if ok && have == want {
					continue
				}
				out = append(out, ObjParamValueToSet{Template: tmpl, Instance: instance, Sub: sub, Value: want})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Template != out[j].Template {
			return out[i].Template < out[j].Template
		}
		if out[i].Instance != out[j].Instance {
			return out[i].Instance < out[j].Instance
		}
		return out[i].Sub < out[j].Sub
	})
	return out
}

// OptionalParamToCheck returns the next model parameter with unknown
// presence, or ("", false) if every parameter has been resolved.
func OptionalParamToCheck(model DataModel) (ParamName, bool) {
	return model.OptionalParamToCheck()
}
