package enbacs

import "testing"

func TestParamsToGet(t *testing.T) {
	model := NewReferenceDataModel()
	device := NewConfig()

	got := ParamsToGet(device, model)
	if len(got) == 0 {
		t.Fatal("expected a non-empty list of params to get on an empty device config")
	}

	for _, name := range got {
		if !model.IsParameterPresentOrUnknown(name) {
			t.Errorf("ParamsToGet returned %s which the model already marked absent", name)
		}
	}

	// Mark every param present-or-unknown as already recorded; nothing left to fetch.
	for _, name := range got {
		device.SetParameter(name, "x")
	}
	if rest := ParamsToGet(device, model); len(rest) != 0 {
		t.Errorf("ParamsToGet() after recording every param = %v, want empty", rest)
	}
}

func TestParamsToGetSkipsKnownAbsent(t *testing.T) {
	model := NewReferenceDataModel()
	model.SetParameterPresence(ParamGPSStatus, false)
	device := NewConfig()

	got := ParamsToGet(device, model)
	for _, name := range got {
		if name == ParamGPSStatus {
			t.Errorf("ParamsToGet should not include %s once marked absent", ParamGPSStatus)
		}
	}
}

func TestObjectParamsToGet(t *testing.T) {
	model := NewReferenceDataModel()
	device := NewConfig()
	device.AddObject(PLMNTemplate, 1)
	device.AddObject(PLMNTemplate, 2)
	device.SetParameterForObject(PLMNTemplate, 1, SubParamPLMNPLMNID, "001010")

	got := ObjectParamsToGet(nil, device, model)

	want := map[ObjectPath]bool{
		{Template: PLMNTemplate, Instance: 1, Sub: SubParamPLMNCellReservedForOper}: true,
		{Template: PLMNTemplate, Instance: 2, Sub: SubParamPLMNPLMNID}:              true,
		{Template: PLMNTemplate, Instance: 2, Sub: SubParamPLMNCellReservedForOper}: true,
	}
	if len(got) != len(want) {
		t.Fatalf("ObjectParamsToGet() = %v, want %d entries", got, len(want))
	}
	for _, p := range got {
		if !want[p] {
			t.Errorf("unexpected object path %+v", p)
		}
	}
}

func TestObjectsToDeleteNilDesired(t *testing.T) {
	device := NewConfig()
	device.AddObject(PLMNTemplate, 1)

	if got := ObjectsToDelete(nil, device); got != nil {
		t.Errorf("ObjectsToDelete(nil, ...) = %v, want nil (nothing to reconcile against yet)", got)
	}
}

func TestObjectsToDeleteAndAdd(t *testing.T) {
	desired := NewConfig()
	desired.AddObject(PLMNTemplate, 1)
	desired.AddObject(PLMNTemplate, 3)

	device := NewConfig()
	device.AddObject(PLMNTemplate, 1)
	device.AddObject(PLMNTemplate, 2)

	del := ObjectsToDelete(desired, device)
	if len(del) != 1 || del[0] != ObjectName(PLMNTemplate, 2) {
		t.Errorf("ObjectsToDelete() = %v, want [%s]", del, ObjectName(PLMNTemplate, 2))
	}

	add := ObjectsToAdd(desired, device)
	if len(add) != 1 || add[0] != PLMNTemplate {
		t.Errorf("ObjectsToAdd() = %v, want [%s]", add, PLMNTemplate)
	}
}

func TestParamValuesToSetExcludesAdmin(t *testing.T) {
	model := NewReferenceDataModel()
	desired := NewConfig()
	desired.SetParameter(ParamAdminEnable, true)
	desired.SetParameter(ParamOpState, "UP")
	device := NewConfig()

	withAdmin := ParamValuesToSet(desired, device, model, false)
	if _, ok := withAdmin[ParamAdminEnable]; !ok {
		t.Error("expected AdminEnable in the full set pass")
	}

	withoutAdmin := ParamValuesToSet(desired, device, model, true)
	if _, ok := withoutAdmin[ParamAdminEnable]; ok {
		t.Error("AdminEnable should be excluded from the not-admin set pass")
	}
	if _, ok := withoutAdmin[ParamOpState]; !ok {
		t.Error("expected OpState in the not-admin set pass")
	}
}

func TestParamValuesToSetSkipsUnchanged(t *testing.T) {
	model := NewReferenceDataModel()
	desired := NewConfig()
	desired.SetParameter(ParamOpState, "UP")
	device := NewConfig()
	device.SetParameter(ParamOpState, "UP")

	got := ParamValuesToSet(desired, device, model, false)
	if _, ok := got[ParamOpState]; ok {
		t.Error("OpState already matches desired and should not be scheduled to set")
	}
}

func TestObjParamValuesToSet(t *testing.T) {
	model := NewReferenceDataModel()
	desired := NewConfig()
	desired.SetParameterForObject(PLMNTemplate, 1, SubParamPLMNPLMNID, "001010")
	device := NewConfig()

	got := ObjParamValuesToSet(desired, device, model)
	if len(got) != 1 {
		t.Fatalf("ObjParamValuesToSet() = %v, want 1 entry", got)
	}
	if got[0].Sub != SubParamPLMNPLMNID || got[0].Value != "001010" {
		t.Errorf("ObjParamValuesToSet()[0] = %+v, want PLMNID=001010", got[0])
	}
}

func TestOptionalParamToCheck(t *testing.T) {
	model := NewReferenceDataModel()
	name, ok := OptionalParamToCheck(model)
	if !ok {
		t.Fatal("expected at least one optional param to check on a fresh model")
	}
	model.SetParameterPresence(name, true)

	for {
		next, ok := OptionalParamToCheck(model)
		if !ok {
			break
		}
		if next == name {
			t.Fatalf("OptionalParamToCheck kept returning %s after it was resolved", name)
		}
		model.SetParameterPresence(next, true)
	}
}
