package opconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/enbacsd/enbacsd/pkg/enbacs"
)

func TestLoadFromMissingFileReturnsEmptyConfig(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v, want nil for a missing file", err)
	}
	if len(cfg.Devices) != 0 {
		t.Errorf("Devices = %v, want empty", cfg.Devices)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devices.yaml")

	cfg := &Config{Devices: map[string]DeviceIntent{
		"enb-1": {
			AdminEnable: true,
			PLMNs: []PLMN{
				{PLMNID: "001010", CellReservedForOper: true},
			},
		},
	}}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	intent := loaded.GetDevice("enb-1")
	if !intent.AdminEnable {
		t.Error("AdminEnable = false, want true")
	}
	if len(intent.PLMNs) != 1 || intent.PLMNs[0].PLMNID != "001010" {
		t.Errorf("PLMNs = %v, want one entry with PLMNID 001010", intent.PLMNs)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist at %s: %v", path, err)
	}
}

func TestGetDeviceUnconfiguredReturnsZeroValue(t *testing.T) {
	cfg := &Config{Devices: map[string]DeviceIntent{}}
	intent := cfg.GetDevice("unknown")
	if intent.AdminEnable || len(intent.PLMNs) != 0 {
		t.Errorf("intent = %+v, want zero value for an unconfigured device", intent)
	}
}

func TestBuildDesiredConfig(t *testing.T) {
	cfg := &Config{Devices: map[string]DeviceIntent{
		"enb-1": {
			AdminEnable: true,
			PLMNs: []PLMN{
				{PLMNID: "001010", CellReservedForOper: true},
				{PLMNID: "001011", CellReservedForOper: false},
			},
		},
	}}

	build := BuildDesiredConfig(cfg)
	sm := enbacs.NewStateMachine("enb-1", enbacs.NewReferenceDataModel(), nil, nil, nil, enbacs.StateNameDisconnected)
	desired := build(sm)

	admin, ok := desired.GetParameter(enbacs.ParamAdminEnable)
	if !ok || admin != true {
		t.Errorf("AdminEnable = %v (ok=%v), want true", admin, ok)
	}

	if !desired.HasObject(enbacs.PLMNTemplate, 1) || !desired.HasObject(enbacs.PLMNTemplate, 2) {
		t.Fatalf("expected PLMN instances 1 and 2 to be built")
	}
	id, ok := desired.GetParameterForObject(enbacs.PLMNTemplate, 2, enbacs.SubParamPLMNPLMNID)
	if !ok || id != "001011" {
		t.Errorf("PLMN.2 PLMNID = %v (ok=%v), want 001011", id, ok)
	}
}
