// Package opconfig loads the operator-authored management configuration
// that feeds BuildDesiredConfig: which PLMNs an eNodeB should advertise and
// whether its radio should be enabled. The wire format is YAML
// (gopkg.in/yaml.v3) since this file is hand-authored by an operator rather
// than written back by the tool itself.
package opconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is used when no override is given.
const DefaultConfigPath = "/etc/enbacsd/devices.yaml"

// PLMN is one broadcast PLMN entry an operator wants an eNodeB to carry.
type PLMN struct {
	PLMNID              string `yaml:"plmn_id"`
	CellReservedForOper bool   `yaml:"cell_reserved_for_oper"`
}

// DeviceIntent is the operator's desired state for a single device.
type DeviceIntent struct {
	// AdminEnable is whether the radio should be allowed to transmit.
	AdminEnable bool `yaml:"admin_enable"`

	// PLMNs is the ordered list of PLMN.<n> object instances the device
	// should carry; instance numbers are assigned 1..len(PLMNs).
	PLMNs []PLMN `yaml:"plmns"`
}

// Config is the full operator management configuration: one DeviceIntent
// per device, keyed by device identifier.
type Config struct {
	Devices map[string]DeviceIntent `yaml:"devices"`
}

// Load reads the configuration from DefaultConfigPath.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath)
}

// LoadFrom reads the configuration from path. A missing file yields an
// empty, non-nil Config rather than an error, since an unconfigured
// device is a normal starting state, not a failure.
func LoadFrom(path string) (*Config, error) {
	c := &Config{Devices: map[string]DeviceIntent{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("reading operator config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing operator config %s: %w", path, err)
	}
	if c.Devices == nil {
		c.Devices = map[string]DeviceIntent{}
	}
	return c, nil
}

// Save writes the configuration to DefaultConfigPath.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath)
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GetDevice returns the intent for device, or a zero-value intent (radio
// disabled, no PLMNs) if the operator has not configured it.
func (c *Config) GetDevice(device string) DeviceIntent {
	return c.Devices[device]
}

// SetDevice replaces the intent for device.
func (c *Config) SetDevice(device string, intent DeviceIntent) {
	if c.Devices == nil {
		c.Devices = map[string]DeviceIntent{}
	}
	c.Devices[device] = intent
}
