package enbacs

import (
	"sort"
	"sync"
)

// Config holds the parameter values and object instances the state machine
// has learned about a device (the "device config") or wants applied to it
// (the "desired config"). Both sides of a reconciliation share this same
// shape — only how they get populated differs: device config is filled in
// from GetParameterValuesResponse/GetObjectParameters traffic, desired
// config is built once from operator intent via BuildDesiredConfig.
type Config struct {
	mu      sync.RWMutex
	scalars map[ParamName]interface{}
	objects map[ObjectTemplate]map[int]map[ParamName]interface{}
}

// NewConfig returns an empty Config.
func NewConfig() *Config {
	return &Config{
		scalars: make(map[ParamName]interface{}),
		objects: make(map[ObjectTemplate]map[int]map[ParamName]interface{}),
	}
}

// HasParameter reports whether a scalar parameter has a recorded value.
func (c *Config) HasParameter(name ParamName) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.scalars[name]
	return ok
}

// GetParameter returns a scalar parameter's recorded value.
func (c *Config) GetParameter(name ParamName) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.scalars[name]
	return v, ok
}

// SetParameter records a scalar parameter's value.
func (c *Config) SetParameter(name ParamName, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scalars[name] = value
}

// DeleteParameter removes a scalar parameter's recorded value.
func (c *Config) DeleteParameter(name ParamName) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.scalars, name)
}

// ObjectInstances returns the sorted instance numbers known for a template.
func (c *Config) ObjectInstances(tmpl ObjectTemplate) []int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	instances, ok := c.objects[tmpl]
	if !ok {
		return nil
	}
	out := make([]int, 0, len(instances))
	for n := range instances {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// AddObject registers a new, empty object instance. It is a no-op if the
// instance already exists.
func (c *Config) AddObject(tmpl ObjectTemplate, instance int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.objects[tmpl] == nil {
		c.objects[tmpl] = make(map[int]map[ParamName]interface{})
	}
	if _, ok := c.objects[tmpl][instance]; !ok {
		c.objects[tmpl][instance] = make(map[ParamName]interface{})
	}
}

// DeleteObject removes an object instance and all its sub-parameter values.
func (c *Config) DeleteObject(tmpl ObjectTemplate, instance int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.objects[tmpl] != nil {
		delete(c.objects[tmpl], instance)
	}
}

// HasObject reports whether an instance is registered for a template.
func (c *Config) HasObject(tmpl ObjectTemplate, instance int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.objects[tmpl] == nil {
		return false
	}
	_, ok := c.objects[tmpl][instance]
	return ok
}

// GetParameterForObject returns a sub-parameter's recorded value for a
// specific object instance.
func (c *Config) GetParameterForObject(tmpl ObjectTemplate, instance int, sub ParamName) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	inst, ok := c.objects[tmpl][instance]
	if !ok {
		return nil, false
	}
	v, ok := inst[sub]
	return v, ok
}

// SetParameterForObject records a sub-parameter's value for an object
// instance, registering the instance first if it does not yet exist.
func (c *Config) SetParameterForObject(tmpl ObjectTemplate, instance int, sub ParamName, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.objects[tmpl] == nil {
		c.objects[tmpl] = make(map[int]map[ParamName]interface{})
	}
	if c.objects[tmpl][instance] == nil {
		c.objects[tmpl][instance] = make(map[ParamName]interface{})
	}
	c.objects[tmpl][instance][sub] = value
}

// snapshotObjects returns the sorted instance numbers known for every
// template, for use by the reconciliation helpers in reconcile.go.
func (c *Config) snapshotObjects() map[ObjectTemplate][]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[ObjectTemplate][]int, len(c.objects))
	for tmpl, instances := range c.objects {
		nums := make([]int, 0, len(instances))
		for n := range instances {
			nums = append(nums, n)
		}
		sort.Ints(nums)
		out[tmpl] = nums
	}
	return out
}
