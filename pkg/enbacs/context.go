package enbacs

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/enbacsd/enbacsd/internal/logging"
)

// Timer is the handle a StateMachine uses to schedule and cancel a delayed
// transition, satisfied by internal/eventloop.Manager. Defined here (not
// imported from eventloop) so this package has no import-time dependency on
// the timer implementation — only the acsctl wiring layer needs both.
type Timer interface {
	// AfterFunc schedules cb to run after seconds elapse and returns a
	// handle whose Cancel stops the run if it hasn't fired yet. Device is
	// carried for logging; key distinguishes concurrent timers on the same
	// device (e.g. "reboot" vs "config-delay").
	AfterFunc(device, key string, seconds float64, cb func()) Cancelable
}

// Cancelable is a scheduled callback that can be stopped before it fires.
type Cancelable interface {
	Cancel() bool
}

// StatsSink receives eNodeB statistics snapshots for external consumption
// (dashboards, time-series storage). Implemented by internal/statussink.
type StatsSink interface {
	PutStats(device string, stats map[string]interface{}) error
	ClearStats(device string) error
}

// StatusSink receives the device's last-known provisioning state for
// external consumption (the current state name and any error detail).
type StatusSink interface {
	PutStatus(device, state string, errDetail string) error
}

// StateMachine is the mutable per-device context every state reads and
// writes: which state is current, the device's learned config, the desired
// config built from operator intent (nil until built), and the
// collaborators states call out to. One StateMachine exists per managed
// eNodeB for the lifetime of its CWMP session history.
type StateMachine struct {
	mu sync.RWMutex

	Device string

	// currentState is the name of the state the machine occupies between
	// dispatcher invocations. It is read and written only by transition()
	// and the dispatcher — individual state Enter/HandleRead/HandleSend
	// implementations never set it directly.
	currentState string

	Model        DataModel
	DeviceConfig *Config
	DesiredCfg   *Config // nil until BuildDesiredConfig has run once

	// wasRFTxOn remembers the last observed RFTxStatus so
	// WaitGetTransientParametersState can detect the true->false edge that
	// triggers exactly one ClearStats call.
	wasRFTxOn bool

	Timer  Timer
	Stats  StatsSink
	Status StatusSink

	// pendingTimer holds the cancel handle for any outstanding delayed
	// transition (Baicells REM wait, reboot-inform timeout, reboot-settle
	// delay), so transition() can cancel it when the machine leaves the
	// state that armed it, and ScheduleTimer can cancel it before arming
	// a new one.
	pendingTimer Cancelable

	// dispatcher lets a timer callback armed in Enter() request its
	// transition through the usual staleness-checked path, without states
	// needing a Dispatcher reference of their own.
	dispatcher *Dispatcher

	// Per-workflow stash slots. States are stateless singletons shared
	// across every machine in the process (per spec.md §5's shared,
	// read-only collaborator model), so the "chosen candidate" each of
	// these multi-round states remembers between its send and the
	// matching read lives here instead of on the state struct.
	pendingOptionalParam ParamName
	pendingDeleteObject  string
	pendingAddTemplate   ObjectTemplate

	// receivedRebootInform tracks whether WaitInformMRebootState has seen
	// the post-reboot Inform yet.
	receivedRebootInform bool

	// pendingSetScalar/pendingSetObj hold the values SetParameterValuesState
	// attempted, so WaitSetParameterValuesState can mirror exactly those
	// values into device config once the device confirms them.
	pendingSetScalar map[ParamName]interface{}
	pendingSetObj    []ObjParamValueToSet
}

// bindDispatcher records the Dispatcher driving this machine. Called once,
// by NewDispatcher.
func (sm *StateMachine) bindDispatcher(d *Dispatcher) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.dispatcher = d
}

// RequestTimerTransition asks the bound dispatcher to transition to
// nextState, but only if callerState is still current. Intended to be
// called from inside a timer callback armed via ScheduleTimer.
func (sm *StateMachine) RequestTimerTransition(callerState, nextState string) {
	sm.mu.RLock()
	d := sm.dispatcher
	sm.mu.RUnlock()
	if d != nil {
		d.HandleTimerTransition(callerState, nextState)
	}
}

// NewStateMachine builds a StateMachine starting in the given initial state
// (normally DisconnectedState or a vendor-specific variant) for a device.
func NewStateMachine(device string, model DataModel, timer Timer, stats StatsSink, status StatusSink, initial string) *StateMachine {
	return &StateMachine{
		Device:       device,
		currentState: initial,
		Model:        model,
		DeviceConfig: NewConfig(),
		Timer:        timer,
		Stats:        stats,
		Status:       status,
	}
}

// CurrentState returns the name of the state currently occupied.
func (sm *StateMachine) CurrentState() string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.currentState
}

// transition moves the machine to a new named state, canceling any timer
// left pending by the state being exited. Called only by the dispatcher,
// after the outgoing state's Exit hook has run and before the incoming
// state's Enter hook runs.
func (sm *StateMachine) transition(next string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.pendingTimer != nil {
		sm.pendingTimer.Cancel()
		sm.pendingTimer = nil
	}
	logging.WithState(sm.Device, next).WithFields(logrus.Fields{"from": sm.currentState}).Debug("state transition")
	sm.currentState = next
}

// ScheduleTimer arms a delayed transition-or-callback and remembers the
// handle so a later transition can cancel it if it becomes stale. Any
// previously pending timer is canceled first — at most one timer is ever
// outstanding per device.
func (sm *StateMachine) ScheduleTimer(key string, seconds float64, cb func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.pendingTimer != nil {
		sm.pendingTimer.Cancel()
	}
	sm.pendingTimer = sm.Timer.AfterFunc(sm.Device, key, seconds, cb)
}

// CancelTimer stops any outstanding timer without scheduling a new one.
func (sm *StateMachine) CancelTimer() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.pendingTimer != nil {
		sm.pendingTimer.Cancel()
		sm.pendingTimer = nil
	}
}

// WasRFTxOn returns the last RFTxStatus edge-detection reading.
func (sm *StateMachine) WasRFTxOn() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.wasRFTxOn
}

// SetWasRFTxOn updates the last RFTxStatus edge-detection reading.
func (sm *StateMachine) SetWasRFTxOn(on bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.wasRFTxOn = on
}

// EnsureDesiredConfig builds the desired config exactly once, the first
// time any state needs it, mirroring the original's
// "if self.acs.desired_cfg is None" guard — rebuilding it on every Inform
// would let mid-session operator changes race a half-finished reconcile.
func (sm *StateMachine) EnsureDesiredConfig(build func() *Config) *Config {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.DesiredCfg == nil {
		sm.DesiredCfg = build()
	}
	return sm.DesiredCfg
}

// Desired returns the desired config, or nil if it hasn't been built yet.
func (sm *StateMachine) Desired() *Config {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.DesiredCfg
}

// PendingOptionalParam returns the parameter CheckOptionalParamsState chose
// most recently to probe.
func (sm *StateMachine) PendingOptionalParam() ParamName {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.pendingOptionalParam
}

// SetPendingOptionalParam records the parameter CheckOptionalParamsState
// just asked the device about.
func (sm *StateMachine) SetPendingOptionalParam(name ParamName) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.pendingOptionalParam = name
}

// PendingDeleteObject returns the object name DeleteObjectsState asked the
// device to remove.
func (sm *StateMachine) PendingDeleteObject() string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.pendingDeleteObject
}

// SetPendingDeleteObject records the object name DeleteObjectsState just
// asked the device to remove.
func (sm *StateMachine) SetPendingDeleteObject(name string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.pendingDeleteObject = name
}

// PendingAddTemplate returns the object template AddObjectsState asked the
// device to instantiate.
func (sm *StateMachine) PendingAddTemplate() ObjectTemplate {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.pendingAddTemplate
}

// SetPendingAddTemplate records the object template AddObjectsState just
// asked the device to instantiate.
func (sm *StateMachine) SetPendingAddTemplate(tmpl ObjectTemplate) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.pendingAddTemplate = tmpl
}

// ReceivedRebootInform reports whether the post-reboot Inform has arrived
// yet, for WaitInformMRebootState.
func (sm *StateMachine) ReceivedRebootInform() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.receivedRebootInform
}

// SetReceivedRebootInform records that the post-reboot Inform arrived.
func (sm *StateMachine) SetReceivedRebootInform(v bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.receivedRebootInform = v
}

// SetPendingSet records the values just sent in a SetParameterValues
// request, for WaitSetParameterValuesState to mirror on success.
func (sm *StateMachine) SetPendingSet(scalar map[ParamName]interface{}, obj []ObjParamValueToSet) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.pendingSetScalar = scalar
	sm.pendingSetObj = obj
}

// PendingSet returns the values stashed by SetPendingSet.
func (sm *StateMachine) PendingSet() (map[ParamName]interface{}, []ObjParamValueToSet) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.pendingSetScalar, sm.pendingSetObj
}

func (sm *StateMachine) logEntry() *logrus.Entry {
	return logging.WithState(sm.Device, sm.CurrentState())
}

// String implements fmt.Stringer for log messages and test failure output.
func (sm *StateMachine) String() string {
	return fmt.Sprintf("StateMachine{device=%s, state=%s}", sm.Device, sm.CurrentState())
}
