package enbacs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/enbacsd/enbacsd/pkg/cwmp"
)

// fakeTimer lets tests fire a scheduled callback on demand instead of
// waiting on a real clock.
type fakeTimer struct {
	scheduled map[string]func()
}

func newFakeTimer() *fakeTimer { return &fakeTimer{scheduled: map[string]func(){}} }

func (f *fakeTimer) AfterFunc(device, key string, seconds float64, cb func()) Cancelable {
	f.scheduled[device+"/"+key] = cb
	return &fakeCancelable{}
}

func (f *fakeTimer) fire(device, key string) {
	if cb, ok := f.scheduled[device+"/"+key]; ok {
		cb()
	}
}

type fakeCancelable struct{ canceled bool }

func (c *fakeCancelable) Cancel() bool {
	c.canceled = true
	return true
}

type fakeSink struct {
	states []string
	errs   []string
	stats  []map[string]interface{}
	clears int
}

func (s *fakeSink) PutStatus(device, state, errDetail string) error {
	s.states = append(s.states, state)
	s.errs = append(s.errs, errDetail)
	return nil
}

func (s *fakeSink) PutStats(device string, stats map[string]interface{}) error {
	s.stats = append(s.stats, stats)
	return nil
}

func (s *fakeSink) ClearStats(device string) error {
	s.clears++
	return nil
}

func newTestMachine(t *testing.T, initial string) (*StateMachine, *Dispatcher, *fakeSink, *fakeTimer) {
	t.Helper()
	model := NewReferenceDataModel()
	timer := newFakeTimer()
	sink := &fakeSink{}
	sm := NewStateMachine("enb-1", model, timer, sink, sink, initial)
	catalog := NewCatalog(func(sm *StateMachine) *Config { return NewConfig() })
	d := NewDispatcher(sm, catalog)
	return sm, d, sink, timer
}

func TestDispatcherInformOpensSession(t *testing.T) {
	sm, d, _, _ := newTestMachine(t, StateNameDisconnected)

	out, err := d.HandleInbound(cwmp.Inform{Event: []cwmp.EventStruct{{EventCode: "0 BOOTSTRAP"}}})
	require.NoError(t, err)
	require.IsType(t, &cwmp.InformResponse{}, out)
	require.Equal(t, StateNameWaitEmptyMessage, sm.CurrentState())

	out, err = d.HandleInbound(cwmp.DummyInput{})
	require.NoError(t, err)
	require.IsType(t, cwmp.GetParameterValues{}, out)
	require.Equal(t, StateNameCheckOptionalParams, sm.CurrentState())
}

func TestDispatcherNotHandledIsProtocolDeviation(t *testing.T) {
	_, d, _, _ := newTestMachine(t, StateNameWaitRebootResponse)

	_, err := d.HandleInbound(cwmp.DummyInput{})
	require.Error(t, err)
}

func TestDispatcherTr069ErrorDrivesToErrorState(t *testing.T) {
	sm, d, sink, _ := newTestMachine(t, StateNameWaitRebootResponse)

	out, err := d.HandleInbound(cwmp.Fault{FaultString: "9001 Request denied"})
	require.NoError(t, err)
	require.Equal(t, StateNameError, sm.CurrentState())
	require.IsType(t, cwmp.DummyInput{}, out)
	require.Contains(t, sink.states, StateNameError)
}

func TestDispatcherForceTransition(t *testing.T) {
	sm, d, _, _ := newTestMachine(t, StateNameDisconnected)
	d.ForceTransition(StateNameSendReboot)
	require.Equal(t, StateNameSendReboot, sm.CurrentState())
}

func TestDispatcherTimerTransitionStaleness(t *testing.T) {
	sm, d, _, timer := newTestMachine(t, StateNameDisconnected)

	// ForceTransition runs Enter(), which arms the "reboot-settle" timer.
	d.ForceTransition(StateNameWaitRebootDelay)
	require.Equal(t, StateNameWaitRebootDelay, sm.CurrentState())

	// Force the machine somewhere else before the timer fires: the fire
	// should be a no-op (staleness guard), not a transition.
	d.ForceTransition(StateNameDisconnected)
	timer.fire("enb-1", "reboot-settle")
	require.Equal(t, StateNameDisconnected, sm.CurrentState())
}

func TestDispatcherTimerTransitionFires(t *testing.T) {
	sm, d, _, timer := newTestMachine(t, StateNameDisconnected)

	d.ForceTransition(StateNameWaitRebootDelay)
	timer.fire("enb-1", "reboot-settle")
	require.Equal(t, StateNameDisconnected, sm.CurrentState())
}

// rfTxStatusPath is the device path NewReferenceDataModel registers for
// ParamRFTxStatus.
const rfTxStatusPath = "Device.FAP.GPS.RFTxStatus"

func rfTxStatusResponse(on string) cwmp.GetParameterValuesResponse {
	return cwmp.GetParameterValuesResponse{
		ParameterList: []cwmp.ParameterValueStruct{
			{Name: rfTxStatusPath, Value: cwmp.AnySimpleType{Type: "boolean", Data: on}},
		},
	}
}

// TestDispatcherRadioStopClearsStatsOnce drives the transient-parameters
// read handler through the RFTxStatus true->false edge and confirms
// ClearStats fires exactly once, per spec.md §8 scenario 2 — neither on the
// initial true reading nor a second time if the edge is reported again
// without toggling back on.
func TestDispatcherRadioStopClearsStatsOnce(t *testing.T) {
	sm, d, sink, _ := newTestMachine(t, StateNameWaitGetTransientParams)

	_, err := d.HandleInbound(rfTxStatusResponse("1"))
	require.NoError(t, err)
	require.True(t, sm.WasRFTxOn())
	require.Equal(t, 0, sink.clears, "no clear on the initial true reading")

	d.ForceTransition(StateNameWaitGetTransientParams)

	_, err = d.HandleInbound(rfTxStatusResponse("0"))
	require.NoError(t, err)
	require.False(t, sm.WasRFTxOn())
	require.Equal(t, 1, sink.clears, "exactly one clear on the true->false edge")

	d.ForceTransition(StateNameWaitGetTransientParams)

	_, err = d.HandleInbound(rfTxStatusResponse("0"))
	require.NoError(t, err)
	require.Equal(t, 1, sink.clears, "repeating false must not clear again")
}

// TestDispatcherAddObjectSubstitutesInstanceNumber drives AddObjects through
// an AddObjectResponse and confirms the device-assigned InstanceNumber, not
// the requested template name, is what gets recorded into device config —
// spec.md §8 scenario 3.
func TestDispatcherAddObjectSubstitutesInstanceNumber(t *testing.T) {
	sm, d, _, _ := newTestMachine(t, StateNameAddObjects)

	desired := NewConfig()
	desired.AddObject(PLMNTemplate, 1)
	desired.SetParameterForObject(PLMNTemplate, 1, SubParamPLMNPLMNID, "001010")
	sm.EnsureDesiredConfig(func() *Config { return desired })
	sm.SetPendingAddTemplate(PLMNTemplate)

	require.False(t, sm.DeviceConfig.HasObject(PLMNTemplate, 1))

	_, err := d.HandleInbound(cwmp.AddObjectResponse{Status: 0, InstanceNumber: 1})
	require.NoError(t, err)
	require.True(t, sm.DeviceConfig.HasObject(PLMNTemplate, 1))
	// AddObjects's own target is SetParamValuesNotAdmin, but that state's
	// HandleSend immediately forwards to its own wait target once it has
	// built the outbound SetParameterValues.
	require.Equal(t, StateNameWaitSetParamValuesNotAdmin, sm.CurrentState())
}
