package enbacs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCatalogCoversEveryStateName checks that NewCatalog registers every
// constant declared in statenames.go — a typo in either file would
// otherwise silently leave a dangling transition target.
func TestCatalogCoversEveryStateName(t *testing.T) {
	catalog := NewCatalog(func(sm *StateMachine) *Config { return NewConfig() })

	names := []string{
		StateNameDisconnected, StateNameUnexpectedInform, StateNameBaicellsDisconnected,
		StateNameBaicellsRemWait, StateNameWaitEmptyMessage, StateNameCheckOptionalParams,
		StateNameSendGetTransientParams, StateNameWaitGetTransientParams,
		StateNameGetParameters, StateNameWaitGetParameters,
		StateNameGetObjectParameters, StateNameWaitGetObjectParams,
		StateNameDeleteObjects, StateNameAddObjects,
		StateNameSetParameterValues, StateNameSetParamValuesNotAdmin,
		StateNameWaitSetParameterValues, StateNameWaitSetParamValuesNotAdmin,
		StateNameSendReboot, StateNameWaitRebootResponse, StateNameWaitInformMReboot,
		StateNameWaitRebootDelay, StateNameError,
	}

	require.Len(t, catalog, len(names))
	for _, name := range names {
		state, ok := catalog[name]
		require.Truef(t, ok, "catalog missing state %q", name)
		require.Equal(t, name, state.Name())
	}
}
