package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/enbacsd/enbacsd/pkg/enbacs"
)

var rebootCmd = &cobra.Command{
	Use:   "reboot",
	Short: "Force the device onto the reboot leg regardless of its current state",
	RunE: func(cmd *cobra.Command, args []string) error {
		sm, d, err := newMachine(app.deviceName)
		if err != nil {
			return err
		}

		d.ForceTransition(enbacs.StateNameSendReboot)
		if err := app.sink.PutStatus(app.deviceName, sm.CurrentState(), ""); err != nil {
			return fmt.Errorf("persisting status: %w", err)
		}

		fmt.Printf("%s forced to %s\n", app.deviceName, sm.CurrentState())
		return nil
	},
}
