package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/enbacsd/enbacsd/pkg/cwmp"
)

var informCmd = &cobra.Command{
	Use:   "inform [event]",
	Short: "Feed a synthetic Inform through the device's dispatcher",
	Long: `Builds an Inform carrying the given event code (default "0 BOOTSTRAP") and
routes it through the device's current state, printing the state it
transitions to and the outbound message it produces.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		event := "0 BOOTSTRAP"
		if len(args) == 1 {
			event = args[0]
		}

		sm, d, err := newMachine(app.deviceName)
		if err != nil {
			return err
		}

		msg := cwmp.Inform{
			DeviceID: cwmp.DeviceID{SerialNumber: app.deviceName},
			Event:    []cwmp.EventStruct{{EventCode: event}},
		}

		out, err := d.HandleInbound(msg)
		if err != nil {
			return fmt.Errorf("dispatch failed: %w", err)
		}
		if err := app.sink.PutStatus(app.deviceName, sm.CurrentState(), ""); err != nil {
			return fmt.Errorf("persisting status: %w", err)
		}

		fmt.Printf("%s -> %s (sent %T)\n", app.deviceName, sm.CurrentState(), out)
		return nil
	},
}
