package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/enbacsd/enbacsd/internal/clifmt"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a device's last-known provisioning state",
	RunE: func(cmd *cobra.Command, args []string) error {
		if app.deviceName == "" {
			return fmt.Errorf("device name required")
		}

		state, errDetail, err := app.sink.GetStatus(app.deviceName)
		if err != nil {
			return fmt.Errorf("reading status: %w", err)
		}
		if state == "" {
			state = "(unknown)"
		}

		color := clifmt.StateColor(state)
		t := clifmt.NewTable("DEVICE", "STATE", "ERROR")
		t.Row(app.deviceName, color(state), errDetail)
		t.Flush()
		return nil
	},
}
