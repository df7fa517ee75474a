package main

import (
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/enbacsd/enbacsd/internal/clifmt"
)

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Device operations that don't target a single device",
}

var deviceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List devices named in the operator config",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := make([]string, 0, len(app.cfg.Devices))
		for name := range app.cfg.Devices {
			names = append(names, name)
		}
		sort.Strings(names)

		t := clifmt.NewTable("DEVICE", "ADMIN_ENABLE", "PLMNS")
		for _, name := range names {
			intent := app.cfg.Devices[name]
			enabled := "false"
			if intent.AdminEnable {
				enabled = "true"
			}
			t.Row(name, enabled, strconv.Itoa(len(intent.PLMNs)))
		}
		t.Flush()
		return nil
	},
}

func init() {
	deviceCmd.AddCommand(deviceListCmd)
}
