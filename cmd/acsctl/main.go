// Command acsctl is the operator CLI for enbacsd: inspect a device's
// provisioning status, feed it a synthetic Inform for manual exercise, or
// force it through a reboot. It follows the same noun-group shape as the
// teacher CLI this repo was built from — <device> <verb> [args] — with the
// device name taken implicitly from the first non-flag argument.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/enbacsd/enbacsd/internal/eventloop"
	"github.com/enbacsd/enbacsd/internal/logging"
	"github.com/enbacsd/enbacsd/internal/opconfig"
	"github.com/enbacsd/enbacsd/internal/statussink"
	"github.com/enbacsd/enbacsd/pkg/enbacs"
)

// App holds CLI state shared across all commands.
type App struct {
	deviceName string

	configPath string
	redisAddr  string
	verbose    bool

	cfg    *opconfig.Config
	sink   *statussink.Client
	timers *eventloop.Manager
}

var app = &App{}

func main() {
	if len(os.Args) > 1 && !strings.HasPrefix(os.Args[1], "-") && !isKnownCommand(os.Args[1]) {
		os.Args = append([]string{os.Args[0], "-d", os.Args[1]}, os.Args[2:]...)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func isKnownCommand(name string) bool {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name {
			return true
		}
	}
	return name == "help" || name == "completion"
}

var rootCmd = &cobra.Command{
	Use:           "acsctl",
	Short:         "eNodeB CWMP/TR-069 provisioning operator tool",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `acsctl inspects and manually drives a device's provisioning state machine.

  acsctl <device> show               device's last-known state and stats
  acsctl <device> inform <event>     feed a synthetic Inform through the dispatcher
  acsctl <device> reboot             force the device to the reboot leg
  acsctl device list                 devices named in the operator config`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if app.verbose {
			logging.SetLevel("debug")
		} else {
			logging.SetLevel("warn")
		}

		var err error
		app.cfg, err = opconfig.LoadFrom(app.configPath)
		if err != nil {
			return fmt.Errorf("loading operator config: %w", err)
		}

		app.sink = statussink.NewClient(app.redisAddr)
		app.timers = eventloop.NewManager()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&app.deviceName, "device", "d", "", "Device name")
	rootCmd.PersistentFlags().StringVarP(&app.configPath, "config", "c", opconfig.DefaultConfigPath, "Operator config path")
	rootCmd.PersistentFlags().StringVar(&app.redisAddr, "redis", "localhost:6379", "Status/stats sink Redis address")
	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(showCmd, informCmd, rebootCmd, deviceCmd)
}

// newMachine builds a fresh StateMachine + Dispatcher for app.deviceName,
// resuming from whatever state the status sink last recorded (or
// Disconnected if none). Since acsctl is a short-lived process per
// invocation, this is the closest stand-in for the long-running daemon's
// in-memory registry — cross-restart persistence is out of scope per
// spec.md's Non-goals.
func newMachine(device string) (*enbacs.StateMachine, *enbacs.Dispatcher, error) {
	if device == "" {
		return nil, nil, fmt.Errorf("device name required (-d or positional)")
	}

	initial := enbacs.StateNameDisconnected
	if state, _, err := app.sink.GetStatus(device); err == nil && state != "" {
		initial = state
	}

	model := enbacs.NewReferenceDataModel()
	sm := enbacs.NewStateMachine(device, model, app.timers, app.sink, app.sink, initial)
	catalog := enbacs.NewCatalog(opconfig.BuildDesiredConfig(app.cfg))
	d := enbacs.NewDispatcher(sm, catalog)
	return sm, d, nil
}
