package cmd

import (
	"fmt"
	"strconv"

	"github.com/pinky3d/pinkyd/cmd/global"
	"github.com/pinky3d/pinkyd/internal/automation"
	"github.com/pinky3d/pinkyd/internal/client"
	"github.com/pinky3d/pinkyd/internal/control"
	"github.com/pinky3d/pinkyd/internal/ui"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the state of all devices of the running daemon",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := client.New(global.ApiAddress).Status()
		if err != nil {
			return err
		}

		tableString, err := ui.RenderTable([]string{"Device", "Line", "On", "Details"}, statusRows(status), !global.NoColor)
		if err != nil {
			return err
		}
		ui.Printfln(tableString)

		if status.Automation != nil {
			loop := status.Automation
			ui.Printfln("Automation: %s", loop.State)
			ui.Printfln("  Presence ratio: %.0f%% (recent presence: %v)", loop.PresenceRatio*100, loop.RecentPresence)
			if loop.State == automation.StateCountingDown {
				ui.Printfln("  Shutdown in: %.0fs", loop.ShutdownRemaining)
			}
		} else {
			ui.Printfln("Automation: disabled")
		}
		return nil
	},
}

func statusRows(status control.Status) [][]string {
	return [][]string{
		{"power", strconv.Itoa(status.Power.Line), onOff(status.Power.IsOn), ""},
		{"light", strconv.Itoa(status.Light.Line), onOff(status.Light.IsOn), ""},
		{"fan", strconv.Itoa(status.Fan.Line), onOff(status.Fan.IsOn),
			fmt.Sprintf("speed %d (%.0f%% duty cycle at %.0fHz)", status.Fan.Speed, status.Fan.DutyCycle, status.Fan.Frequency)},
	}
}

func onOff(value bool) string {
	if value {
		return "on"
	}
	return "off"
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
