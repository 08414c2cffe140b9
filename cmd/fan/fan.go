package fan

import (
	"github.com/pinky3d/pinkyd/cmd/global"
	"github.com/pinky3d/pinkyd/internal/client"
	"github.com/pinky3d/pinkyd/internal/devices"
	"github.com/pinky3d/pinkyd/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "fan",
	Short:            "Fan related commands",
	Long:             ``,
	TraverseChildren: true,
}

var startSpeed int

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the fan, optionally at the given speed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var speed *int
		if cmd.Flags().Changed("speed") {
			speed = &startSpeed
		}
		status, err := client.New(global.ApiAddress).FanStart(speed)
		if err != nil {
			return err
		}
		printStatus(status)
		return nil
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the fan",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := client.New(global.ApiAddress).FanStop()
		if err != nil {
			return err
		}
		printStatus(status)
		return nil
	},
}

func printStatus(status devices.FanStatus) {
	state := "stopped"
	if status.IsOn {
		state = "running"
	}
	ui.Success("fan is %s, speed %d (%.0f%% duty cycle)", state, status.Speed, status.DutyCycle)
}

func init() {
	startCmd.Flags().IntVarP(&startSpeed, "speed", "s", 0, "Speed [0..100] to apply before starting")

	Command.AddCommand(startCmd)
	Command.AddCommand(stopCmd)
}
