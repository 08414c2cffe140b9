package fan

import (
	"fmt"

	"github.com/pinky3d/pinkyd/cmd/global"
	"github.com/pinky3d/pinkyd/internal/client"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var speedCmd = &cobra.Command{
	Use:   "speed",
	Short: "Get/Set the current speed setting of the fan ([0..100])",
	Long:  ``,
	Args:  cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		c := client.New(global.ApiAddress)
		if len(args) > 0 {
			_, err := c.FanSpeed(args[0])
			return err
		}

		status, err := c.Status()
		if err != nil {
			return err
		}
		fmt.Printf("%d", status.Fan.Speed)
		return nil
	},
}

func init() {
	Command.AddCommand(speedCmd)
}
