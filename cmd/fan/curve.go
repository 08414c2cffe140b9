package fan

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/pinky3d/pinkyd/cmd/global"
	"github.com/pinky3d/pinkyd/internal/devices"
	"github.com/pinky3d/pinkyd/internal/ui"
	"github.com/spf13/cobra"
)

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Print the mapping of fan speed to PWM duty cycle",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var rows [][]string
		for _, speed := range []devices.Speed{devices.MinSpeed, 25, 50, 75, devices.MaxSpeed} {
			rows = append(rows, []string{fmt.Sprint(speed), fmt.Sprintf("%.1f%%", speed.DutyCycle())})
		}
		tableString, err := ui.RenderTable([]string{"Speed", "Duty Cycle"}, rows, !global.NoColor)
		if err != nil {
			return err
		}
		ui.Printfln(tableString)

		graph := asciigraph.Plot(dutyCycleCurve(), asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption("Duty Cycle / Speed"))
		ui.Printfln(graph)
		return nil
	},
}

// dutyCycleCurve returns the duty cycle for every speed in [MinSpeed..MaxSpeed]
func dutyCycleCurve() []float64 {
	values := make([]float64, 0, devices.MaxSpeed-devices.MinSpeed+1)
	for speed := devices.MinSpeed; speed <= devices.MaxSpeed; speed++ {
		values = append(values, speed.DutyCycle())
	}
	return values
}

func init() {
	Command.AddCommand(curveCmd)
}
