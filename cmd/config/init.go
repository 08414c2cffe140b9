package config

import (
	"github.com/pinky3d/pinkyd/internal/configuration"
	"github.com/pinky3d/pinkyd/internal/ui"
	"github.com/pinky3d/pinkyd/internal/util"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "/etc/pinkyd/pinkyd.yaml"

var overwrite bool

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Writes an example configuration file",
	Long:  `Writes an example configuration file to the given path (default: ` + defaultConfigPath + `)`,
	Args:  cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := defaultConfigPath
		if len(args) > 0 {
			path = args[0]
		}

		if err := util.WriteFileAtomic(path, []byte(configuration.ExampleConfig), overwrite); err != nil {
			return err
		}
		ui.Success("Example configuration written to %s", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&overwrite, "force", "f", false, "Overwrite an existing file")
	Command.AddCommand(initCmd)
}
