package cmd

import (
	"github.com/pinky3d/pinkyd/cmd/global"
	"github.com/pinky3d/pinkyd/internal/ui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pinkyd",
	Long:  `All software has versions. This is pinkyd's`,
	Run: func(cmd *cobra.Command, args []string) {
		ui.Printfln(global.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
