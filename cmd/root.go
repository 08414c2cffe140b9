package cmd

import (
	"fmt"
	"os"

	"github.com/pinky3d/pinkyd/cmd/config"
	"github.com/pinky3d/pinkyd/cmd/fan"
	"github.com/pinky3d/pinkyd/cmd/global"
	"github.com/pinky3d/pinkyd/cmd/relay"
	"github.com/pinky3d/pinkyd/internal"
	"github.com/pinky3d/pinkyd/internal/client"
	"github.com/pinky3d/pinkyd/internal/configuration"
	"github.com/pinky3d/pinkyd/internal/devices"
	"github.com/pinky3d/pinkyd/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pinkyd",
	Short: "A daemon to automate a 3D printer enclosure.",
	Long: `pinkyd switches the power and light of a 3D printer enclosure
based on a presence sensor and controls the enclosure fan.`,
	// this is the default command to run when no subcommand is specified
	Run: func(cmd *cobra.Command, args []string) {
		setupUi()
		printHeader()

		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		err := configuration.Validate(configPath)
		if err != nil {
			ui.Fatal("Config Validation Error: %v", err)
		}

		if err := internal.RunDaemon(configuration.CurrentConfig, global.Version); err != nil {
			ui.Fatal("%v", err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&global.CfgFile, "config", "c", "", "config file (default is $HOME/pinkyd.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&global.NoColor, "no-color", "", false, "Disable all terminal output coloration")
	rootCmd.PersistentFlags().BoolVarP(&global.NoStyle, "no-style", "", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "More verbose output")
	rootCmd.PersistentFlags().StringVarP(&global.ApiAddress, "api", "", "http://localhost:8080", "Address of the running daemon used by remote commands")

	rootCmd.AddCommand(config.Command)
	rootCmd.AddCommand(fan.Command)

	rootCmd.AddCommand(relay.NewCommand(devices.IdPower, "Switch the power of the printer", relay.Actions{
		On:  (*client.Client).PowerOn,
		Off: (*client.Client).PowerOff,
	}))
	rootCmd.AddCommand(relay.NewCommand(devices.IdLight, "Switch the enclosure light", relay.Actions{
		On:  (*client.Client).LightOn,
		Off: (*client.Client).LightOff,
	}))
}

func setupUi() {
	ui.SetDebugEnabled(global.Verbose)

	if global.NoColor {
		pterm.DisableColor()
	}
	if global.NoStyle {
		pterm.DisableStyling()
	}
}

// Print a large text with the LetterStyle from the standard theme.
func printHeader() {
	err := pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("pinky", pterm.NewStyle(pterm.FgLightMagenta)),
		pterm.NewLettersFromStringWithStyle("d", pterm.NewStyle(pterm.FgWhite)),
	).Render()
	if err != nil {
		fmt.Println("pinkyd")
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.OnInitialize(func() {
		setupUi()
		configuration.InitConfig(global.CfgFile)
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
