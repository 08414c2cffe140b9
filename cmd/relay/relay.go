package relay

import (
	"github.com/pinky3d/pinkyd/cmd/global"
	"github.com/pinky3d/pinkyd/internal/client"
	"github.com/pinky3d/pinkyd/internal/devices"
	"github.com/pinky3d/pinkyd/internal/ui"
	"github.com/spf13/cobra"
)

type Action func(c *client.Client) (devices.RelayStatus, error)

type Actions struct {
	On  Action
	Off Action
}

// NewCommand creates the "<id> on|off" commands for a relay of the running daemon
func NewCommand(id string, short string, actions Actions) *cobra.Command {
	command := &cobra.Command{
		Use:              id,
		Short:            short,
		Long:             ``,
		TraverseChildren: true,
	}

	command.AddCommand(&cobra.Command{
		Use:   "on",
		Short: "Switch the " + id + " relay on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(id, actions.On)
		},
	})
	command.AddCommand(&cobra.Command{
		Use:   "off",
		Short: "Switch the " + id + " relay off",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(id, actions.Off)
		},
	})

	return command
}

func run(id string, action Action) error {
	status, err := action(client.New(global.ApiAddress))
	if err != nil {
		return err
	}
	if status.IsOn {
		ui.Success("%s is on", id)
	} else {
		ui.Success("%s is off", id)
	}
	return nil
}
