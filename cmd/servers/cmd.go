package servers

import (
	"github.com/spf13/cobra"

	"github.com/magnetlabs/magnet/internal/cmd"
	"github.com/magnetlabs/magnet/internal/cmd/options"
)

func NewCmd(baseCmd *cmd.BaseCmd, opt ...options.CmdOption) (*cobra.Command, error) {
	cobraCmd := &cobra.Command{
		Use:   "servers",
		Short: "Manages the catalog servers registered with the desktop client",
		Long: "Manages the catalog servers registered with the desktop client, " +
			"dealing with listing, installing, updating, uninstalling and probing servers",
	}

	// Sub-commands for: magnet servers
	fns := []func(baseCmd *cmd.BaseCmd, opt ...options.CmdOption) (*cobra.Command, error){
		NewListCmd,      // list
		NewInstallCmd,   // install
		NewUpdateCmd,    // update
		NewUninstallCmd, // uninstall
		NewProbeCmd,     // probe
	}

	for _, fn := range fns {
		tempCmd, err := fn(baseCmd, opt...)
		if err != nil {
			return nil, err
		}
		cobraCmd.AddCommand(tempCmd)
	}

	return cobraCmd, nil
}
