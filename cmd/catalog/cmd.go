package catalog

import (
	"github.com/spf13/cobra"

	"github.com/magnetlabs/magnet/internal/cmd"
	"github.com/magnetlabs/magnet/internal/cmd/options"
)

func NewCmd(baseCmd *cmd.BaseCmd, opt ...options.CmdOption) (*cobra.Command, error) {
	cobraCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manages the stored server catalog",
		Long:  "Manages the server catalog kept in the application state store",
	}

	// Sub-commands for: magnet catalog
	fns := []func(baseCmd *cmd.BaseCmd, opt ...options.CmdOption) (*cobra.Command, error){
		NewSyncCmd, // sync
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
