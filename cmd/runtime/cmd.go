package runtime

import (
	"github.com/spf13/cobra"

	"github.com/magnetlabs/magnet/internal/cmd"
	"github.com/magnetlabs/magnet/internal/cmd/options"
)

func NewCmd(baseCmd *cmd.BaseCmd, opt ...options.CmdOption) (*cobra.Command, error) {
	cobraCmd := &cobra.Command{
		Use:   "runtime",
		Short: "Manages where the node and uv runtime tools are found",
		Long: "Manages where the node and uv runtime tools are found. " +
			"Servers launched with npx or uvx use a privately provisioned tool when its path is set, " +
			"and the system search path otherwise.",
	}

	// Sub-commands for: magnet runtime
	fns := []func(baseCmd *cmd.BaseCmd, opt ...options.CmdOption) (*cobra.Command, error){
		NewShowCmd, // show
		NewSetCmd,  // set
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
