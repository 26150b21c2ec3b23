package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magnetlabs/magnet/cmd/catalog"
	runtimecmd "github.com/magnetlabs/magnet/cmd/runtime"
	"github.com/magnetlabs/magnet/cmd/servers"
	"github.com/magnetlabs/magnet/internal/cmd"
	cmdopts "github.com/magnetlabs/magnet/internal/cmd/options"
	"github.com/magnetlabs/magnet/internal/flags"
)

type RootCmd struct {
	*cmd.BaseCmd
}

// Execute builds the root command and runs it against os.Args.
func Execute() error {
	rootCmd, err := NewRootCmd(&cmd.BaseCmd{})
	if err != nil {
		return fmt.Errorf("could not create root command: %w", err)
	}

	return rootCmd.Execute()
}

func NewRootCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	c := &RootCmd{
		BaseCmd: baseCmd,
	}

	rootCmd := &cobra.Command{
		Use:           cmd.AppName() + " <command> [args]",
		Short:         "'magnet' manages the MCP servers registered with your desktop client",
		Long:          c.longDescription(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       cmd.Version(),
	}

	// Global flags
	flags.InitFlags(rootCmd.PersistentFlags())

	fns := []func(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error){
		NewInitCmd,        // init
		NewDaemonCmd,      // daemon
		servers.NewCmd,    // servers
		catalog.NewCmd,    // catalog
		runtimecmd.NewCmd, // runtime
	}

	for _, fn := range fns {
		tempCmd, err := fn(c.BaseCmd, opt...)
		if err != nil {
			return nil, err
		}
		rootCmd.AddCommand(tempCmd)
	}

	return rootCmd, nil
}

func (c *RootCmd) longDescription() string {
	return `The 'magnet' CLI installs servers from the published catalog into the desktop
client's config file, keeps the catalog up to date, and serves the same operations
over a local HTTP API ('magnet daemon').`
}
