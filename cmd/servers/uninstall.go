package servers

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/magnetlabs/magnet/internal/cmd"
	cmdopts "github.com/magnetlabs/magnet/internal/cmd/options"
	"github.com/magnetlabs/magnet/internal/config"
	"github.com/magnetlabs/magnet/internal/errors"
	"github.com/magnetlabs/magnet/internal/launcher"
	"github.com/magnetlabs/magnet/internal/printer"
	"github.com/magnetlabs/magnet/internal/servers"
)

// UninstallCmd removes a server's launch record from the client config.
type UninstallCmd struct {
	*cmd.BaseCmd
	format         cmd.OutputFormat
	settingsLoader config.Loader
	launcher       launcher.Launcher
}

// NewUninstallCmd creates the uninstall command.
func NewUninstallCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &UninstallCmd{
		BaseCmd:        baseCmd,
		format:         cmd.FormatText,
		settingsLoader: opts.SettingsLoader,
		launcher:       opts.Launcher,
	}

	cobraCmd := &cobra.Command{
		Use:   "uninstall <server-id>",
		Short: "Removes a server from the client config",
		Long: "Removes a server's launch record from the client config. " +
			"Uninstalling a server that isn't installed succeeds without changing the file.",
		RunE: c.run,
		Args: cobra.ExactArgs(1), // server-id
	}

	allowed := cmd.AllowedOutputFormats()
	cobraCmd.Flags().Var(
		&c.format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)

	return cobraCmd, nil
}

func (c *UninstallCmd) run(cobraCmd *cobra.Command, args []string) error {
	id := strings.TrimSpace(args[0])
	if id == "" {
		return fmt.Errorf("%w: server-id is required", errors.ErrBadRequest)
	}

	handler, err := cmd.NewOutputHandler[servers.Result](c.format, cobraCmd.OutOrStdout(), &printer.ResultPrinter{})
	if err != nil {
		return err
	}

	ws, err := cmd.OpenWorkspace(c.Logger(), c.settingsLoader)
	if err != nil {
		return handler.HandleError(err)
	}
	defer func() { _ = ws.Close() }()

	manager, err := ws.Manager(c.launcher)
	if err != nil {
		return handler.HandleError(err)
	}

	err = manager.Uninstall(cobraCmd.Context(), id)
	return report(handler, servers.NewResult(err, fmt.Sprintf("Server '%s' uninstalled", id)))
}
