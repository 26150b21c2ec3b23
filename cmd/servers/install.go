package servers

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/magnetlabs/magnet/internal/cmd"
	cmdopts "github.com/magnetlabs/magnet/internal/cmd/options"
	"github.com/magnetlabs/magnet/internal/config"
	"github.com/magnetlabs/magnet/internal/contracts"
	"github.com/magnetlabs/magnet/internal/errors"
	"github.com/magnetlabs/magnet/internal/launcher"
	"github.com/magnetlabs/magnet/internal/printer"
	"github.com/magnetlabs/magnet/internal/servers"
)

const (
	flagNameEnv = "env"
	flagNameArg = "arg"
)

// InstallCmd derives a launch record for a catalog server and writes it to the client config.
// The same type backs the update command, which replaces an existing record.
type InstallCmd struct {
	*cmd.BaseCmd
	env            []string
	inputArgs      []string
	format         cmd.OutputFormat
	settingsLoader config.Loader
	launcher       launcher.Launcher
	verb           string
	apply          func(m contracts.ServerInstaller, ctx context.Context, id string, opts servers.InstallOptions) error
}

// NewInstallCmd creates the install command.
func NewInstallCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	return newInstallCmd(
		baseCmd,
		"install",
		"installed",
		"Installs a catalog server into the client config",
		"Installs a catalog server into the client config. "+
			"The server's catalog environment variables are used unless --env is given, "+
			"in which case the given variables replace them entirely. "+
			"Values given with --arg are the server's input argument values (e.g. directories), "+
			"appended to its launch arguments.",
		contracts.ServerInstaller.Install,
		opt...,
	)
}

// NewUpdateCmd creates the update command.
func NewUpdateCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	return newInstallCmd(
		baseCmd,
		"update",
		"updated",
		"Replaces an installed server's launch record",
		"Replaces the server's launch record in the client config, "+
			"deriving it again from the stored catalog with the given environment variables and input values.",
		contracts.ServerInstaller.Update,
		opt...,
	)
}

func newInstallCmd(
	baseCmd *cmd.BaseCmd,
	use string,
	verb string,
	short string,
	long string,
	apply func(m contracts.ServerInstaller, ctx context.Context, id string, opts servers.InstallOptions) error,
	opt ...cmdopts.CmdOption,
) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &InstallCmd{
		BaseCmd:        baseCmd,
		format:         cmd.FormatText,
		settingsLoader: opts.SettingsLoader,
		launcher:       opts.Launcher,
		verb:           verb,
		apply:          apply,
	}

	cobraCmd := &cobra.Command{
		Use:   use + " <server-id> [--env KEY=VALUE]... [--arg VALUE]...",
		Short: short,
		Long:  long,
		RunE:  c.run,
		Args:  cobra.ExactArgs(1), // server-id
	}

	cobraCmd.Flags().StringArrayVar(
		&c.env,
		flagNameEnv,
		nil,
		"Environment variable for the server in KEY=VALUE format (can be repeated)",
	)

	cobraCmd.Flags().StringArrayVar(
		&c.inputArgs,
		flagNameArg,
		nil,
		"Input argument value for the server (can be repeated)",
	)

	allowed := cmd.AllowedOutputFormats()
	cobraCmd.Flags().Var(
		&c.format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)

	return cobraCmd, nil
}

func (c *InstallCmd) run(cobraCmd *cobra.Command, args []string) error {
	id := strings.TrimSpace(args[0])
	if id == "" {
		return fmt.Errorf("%w: server-id is required", errors.ErrBadRequest)
	}

	handler, err := cmd.NewOutputHandler[servers.Result](c.format, cobraCmd.OutOrStdout(), &printer.ResultPrinter{})
	if err != nil {
		return err
	}

	installOpts, err := c.installOptions(cobraCmd)
	if err != nil {
		return handler.HandleError(err)
	}

	logger := c.Logger()

	ws, err := cmd.OpenWorkspace(logger, c.settingsLoader)
	if err != nil {
		return handler.HandleError(err)
	}
	defer func() { _ = ws.Close() }()

	manager, err := ws.Manager(c.launcher)
	if err != nil {
		return handler.HandleError(err)
	}

	err = c.apply(manager, cobraCmd.Context(), id, installOpts)
	return report(handler, servers.NewResult(err, fmt.Sprintf("Server '%s' %s", id, c.verb)))
}

// installOptions keeps flags that weren't given as nil, so the catalog defaults apply.
func (c *InstallCmd) installOptions(cobraCmd *cobra.Command) (servers.InstallOptions, error) {
	var opts servers.InstallOptions

	if cobraCmd.Flags().Changed(flagNameEnv) {
		env, err := cmd.ParseEnvPairs(c.env)
		if err != nil {
			return servers.InstallOptions{}, fmt.Errorf("%w: %w", errors.ErrBadRequest, err)
		}
		opts.Env = env
	}

	if cobraCmd.Flags().Changed(flagNameArg) {
		opts.InputArgs = c.inputArgs
	}

	return opts, nil
}
