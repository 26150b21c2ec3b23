package servers

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/magnetlabs/magnet/internal/clientconfig"
	"github.com/magnetlabs/magnet/internal/cmd"
	cmdopts "github.com/magnetlabs/magnet/internal/cmd/options"
	"github.com/magnetlabs/magnet/internal/config"
	"github.com/magnetlabs/magnet/internal/errors"
	"github.com/magnetlabs/magnet/internal/printer"
	"github.com/magnetlabs/magnet/internal/probe"
)

// ProbeCmd launches an installed server from its client config record and asks it for its tools.
type ProbeCmd struct {
	*cmd.BaseCmd
	timeout        time.Duration
	format         cmd.OutputFormat
	settingsLoader config.Loader
}

// NewProbeCmd creates the probe command.
func NewProbeCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ProbeCmd{
		BaseCmd:        baseCmd,
		format:         cmd.FormatText,
		settingsLoader: opts.SettingsLoader,
	}

	cobraCmd := &cobra.Command{
		Use:   "probe <server-id> [--timeout]",
		Short: "Checks that an installed server starts and lists its tools",
		Long: "Launches an installed server exactly as the desktop client would, using its record in the client config, " +
			"then initializes an MCP session over stdio and lists the tools the server offers. " +
			"The server is stopped afterwards.",
		RunE: c.run,
		Args: cobra.ExactArgs(1), // server-id
	}

	cobraCmd.Flags().DurationVar(
		&c.timeout,
		"timeout",
		probe.DefaultTimeout,
		"How long the server has to start and list its tools",
	)

	allowed := cmd.AllowedOutputFormats()
	cobraCmd.Flags().Var(
		&c.format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)

	return cobraCmd, nil
}

func (c *ProbeCmd) run(cobraCmd *cobra.Command, args []string) error {
	id := strings.TrimSpace(args[0])
	if id == "" {
		return fmt.Errorf("%w: server-id is required", errors.ErrBadRequest)
	}

	handler, err := cmd.NewOutputHandler[probe.Result](c.format, cobraCmd.OutOrStdout(), &printer.ProbePrinter{})
	if err != nil {
		return err
	}

	logger := c.Logger()

	ws, err := cmd.OpenWorkspace(logger, c.settingsLoader)
	if err != nil {
		return handler.HandleError(err)
	}
	defer func() { _ = ws.Close() }()

	cfg, err := clientconfig.Load(ws.ConfigPath)
	if err != nil {
		return handler.HandleError(err)
	}

	rec, ok := cfg.Record(id)
	if !ok {
		return handler.HandleError(fmt.Errorf("%w: '%s' is not installed", errors.ErrServerNotFound, id))
	}

	result, err := probe.NewProber(logger, cmd.AppName(), cmd.Version()).Probe(cobraCmd.Context(), id, rec, c.timeout)
	if err != nil {
		return handler.HandleError(err)
	}

	return handler.HandleResult(result)
}
