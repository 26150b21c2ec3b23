package runtime

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/magnetlabs/magnet/internal/cmd"
	cmdopts "github.com/magnetlabs/magnet/internal/cmd/options"
	"github.com/magnetlabs/magnet/internal/config"
	"github.com/magnetlabs/magnet/internal/errors"
	"github.com/magnetlabs/magnet/internal/printer"
	"github.com/magnetlabs/magnet/internal/runtime"
	"github.com/magnetlabs/magnet/internal/servers"
	"github.com/magnetlabs/magnet/internal/store"
)

// SetCmd records where a runtime tool lives, as the dependency provisioner would.
type SetCmd struct {
	*cmd.BaseCmd
	path           string
	system         bool
	format         cmd.OutputFormat
	settingsLoader config.Loader
}

// NewSetCmd creates the set command.
func NewSetCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &SetCmd{
		BaseCmd:        baseCmd,
		format:         cmd.FormatText,
		settingsLoader: opts.SettingsLoader,
	}

	cobraCmd := &cobra.Command{
		Use:   "set <node|uv> [--path PATH] [--system]",
		Short: "Records where a runtime tool is found",
		Long: "Records where a runtime tool is found. " +
			"With --path, servers installed afterwards run through the platform shell with the tool's directory " +
			"prepended to the search path. With --system, the tool is found on the system search path.",
		RunE: c.run,
		Args: cobra.ExactArgs(1), // tool
	}

	cobraCmd.Flags().StringVar(
		&c.path,
		"path",
		"",
		"Path to the privately provisioned tool binary, or the directory containing it",
	)

	cobraCmd.Flags().BoolVar(
		&c.system,
		"system",
		false,
		"Use the tool found on the system search path",
	)

	allowed := cmd.AllowedOutputFormats()
	cobraCmd.Flags().Var(
		&c.format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)

	return cobraCmd, nil
}

func (c *SetCmd) run(cobraCmd *cobra.Command, args []string) error {
	name, err := runtime.ParseToolName(args[0])
	if err != nil {
		return err
	}

	tool := runtime.Tool{Path: strings.TrimSpace(c.path), System: c.system}
	if tool.Path == "" && !tool.System {
		return fmt.Errorf("%w: either --path or --system is required", errors.ErrBadRequest)
	}

	handler, err := cmd.NewOutputHandler[servers.Result](c.format, cobraCmd.OutOrStdout(), &printer.ResultPrinter{})
	if err != nil {
		return err
	}

	logger := c.Logger()

	ws, err := cmd.OpenWorkspace(logger, c.settingsLoader)
	if err != nil {
		return handler.HandleError(err)
	}
	defer func() { _ = ws.Close() }()

	if err := store.SaveTool(cobraCmd.Context(), ws.Store, name, tool); err != nil {
		return handler.HandleError(err)
	}

	logger.Info("Runtime tool recorded", "tool", name, "path", tool.Path, "system", tool.System)

	location := "the system search path"
	if !tool.System {
		location = fmt.Sprintf("'%s'", tool.Path)
	}

	return handler.HandleResult(servers.NewResult(nil, fmt.Sprintf("Runtime '%s' uses %s", name, location)))
}
