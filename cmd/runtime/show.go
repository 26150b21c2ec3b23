package runtime

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magnetlabs/magnet/internal/cmd"
	cmdopts "github.com/magnetlabs/magnet/internal/cmd/options"
	"github.com/magnetlabs/magnet/internal/config"
	"github.com/magnetlabs/magnet/internal/printer"
	"github.com/magnetlabs/magnet/internal/runtime"
	"github.com/magnetlabs/magnet/internal/store"
)

// ShowCmd prints the runtime tools recorded in the state store.
type ShowCmd struct {
	*cmd.BaseCmd
	format         cmd.OutputFormat
	settingsLoader config.Loader
}

// NewShowCmd creates the show command.
func NewShowCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ShowCmd{
		BaseCmd:        baseCmd,
		format:         cmd.FormatText,
		settingsLoader: opts.SettingsLoader,
	}

	cobraCmd := &cobra.Command{
		Use:   "show",
		Short: "Shows where each runtime tool is found",
		RunE:  c.run,
		Args:  cobra.NoArgs,
	}

	allowed := cmd.AllowedOutputFormats()
	cobraCmd.Flags().Var(
		&c.format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)

	return cobraCmd, nil
}

func (c *ShowCmd) run(cobraCmd *cobra.Command, _ []string) error {
	handler, err := cmd.NewOutputHandler[runtime.NamedTool](c.format, cobraCmd.OutOrStdout(), &printer.ToolPrinter{})
	if err != nil {
		return err
	}

	ws, err := cmd.OpenWorkspace(c.Logger(), c.settingsLoader)
	if err != nil {
		return handler.HandleError(err)
	}
	defer func() { _ = ws.Close() }()

	tc, err := store.LoadToolchain(cobraCmd.Context(), ws.Store)
	if err != nil {
		return handler.HandleError(err)
	}

	return handler.HandleResults(tc.Tools()...)
}
