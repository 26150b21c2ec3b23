package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magnetlabs/magnet/internal/cmd"
	cmdopts "github.com/magnetlabs/magnet/internal/cmd/options"
	"github.com/magnetlabs/magnet/internal/config"
	"github.com/magnetlabs/magnet/internal/flags"
)

type InitCmd struct {
	*cmd.BaseCmd
	settingsInitializer config.Initializer
}

func NewInitCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &InitCmd{
		BaseCmd:             baseCmd,
		settingsInitializer: opts.SettingsInitializer,
	}

	cobraCommand := &cobra.Command{
		Use:   "init",
		Short: "Creates a settings file documenting every setting and its default",
		Long:  c.longDescription(),
		RunE:  c.run,
		Args:  cobra.NoArgs,
	}

	return cobraCommand, nil
}

func (c *InitCmd) longDescription() string {
	return fmt.Sprintf(
		"Creates a settings file documenting every setting and its default value.\n\n"+
			"The file is written to '%s' unless overridden using the `--%s` flag or the `%s` environment variable. "+
			"An existing file is never overwritten.",
		flags.DefaultSettingsFile(),
		flags.FlagNameSettingsFile,
		flags.EnvVarSettingsFile,
	)
}

func (c *InitCmd) run(cobraCmd *cobra.Command, _ []string) error {
	logger := c.Logger()

	if err := c.settingsInitializer.Init(flags.SettingsFile); err != nil {
		logger.Error("Failed to initialize settings", "path", flags.SettingsFile, "error", err)
		return fmt.Errorf("error initializing settings: %w", err)
	}

	logger.Info("Created settings file", "path", flags.SettingsFile)
	_, _ = fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Created settings file '%s'\n", flags.SettingsFile)

	return nil
}
