package servers

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/magnetlabs/magnet/internal/catalog"
	"github.com/magnetlabs/magnet/internal/cmd"
	cmdopts "github.com/magnetlabs/magnet/internal/cmd/options"
	"github.com/magnetlabs/magnet/internal/config"
	"github.com/magnetlabs/magnet/internal/launcher"
	"github.com/magnetlabs/magnet/internal/printer"
)

// ListCmd represents the command for listing catalog servers and their installed state.
// Use NewListCmd to create instances of ListCmd.
type ListCmd struct {
	*cmd.BaseCmd
	installed      bool
	query          string
	tags           []string
	creator        string
	format         cmd.OutputFormat
	settingsLoader config.Loader
	launcher       launcher.Launcher
}

// NewListCmd creates a new list command.
func NewListCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ListCmd{
		BaseCmd:        baseCmd,
		format:         cmd.FormatText,
		settingsLoader: opts.SettingsLoader,
		launcher:       opts.Launcher,
	}

	cobraCmd := &cobra.Command{
		Use:   "list [--installed] [--query] [--tag]... [--creator]",
		Short: "Lists catalog servers",
		Long: "Lists every server in the stored catalog, in catalog order, with its installed state. " +
			"Installed servers show the environment variables and input values from the client config. " +
			"Filters narrow the list, and every given filter must match.",
		RunE: c.run,
		Args: cobra.NoArgs,
	}

	cobraCmd.Flags().BoolVar(
		&c.installed,
		"installed",
		false,
		"Only list servers that are installed in the client config",
	)

	cobraCmd.Flags().StringVar(
		&c.query,
		"query",
		"",
		"Only list servers whose identifier, title or description contains this text",
	)

	cobraCmd.Flags().StringArrayVar(
		&c.tags,
		"tag",
		nil,
		"Only list servers carrying this tag (can be repeated, all must match)",
	)

	cobraCmd.Flags().StringVar(
		&c.creator,
		"creator",
		"",
		"Only list servers published by this creator",
	)

	allowed := cmd.AllowedOutputFormats()
	cobraCmd.Flags().Var(
		&c.format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)

	return cobraCmd, nil
}

func (c *ListCmd) run(cobraCmd *cobra.Command, _ []string) error {
	handler, err := cmd.NewOutputHandler[catalog.FrontendServer](
		c.format,
		cobraCmd.OutOrStdout(),
		printer.NewServerPrinter(),
	)
	if err != nil {
		return err
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

	list := manager.Servers
	if c.installed {
		list = manager.InstalledServers
	}

	servers, err := list(cobraCmd.Context())
	if err != nil {
		return handler.HandleError(err)
	}

	servers, err = catalog.FilterServers(servers, map[string]string{
		catalog.FilterKeyQuery:   c.query,
		catalog.FilterKeyTags:    strings.Join(c.tags, ","),
		catalog.FilterKeyCreator: c.creator,
	})
	if err != nil {
		return handler.HandleError(err)
	}

	return handler.HandleResults(servers...)
}
