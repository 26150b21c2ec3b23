package catalog

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/magnetlabs/magnet/internal/cmd"
	cmdopts "github.com/magnetlabs/magnet/internal/cmd/options"
	"github.com/magnetlabs/magnet/internal/config"
	"github.com/magnetlabs/magnet/internal/printer"
	"github.com/magnetlabs/magnet/internal/servers"
)

// SyncCmd downloads the catalog and stores it for the other commands to read.
type SyncCmd struct {
	*cmd.BaseCmd
	url            string
	refresh        bool
	format         cmd.OutputFormat
	settingsLoader config.Loader
}

// NewSyncCmd creates the sync command.
func NewSyncCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &SyncCmd{
		BaseCmd:        baseCmd,
		format:         cmd.FormatText,
		settingsLoader: opts.SettingsLoader,
	}

	cobraCmd := &cobra.Command{
		Use:   "sync [--url] [--refresh]",
		Short: "Downloads the server catalog into the state store",
		Long: "Downloads the server catalog and stores it in the application state store. " +
			"Downloads are cached for the settings file's catalog cache_ttl, " +
			"when the download fails a previously cached copy is used instead.",
		RunE: c.run,
		Args: cobra.NoArgs,
	}

	cobraCmd.Flags().StringVar(
		&c.url,
		"url",
		"",
		fmt.Sprintf("Catalog URL, http(s) or file (defaults to the settings file, then '%s')", config.DefaultCatalogURL),
	)

	cobraCmd.Flags().BoolVar(
		&c.refresh,
		"refresh",
		false,
		"Ignore the cached download and fetch the catalog again",
	)

	allowed := cmd.AllowedOutputFormats()
	cobraCmd.Flags().Var(
		&c.format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)

	return cobraCmd, nil
}

func (c *SyncCmd) run(cobraCmd *cobra.Command, _ []string) error {
	handler, err := cmd.NewOutputHandler[servers.Result](c.format, cobraCmd.OutOrStdout(), &printer.ResultPrinter{})
	if err != nil {
		return err
	}

	ws, err := cmd.OpenWorkspace(c.Logger(), c.settingsLoader)
	if err != nil {
		return handler.HandleError(err)
	}
	defer func() { _ = ws.Close() }()

	url := strings.TrimSpace(c.url)
	if url == "" {
		url = ws.Settings.Catalog.URL
	}

	syncer, err := ws.Syncer(c.refresh)
	if err != nil {
		return handler.HandleError(err)
	}

	count, err := syncer.Sync(cobraCmd.Context(), url)
	result := servers.NewResult(err, fmt.Sprintf("Catalog synced (%d servers)", count))
	if err := handler.HandleResult(result); err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("catalog sync failed: %s", result.Message)
	}

	return nil
}
