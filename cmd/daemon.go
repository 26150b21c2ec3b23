package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/magnetlabs/magnet/internal/cmd"
	cmdopts "github.com/magnetlabs/magnet/internal/cmd/options"
	"github.com/magnetlabs/magnet/internal/config"
	"github.com/magnetlabs/magnet/internal/daemon"
	"github.com/magnetlabs/magnet/internal/flags"
	"github.com/magnetlabs/magnet/internal/launcher"
)

const (
	flagNameAddr            = "addr"
	flagNameCORSOrigin      = "cors-origin"
	flagNameRefreshInterval = "refresh-interval"
	flagNameSyncOnStart     = "sync-on-start"
)

// DaemonCmd should be used to represent the 'daemon' command.
type DaemonCmd struct {
	*cmd.BaseCmd
	Addr            string
	CORSOrigins     []string
	RefreshInterval time.Duration
	SyncOnStart     bool
	settingsLoader  config.Loader
	launcher        launcher.Launcher
}

// NewDaemonCmd creates a newly configured (Cobra) command.
func NewDaemonCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &DaemonCmd{
		BaseCmd:        baseCmd,
		settingsLoader: opts.SettingsLoader,
		launcher:       opts.Launcher,
	}

	cobraCommand := &cobra.Command{
		Use:   "daemon [--addr] [--cors-origin]... [--refresh-interval]",
		Short: "Serves the server and catalog operations over a local HTTP API",
		Long: "Serves the server and catalog operations over a local HTTP API under /api/v1, " +
			"optionally refreshing the catalog on an interval. " +
			"Flags override the [daemon] section of the settings file.",
		RunE: c.run,
		Args: cobra.NoArgs,
	}

	cobraCommand.Flags().StringVar(
		&c.Addr,
		flagNameAddr,
		"",
		fmt.Sprintf("Address for the API to bind (defaults to the settings file, then '%s')", config.DefaultDaemonAddr),
	)

	cobraCommand.Flags().StringArrayVar(
		&c.CORSOrigins,
		flagNameCORSOrigin,
		nil,
		"Origin allowed to call the API from a browser (can be repeated, '*' allows any origin)",
	)

	cobraCommand.Flags().DurationVar(
		&c.RefreshInterval,
		flagNameRefreshInterval,
		0,
		"Interval between catalog refreshes (e.g. 30m, 6h), 0 disables refreshing",
	)

	cobraCommand.Flags().BoolVar(
		&c.SyncOnStart,
		flagNameSyncOnStart,
		false,
		"Sync the catalog once before serving requests",
	)

	return cobraCommand, nil
}

// run is configured (via NewDaemonCmd) to be called by the Cobra framework when the command is executed.
// It may return an error (or nil, when there is no error).
func (c *DaemonCmd) run(cobraCmd *cobra.Command, _ []string) error {
	logger := c.Logger()

	ws, err := cmd.OpenWorkspace(logger, c.settingsLoader)
	if err != nil {
		return err
	}
	defer func() { _ = ws.Close() }()

	addr := strings.TrimSpace(c.Addr)
	if addr == "" {
		addr = ws.Settings.Daemon.Addr
	}
	if err := daemon.IsValidAddr(addr); err != nil {
		return err
	}

	origins := ws.Settings.Daemon.CORSOrigins
	if cobraCmd.Flags().Changed(flagNameCORSOrigin) {
		origins = c.CORSOrigins
	}

	interval := ws.Settings.Daemon.RefreshInterval.Std()
	if cobraCmd.Flags().Changed(flagNameRefreshInterval) {
		interval = c.RefreshInterval
	}

	manager, err := ws.Manager(c.launcher)
	if err != nil {
		return err
	}

	syncer, err := ws.Syncer(false)
	if err != nil {
		return err
	}

	d, err := daemon.NewDaemon(
		daemon.Dependencies{
			APIAddr:    addr,
			CatalogURL: ws.Settings.Catalog.URL,
			Logger:     logger,
			Manager:    manager,
			Syncer:     syncer,
			Version:    cmd.Version(),
		},
		daemon.WithAPIOptions(daemon.WithCORSAllowOrigins(origins)),
		daemon.WithRefreshInterval(interval),
		daemon.WithSyncOnStart(c.SyncOnStart),
	)
	if err != nil {
		return fmt.Errorf("failed to create magnet daemon instance: %w", err)
	}

	// Create the signal handling context for the application.
	daemonCtx, daemonCtxCancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM, syscall.SIGINT,
	)
	defer daemonCtxCancel()

	banner := fmt.Sprintf("magnet daemon running.\n\n"+
		"  Local API:\thttp://%s/api/v1\n"+
		"  OpenAPI UI:\thttp://%s/docs\n"+
		"  Client config:\t%s\n"+
		"  Store:\t%s\n",
		addr, addr, ws.ConfigPath, ws.StorePath)

	if flags.LogPath != "" {
		banner += fmt.Sprintf("  Log file:\t%s => (%s)\n", flags.LogPath, flags.LogLevel)
	}

	banner += "\nPress Ctrl+C to stop.\n\n"
	_, _ = fmt.Fprint(cobraCmd.OutOrStdout(), banner)

	if err := d.StartAndManage(daemonCtx); err != nil {
		logger.Error("daemon exited with error", "error", err)
		return err
	}

	logger.Info("Shutting down daemon")

	return nil
}
