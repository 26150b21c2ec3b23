package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/magnetlabs/magnet/internal/catalog"
	"github.com/magnetlabs/magnet/internal/clientconfig"
	"github.com/magnetlabs/magnet/internal/cmd"
	cmdopts "github.com/magnetlabs/magnet/internal/cmd/options"
	"github.com/magnetlabs/magnet/internal/cmd/output"
	"github.com/magnetlabs/magnet/internal/files"
	"github.com/magnetlabs/magnet/internal/flags"
	"github.com/magnetlabs/magnet/internal/launcher"
	"github.com/magnetlabs/magnet/internal/perms"
)

const testCatalog = `[
  {
    "id": "docs",
    "title": "Docs",
    "commandInfo": {
      "command": "uvx",
      "args": ["docs-mcp"],
      "env": {"TOKEN": ""},
      "inputArg": {"name": "paths", "class": "DirectoryPath", "multiplicity": "Multiple"}
    }
  },
  {
    "id": "fetch",
    "title": "Fetch",
    "commandInfo": {"command": "npx", "args": ["-y", "fetch-mcp"]}
  }
]`

// restoreFlags puts the package level flags back after a test parses its own.
// Tests using it must not run in parallel.
func restoreFlags(t *testing.T) {
	t.Helper()

	prevSettings, prevClient, prevStore := flags.SettingsFile, flags.ClientConfig, flags.StoreFile
	prevLogPath, prevLogLevel := flags.LogPath, flags.LogLevel
	t.Cleanup(func() {
		flags.SettingsFile, flags.ClientConfig, flags.StoreFile = prevSettings, prevClient, prevStore
		flags.LogPath, flags.LogLevel = prevLogPath, prevLogLevel
	})
}

func testBaseCmd() *cmd.BaseCmd {
	base := &cmd.BaseCmd{}
	base.SetLogger(hclog.NewNullLogger())
	return base
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	rootCmd, err := NewRootCmd(testBaseCmd(), cmdopts.WithLauncher(launcher.ForOS("linux")))
	require.NoError(t, err)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{}, args...))

	err = rootCmd.Execute()
	return out.String(), err
}

func TestNewRootCmd(t *testing.T) {
	restoreFlags(t)

	rootCmd, err := NewRootCmd(testBaseCmd())
	require.NoError(t, err)
	require.Equal(t, cmd.Version(), rootCmd.Version)
	require.True(t, rootCmd.SilenceUsage)

	names := make([]string, 0, len(rootCmd.Commands()))
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	require.Subset(t, names, []string{"init", "daemon", "servers", "catalog", "runtime"})

	for _, name := range []string{
		flags.FlagNameSettingsFile,
		flags.FlagNameClientConfig,
		flags.FlagNameStoreFile,
		flags.FlagNameLogPath,
		flags.FlagNameLogLevel,
	} {
		require.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
}

func TestNewRootCmd_InvalidOption(t *testing.T) {
	restoreFlags(t)

	_, err := NewRootCmd(testBaseCmd(), cmdopts.WithLauncher(nil))
	require.ErrorContains(t, err, "launcher cannot be nil")
}

// TestRootCmd_EndToEnd drives the commands the way a user would, sharing one set of files.
func TestRootCmd_EndToEnd(t *testing.T) {
	restoreFlags(t)

	dir := t.TempDir()
	t.Setenv(files.EnvVarXDGCacheHome, filepath.Join(dir, "cache"))

	catalogPath := filepath.Join(dir, "servers.json")
	require.NoError(t, os.WriteFile(catalogPath, []byte(testCatalog), perms.RegularFile))
	catalogURL := (&url.URL{Scheme: "file", Path: filepath.ToSlash(catalogPath)}).String()

	clientConfigPath := filepath.Join(dir, "Claude", "claude_desktop_config.json")
	global := []string{
		"--" + flags.FlagNameSettingsFile, filepath.Join(dir, "settings.toml"),
		"--" + flags.FlagNameClientConfig, clientConfigPath,
		"--" + flags.FlagNameStoreFile, filepath.Join(dir, "state", "store.json"),
	}
	run := func(args ...string) string {
		t.Helper()
		out, err := runRoot(t, append(args, global...)...)
		require.NoError(t, err, out)
		return out
	}

	// Reading before the catalog was synced fails.
	_, err := runRoot(t, append([]string{"servers", "list"}, global...)...)
	require.ErrorContains(t, err, "magnet catalog sync")

	require.Equal(t, "✓ Catalog synced (2 servers)\n", run("catalog", "sync", "--url", catalogURL))
	require.Equal(t, "✓ Runtime 'uv' uses '/opt/uv/bin/uv'\n", run("runtime", "set", "uv", "--path", "/opt/uv/bin/uv"))

	run("servers", "install", "docs", "--env", "TOKEN=abc", "--arg", "/home/u/my docs", "--arg", "/srv")
	run("servers", "install", "fetch")

	cfg, err := clientconfig.Load(clientConfigPath)
	require.NoError(t, err)

	docs, ok := cfg.Record("docs")
	require.True(t, ok)
	require.Equal(t, "sh", docs.Command)
	require.Equal(t, []string{"-c", `PATH="/opt/uv/bin:$PATH" uvx docs-mcp '/home/u/my docs' /srv`}, docs.Args)
	require.Equal(t, clientconfig.EnvMap{"TOKEN": "abc"}, docs.Env)

	// Node was never provisioned, so npx is launched directly.
	fetch, ok := cfg.Record("fetch")
	require.True(t, ok)
	require.Equal(t, "npx", fetch.Command)
	require.Equal(t, []string{"-y", "fetch-mcp"}, fetch.Args)

	var listed output.ResultsPayload[catalog.FrontendServer]
	require.NoError(t, json.Unmarshal([]byte(run("servers", "list", "--installed", "--format", "json")), &listed))
	require.Len(t, listed.Results, 2)
	require.Equal(t, "docs", listed.Results[0].ID)
	require.Equal(t, []string{"/home/u/my docs", "/srv"}, listed.Results[0].InputArg.Value)
	require.Equal(t, map[string]string{"TOKEN": "abc"}, listed.Results[0].Env)

	run("servers", "uninstall", "docs")

	require.Equal(t, "✓ Fetch (fetch)\n\n1 server\n", run("servers", "list", "--installed"))
}
