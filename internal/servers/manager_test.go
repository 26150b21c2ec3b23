package servers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/magnetlabs/magnet/internal/catalog"
	"github.com/magnetlabs/magnet/internal/clientconfig"
	"github.com/magnetlabs/magnet/internal/errors"
	"github.com/magnetlabs/magnet/internal/launcher"
	"github.com/magnetlabs/magnet/internal/perms"
	"github.com/magnetlabs/magnet/internal/runtime"
	"github.com/magnetlabs/magnet/internal/store"
)

const testCatalog = `[
  {
    "id": "weather",
    "title": "Weather",
    "commandInfo": {
      "command": "uvx",
      "args": ["run"],
      "env": {"API_KEY": ""},
      "inputArg": {"value": []}
    }
  },
  {
    "id": "filesystem",
    "title": "Filesystem",
    "commandInfo": {
      "command": "npx",
      "args": ["-y", "@modelcontextprotocol/server-filesystem"],
      "env": {"DEBUG": "0"},
      "inputArg": {
        "name": "directories",
        "class": "DirectoryPath",
        "multiplicity": "Multiple",
        "value": []
      }
    }
  },
  {
    "id": "remote",
    "title": "Remote",
    "commandInfo": {
      "command": "docker",
      "args": ["run", "-i", "remote"],
      "inputArg": {"name": "token"}
    }
  }
]`

type fixture struct {
	manager    *Manager
	store      *store.JSONFileStore
	configPath string
}

func newFixture(t *testing.T, inner string, tc runtime.Toolchain, l launcher.Launcher, opts ...Option) *fixture {
	t.Helper()

	dir := t.TempDir()
	st, err := store.NewJSONFileStore(hclog.NewNullLogger(), filepath.Join(dir, store.DefaultJSONFileName))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.SaveServers(ctx, st, []byte(inner)))
	require.NoError(t, store.SaveTool(ctx, st, runtime.Node, tc.Node))
	require.NoError(t, store.SaveTool(ctx, st, runtime.UV, tc.UV))

	configPath := filepath.Join(dir, "Claude", "claude_desktop_config.json")
	m, err := NewManager(hclog.NewNullLogger(), Dependencies{
		Store:      st,
		ConfigPath: configPath,
		Launcher:   l,
	}, opts...)
	require.NoError(t, err)

	return &fixture{manager: m, store: st, configPath: configPath}
}

func systemToolchain() runtime.Toolchain {
	return runtime.Toolchain{
		Node: runtime.Tool{System: true},
		UV:   runtime.Tool{System: true},
	}
}

func (f *fixture) record(t *testing.T, id string) clientconfig.Record {
	t.Helper()

	cfg, err := clientconfig.Load(f.configPath)
	require.NoError(t, err)

	rec, ok := cfg.Record(id)
	require.True(t, ok, "record %q not found", id)
	return rec
}

func (f *fixture) readConfig(t *testing.T) []byte {
	t.Helper()

	data, err := os.ReadFile(f.configPath)
	require.NoError(t, err)
	return data
}

func TestNewManager_Validation(t *testing.T) {
	t.Parallel()

	st, err := store.NewJSONFileStore(hclog.NewNullLogger(), filepath.Join(t.TempDir(), "s.json"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		deps    Dependencies
		opts    []Option
		message string
	}{
		{
			name:    "nil store",
			deps:    Dependencies{ConfigPath: "/tmp/c.json", Launcher: launcher.NewPOSIX(nil)},
			message: "store cannot be nil",
		},
		{
			name:    "nil typed store",
			deps:    Dependencies{Store: (*store.JSONFileStore)(nil), ConfigPath: "/tmp/c.json", Launcher: launcher.NewPOSIX(nil)},
			message: "store cannot be nil",
		},
		{
			name:    "empty config path",
			deps:    Dependencies{Store: st, ConfigPath: " ", Launcher: launcher.NewPOSIX(nil)},
			message: "client config path cannot be empty",
		},
		{
			name:    "nil launcher",
			deps:    Dependencies{Store: st, ConfigPath: "/tmp/c.json"},
			message: "launcher cannot be nil",
		},
		{
			name:    "empty creator",
			deps:    Dependencies{Store: st, ConfigPath: "/tmp/c.json", Launcher: launcher.NewPOSIX(nil)},
			opts:    []Option{WithCreator("  ")},
			message: "creator cannot be empty",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewManager(hclog.NewNullLogger(), tc.deps, tc.opts...)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestInstall_PrivateRuntimePOSIX(t *testing.T) {
	t.Parallel()

	tc := systemToolchain()
	tc.UV = runtime.Tool{Path: "/home/u/.uv/bin/uv", System: false}
	f := newFixture(t, testCatalog, tc, launcher.NewPOSIX(nil))

	require.NoError(t, f.manager.Install(context.Background(), "weather", InstallOptions{}))

	rec := f.record(t, "weather")
	require.Equal(t, "sh", rec.Command)
	require.Equal(t, []string{"-c", `PATH="/home/u/.uv/bin:$PATH" uvx run `}, rec.Args)
	require.Equal(t, DefaultCreator, rec.CommandCreator)
	require.Equal(t, map[string]string{"API_KEY": ""}, map[string]string(rec.Env))
	require.NotNil(t, rec.InputArg)
	require.Empty(t, rec.InputArg.Value)
}

func TestInstall_PrivateRuntimeWindows(t *testing.T) {
	t.Parallel()

	tc := systemToolchain()
	tc.UV = runtime.Tool{Path: `C:\Users\u\.uv\bin\uv.exe`, System: false}
	f := newFixture(t, testCatalog, tc, launcher.NewWindows(nil))

	require.NoError(t, f.manager.Install(context.Background(), "weather", InstallOptions{}))

	rec := f.record(t, "weather")
	require.Equal(t, "cmd", rec.Command)
	require.Equal(t, []string{"/c", `set "PATH=C:\Users\u\.uv\bin;%PATH%" && uvx run `}, rec.Args)
}

func TestInstall_SystemRuntimeKeepsCatalogCommand(t *testing.T) {
	t.Parallel()

	tc := systemToolchain()
	tc.UV.Path = "/usr/bin/uv"
	f := newFixture(t, testCatalog, tc, launcher.NewPOSIX(nil))

	require.NoError(t, f.manager.Install(context.Background(), "weather", InstallOptions{}))

	rec := f.record(t, "weather")
	require.Equal(t, "uvx", rec.Command)
	require.Equal(t, []string{"run"}, rec.Args)
}

func TestInstall_PrivateRuntimeWithoutPathUsesSearchPath(t *testing.T) {
	t.Parallel()

	tc := systemToolchain()
	tc.UV = runtime.Tool{}
	f := newFixture(t, testCatalog, tc, launcher.NewPOSIX(nil))

	require.NoError(t, f.manager.Install(context.Background(), "weather", InstallOptions{}))

	rec := f.record(t, "weather")
	require.Equal(t, "uvx", rec.Command)
	require.Equal(t, []string{"run"}, rec.Args)
}

func TestInstall_InputArgs(t *testing.T) {
	t.Parallel()

	t.Run("direct launch appends each value as an argument", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, testCatalog, systemToolchain(), launcher.NewPOSIX(nil))
		err := f.manager.Install(context.Background(), "filesystem", InstallOptions{
			InputArgs: []string{"/home/u/my docs", "/tmp"},
		})
		require.NoError(t, err)

		rec := f.record(t, "filesystem")
		require.Equal(t, "npx", rec.Command)
		require.Equal(t, []string{"-y", "@modelcontextprotocol/server-filesystem", "/home/u/my docs", "/tmp"}, rec.Args)
		require.Equal(t, []string{"/home/u/my docs", "/tmp"}, rec.InputArg.Value)
		require.Equal(t, "directories", rec.InputArg.Name)
	})

	t.Run("wrapped launch quotes each value after the catalog arguments", func(t *testing.T) {
		t.Parallel()

		tc := systemToolchain()
		tc.Node = runtime.Tool{Path: "/opt/node/bin/node"}
		f := newFixture(t, testCatalog, tc, launcher.NewPOSIX(nil))

		err := f.manager.Install(context.Background(), "filesystem", InstallOptions{
			InputArgs: []string{"/home/u/my docs", "/tmp"},
		})
		require.NoError(t, err)

		rec := f.record(t, "filesystem")
		require.Equal(t, "sh", rec.Command)
		require.Equal(t, []string{
			"-c",
			`PATH="/opt/node/bin:$PATH" npx -y @modelcontextprotocol/server-filesystem '/home/u/my docs' /tmp`,
		}, rec.Args)
	})

	t.Run("windows wrapped launch rejects values cmd would expand", func(t *testing.T) {
		t.Parallel()

		tc := systemToolchain()
		tc.Node = runtime.Tool{Path: `C:\tools\node\node.exe`}
		f := newFixture(t, testCatalog, tc, launcher.NewWindows(nil))

		err := f.manager.Install(context.Background(), "filesystem", InstallOptions{
			InputArgs: []string{`%USERPROFILE%\docs`},
		})
		require.ErrorIs(t, err, errors.ErrBadRequest)
		require.NoFileExists(t, f.configPath)

		require.NoError(t, f.manager.Install(context.Background(), "filesystem", InstallOptions{
			InputArgs: []string{`C:\my "docs"`},
		}))
		rec := f.record(t, "filesystem")
		require.Equal(t, "cmd", rec.Command)
		require.Equal(t, []string{
			"/c",
			`set "PATH=C:\tools\node;%PATH%" && npx -y @modelcontextprotocol/server-filesystem "C:\my ""docs"""`,
		}, rec.Args)
	})

	t.Run("non runtime command is never wrapped", func(t *testing.T) {
		t.Parallel()

		tc := runtime.Toolchain{Node: runtime.Tool{Path: "/opt/node/bin/node"}, UV: runtime.Tool{Path: "/opt/uv"}}
		f := newFixture(t, testCatalog, tc, launcher.NewPOSIX(nil))

		require.NoError(t, f.manager.Install(context.Background(), "remote", InstallOptions{InputArgs: []string{"t0k;en"}}))

		rec := f.record(t, "remote")
		require.Equal(t, "docker", rec.Command)
		require.Equal(t, []string{"run", "-i", "remote", "t0k;en"}, rec.Args)
	})

	t.Run("single value input rejects several values", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, testCatalog, systemToolchain(), launcher.NewPOSIX(nil))

		err := f.manager.Install(context.Background(), "remote", InstallOptions{InputArgs: []string{"a", "b"}})
		require.ErrorIs(t, err, errors.ErrBadRequest)
		require.NoFileExists(t, f.configPath)
	})
}

func TestInstall_ShellEscapedValueReachesProgramUnchanged(t *testing.T) {
	t.Parallel()
	if goruntime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	// A fake 'npx' in a private tool directory that prints each argument it receives.
	toolDir := t.TempDir()
	script := "#!/bin/sh\nfor a in \"$@\"; do printf '%s|' \"$a\"; done\n"
	require.NoError(t, os.WriteFile(filepath.Join(toolDir, "npx"), []byte(script), 0o755))

	tc := systemToolchain()
	tc.Node = runtime.Tool{Path: toolDir}
	f := newFixture(t, testCatalog, tc, launcher.NewPOSIX(os.Stat))

	value := `my "quoted" dir; echo pwned $HOME`
	require.NoError(t, f.manager.Install(context.Background(), "filesystem", InstallOptions{InputArgs: []string{value}}))

	rec := f.record(t, "filesystem")
	require.Equal(t, "sh", rec.Command)

	out, err := exec.Command(rec.Command, rec.Args...).Output()
	require.NoError(t, err)
	require.Equal(t, "-y|@modelcontextprotocol/server-filesystem|"+value+"|", string(out))
}

func TestInstall_OverwritesExistingRecord(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testCatalog, systemToolchain(), launcher.NewPOSIX(nil))
	ctx := context.Background()

	require.NoError(t, f.manager.Install(ctx, "weather", InstallOptions{Env: map[string]string{"API_KEY": "first"}}))
	require.NoError(t, f.manager.Install(ctx, "weather", InstallOptions{Env: map[string]string{"API_KEY": "second"}}))

	cfg, err := clientconfig.Load(f.configPath)
	require.NoError(t, err)
	require.Len(t, cfg.Records(), 1)

	rec := f.record(t, "weather")
	require.Equal(t, map[string]string{"API_KEY": "second"}, map[string]string(rec.Env))
}

func TestInstall_UnknownServer(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testCatalog, systemToolchain(), launcher.NewPOSIX(nil))

	err := f.manager.Install(context.Background(), "missing", InstallOptions{})
	require.ErrorIs(t, err, errors.ErrServerNotFound)
	require.NoFileExists(t, f.configPath)
}

func TestInstall_PreservesUnrelatedContent(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testCatalog, systemToolchain(), launcher.NewPOSIX(nil))
	require.NoError(t, os.MkdirAll(filepath.Dir(f.configPath), perms.RegularDir))
	require.NoError(t, os.WriteFile(f.configPath, []byte(`{
  "globalShortcut": "Ctrl+Space",
  "mcpServers": {"other": {"command": "node", "args": ["server.js"], "disabled": true}}
}`), perms.RegularFile))

	require.NoError(t, f.manager.Install(context.Background(), "weather", InstallOptions{}))

	var got map[string]any
	require.NoError(t, json.Unmarshal(f.readConfig(t), &got))
	require.Equal(t, "Ctrl+Space", got["globalShortcut"])

	servers := got[clientconfig.KeyServers].(map[string]any)
	require.Contains(t, servers, "weather")
	require.Equal(t, map[string]any{
		"command":  "node",
		"args":     []any{"server.js"},
		"disabled": true,
	}, servers["other"])
}

func TestUninstall(t *testing.T) {
	t.Parallel()

	t.Run("removes installed record", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, testCatalog, systemToolchain(), launcher.NewPOSIX(nil))
		ctx := context.Background()

		require.NoError(t, f.manager.Install(ctx, "weather", InstallOptions{}))
		require.NoError(t, f.manager.Install(ctx, "filesystem", InstallOptions{}))
		require.NoError(t, f.manager.Uninstall(ctx, "weather"))

		cfg, err := clientconfig.Load(f.configPath)
		require.NoError(t, err)
		_, ok := cfg.Record("weather")
		require.False(t, ok)
		_, ok = cfg.Record("filesystem")
		require.True(t, ok)
	})

	t.Run("not installed leaves file unchanged", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, testCatalog, systemToolchain(), launcher.NewPOSIX(nil))
		require.NoError(t, os.MkdirAll(filepath.Dir(f.configPath), perms.RegularDir))

		// Deliberately not in the canonical format, so any rewrite would be visible.
		original := `{"mcpServers":{},   "theme":"dark"}`
		require.NoError(t, os.WriteFile(f.configPath, []byte(original), perms.RegularFile))

		require.NoError(t, f.manager.Uninstall(context.Background(), "weather"))
		require.Equal(t, original, string(f.readConfig(t)))
	})

	t.Run("not installed with no file does not create one", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, testCatalog, systemToolchain(), launcher.NewPOSIX(nil))

		require.NoError(t, f.manager.Uninstall(context.Background(), "weather"))
		require.NoFileExists(t, f.configPath)
	})

	t.Run("unknown identifier is removed even if the catalog lacks it", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, testCatalog, systemToolchain(), launcher.NewPOSIX(nil))
		require.NoError(t, os.MkdirAll(filepath.Dir(f.configPath), perms.RegularDir))
		require.NoError(t, os.WriteFile(f.configPath, []byte(`{"mcpServers":{"gone":{"command":"x"}}}`), perms.RegularFile))

		require.NoError(t, f.manager.Uninstall(context.Background(), "gone"))

		cfg, err := clientconfig.Load(f.configPath)
		require.NoError(t, err)
		require.Empty(t, cfg.Records())
	})
}

func TestUpdate_MatchesUninstallThenInstall(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tc := systemToolchain()
	tc.Node = runtime.Tool{Path: "/opt/node/bin/node"}
	opts := InstallOptions{
		Env:       map[string]string{"DEBUG": "1"},
		InputArgs: []string{"/srv/data", "/srv/other dir"},
	}

	updated := newFixture(t, testCatalog, tc, launcher.NewPOSIX(nil))
	require.NoError(t, updated.manager.Install(ctx, "filesystem", InstallOptions{Env: map[string]string{"OLD": "x"}}))
	require.NoError(t, updated.manager.Update(ctx, "filesystem", opts))

	replaced := newFixture(t, testCatalog, tc, launcher.NewPOSIX(nil))
	require.NoError(t, replaced.manager.Install(ctx, "filesystem", InstallOptions{Env: map[string]string{"OLD": "x"}}))
	require.NoError(t, replaced.manager.Uninstall(ctx, "filesystem"))
	require.NoError(t, replaced.manager.Install(ctx, "filesystem", opts))

	require.Equal(t, string(replaced.readConfig(t)), string(updated.readConfig(t)))

	rec := updated.record(t, "filesystem")
	require.Equal(t, map[string]string{"DEBUG": "1"}, map[string]string(rec.Env))
	require.NotContains(t, rec.Env, "OLD")
}

func TestUpdate_NotInstalledInstalls(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testCatalog, systemToolchain(), launcher.NewPOSIX(nil))

	require.NoError(t, f.manager.Update(context.Background(), "weather", InstallOptions{Env: map[string]string{"API_KEY": "k"}}))

	rec := f.record(t, "weather")
	require.Equal(t, "k", rec.Env["API_KEY"])
}

func TestUpdate_UnknownServerKeepsExistingRecords(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testCatalog, systemToolchain(), launcher.NewPOSIX(nil))
	ctx := context.Background()

	require.NoError(t, f.manager.Install(ctx, "weather", InstallOptions{}))
	before := f.readConfig(t)

	err := f.manager.Update(ctx, "missing", InstallOptions{})
	require.ErrorIs(t, err, errors.ErrServerNotFound)
	require.Equal(t, string(before), string(f.readConfig(t)))
}

func TestServers_Projection(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testCatalog, systemToolchain(), launcher.NewPOSIX(nil))
	ctx := context.Background()

	all, err := f.manager.Servers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, s := range all {
		require.False(t, s.IsInstalled)
	}

	env := map[string]string{"DEBUG": "1"}
	require.NoError(t, f.manager.Install(ctx, "filesystem", InstallOptions{Env: env, InputArgs: []string{"/a"}}))

	all, err = f.manager.Servers(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"weather", "filesystem", "remote"}, ids(all))
	require.True(t, all[1].IsInstalled)
	require.Equal(t, env, all[1].Env)
	require.Equal(t, []string{"/a"}, all[1].InputArg.Value)

	installed, err := f.manager.InstalledServers(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"filesystem"}, ids(installed))

	require.NoError(t, f.manager.Uninstall(ctx, "filesystem"))

	all, err = f.manager.Servers(ctx)
	require.NoError(t, err)
	require.False(t, all[1].IsInstalled)
	require.Equal(t, map[string]string{"DEBUG": "0"}, all[1].Env)
	require.Empty(t, all[1].InputArg.Value)
}

func TestServers_IgnoresRecordsOutsideCatalog(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testCatalog, systemToolchain(), launcher.NewPOSIX(nil))
	require.NoError(t, os.MkdirAll(filepath.Dir(f.configPath), perms.RegularDir))
	require.NoError(t, os.WriteFile(f.configPath, []byte(`{"mcpServers":{"foreign":{"command":"x"}}}`), perms.RegularFile))

	installed, err := f.manager.InstalledServers(context.Background())
	require.NoError(t, err)
	require.Empty(t, installed)
}

func TestServers_CatalogErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing catalog", func(t *testing.T) {
		t.Parallel()

		st, err := store.NewJSONFileStore(hclog.NewNullLogger(), filepath.Join(t.TempDir(), "s.json"))
		require.NoError(t, err)

		m, err := NewManager(hclog.NewNullLogger(), Dependencies{
			Store:      st,
			ConfigPath: filepath.Join(t.TempDir(), "c.json"),
			Launcher:   launcher.NewPOSIX(nil),
		})
		require.NoError(t, err)

		_, err = m.Servers(context.Background())
		require.ErrorIs(t, err, errors.ErrStoreKeyMissing)
	})

	t.Run("schema violation", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, `[{"id":"x","commandInfo":{"args":[]}}]`, systemToolchain(), launcher.NewPOSIX(nil))

		_, err := f.manager.Servers(context.Background())
		require.ErrorIs(t, err, errors.ErrMalformed)
	})

	t.Run("schema validation disabled", func(t *testing.T) {
		t.Parallel()

		f := newFixture(
			t,
			`[{"id":"x","commandInfo":{"args":[]}}]`,
			systemToolchain(),
			launcher.NewPOSIX(nil),
			WithSchemaValidation(false),
		)

		all, err := f.manager.Servers(context.Background())
		require.NoError(t, err)
		require.Equal(t, []string{"x"}, ids(all))
	})

	t.Run("malformed client config", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, testCatalog, systemToolchain(), launcher.NewPOSIX(nil))
		require.NoError(t, os.MkdirAll(filepath.Dir(f.configPath), perms.RegularDir))
		require.NoError(t, os.WriteFile(f.configPath, []byte(`{"mcpServers":`), perms.RegularFile))

		_, err := f.manager.Servers(context.Background())
		require.ErrorIs(t, err, errors.ErrMalformed)

		err = f.manager.Install(context.Background(), "weather", InstallOptions{})
		require.ErrorIs(t, err, errors.ErrMalformed)
		require.Equal(t, `{"mcpServers":`, string(f.readConfig(t)))
	})
}

func TestInstall_CustomCreator(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testCatalog, systemToolchain(), launcher.NewPOSIX(nil), WithCreator("Tester"))
	require.NoError(t, f.manager.Install(context.Background(), "weather", InstallOptions{}))

	require.Equal(t, "Tester", f.record(t, "weather").CommandCreator)
}

func TestInstall_ConcurrentManagersDoNotLoseUpdates(t *testing.T) {
	t.Parallel()

	const count = 20

	entries := make([]string, 0, count)
	for i := range count {
		entries = append(entries, fmt.Sprintf(`{"id":"server-%d","commandInfo":{"command":"npx","args":["pkg-%d"]}}`, i, i))
	}
	inner := "[" + strings.Join(entries, ",") + "]"

	f := newFixture(t, inner, systemToolchain(), launcher.NewPOSIX(nil))

	var g errgroup.Group
	for i := range count {
		// Separate managers for the same file share one lock.
		m, err := NewManager(hclog.NewNullLogger(), Dependencies{
			Store:      f.store,
			ConfigPath: f.configPath,
			Launcher:   launcher.NewPOSIX(nil),
		})
		require.NoError(t, err)

		g.Go(func() error {
			return m.Install(context.Background(), fmt.Sprintf("server-%d", i), InstallOptions{})
		})
	}
	require.NoError(t, g.Wait())

	cfg, err := clientconfig.Load(f.configPath)
	require.NoError(t, err)
	require.Len(t, cfg.Records(), count)
}

func TestNewResult(t *testing.T) {
	t.Parallel()

	require.Equal(t, Result{Success: true, Message: "done"}, NewResult(nil, "done"))

	r := NewResult(fmt.Errorf("%w: 'x'", errors.ErrServerNotFound), "done")
	require.False(t, r.Success)
	require.Contains(t, r.Message, "server not found")
}

func ids(servers []catalog.FrontendServer) []string {
	out := make([]string, 0, len(servers))
	for _, s := range servers {
		out = append(out, s.ID)
	}
	return out
}
