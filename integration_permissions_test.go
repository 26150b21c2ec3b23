package main

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/magnetlabs/magnet/internal/cache"
	"github.com/magnetlabs/magnet/internal/clientconfig"
	"github.com/magnetlabs/magnet/internal/config"
	"github.com/magnetlabs/magnet/internal/perms"
	"github.com/magnetlabs/magnet/internal/store"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}
}

// TestStoreFilePermissions verifies that the state store, which may hold private tool paths,
// is created with secure permissions.
func TestStoreFilePermissions(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	storePath := filepath.Join(t.TempDir(), "store.json")

	s, err := store.Open(hclog.NewNullLogger(), store.BackendJSON, storePath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Set(context.Background(), store.KeyUseSystemNode, true))

	info, err := os.Stat(storePath)
	require.NoError(t, err)
	require.False(t, info.IsDir())
	require.Equal(t, perms.SecureFile, info.Mode().Perm(),
		"Store file should be created with secure permissions (0600)")
}

// TestSettingsFilePermissions verifies that settings files are created with regular permissions.
func TestSettingsFilePermissions(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	settingsPath := filepath.Join(t.TempDir(), "settings.toml")

	loader := &config.DefaultLoader{}
	require.NoError(t, loader.Init(settingsPath))

	info, err := os.Stat(settingsPath)
	require.NoError(t, err)
	require.False(t, info.IsDir())
	require.Equal(t, perms.RegularFile, info.Mode().Perm(),
		"Settings file should be created with regular permissions (0644)")
}

// TestClientConfigPermissions verifies that a client config written from scratch is readable by
// the desktop client, and that an existing file keeps its mode when rewritten.
func TestClientConfigPermissions(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	t.Run("new file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "Claude", "claude_desktop_config.json")
		cfg := clientconfig.New(path)
		cfg.Put("weather", clientconfig.Record{Command: "uvx", Args: []string{"weather"}})
		require.NoError(t, cfg.Save())

		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, perms.RegularFile, info.Mode().Perm(),
			"Client config should be created with regular permissions (0644)")
	})

	t.Run("existing file keeps its mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "claude_desktop_config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"mcpServers":{}}`), perms.SecureFile))
		require.NoError(t, os.Chmod(path, perms.SecureFile))

		cfg, err := clientconfig.Load(path)
		require.NoError(t, err)
		cfg.Put("weather", clientconfig.Record{Command: "uvx", Args: []string{"weather"}})
		require.NoError(t, cfg.Save())

		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, perms.SecureFile, info.Mode().Perm())
	})
}

// TestCacheDirectoryPermissions verifies that the catalog download cache directory is created with regular permissions.
func TestCacheDirectoryPermissions(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	cacheDir := filepath.Join(t.TempDir(), "cache")

	c, err := cache.NewCache(
		hclog.NewNullLogger(),
		cache.WithDirectory(cacheDir),
		cache.WithCaching(true),
	)
	require.NoError(t, err)
	require.NotNil(t, c)

	info, err := os.Stat(cacheDir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
	require.Equal(t, perms.RegularDir, info.Mode().Perm(),
		"Cache directory should be created with regular permissions (0755)")
}

// TestLogFilePermissions verifies that log files are created with regular permissions.
func TestLogFilePermissions(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	logPath := filepath.Join(t.TempDir(), "magnet.log")

	// Create log file using the same pattern as internal/cmd/basecmd.go.
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, perms.RegularFile)
	require.NoError(t, err)

	_, err = f.WriteString("test log entry\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	require.False(t, info.IsDir())
	require.Equal(t, perms.RegularFile, info.Mode().Perm(),
		"Log file should be created with regular permissions (0644)")
}
