package files

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/magnetlabs/magnet/internal/perms"
)

func TestAppDirName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "magnet", AppDirName())
}

func TestUserSpecificConfigDir(t *testing.T) {
	tests := []struct {
		name        string
		xdgValue    string
		expectedDir func(t *testing.T) string
	}{
		{
			name:     "XDG_CONFIG_HOME is set and used",
			xdgValue: "/custom/xdg/path",
			expectedDir: func(t *testing.T) string {
				return filepath.Join("/custom/xdg/path", AppDirName())
			},
		},
		{
			name:     "XDG_CONFIG_HOME is set with whitespace and trimmed",
			xdgValue: "  /trimmed/xdg/path  ",
			expectedDir: func(t *testing.T) string {
				return filepath.Join("/trimmed/xdg/path", AppDirName())
			},
		},
		{
			name:     "XDG_CONFIG_HOME is empty, fall back to default",
			xdgValue: "",
			expectedDir: func(t *testing.T) string {
				home, err := os.UserHomeDir()
				require.NoError(t, err)
				return filepath.Join(home, ".config", AppDirName())
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(EnvVarXDGConfigHome, tc.xdgValue)

			dir, err := UserSpecificConfigDir()
			require.NoError(t, err)
			require.Equal(t, tc.expectedDir(t), dir)
		})
	}
}

func TestUserSpecificConfigDir_RelativeXDG(t *testing.T) {
	t.Setenv(EnvVarXDGConfigHome, "relative/path")

	_, err := UserSpecificConfigDir()
	require.Error(t, err)
	require.Contains(t, err.Error(), "must be an absolute path")
}

func TestClientConfigPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv(EnvVarXDGConfigHome, "")
	t.Setenv(EnvVarAppData, "/appdata/roaming")

	tests := []struct {
		name     string
		goos     string
		expected string
	}{
		{
			name:     "darwin uses application support",
			goos:     "darwin",
			expected: filepath.Join(home, "Library", "Application Support", "Claude", ClientConfigFileName),
		},
		{
			name:     "windows uses APPDATA",
			goos:     "windows",
			expected: filepath.Join("/appdata/roaming", "Claude", ClientConfigFileName),
		},
		{
			name:     "linux uses XDG fallback",
			goos:     "linux",
			expected: filepath.Join(home, ".config", "Claude", ClientConfigFileName),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path, err := ClientConfigPath(tc.goos)
			require.NoError(t, err)
			require.Equal(t, tc.expected, path)
		})
	}
}

func TestClientConfigPath_WindowsWithoutAppData(t *testing.T) {
	t.Setenv(EnvVarAppData, "")

	_, err := ClientConfigPath("windows")
	require.Error(t, err)
}

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates missing parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "dir", "config.json")
		require.NoError(t, WriteFileAtomic(path, []byte(`{"a":1}`), perms.RegularFile))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, `{"a":1}`, string(data))
	})

	t.Run("replaces existing content and leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "config.json")
		require.NoError(t, os.WriteFile(path, []byte("old"), perms.RegularFile))

		require.NoError(t, WriteFileAtomic(path, []byte("new"), perms.RegularFile))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "new", string(data))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
	})

	t.Run("keeps the mode of an existing file", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" {
			t.Skip("file modes are not meaningful on windows")
		}

		path := filepath.Join(t.TempDir(), "state.json")
		require.NoError(t, os.WriteFile(path, []byte("{}"), perms.SecureFile))
		require.NoError(t, os.Chmod(path, perms.SecureFile))

		require.NoError(t, WriteFileAtomic(path, []byte(`{"x":true}`), perms.RegularFile))

		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, perms.SecureFile, info.Mode().Perm())
	})

	t.Run("writes through symlinks and keeps them", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" {
			t.Skip("symlinks need extra privileges on windows")
		}

		dir := t.TempDir()
		target := filepath.Join(dir, "dotfiles", "config.json")
		require.NoError(t, os.MkdirAll(filepath.Dir(target), perms.RegularDir))
		require.NoError(t, os.WriteFile(target, []byte("old"), perms.RegularFile))

		absLink := filepath.Join(dir, "abs.json")
		require.NoError(t, os.Symlink(target, absLink))
		relLink := filepath.Join(dir, "rel.json")
		require.NoError(t, os.Symlink(filepath.Join("dotfiles", "config.json"), relLink))

		for i, link := range []string{absLink, relLink} {
			content := []byte{'0' + byte(i)}
			require.NoError(t, WriteFileAtomic(link, content, perms.SecureFile))

			info, err := os.Lstat(link)
			require.NoError(t, err)
			require.NotZero(t, info.Mode()&os.ModeSymlink, "link replaced by a regular file")

			data, err := os.ReadFile(target)
			require.NoError(t, err)
			require.Equal(t, content, data)
		}

		info, err := os.Stat(target)
		require.NoError(t, err)
		require.Equal(t, perms.RegularFile, info.Mode().Perm())
	})

	t.Run("dangling symlink creates its target", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" {
			t.Skip("symlinks need extra privileges on windows")
		}

		dir := t.TempDir()
		target := filepath.Join(dir, "missing", "config.json")
		link := filepath.Join(dir, "config.json")
		require.NoError(t, os.Symlink(target, link))

		require.NoError(t, WriteFileAtomic(link, []byte("{}"), perms.RegularFile))

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		require.Equal(t, "{}", string(data))
	})

	t.Run("symlink cycle fails", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" {
			t.Skip("symlinks need extra privileges on windows")
		}

		dir := t.TempDir()
		a, b := filepath.Join(dir, "a"), filepath.Join(dir, "b")
		require.NoError(t, os.Symlink(b, a))
		require.NoError(t, os.Symlink(a, b))

		require.ErrorContains(t, WriteFileAtomic(a, []byte("{}"), perms.RegularFile), "too many levels of symlinks")
	})

	t.Run("refuses to replace a directory", func(t *testing.T) {
		t.Parallel()

		path := t.TempDir()
		err := WriteFileAtomic(path, []byte("{}"), perms.RegularFile)
		require.Error(t, err)
		require.Contains(t, err.Error(), "is a directory")
	})
}

func TestEnsureAtLeastRegularDir(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}

	t.Run("creates directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "cache")
		require.NoError(t, EnsureAtLeastRegularDir(dir))

		info, err := os.Stat(dir)
		require.NoError(t, err)
		require.True(t, info.IsDir())
	})

	t.Run("accepts existing regular and stricter directories", func(t *testing.T) {
		t.Parallel()

		regular := filepath.Join(t.TempDir(), "regular")
		require.NoError(t, os.Mkdir(regular, perms.RegularDir))
		require.NoError(t, os.Chmod(regular, perms.RegularDir))
		require.NoError(t, EnsureAtLeastRegularDir(regular))

		secure := filepath.Join(t.TempDir(), "secure")
		require.NoError(t, os.Mkdir(secure, perms.SecureDir))
		require.NoError(t, os.Chmod(secure, perms.SecureDir))
		require.NoError(t, EnsureAtLeastRegularDir(secure))
	})

	t.Run("rejects world writable directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "open")
		require.NoError(t, os.Mkdir(dir, 0o777))
		require.NoError(t, os.Chmod(dir, 0o777))

		err := EnsureAtLeastRegularDir(dir)
		require.Error(t, err)
		require.Contains(t, err.Error(), "incorrect permissions")
	})

	t.Run("rejects symlinked directory", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		target := filepath.Join(base, "target")
		require.NoError(t, os.Mkdir(target, perms.RegularDir))
		link := filepath.Join(base, "link")
		require.NoError(t, os.Symlink(target, link))

		require.ErrorContains(t, EnsureAtLeastRegularDir(link), "is a symlink")
	})
}
