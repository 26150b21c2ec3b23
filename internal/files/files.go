package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magnetlabs/magnet/internal/perms"
)

const (
	// EnvVarXDGConfigHome is the XDG Base Directory env var name for config files.
	EnvVarXDGConfigHome = "XDG_CONFIG_HOME"

	// EnvVarXDGCacheHome is the XDG Base Directory env var name for cache files.
	EnvVarXDGCacheHome = "XDG_CACHE_HOME"

	// EnvVarAppData is the Windows roaming application data directory.
	EnvVarAppData = "APPDATA"

	// ClientConfigFileName is the name of the desktop client's config file.
	ClientConfigFileName = "claude_desktop_config.json"

	// clientDirName is the desktop client's application-data subdirectory.
	clientDirName = "Claude"
)

// AppDirName returns the name of the application directory for use in user-specific operations where data is being written.
func AppDirName() string {
	return "magnet"
}

// ClientConfigPath returns the location of the desktop client's config file for the given operating system
// (values as reported by runtime.GOOS).
//
//   - darwin:  ~/Library/Application Support/Claude/claude_desktop_config.json
//   - windows: %APPDATA%\Claude\claude_desktop_config.json
//   - other:   $XDG_CONFIG_HOME/Claude/claude_desktop_config.json (or ~/.config/Claude/...)
func ClientConfigPath(goos string) (string, error) {
	switch goos {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support", clientDirName, ClientConfigFileName), nil
	case "windows":
		appData := strings.TrimSpace(os.Getenv(EnvVarAppData))
		if appData == "" {
			return "", fmt.Errorf("environment variable '%s' is not set", EnvVarAppData)
		}
		return filepath.Join(appData, clientDirName, ClientConfigFileName), nil
	default:
		base, err := xdgBaseDir(EnvVarXDGConfigHome, ".config")
		if err != nil {
			return "", err
		}
		return filepath.Join(base, clientDirName, ClientConfigFileName), nil
	}
}

// UserSpecificConfigDir returns the directory that should be used to store magnet's own configuration and state.
// It adheres to the XDG Base Directory Specification, respecting the XDG_CONFIG_HOME environment variable.
// When XDG_CONFIG_HOME is not set, it defaults to ~/.config/magnet
func UserSpecificConfigDir() (string, error) {
	base, err := xdgBaseDir(EnvVarXDGConfigHome, ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppDirName()), nil
}

// UserSpecificCacheDir returns the directory that should be used to store any user-specific cache files.
// When XDG_CACHE_HOME is not set, it defaults to ~/.cache/magnet
func UserSpecificCacheDir() (string, error) {
	base, err := xdgBaseDir(EnvVarXDGCacheHome, ".cache")
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppDirName()), nil
}

// EnsureAtLeastRegularDir creates a directory with regular permissions if it doesn't exist,
// and verifies that an existing one grants nothing beyond them.
// It does not attempt to repair ownership or permissions: if they are wrong, it returns an error.
func EnsureAtLeastRegularDir(path string) error {
	return ensureAtLeastDir(path, perms.RegularDir)
}

// maxLinkHops bounds symlink resolution so that link cycles fail.
const maxLinkHops = 40

// WriteFileAtomic writes data to a temporary file in the same directory as path and renames it into place,
// so that a reader observes either the previous or the new content, never a partial write.
// Missing parent directories are created with regular permissions.
// When path already exists its mode is kept, otherwise perm is used.
// When path is a symlink the file it points to is replaced and the link is kept.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	path, err = resolveLink(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, perms.RegularDir); err != nil {
		return fmt.Errorf("could not ensure directory exists for '%s': %w", path, err)
	}

	if info, statErr := os.Stat(path); statErr == nil {
		if info.IsDir() {
			return fmt.Errorf("path '%s' is a directory", path)
		}
		perm = info.Mode().Perm()
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return fmt.Errorf("could not stat '%s': %w", path, statErr)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err = os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions on temporary file: %w", err)
	}

	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file to '%s': %w", path, err)
	}

	return nil
}

// resolveLink returns the file path ultimately refers to, or path itself when it isn't a symlink.
// A dangling link resolves to its target so that writing creates it.
func resolveLink(path string) (string, error) {
	for range maxLinkHops {
		info, err := os.Lstat(path)
		if err != nil || info.Mode()&os.ModeSymlink == 0 {
			return path, nil
		}

		target, err := os.Readlink(path)
		if err != nil {
			return "", fmt.Errorf("could not read symlink '%s': %w", path, err)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		path = target
	}

	return "", fmt.Errorf("too many levels of symlinks resolving '%s'", path)
}

// ensureAtLeastDir creates a directory with the specified permissions if it doesn't exist,
// and verifies that it has at least the required permissions if it already exists.
// Rejects symlinked directories.
func ensureAtLeastDir(path string, perm os.FileMode) error {
	if err := os.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("could not ensure directory exists for '%s': %w", path, err)
	}

	info, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("could not stat directory '%s': %w", path, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("path '%s' is a symlink, not a directory", path)
	}

	if !info.IsDir() {
		return fmt.Errorf("path '%s' is not a directory", path)
	}

	// Actual permissions must not grant anything the required permissions don't.
	if info.Mode().Perm()&^perm != 0 {
		return fmt.Errorf(
			"incorrect permissions for directory '%s' (%#o, want %#o or more restrictive)",
			path, info.Mode().Perm(),
			perm,
		)
	}

	return nil
}

// xdgBaseDir returns the value of the given XDG environment variable when it holds an absolute path,
// falling back to homeDir/fallback.
func xdgBaseDir(envVar string, fallback string) (string, error) {
	if v, ok := os.LookupEnv(envVar); ok && strings.TrimSpace(v) != "" {
		v = strings.TrimSpace(v)
		if filepath.IsAbs(v) {
			return v, nil
		}

		return "", fmt.Errorf("environment variable '%s' must be an absolute path, got: %s", envVar, v)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, fallback), nil
}
