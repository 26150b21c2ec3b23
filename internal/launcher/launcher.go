// Package launcher builds platform-specific launch commands for servers whose runtime tool was
// privately provisioned, and quotes user-supplied values for the platform shell.
// The implementation is selected once at startup with ForOS.
package launcher

import (
	"os"
	goruntime "runtime"
	"strings"
)

var (
	_ Launcher = (*POSIX)(nil)
	_ Launcher = (*Windows)(nil)
)

// Launcher wraps commands so that they run with a tool directory prepended to the search path.
type Launcher interface {
	// Name returns the shell program the launcher invokes.
	Name() string

	// WrapWithPathPrepend returns the program and arguments that run inner
	// (a single shell-interpreted command line) with toolDir prepended to the search path.
	WrapWithPathPrepend(toolDir string, inner string) (string, []string)

	// CheckValue reports an ErrBadRequest when value can't be passed through the platform shell literally.
	CheckValue(value string) error

	// Quote escapes value so that the platform shell passes it through as a single literal argument.
	// Only values accepted by CheckValue are guaranteed to survive unchanged.
	Quote(value string) string

	// ToolDir returns the directory that should be put on the search path for the stored tool location,
	// which may name either the directory itself or a binary inside it.
	ToolDir(path string) string
}

// StatFunc reports file information, matching os.Stat.
type StatFunc func(name string) (os.FileInfo, error)

// ForOS returns the launcher for the given operating system (values as reported by runtime.GOOS).
func ForOS(goos string) Launcher {
	if goos == "windows" {
		return NewWindows(os.Stat)
	}
	return NewPOSIX(os.Stat)
}

// Default returns the launcher for the operating system magnet is running on.
func Default() Launcher {
	return ForOS(goruntime.GOOS)
}

// toolDir resolves a stored tool location using the given separators.
// An existing directory is used as is, anything else is treated as a file and its parent directory is returned.
func toolDir(stat StatFunc, path string, separators string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}

	if stat != nil {
		if info, err := stat(path); err == nil && info.IsDir() {
			return strings.TrimRight(path, separators)
		}
	}

	trimmed := strings.TrimRight(path, separators)
	i := strings.LastIndexAny(trimmed, separators)
	switch {
	case i < 0:
		return trimmed
	case i == 0:
		return trimmed[:1]
	default:
		return trimmed[:i]
	}
}
