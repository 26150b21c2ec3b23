package flags

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/magnetlabs/magnet/internal/files"
)

const (
	// Env vars
	EnvVarSettingsFile = "MAGNET_SETTINGS_FILE"
	EnvVarClientConfig = "MAGNET_CLIENT_CONFIG"
	EnvVarStoreFile    = "MAGNET_STORE_FILE"
	EnvVarLogPath      = "MAGNET_LOG_PATH"
	EnvVarLogLevel     = "MAGNET_LOG_LEVEL"

	// Defaults
	DefaultSettingsFileName = "settings.toml"
	DefaultLogPath          = ""
	DefaultLogLevel         = "info"

	// Flag names
	FlagNameSettingsFile = "settings-file"
	FlagNameClientConfig = "client-config"
	FlagNameStoreFile    = "store-file"
	FlagNameLogPath      = "log-path"
	FlagNameLogLevel     = "log-level"
)

var (
	// SettingsFile is the path to magnet's own settings file.
	SettingsFile string

	// ClientConfig is the path to the desktop client's config file.
	// Empty means the platform default location.
	ClientConfig string

	// StoreFile is the path to the application state store.
	// Empty means the location from the settings file, or the backend's default.
	StoreFile string

	LogPath  string
	LogLevel string
)

// InitFlags registers the global flags on fs.
// Each flag defaults to its MAGNET_* environment variable, then to the built-in default.
func InitFlags(fs *pflag.FlagSet) {
	initSettingsFile(fs)
	initPaths(fs)
	initLogger(fs)
}

// DefaultSettingsFile returns the default location of the settings file,
// or the bare file name when the user config directory can't be determined.
func DefaultSettingsFile() string {
	dir, err := files.UserSpecificConfigDir()
	if err != nil {
		return DefaultSettingsFileName
	}
	return filepath.Join(dir, DefaultSettingsFileName)
}

// envOr returns the trimmed value of the environment variable key, or fallback when it is blank.
func envOr(key string, fallback func() string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback()
}

func none() string { return "" }

// bind resolves target from the environment unless already set, then registers it as a flag.
func bind(fs *pflag.FlagSet, target *string, name string, env string, fallback func() string, usage string) {
	if *target == "" {
		*target = envOr(env, fallback)
	}
	fs.StringVar(target, name, *target, usage)
}

func initSettingsFile(fs *pflag.FlagSet) {
	bind(fs, &SettingsFile, FlagNameSettingsFile, EnvVarSettingsFile, DefaultSettingsFile, "path to magnet settings file")
}

func initPaths(fs *pflag.FlagSet) {
	bind(
		fs,
		&ClientConfig,
		FlagNameClientConfig,
		EnvVarClientConfig,
		none,
		"path to the desktop client config file (defaults to the platform location)",
	)
	bind(
		fs,
		&StoreFile,
		FlagNameStoreFile,
		EnvVarStoreFile,
		none,
		"path to the application state store (defaults to the settings file, then the backend default)",
	)
}

func initLogger(fs *pflag.FlagSet) {
	bind(fs, &LogPath, FlagNameLogPath, EnvVarLogPath, func() string { return DefaultLogPath }, "path to generated log file")

	if LogLevel == "" {
		LogLevel = strings.ToLower(envOr(EnvVarLogLevel, func() string { return DefaultLogLevel }))
	}
	fs.StringVar(&LogLevel, FlagNameLogLevel, LogLevel, "log level for magnet logs")
}
