// Package perms provides the file and directory modes used when magnet writes to disk.
package perms

import "os"

const (
	// RegularFile is used for the client config file and settings (0644).
	RegularFile os.FileMode = 0o644

	// SecureFile is used for the application state store, which may hold local paths (0600).
	SecureFile os.FileMode = 0o600
)

const (
	// RegularDir is used for the catalog cache and for parent directories of the client config file (0755).
	RegularDir os.FileMode = 0o755

	// SecureDir is used for the directory holding the state store (0700).
	SecureDir os.FileMode = 0o700
)
