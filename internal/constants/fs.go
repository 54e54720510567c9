package constants

import "os"

const (
	// DefaultFilePermissions sets the default permissions for regular files: (rw-r--r--).
	// Owner: read and write;
	// Group: read;
	// Others: read.
	DefaultFilePermissions os.FileMode = 0o644

	// PrivateFilePermissions sets the permissions for files holding account data: (rw-------).
	// Owner: read and write.
	PrivateFilePermissions os.FileMode = 0o600

	// PrivateFolderPermissions sets the permissions for folders holding account data: (rwx------).
	// Owner: read, write, and execute.
	PrivateFolderPermissions os.FileMode = 0o700
)

// AppName is the application name used for cache folders and the User-Agent header.
const AppName = "entra-login"
