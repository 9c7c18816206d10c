// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// StoreFileName is used when the configured store path is a directory.
const StoreFileName = "locations.db"

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
// Paths without the prefix, and all paths when the home directory is
// unknown, are returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// ResolveStorePath resolves the location store file from user input.
//
// Input normalization:
//   - "~/.spherenav/locations.db" -> "$HOME/.spherenav/locations.db"
//   - "/var/lib/spherenav" (an existing directory) -> "/var/lib/spherenav/locations.db"
//   - "/var/lib/spherenav/" (trailing slash) -> "/var/lib/spherenav/locations.db"
//   - "" -> ""
func ResolveStorePath(path string) string {
	if path == "" {
		return ""
	}
	trailing := strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator))
	path = filepath.Clean(ExpandHome(path))

	if trailing {
		return filepath.Join(path, StoreFileName)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, StoreFileName)
	}
	return path
}
