package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

type Dirs struct {
	Config string
	Data   string
}

// GetAppDirs returns the per-user config and data directories for appName,
// creating them if needed. XDG variables are honored on every platform.
func GetAppDirs(appName string) (*Dirs, error) {
	dirs := &Dirs{
		Config: filepath.Join(xdg.ConfigHome, appName),
		Data:   filepath.Join(xdg.DataHome, appName),
	}

	for _, dir := range []string{dirs.Config, dirs.Data} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return dirs, nil
}

// GetDownloadsDir returns the user's download directory.
func GetDownloadsDir() (string, error) {
	if xdg.UserDirs.Download == "" {
		return "", fmt.Errorf("no download directory configured")
	}
	return xdg.UserDirs.Download, nil
}

// ExportSearchDirs lists the directories chat exports usually land in:
// downloads, desktop and documents, without duplicates.
func ExportSearchDirs() []string {
	candidates := []string{xdg.UserDirs.Download, xdg.UserDirs.Desktop, xdg.UserDirs.Documents}

	seen := make(map[string]bool, len(candidates))
	var dirs []string
	for _, dir := range candidates {
		if dir == "" {
			continue
		}
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		if seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	return dirs
}
