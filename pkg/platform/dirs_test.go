package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
)

func useTempHome(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmp, "data"))
	t.Setenv("XDG_DOWNLOAD_DIR", filepath.Join(tmp, "dl"))
	t.Setenv("XDG_DESKTOP_DIR", filepath.Join(tmp, "dl"))
	t.Setenv("XDG_DOCUMENTS_DIR", filepath.Join(tmp, "docs"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return tmp
}

func TestGetAppDirs(t *testing.T) {
	tmp := useTempHome(t)

	dirs, err := GetAppDirs("chatvibe-test")
	if err != nil {
		t.Fatalf("GetAppDirs failed: %v", err)
	}

	if want := filepath.Join(tmp, "config", "chatvibe-test"); dirs.Config != want {
		t.Errorf("Config = %q, want %q", dirs.Config, want)
	}
	if want := filepath.Join(tmp, "data", "chatvibe-test"); dirs.Data != want {
		t.Errorf("Data = %q, want %q", dirs.Data, want)
	}

	for _, dir := range []string{dirs.Config, dirs.Data} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("directory %s was not created: %v", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
	}
}

func TestGetDownloadsDir(t *testing.T) {
	tmp := useTempHome(t)

	dir, err := GetDownloadsDir()
	if err != nil {
		t.Fatalf("GetDownloadsDir failed: %v", err)
	}
	if want := filepath.Join(tmp, "dl"); dir != want {
		t.Errorf("GetDownloadsDir() = %q, want %q", dir, want)
	}
}

func TestExportSearchDirs(t *testing.T) {
	tmp := useTempHome(t)

	dirs := ExportSearchDirs()
	want := []string{filepath.Join(tmp, "dl"), filepath.Join(tmp, "docs")}
	if len(dirs) != len(want) {
		t.Fatalf("ExportSearchDirs() = %v, want %v", dirs, want)
	}
	for i := range want {
		if dirs[i] != want[i] {
			t.Errorf("dirs[%d] = %q, want %q", i, dirs[i], want[i])
		}
	}
}
