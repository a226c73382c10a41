package commands

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"

	"github.com/mbtools/pk3strip/internal/config"
)

// resetCommandState restores all package-level flag and config state so
// tests do not leak into each other.
func resetCommandState(t *testing.T) {
	t.Helper()

	cfg = nil
	configLoadErr = nil
	cfgFile = ""

	stripBackup = ""
	stripKeepDirs = nil
	stripForce = false
	restoreBackup = ""
	statusOutput = "table"
	statusEntries = false
	initForce = false

	color.NoColor = true
}

// testKeepDirs are the prefixes used by the command fixtures.
var testKeepDirs = []string{
	"ext_data/mb2/character/",
	"ext_data/mb2/teamconfig/",
}

// useConfig installs a config as if initConfig had loaded it.
func useConfig(t *testing.T, c *config.Config) {
	t.Helper()
	cfg = c
	configLoadErr = nil
}

// writeFixtureArchive writes a small zip with entries both inside and
// outside the fixture prefixes, and returns its path.
func writeFixtureArchive(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "MBAssets3.pk3")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture archive: %v", err)
	}

	zw := zip.NewWriter(f)
	entries := []struct {
		name, body string
	}{
		{"a.txt", "alpha"},
		{"ext_data/mb2/character/foo.cfg", "foo"},
		{"ext_data/mb2/teamconfig/bar.cfg", "bar"},
		{"readme.md", "read me"},
	}
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatalf("adding %s: %v", e.name, err)
		}
		if _, err := w.Write([]byte(e.body)); err != nil {
			t.Fatalf("writing %s: %v", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing fixture archive: %v", err)
	}
	return path
}

// archiveNames lists the entry names in a zip on disk.
func archiveNames(t *testing.T, path string) []string {
	t.Helper()

	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer r.Close()

	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
