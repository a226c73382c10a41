package pk3

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/mbtools/pk3strip/internal/logging"
)

// testEntry is one named record for building fixture archives.
type testEntry struct {
	name    string
	content string
}

// mb2Prefixes are the two directory prefixes the reference game uses.
var mb2Prefixes = []string{
	"ext_data/mb2/character/",
	"ext_data/mb2/teamconfig/",
}

// writeZip creates a ZIP archive at path with the given entries in order.
func writeZip(t *testing.T, path string, entries []testEntry) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(f)
	for _, e := range entries {
		ew, err := w.Create(e.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := ew.Write([]byte(e.content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

// zipNames returns the entry names of an archive in source order.
func zipNames(t *testing.T, path string) []string {
	t.Helper()

	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names
}

// newTestManager returns a Manager logging into the test output.
func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(WithLogger(logging.ForTest(t)))
}

// fixtureArchive writes the four-entry scenario archive into dir and
// returns its path.
func fixtureArchive(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "MBAssets3.pk3")
	writeZip(t, path, []testEntry{
		{"a.txt", "alpha"},
		{"ext_data/mb2/character/foo.cfg", "foo"},
		{"ext_data/mb2/teamconfig/bar.cfg", "bar"},
		{"readme.md", "# readme"},
	})
	return path
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
