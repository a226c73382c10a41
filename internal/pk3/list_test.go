package pk3

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestList_SourceOrder(t *testing.T) {
	dir := t.TempDir()
	archive := fixtureArchive(t, dir)
	m := newTestManager(t)

	entries, err := m.List(archive)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	want := []string{
		"a.txt",
		"ext_data/mb2/character/foo.cfg",
		"ext_data/mb2/teamconfig/bar.cfg",
		"readme.md",
	}
	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = e.Name
	}
	if !equalStrings(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}

	if entries[0].UncompressedSize != uint64(len("alpha")) {
		t.Errorf("UncompressedSize = %d, want %d", entries[0].UncompressedSize, len("alpha"))
	}
}

func TestList_Missing(t *testing.T) {
	m := newTestManager(t)
	_, err := m.List(filepath.Join(t.TempDir(), "nope.pk3"))
	if !errors.Is(err, ErrArchiveNotFound) {
		t.Errorf("error = %v, want ErrArchiveNotFound", err)
	}
}

func TestList_NotAZip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake.pk3")
	if err := os.WriteFile(path, []byte("plain text"), 0644); err != nil {
		t.Fatal(err)
	}

	m := newTestManager(t)
	_, err := m.List(path)
	if !errors.Is(err, ErrInvalidArchive) {
		t.Errorf("error = %v, want ErrInvalidArchive", err)
	}
}

func TestIsStripped(t *testing.T) {
	stripped := []EntryInfo{
		{Name: "a.txt"},
		{Name: "ext_data/mb2/character/.keep"},
		{Name: "ext_data/mb2/teamconfig/.keep"},
	}
	original := []EntryInfo{
		{Name: "a.txt"},
		{Name: "ext_data/mb2/character/foo.cfg"},
		{Name: "ext_data/mb2/teamconfig/bar.cfg"},
	}
	partial := []EntryInfo{
		{Name: "a.txt"},
		{Name: "ext_data/mb2/character/.keep"},
	}

	if !IsStripped(stripped, mb2Prefixes) {
		t.Error("stripped archive should report as stripped")
	}
	if IsStripped(original, mb2Prefixes) {
		t.Error("original archive should not report as stripped")
	}
	if IsStripped(partial, mb2Prefixes) {
		t.Error("archive missing a placeholder should not report as stripped")
	}
	if IsStripped(stripped, nil) {
		t.Error("no prefixes should never report as stripped")
	}
}

func TestIsStripped_AfterRealStrip(t *testing.T) {
	dir := t.TempDir()
	archive := fixtureArchive(t, dir)
	m := newTestManager(t)

	entries, err := m.List(archive)
	if err != nil {
		t.Fatal(err)
	}
	if IsStripped(entries, mb2Prefixes) {
		t.Error("fixture should not be stripped yet")
	}

	if _, err := m.Strip(Job{ArchivePath: archive, KeepPrefixes: mb2Prefixes}); err != nil {
		t.Fatalf("Strip() error = %v", err)
	}

	entries, err = m.List(archive)
	if err != nil {
		t.Fatal(err)
	}
	if !IsStripped(entries, mb2Prefixes) {
		t.Error("archive should report as stripped after Strip")
	}
}
