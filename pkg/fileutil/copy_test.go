package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	content := []byte("archive bytes")
	if err := os.WriteFile(src, content, 0640); err != nil {
		t.Fatal(err)
	}

	hash, mode, err := CopyFile(src, dst)
	if err != nil {
		t.Fatalf("CopyFile() error = %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Errorf("copy content = %q, want %q", got, content)
	}
	if mode.Perm() != 0640 {
		t.Errorf("mode = %v, want 0640", mode.Perm())
	}

	// Hash of the copy must match a fresh hash of the source
	want, err := HashFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if hash != want {
		t.Errorf("hash = %s, want %s", hash, want)
	}
}

func TestCopyFile_MissingSource(t *testing.T) {
	dir := t.TempDir()

	_, _, err := CopyFile(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	if err == nil {
		t.Fatal("CopyFile() should fail on missing source")
	}
}

func TestCopyFile_OverwritesDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")

	if err := os.WriteFile(src, []byte("new"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("old old old"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile() error = %v", err)
	}

	got, _ := os.ReadFile(dst)
	if string(got) != "new" {
		t.Errorf("destination = %q, want %q", got, "new")
	}
}
