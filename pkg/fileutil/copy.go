package fileutil

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"os"

	"github.com/mbtools/pk3strip/internal/errors"
)

// CopyFile copies a file from src to dst, returning the SHA256 hash and mode.
// The destination file is created with 0644 permissions initially,
// then updated to match the source file's permissions. An existing
// destination is truncated.
func CopyFile(src, dst string) (hash string, mode fs.FileMode, err error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return "", 0, errors.Wrap(err, "opening source file")
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return "", 0, errors.Wrap(err, "stat source file")
	}
	mode = srcInfo.Mode()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", 0, errors.Wrap(err, "creating destination file")
	}

	// Compute hash while copying
	h := sha256.New()
	w := io.MultiWriter(dstFile, h)

	if _, err := io.Copy(w, srcFile); err != nil {
		dstFile.Close()
		return "", 0, errors.Wrap(err, "copying file")
	}

	if err := dstFile.Close(); err != nil {
		return "", 0, errors.Wrap(err, "closing destination file")
	}

	// Set permissions to match source
	if err := os.Chmod(dst, mode); err != nil {
		return "", 0, errors.Wrap(err, "setting permissions")
	}

	return hex.EncodeToString(h.Sum(nil)), mode, nil
}

// HashFile computes the SHA256 hash of a file.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "opening file")
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrap(err, "reading file")
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
