package pk3

import (
	"archive/zip"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

// List opens the archive read-only and returns its entries in source order.
func (m *Manager) List(archivePath string) ([]EntryInfo, error) {
	if archivePath == "" {
		return nil, errors.New("archive path is required")
	}

	src, err := zip.OpenReader(archivePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrArchiveNotFound, "%s", archivePath)
		}
		if errors.Is(err, zip.ErrFormat) {
			return nil, errors.Wrapf(ErrInvalidArchive, "%s", archivePath)
		}
		return nil, errors.Wrapf(err, "opening %s", archivePath)
	}
	defer src.Close()

	entries := make([]EntryInfo, 0, len(src.File))
	for _, f := range src.File {
		entries = append(entries, EntryInfo{
			Name:             f.Name,
			CompressedSize:   f.CompressedSize64,
			UncompressedSize: f.UncompressedSize64,
		})
	}
	return entries, nil
}

// IsStripped reports whether the archive looks stripped for the given
// prefixes: every prefix has its placeholder present and no other entries
// remain under it.
func IsStripped(entries []EntryInfo, prefixes []string) bool {
	if len(prefixes) == 0 {
		return false
	}
	placeholders := make(map[string]bool, len(prefixes))
	for _, p := range prefixes {
		placeholders[p+PlaceholderName] = false
	}

	for _, e := range entries {
		if _, ok := placeholders[e.Name]; ok {
			placeholders[e.Name] = true
			continue
		}
		for _, p := range prefixes {
			if strings.HasPrefix(e.Name, p) {
				// A real entry survives under a prefix: not stripped.
				return false
			}
		}
	}

	for _, seen := range placeholders {
		if !seen {
			return false
		}
	}
	return true
}
