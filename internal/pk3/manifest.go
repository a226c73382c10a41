package pk3

import (
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/cockroachdb/errors"

	"github.com/mbtools/pk3strip/pkg/fileutil"
)

// manifestSuffix is appended to the archive path to form the sidecar path.
const manifestSuffix = ".strip.toml"

// Manifest is the TOML sidecar written next to the archive after a
// successful strip. It records what was done and how to undo it; the
// status command reads it and restore removes it.
type Manifest struct {
	CreatedAt    time.Time `toml:"created_at"`
	Archive      string    `toml:"archive"`
	Backup       string    `toml:"backup"`
	BackupSHA256 string    `toml:"backup_sha256"`
	KeepPrefixes []string  `toml:"keep_prefixes"`
	Kept         int       `toml:"kept"`
	Removed      int       `toml:"removed"`
	Warnings     int       `toml:"warnings"`
	ToolVersion  string    `toml:"pk3strip_version"`
}

// ManifestPath returns the sidecar path for an archive.
func ManifestPath(archivePath string) string {
	return archivePath + manifestSuffix
}

// writeManifest records the strip outcome next to the archive.
// Best-effort: callers treat failure as a warning, not an error.
func (m *Manager) writeManifest(job Job, res *StripResult) error {
	manifest := Manifest{
		CreatedAt:    time.Now().UTC(),
		Archive:      res.ArchivePath,
		Backup:       res.BackupPath,
		BackupSHA256: res.BackupSHA256,
		KeepPrefixes: job.KeepPrefixes,
		Kept:         res.Kept,
		Removed:      len(res.Removed),
		Warnings:     len(res.Warnings),
		ToolVersion:  Version,
	}
	return fileutil.AtomicWriteTOML(ManifestPath(res.ArchivePath), manifest)
}

// LoadManifest reads the strip manifest for an archive, if one exists.
func LoadManifest(archivePath string) (*Manifest, error) {
	data, err := fileutil.ReadFileWithLimit(ManifestPath(archivePath))
	if err != nil {
		return nil, err
	}

	var manifest Manifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}
	return &manifest, nil
}
