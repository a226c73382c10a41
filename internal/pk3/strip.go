package pk3

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/mbtools/pk3strip/internal/logging"
	"github.com/mbtools/pk3strip/pkg/fileutil"
)

// Strip backs up the archive verbatim, then rewrites it with all entries
// under the job's prefixes removed and one placeholder appended per prefix.
//
// The backup is rolled back (deleted) if the rewrite fails before the
// archive has been touched, so a failed strip never leaves a backup of
// nothing. Per-entry copy failures do not abort the rewrite; they are
// logged and reported in the result's Warnings.
func (m *Manager) Strip(job Job) (*StripResult, error) {
	if job.ArchivePath == "" {
		return nil, errors.New("archive path is required")
	}
	if len(job.KeepPrefixes) == 0 {
		return nil, errors.New("at least one directory prefix is required")
	}

	if _, err := os.Stat(job.ArchivePath); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrArchiveNotFound, "%s", job.ArchivePath)
		}
		return nil, errors.Wrapf(err, "stat %s", job.ArchivePath)
	}

	backupPath := m.backupPath(job)
	res := &StripResult{
		ArchivePath: job.ArchivePath,
		BackupPath:  backupPath,
	}

	if _, err := os.Stat(backupPath); err == nil {
		res.BackupOverwritten = true
		m.logger.Warn("backup already exists, overwriting", "backup", backupPath)
	}

	hash, _, err := fileutil.CopyFile(job.ArchivePath, backupPath)
	if err != nil {
		return nil, errors.Wrapf(err, "creating backup %s", backupPath)
	}
	res.BackupSHA256 = hash
	m.logger.Info("backup created", "backup", backupPath)

	tempPath := m.tempPath(job.ArchivePath)
	if err := m.rewrite(job, tempPath, res); err != nil {
		// The archive has not been touched yet; the just-created backup
		// is worthless, so roll it back along with the partial temp file.
		if rmErr := os.Remove(backupPath); rmErr != nil {
			m.logger.Error("backup rollback failed", "backup", backupPath, "error", rmErr)
		}
		if rmErr := os.Remove(tempPath); rmErr != nil && !os.IsNotExist(rmErr) {
			m.logger.Error("temp cleanup failed", "path", tempPath, "error", rmErr)
		}
		return nil, err
	}

	if err := m.replace(job.ArchivePath, tempPath); err != nil {
		// Temp and backup are intentionally left on disk for recovery.
		return nil, err
	}
	m.logger.Info("archive rewritten",
		"archive", job.ArchivePath,
		"kept", res.Kept,
		"removed", len(res.Removed),
		"warnings", len(res.Warnings))

	if err := m.writeManifest(job, res); err != nil {
		m.logger.Warn("could not write strip manifest", "error", err)
	}

	return res, nil
}

// rewrite streams the archive into tempPath, dropping prefix matches and
// appending placeholders. Structural failures return an error; per-entry
// failures are recorded on res and skipped.
func (m *Manager) rewrite(job Job, tempPath string, res *StripResult) error {
	src, err := zip.OpenReader(job.ArchivePath)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return errors.Wrapf(ErrInvalidArchive, "%s", job.ArchivePath)
		}
		return errors.Wrapf(err, "opening %s", job.ArchivePath)
	}
	defer src.Close()

	out, err := os.Create(tempPath)
	if err != nil {
		return errors.Wrapf(err, "creating temp archive %s", tempPath)
	}
	w := zip.NewWriter(out)

	for _, f := range src.File {
		if matchesAnyPrefix(f.Name, job.KeepPrefixes) {
			m.logger.Log(context.Background(), logging.LevelTrace, "dropping entry", "entry", f.Name)
			res.Removed = append(res.Removed, f.Name)
			continue
		}

		// Raw copy: the compressed bytes pass through untouched.
		if err := w.Copy(f); err != nil {
			m.logger.Warn("skipping entry", "entry", f.Name, "error", err)
			res.Warnings = append(res.Warnings, Warning{Entry: f.Name, Err: err})
			continue
		}
		res.Kept++
	}

	for _, prefix := range job.KeepPrefixes {
		name := prefix + PlaceholderName
		if _, err := w.Create(name); err != nil {
			m.logger.Warn("skipping placeholder", "entry", name, "error", err)
			res.Warnings = append(res.Warnings, Warning{Entry: name, Err: err})
			continue
		}
		m.logger.Debug("added placeholder", "entry", name)
		res.Placeholders = append(res.Placeholders, name)
	}

	if err := w.Close(); err != nil {
		out.Close()
		return errors.Wrapf(err, "finalizing %s", tempPath)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", tempPath)
	}
	return nil
}

// replace swaps tempPath into archivePath's place. The original is renamed
// aside first and only deleted once the new file is in place, so no point
// in the sequence leaves zero valid archive files.
func (m *Manager) replace(archivePath, tempPath string) error {
	holding := archivePath + ".old"

	if err := os.Rename(archivePath, holding); err != nil {
		return errors.Wrapf(err, "moving %s aside", archivePath)
	}
	if err := os.Rename(tempPath, archivePath); err != nil {
		// Put the original back so an archive always exists at its path.
		if undoErr := os.Rename(holding, archivePath); undoErr != nil {
			m.logger.Error("could not move original back", "archive", archivePath, "error", undoErr)
		}
		return errors.Wrapf(err, "moving %s into place", tempPath)
	}
	if err := os.Remove(holding); err != nil {
		m.logger.Warn("could not remove holding copy", "path", holding, "error", err)
	}
	return nil
}

// tempPath returns the temporary rewrite path for an archive: the archive
// file name with the temp prefix, in the same directory (same filesystem,
// so the final rename cannot cross devices).
func (m *Manager) tempPath(archivePath string) string {
	dir, base := filepath.Split(archivePath)
	return filepath.Join(dir, m.tempPrefix+base)
}
