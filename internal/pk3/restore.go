package pk3

import (
	"os"

	"github.com/cockroachdb/errors"
)

// Restore replaces the archive with its backup, discarding the stripped
// version. The backup is consumed: it is renamed onto the archive path and
// ceases to exist at its own. The strip manifest, if present, is removed.
func (m *Manager) Restore(job Job) error {
	if job.ArchivePath == "" {
		return errors.New("archive path is required")
	}

	backupPath := m.backupPath(job)
	if _, err := os.Stat(backupPath); err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrBackupNotFound, "%s", backupPath)
		}
		return errors.Wrapf(err, "stat %s", backupPath)
	}

	if _, err := os.Stat(job.ArchivePath); err == nil {
		m.logger.Info("removing stripped archive", "archive", job.ArchivePath)
		if err := os.Remove(job.ArchivePath); err != nil {
			// Backup untouched, archive still present.
			return errors.Wrapf(err, "removing %s", job.ArchivePath)
		}
	}

	if err := os.Rename(backupPath, job.ArchivePath); err != nil {
		// The archive has already been deleted; the backup still exists
		// under its own name and can be recovered manually.
		return errors.Wrapf(err, "renaming %s to %s", backupPath, job.ArchivePath)
	}
	m.logger.Info("archive restored", "archive", job.ArchivePath)

	if err := os.Remove(ManifestPath(job.ArchivePath)); err != nil && !os.IsNotExist(err) {
		m.logger.Warn("could not remove strip manifest", "error", err)
	}

	return nil
}
