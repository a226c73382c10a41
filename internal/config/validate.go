package config

import "errors"

// Validation errors for configuration fields.
var (
	// ErrMissingArchive indicates no archive path is configured.
	ErrMissingArchive = errors.New("no archive configured")

	// ErrMissingKeepDirs indicates the keep_dirs list is empty.
	ErrMissingKeepDirs = errors.New("keep_dirs must not be empty")

	// ErrMissingBackupSuffix indicates the backup suffix is empty.
	ErrMissingBackupSuffix = errors.New("backup_suffix must not be empty")
)

// Validate checks a Config for use by strip/restore operations.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Archive == "" {
		errs = append(errs, ErrMissingArchive)
	}
	if len(cfg.KeepDirs) == 0 {
		errs = append(errs, ErrMissingKeepDirs)
	}
	if cfg.BackupSuffix == "" {
		errs = append(errs, ErrMissingBackupSuffix)
	}

	return errs
}
