package pk3

import (
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Default path conventions. Both can be overridden via options.
const (
	// DefaultBackupSuffix is appended to the archive path to form the backup path.
	DefaultBackupSuffix = ".bak"

	// DefaultTempPrefix is prepended to the archive file name to form the
	// temporary rewrite path in the same directory.
	DefaultTempPrefix = "temp_"

	// PlaceholderName is appended to each stripped prefix to form the
	// empty marker entry that keeps the directory listed in the archive.
	PlaceholderName = ".keep"
)

// Sentinel errors for archive operations.
var (
	// ErrArchiveNotFound indicates the archive does not exist at its path.
	ErrArchiveNotFound = errors.New("archive not found")

	// ErrBackupNotFound indicates no backup exists to restore from.
	ErrBackupNotFound = errors.New("backup not found")

	// ErrInvalidArchive indicates the source bytes are not a valid ZIP stream.
	ErrInvalidArchive = errors.New("not a valid ZIP archive")
)

// Job describes one strip or restore invocation. Operations take a Job by
// value; no state is shared between calls beyond the filesystem itself.
// Callers must serialize concurrent invocations against the same archive path.
type Job struct {
	// ArchivePath is the PK3 file being managed. Required.
	ArchivePath string

	// BackupPath is where the verbatim copy lives. If empty it is derived
	// as ArchivePath plus the manager's backup suffix.
	BackupPath string

	// KeepPrefixes are the directory prefixes whose entries are removed
	// during a strip. Matching is an exact string prefix comparison, not
	// path-segment aware. Required for Strip, ignored by Restore.
	KeepPrefixes []string
}

// Warning records a non-fatal per-entry failure during a rewrite.
// The operation continued; the named entry was skipped.
type Warning struct {
	// Entry is the archive-internal name that could not be written.
	Entry string

	// Err is the underlying failure.
	Err error
}

func (w Warning) String() string {
	return w.Entry + ": " + w.Err.Error()
}

// StripResult describes a completed Backup-and-Strip, including any
// non-fatal warnings, so callers can tell "done with caveats" apart
// from "aborted".
type StripResult struct {
	// ArchivePath is the rewritten archive.
	ArchivePath string

	// BackupPath is the verbatim copy of the pre-strip archive.
	BackupPath string

	// BackupSHA256 is the hex-encoded hash of the backup contents.
	BackupSHA256 string

	// BackupOverwritten is true when an earlier backup existed at
	// BackupPath and was replaced by this operation.
	BackupOverwritten bool

	// Kept is the number of entries copied through unchanged.
	Kept int

	// Removed lists the entry names dropped because they matched a prefix.
	Removed []string

	// Placeholders lists the marker entries appended, one per prefix.
	Placeholders []string

	// Warnings lists entries skipped due to non-fatal copy failures.
	Warnings []Warning
}

// EntryInfo describes one entry of an archive listing.
type EntryInfo struct {
	Name             string `json:"name" yaml:"name"`
	CompressedSize   uint64 `json:"compressed_size" yaml:"compressed_size"`
	UncompressedSize uint64 `json:"uncompressed_size" yaml:"uncompressed_size"`
}

// Manager performs archive backup, strip, and restore operations.
// Single-threaded, synchronous, blocking I/O throughout.
type Manager struct {
	logger       *slog.Logger
	backupSuffix string
	tempPrefix   string
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for warnings and progress.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithBackupSuffix sets the suffix used to derive backup paths.
func WithBackupSuffix(suffix string) Option {
	return func(m *Manager) {
		if suffix != "" {
			m.backupSuffix = suffix
		}
	}
}

// WithTempPrefix sets the file name prefix used for the temporary
// rewrite archive.
func WithTempPrefix(prefix string) Option {
	return func(m *Manager) {
		if prefix != "" {
			m.tempPrefix = prefix
		}
	}
}

// NewManager creates a Manager with the given options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		logger:       slog.Default(),
		backupSuffix: DefaultBackupSuffix,
		tempPrefix:   DefaultTempPrefix,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// backupPath resolves the backup path for a job.
func (m *Manager) backupPath(job Job) string {
	if job.BackupPath != "" {
		return job.BackupPath
	}
	return job.ArchivePath + m.backupSuffix
}

// matchesAnyPrefix reports whether name starts with one of the prefixes.
func matchesAnyPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
