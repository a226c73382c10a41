// Package pk3 implements the archive transformation engine for pk3strip.
//
// A PK3 file is a ZIP-format game asset package. The engine offers two
// operations over one:
//
//   - [Manager.Strip] copies the archive byte-for-byte to a backup path,
//     then rewrites the archive with every entry under the configured
//     directory prefixes removed, appending one zero-byte "<prefix>.keep"
//     placeholder per prefix so the subtree survives as an empty directory.
//   - [Manager.Restore] replaces the archive with its backup, consuming
//     the backup in the process.
//
// Together they form a per-archive state machine:
//
//	ORIGINAL --Strip--> STRIPPED_WITH_BACKUP --Restore--> ORIGINAL
//
// Stripping twice without restoring overwrites the backup with the
// already-stripped archive. That is the documented behavior of the state
// machine, not a bug; the CLI guards against it with a confirmation
// prompt.
//
// # Failure semantics
//
// Per-entry copy failures during the rewrite are non-fatal: the entry is
// skipped, logged, and reported in [StripResult.Warnings], so one corrupt
// entry never aborts the whole strip. Structural failures (backup copy,
// invalid ZIP source, finalizing the temp archive) abort the operation and
// roll the just-created backup back, leaving the archive unmodified.
//
// The final swap renames the original aside before renaming the rewrite
// into place and only then deletes the held original, so no point in the
// sequence leaves zero valid archive files at the archive path.
//
// # Concurrency
//
// Operations are synchronous and share no state beyond the filesystem.
// Concurrent Strip or Restore calls against the same archive path are
// undefined; callers must serialize them.
package pk3
