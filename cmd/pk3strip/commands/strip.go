package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mbtools/pk3strip/internal/cli/prompt"
	"github.com/mbtools/pk3strip/internal/errors"
	"github.com/mbtools/pk3strip/internal/logging"
	"github.com/mbtools/pk3strip/internal/pk3"
)

var (
	// stripBackup holds the value of the --backup flag.
	stripBackup string

	// stripKeepDirs holds the values of the --keep-dir flags.
	stripKeepDirs []string

	// stripForce holds the value of the --force flag.
	stripForce bool
)

func init() {
	stripCmd.Flags().StringVar(&stripBackup, "backup", "",
		"backup path (default: archive path + configured suffix)")
	stripCmd.Flags().StringArrayVar(&stripKeepDirs, "keep-dir", nil,
		"directory prefix to empty (repeatable; overrides config)")
	stripCmd.Flags().BoolVarP(&stripForce, "force", "f", false,
		"overwrite an existing backup without asking")

	rootCmd.AddCommand(stripCmd)
}

var stripCmd = &cobra.Command{
	Use:     "strip [archive]",
	Aliases: []string{"backup"},
	Short:   "Back up the archive and empty the configured directories",
	Long: `Back up the archive byte-for-byte, then rewrite it with every entry
under the configured directory prefixes removed. Each emptied prefix keeps
a zero-byte .keep placeholder so the directory stays listed.

If a backup already exists it would be overwritten — and if the archive
was already stripped, that destroys the only copy of the original. The
command asks for confirmation in that case; use --force to skip the
question (non-interactive runs refuse instead of asking).`,
	Example: `  # Strip the configured archive
  pk3strip strip

  # Strip a specific archive with a custom prefix
  pk3strip strip assets.pk3 --keep-dir textures/custom/

  # Re-strip without being asked about the existing backup
  pk3strip strip --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStrip,
}

func runStrip(cmd *cobra.Command, args []string) error {
	return runStripWithWriter(cmd, cmd.OutOrStdout(), args)
}

func runStripWithWriter(cmd *cobra.Command, w io.Writer, args []string) error {
	job, c, err := resolveJob(args, stripBackup, stripKeepDirs)
	if err != nil {
		return err
	}

	mgr := newManager(cmd, c)

	if err := confirmBackupOverwrite(job, c.BackupSuffix); err != nil {
		return err
	}

	res, err := mgr.Strip(job)
	if err != nil {
		switch {
		case errors.Is(err, pk3.ErrArchiveNotFound):
			return errors.NewUserError(err, "Check the archive path or run 'pk3strip init'")
		case errors.Is(err, pk3.ErrInvalidArchive):
			return errors.NewUserError(err, "The file is not a ZIP archive; nothing was changed")
		default:
			return errors.NewSystemError(err, "Check free space and file permissions")
		}
	}

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	if res.BackupOverwritten {
		yellow.Fprintf(w, "! overwrote existing backup %s\n", res.BackupPath)
	}
	green.Fprintf(w, "✓ backup created: %s\n", res.BackupPath)
	green.Fprintf(w, "✓ stripped %s: kept %d entries, removed %d\n",
		res.ArchivePath, res.Kept, len(res.Removed))
	for _, p := range res.Placeholders {
		fmt.Fprintf(w, "  placeholder %s\n", p)
	}
	for _, warn := range res.Warnings {
		yellow.Fprintf(w, "! skipped %s\n", warn)
	}

	return nil
}

// confirmBackupOverwrite guards against destroying the only pre-strip copy:
// when a backup already exists, ask before overwriting it. Without a
// terminal the command refuses instead of asking.
func confirmBackupOverwrite(job pk3.Job, backupSuffix string) error {
	if stripForce {
		return nil
	}

	backupPath := job.BackupPath
	if backupPath == "" {
		backupPath = job.ArchivePath + backupSuffix
	}
	if _, err := os.Stat(backupPath); err != nil {
		return nil
	}

	if !logging.IsTTY(os.Stdin) {
		return errors.NewUserError(
			errors.Newf("backup %s already exists", backupPath),
			"Re-run with --force to overwrite it, or restore first")
	}

	ok, err := prompt.NewConfirmer().Confirm(
		fmt.Sprintf("Backup %s already exists. Overwrite it?", backupPath))
	if err != nil {
		return err
	}
	if !ok {
		return errors.NewUserError(errors.New("strip cancelled"), "Run 'pk3strip restore' to recover the backup first")
	}
	return nil
}
