package commands

import (
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mbtools/pk3strip/internal/errors"
	"github.com/mbtools/pk3strip/internal/pk3"
)

// restoreBackup holds the value of the --backup flag.
var restoreBackup string

func init() {
	restoreCmd.Flags().StringVar(&restoreBackup, "backup", "",
		"backup path (default: archive path + configured suffix)")

	rootCmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore [archive]",
	Short: "Replace the archive with its backup",
	Long: `Replace the archive with its backup, discarding the stripped version.

The backup is consumed: after a successful restore it no longer exists
under its own name and the archive is byte-identical to what it was
before the strip.`,
	Example: `  # Restore the configured archive
  pk3strip restore

  # Restore a specific archive
  pk3strip restore MBAssets3.pk3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRestore,
}

func runRestore(cmd *cobra.Command, args []string) error {
	return runRestoreWithWriter(cmd, cmd.OutOrStdout(), args)
}

func runRestoreWithWriter(cmd *cobra.Command, w io.Writer, args []string) error {
	job, c, err := resolveJob(args, restoreBackup, nil)
	if err != nil {
		return err
	}

	mgr := newManager(cmd, c)

	if err := mgr.Restore(job); err != nil {
		switch {
		case errors.Is(err, pk3.ErrBackupNotFound):
			return errors.NewUserError(err, "Nothing to restore; run 'pk3strip strip' first")
		default:
			return errors.NewSystemError(err, "Check that the archive is not in use")
		}
	}

	color.New(color.FgGreen).Fprintf(w, "✓ restored %s from backup\n", job.ArchivePath)
	return nil
}
