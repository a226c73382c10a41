package commands

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/mbtools/pk3strip/internal/config"
	"github.com/mbtools/pk3strip/internal/errors"
)

// initForce holds the value of the --force flag.
var initForce bool

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false,
		"overwrite an existing config file")

	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [archive]",
	Short: "First-time setup: choose the archive and write the config file",
	Long: `Write the pk3strip config file.

With an argument, that archive path is configured directly. Without one,
the command lists the .pk3 files in the current directory and lets you
pick interactively.

The config file records the archive path, the backup suffix, and the
directory prefixes to empty. It is searched for in the current directory
first, then in the XDG config directory.`,
	Example: `  # Pick a .pk3 from the current directory
  pk3strip init

  # Configure a known archive path
  pk3strip init MBAssets3.pk3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	return runInitWithWriter(cmd.OutOrStdout(), args)
}

func runInitWithWriter(w io.Writer, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}

	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return errors.NewUserError(
				errors.Newf("config file %s already exists", path),
				"Re-run with --force to overwrite it")
		}
	}

	var archive string
	if len(args) > 0 {
		archive = args[0]
	} else {
		selected, err := pickArchive(".")
		if err != nil {
			return err
		}
		archive = selected
	}

	c := &config.Config{
		Archive:      archive,
		BackupSuffix: config.DefaultBackupSuffix,
		KeepDirs:     config.DefaultKeepDirs,
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.NewSystemError(err, "Check permissions on the config directory")
	}
	if err := config.Save(path, c); err != nil {
		return errors.NewSystemError(err, "Check permissions on the config directory")
	}

	color.New(color.FgGreen).Fprintf(w, "✓ configured archive %s\n", archive)
	color.New(color.FgGreen).Fprintf(w, "✓ wrote %s\n", path)
	return nil
}

// pickArchive lets the user choose a .pk3 file from dir interactively.
func pickArchive(dir string) (string, error) {
	candidates, err := listArchives(dir)
	if err != nil {
		return "", errors.NewSystemError(err, "Check permissions on the current directory")
	}
	if len(candidates) == 0 {
		return "", errors.NewUserError(
			errors.New("no .pk3 files found in the current directory"),
			"Pass the archive path: pk3strip init <archive>")
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	idx, err := fuzzyfinder.Find(
		candidates,
		func(i int) string { return candidates[i] },
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", errors.NewUserError(errors.New("setup cancelled"), "")
		}
		return "", errors.Wrap(err, "selecting archive")
	}

	return candidates[idx], nil
}

// listArchives returns the .pk3 files directly inside dir.
func listArchives(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "reading directory")
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pk3") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
