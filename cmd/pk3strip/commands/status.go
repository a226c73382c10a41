package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mbtools/pk3strip/internal/errors"
	"github.com/mbtools/pk3strip/internal/pk3"
)

var (
	// statusOutput holds the value of the --output flag.
	statusOutput string

	// statusEntries holds the value of the --entries flag.
	statusEntries bool
)

func init() {
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "table",
		"output format: table, json, yaml")
	statusCmd.Flags().BoolVar(&statusEntries, "entries", false,
		"list every archive entry")

	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status [archive]",
	Short: "Show the archive's strip state and backup presence",
	Example: `  # Show state of the configured archive
  pk3strip status

  # Full entry listing as YAML
  pk3strip status --entries -o yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatus,
}

// archiveStatus is the status command's output document.
type archiveStatus struct {
	Archive       string          `json:"archive" yaml:"archive"`
	Stripped      bool            `json:"stripped" yaml:"stripped"`
	BackupPresent bool            `json:"backup_present" yaml:"backup_present"`
	Backup        string          `json:"backup" yaml:"backup"`
	EntryCount    int             `json:"entry_count" yaml:"entry_count"`
	Entries       []pk3.EntryInfo `json:"entries,omitempty" yaml:"entries,omitempty"`
	Manifest      *pk3.Manifest   `json:"manifest,omitempty" yaml:"manifest,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	return runStatusWithWriter(cmd, cmd.OutOrStdout(), args)
}

func runStatusWithWriter(cmd *cobra.Command, w io.Writer, args []string) error {
	job, c, err := resolveJob(args, "", nil)
	if err != nil {
		return err
	}

	mgr := newManager(cmd, c)

	entries, err := mgr.List(job.ArchivePath)
	if err != nil {
		switch {
		case errors.Is(err, pk3.ErrArchiveNotFound):
			return errors.NewUserError(err, "Check the archive path or run 'pk3strip init'")
		case errors.Is(err, pk3.ErrInvalidArchive):
			return errors.NewUserError(err, "The file is not a ZIP archive")
		default:
			return errors.NewSystemError(err, "Check file permissions")
		}
	}

	backupPath := job.BackupPath
	if backupPath == "" {
		backupPath = job.ArchivePath + c.BackupSuffix
	}
	_, statErr := os.Stat(backupPath)

	st := archiveStatus{
		Archive:       job.ArchivePath,
		Stripped:      pk3.IsStripped(entries, job.KeepPrefixes),
		BackupPresent: statErr == nil,
		Backup:        backupPath,
		EntryCount:    len(entries),
	}
	if statusEntries {
		st.Entries = entries
	}
	// The manifest is advisory; a missing or unreadable one is not an error.
	if manifest, err := pk3.LoadManifest(job.ArchivePath); err == nil {
		st.Manifest = manifest
	}

	switch statusOutput {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(st), "encoding status")
	case "yaml":
		data, err := yaml.Marshal(st)
		if err != nil {
			return errors.Wrap(err, "encoding status")
		}
		_, err = w.Write(data)
		return errors.Wrap(err, "writing status")
	case "table":
		return writeStatusTable(w, st)
	default:
		return errors.NewUserError(
			errors.Newf("unknown output format %q", statusOutput),
			"Valid formats: table, json, yaml")
	}
}

func writeStatusTable(w io.Writer, st archiveStatus) error {
	state := "original"
	if st.Stripped {
		state = "stripped"
	}

	fmt.Fprintf(w, "Archive: %s\n", st.Archive)
	fmt.Fprintf(w, "State:   %s\n", state)
	fmt.Fprintf(w, "Entries: %d\n", st.EntryCount)
	if st.BackupPresent {
		fmt.Fprintf(w, "Backup:  %s\n", st.Backup)
	} else {
		fmt.Fprintf(w, "Backup:  (none)\n")
	}
	if st.Manifest != nil {
		fmt.Fprintf(w, "Stripped at %s by pk3strip %s (removed %d entries)\n",
			st.Manifest.CreatedAt.Format("2006-01-02 15:04:05 MST"),
			st.Manifest.ToolVersion,
			st.Manifest.Removed)
	}

	if len(st.Entries) > 0 {
		fmt.Fprintln(w)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tSIZE\tCOMPRESSED")
		for _, e := range st.Entries {
			fmt.Fprintf(tw, "%s\t%d\t%d\n", e.Name, e.UncompressedSize, e.CompressedSize)
		}
		if err := tw.Flush(); err != nil {
			return errors.Wrap(err, "writing entry table")
		}
	}
	return nil
}
