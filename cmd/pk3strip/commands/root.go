// Package commands implements the CLI commands for pk3strip.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbtools/pk3strip/internal/config"
	"github.com/mbtools/pk3strip/internal/errors"
	"github.com/mbtools/pk3strip/internal/logging"
	"github.com/mbtools/pk3strip/internal/pk3"
)

// version is set at build time via ldflags.
// Default to a development version for local builds.
const version = "0.1.0"

// cfgFile holds the value of the --config flag.
var cfgFile string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// cfg is the loaded configuration, populated by initConfig.
var cfg *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"path to config file (default: ./config.yaml, then XDG config dir)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	// Add version flag
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("pk3strip version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	cfg, configLoadErr = config.Load(cfgFile)
}

var rootCmd = &cobra.Command{
	Use:   "pk3strip",
	Short: "Manage a PK3 asset package: back up, strip, restore",
	Long: `pk3strip manages a PK3 file (a ZIP-format game asset package).

The strip command makes a byte-for-byte backup of the archive, then
rewrites it with the configured directory subtrees emptied. Each emptied
directory keeps a zero-byte .keep placeholder so it stays listed in the
archive. The restore command swaps the backup back in, returning the
archive to its exact pre-strip bytes.

Stripping twice without restoring overwrites the backup with the
already-stripped archive; the strip command asks for confirmation
before it does that.`,
	Example: `  # First-time setup: pick the archive and write the config file
  pk3strip init

  # Back up and strip the configured archive
  pk3strip strip

  # Strip a specific archive
  pk3strip strip MBAssets3.pk3

  # Show whether the archive is currently stripped
  pk3strip status

  # Put the original back
  pk3strip restore`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(
			errors.New("--quiet and --verbose cannot be used together"),
			"Pick one")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("PK3STRIP_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// activeConfig returns the loaded configuration, surfacing any load error.
func activeConfig() (*config.Config, error) {
	if configLoadErr != nil {
		return nil, errors.NewUserError(configLoadErr, "Check the config file or pass --config")
	}
	if cfg == nil {
		// OnInitialize has not run (direct test invocation); use defaults.
		return &config.Config{
			BackupSuffix: config.DefaultBackupSuffix,
			KeepDirs:     config.DefaultKeepDirs,
		}, nil
	}
	return cfg, nil
}

// resolveJob builds the engine job for a command invocation: archive from
// the positional argument or the config, prefixes from the flag or the
// config, backup path from the flag or derived by the engine.
func resolveJob(args []string, backupFlag string, keepDirsFlag []string) (pk3.Job, *config.Config, error) {
	c, err := activeConfig()
	if err != nil {
		return pk3.Job{}, nil, err
	}

	archive := c.Archive
	if len(args) > 0 {
		archive = args[0]
	}
	if archive == "" {
		return pk3.Job{}, nil, errors.NewUserError(
			errors.New("no archive specified"),
			"Pass an archive path or run 'pk3strip init' to configure one")
	}

	keepDirs := c.KeepDirs
	if len(keepDirsFlag) > 0 {
		keepDirs = keepDirsFlag
	}

	return pk3.Job{
		ArchivePath:  archive,
		BackupPath:   backupFlag,
		KeepPrefixes: keepDirs,
	}, c, nil
}

// newManager builds the engine with the command's logger and the
// configured backup suffix.
func newManager(cmd *cobra.Command, c *config.Config) *pk3.Manager {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	opts := []pk3.Option{
		pk3.WithLogger(logging.FromContext(ctx)),
	}
	if c.BackupSuffix != "" {
		opts = append(opts, pk3.WithBackupSuffix(c.BackupSuffix))
	}
	return pk3.NewManager(opts...)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
