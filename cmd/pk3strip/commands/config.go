package commands

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mbtools/pk3strip/internal/config"
	"github.com/mbtools/pk3strip/internal/errors"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration as YAML, merged from the config
file, environment variables and defaults, and report any values that
would prevent a strip from running.`,
	Example: `  # Show the effective configuration
  pk3strip config

  # Show a single value
  pk3strip config get archive

  # Edit the config file
  pk3strip config edit`,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Example: `  # Show the configured archive
  pk3strip config get archive

  # Show the directory prefixes, one per line
  pk3strip config get keep_dirs`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in $EDITOR",
	RunE:  runConfigEdit,
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	return runConfigListWithWriter(cmd.OutOrStdout())
}

func runConfigListWithWriter(w io.Writer) error {
	c, err := activeConfig()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	fmt.Fprint(w, string(data))

	if problems := config.Validate(c); len(problems) > 0 {
		yellow := color.New(color.FgYellow)
		fmt.Fprintln(w)
		for _, p := range problems {
			yellow.Fprintf(w, "! %v\n", p)
		}
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	return runConfigGetWithWriter(cmd.OutOrStdout(), args[0])
}

func runConfigGetWithWriter(w io.Writer, key string) error {
	if !viper.IsSet(key) {
		fmt.Fprintln(w, "not set")
		return nil
	}

	switch v := viper.Get(key).(type) {
	case []any:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	case []string:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	default:
		fmt.Fprintln(w, viper.GetString(key))
	}
	return nil
}

func runConfigEdit(_ *cobra.Command, _ []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return errors.NewUserError(
			errors.Newf("config file not found at %s", path),
			"Run 'pk3strip init' to create it")
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	ed := exec.Command(editor, path)
	ed.Stdin = os.Stdin
	ed.Stdout = os.Stdout
	ed.Stderr = os.Stderr
	if err := ed.Run(); err != nil {
		return errors.Wrap(err, "running editor")
	}
	return nil
}
