// Package config provides configuration management for pk3strip using Viper.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/mbtools/pk3strip/pkg/fileutil"
)

// AppName is the application name used for config file naming.
const AppName = "pk3strip"

// DefaultBackupSuffix is appended to the archive path to form the backup path.
const DefaultBackupSuffix = ".bak"

// DefaultKeepDirs are the directory prefixes stripped by default: the
// character and team configuration subtrees of the MB2 asset package.
var DefaultKeepDirs = []string{
	"ext_data/mb2/character/",
	"ext_data/mb2/teamconfig/",
}

// Config represents the top-level configuration structure.
type Config struct {
	// Archive is the PK3 file to manage. Treated as an opaque path string,
	// validated only for non-emptiness at the point of use.
	Archive string `mapstructure:"archive" yaml:"archive"`

	// BackupSuffix is appended to the archive path to derive the backup path.
	BackupSuffix string `mapstructure:"backup_suffix" yaml:"backup_suffix"`

	// KeepDirs are the directory prefixes emptied by a strip.
	KeepDirs []string `mapstructure:"keep_dirs" yaml:"keep_dirs"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".") // Current directory
	viper.AddConfigPath(Dir())

	// Environment variable support
	viper.SetEnvPrefix("PK3STRIP")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("backup_suffix", DefaultBackupSuffix)
	viper.SetDefault("keep_dirs", DefaultKeepDirs)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		// If config file not found...
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If user specified a path, this is an error
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			// Real read error (parsing, permissions, etc)
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Dir returns the directory where the config file lives by default.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Save writes the configuration to path atomically.
func Save(path string, cfg *Config) error {
	return fileutil.AtomicWriteYAML(path, cfg)
}
