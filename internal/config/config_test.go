package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestInit_Defaults(t *testing.T) {
	viper.Reset()

	Init()

	if viper.GetString("backup_suffix") != ".bak" {
		t.Errorf("backup_suffix default = %q, want %q", viper.GetString("backup_suffix"), ".bak")
	}

	dirs := viper.GetStringSlice("keep_dirs")
	require.Equal(t, DefaultKeepDirs, dirs)
}

func TestLoad_NoConfigFile(t *testing.T) {
	viper.Reset()

	// Run from an empty directory so no stray config.yaml is picked up
	t.Chdir(t.TempDir())

	Init()

	cfg, err := Load("")
	require.NoError(t, err, "Load() with no config file should not error")
	require.NotNil(t, cfg)
	require.Equal(t, DefaultBackupSuffix, cfg.BackupSuffix)
	require.Equal(t, DefaultKeepDirs, cfg.KeepDirs)
	require.Empty(t, cfg.Archive)
}

func TestLoad_WithConfigFile(t *testing.T) {
	viper.Reset()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := []byte("archive: MBAssets3.pk3\nkeep_dirs:\n  - ext_data/mb2/character/\n")
	if err := os.WriteFile(configPath, content, 0600); err != nil {
		t.Fatal(err)
	}

	Init()

	cfg, err := Load(configPath)
	require.NoError(t, err)
	require.Equal(t, "MBAssets3.pk3", cfg.Archive)
	require.Equal(t, []string{"ext_data/mb2/character/"}, cfg.KeepDirs)
	// Unset keys fall back to defaults
	require.Equal(t, DefaultBackupSuffix, cfg.BackupSuffix)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	viper.Reset()
	Init()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	in := &Config{
		Archive:      "MBAssets3.pk3",
		BackupSuffix: ".bak",
		KeepDirs:     DefaultKeepDirs,
	}
	require.NoError(t, Save(path, in))

	viper.Reset()
	Init()

	out, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr int
	}{
		{
			name: "valid",
			cfg: &Config{
				Archive:      "x.pk3",
				BackupSuffix: ".bak",
				KeepDirs:     DefaultKeepDirs,
			},
			wantErr: 0,
		},
		{
			name:    "nil config",
			cfg:     nil,
			wantErr: 1,
		},
		{
			name:    "everything missing",
			cfg:     &Config{},
			wantErr: 3,
		},
		{
			name: "missing archive only",
			cfg: &Config{
				BackupSuffix: ".bak",
				KeepDirs:     DefaultKeepDirs,
			},
			wantErr: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.cfg)
			if len(errs) != tt.wantErr {
				t.Errorf("Validate() returned %d errors, want %d: %v", len(errs), tt.wantErr, errs)
			}
		})
	}
}
