// Package config resolves basm's runtime configuration using Viper.
//
// Paths are resolved exactly once per invocation, in order of precedence:
// environment override, config file value, built-in default. The resolved
// Config is passed explicitly into each adapter constructor; nothing
// rereads the environment mid-operation.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/basm/internal/errors"
	"github.com/thoreinstein/basm/internal/paths"
)

// EnvPrefix is the prefix for environment overrides.
// The recognized variables are BASM_RC_FILE, BASM_SUDOERS_PATH,
// BASM_BACKUP_DIR, and BASM_VISUDO.
const EnvPrefix = "BASM"

// DefaultVisudo is the validator executable used when no override is set.
const DefaultVisudo = "visudo"

// Config holds the resolved file locations for one invocation.
type Config struct {
	// RCFile is the shell startup file holding alias and export lines.
	RCFile string `mapstructure:"rc_file" yaml:"rc_file"`

	// SudoersPath is the live sudoers file.
	SudoersPath string `mapstructure:"sudoers_path" yaml:"sudoers_path"`

	// BackupDir is the root directory for snapshots.
	BackupDir string `mapstructure:"backup_dir" yaml:"backup_dir"`

	// Visudo is the external sudoers syntax validator executable.
	// It is invoked as "<visudo> -c -f <staging file>".
	Visudo string `mapstructure:"visudo" yaml:"visudo"`
}

// Init initializes Viper with defaults and environment binding.
// Call this once at application startup before Load.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(paths.DefaultConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("rc_file", paths.DefaultRCFile(os.Getenv("SHELL")))
	viper.SetDefault("sudoers_path", paths.DefaultSudoersPath)
	viper.SetDefault("backup_dir", paths.DefaultBackupDir())
	viper.SetDefault("visudo", DefaultVisudo)
}

// Load reads the configuration.
// If path is provided, it reads from that specific file; a missing file is
// then an error. If path is empty, the default locations are searched and
// a missing file just means defaults plus environment overrides apply.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Implicit load with no config file present: defaults apply.
			if path != "" {
				return nil, errors.Wrapf(err, "config file not found at %s", path)
			}
		} else {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	return &cfg, nil
}

// Default returns the configuration that applies with no config file and
// no environment overrides.
func Default() *Config {
	return &Config{
		RCFile:      paths.DefaultRCFile(os.Getenv("SHELL")),
		SudoersPath: paths.DefaultSudoersPath,
		BackupDir:   paths.DefaultBackupDir(),
		Visudo:      DefaultVisudo,
	}
}

// ConfigFilePath returns the default location of basm's own config file.
func ConfigFilePath() string {
	return filepath.Join(paths.DefaultConfigDir(), "config.yaml")
}
