// Package config loads the optional per-user configuration file.
//
// Configuration is deliberately thin: a handful of defaults that would
// otherwise need repeating on every invocation. Command-line flags always
// win over file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ajxudir/macup/pkg/verbose"
)

// DefaultFileName is the config file looked up in the user's home directory.
const DefaultFileName = ".macup.yml"

// Config holds the optional per-user settings.
//
// Fields:
//   - LogFile: Run log location; empty means beside the binary
//   - Skip: Default skip tokens applied when --skip is not passed
//   - ApplicationsDir: Directory scanned by --list-unmanaged
//   - UnmanagedDenylist: Extra app names excluded from the unmanaged scan,
//     merged with the built-in denylist
type Config struct {
	LogFile           string   `yaml:"log_file"`
	Skip              []string `yaml:"skip"`
	ApplicationsDir   string   `yaml:"applications_dir"`
	UnmanagedDenylist []string `yaml:"unmanaged_denylist"`
}

// Default returns the built-in configuration.
//
// Returns:
//   - *Config: Configuration with default values for every field
func Default() *Config {
	return &Config{
		ApplicationsDir: "/Applications",
	}
}

// Load reads the configuration file at path, falling back to the default
// location and then to built-in defaults.
//
// A missing file is not an error: the tool works without configuration.
// A present but malformed file is an error, because silently ignoring a
// file the user wrote hides typos.
//
// Parameters:
//   - path: Explicit config file path; empty means $HOME/.macup.yml
//
// Returns:
//   - *Config: The loaded configuration with defaults filled in
//   - error: When an existing file cannot be read or parsed
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			verbose.Infof("Cannot resolve home directory: %v", err)
			return cfg, nil
		}
		path = filepath.Join(home, DefaultFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.ApplicationsDir == "" {
		cfg.ApplicationsDir = Default().ApplicationsDir
	}

	verbose.Infof("Config loaded: %s", path)
	return cfg, nil
}
