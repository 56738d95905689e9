package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const defaultServer = "http://localhost:8080"

// cliConfig holds onionctl settings. Precedence is file, then environment, then flags.
type cliConfig struct {
	Server    string `toml:"server"`
	AssumeYes bool   `toml:"assume_yes"`
}

// defaultConfigPath is $XDG_CONFIG_HOME/onionctl/config.toml or its home-directory equivalent.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "onionctl", "config.toml")
}

// loadCLIConfig reads path when given. A missing file at the default location is not an error;
// a missing file the operator named explicitly is.
func loadCLIConfig(path string) (cliConfig, error) {
	cfg := cliConfig{Server: defaultServer}

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return cliConfig{}, err
			}
		}
	}

	if v := os.Getenv("ONIONCTL_SERVER"); v != "" {
		cfg.Server = v
	}
	if cfg.Server == "" {
		cfg.Server = defaultServer
	}

	return cfg, nil
}
