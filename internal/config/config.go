// SPDX-License-Identifier: EPL-2.0

// Package config loads widget options from YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/audsub/device"
	"gopkg.in/yaml.v3"
)

// Load reads options from path over device.DefaultOptions. An empty path
// returns the defaults.
func Load(path string) (device.Options, error) {
	opts := device.DefaultOptions()
	if path == "" {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse config file: %w", err)
	}

	opts = opts.Normalize()
	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("config file %s: %w", path, err)
	}

	return opts, nil
}

// Save writes opts to path, creating its directory.
func Save(path string, opts device.Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	data, err := yaml.Marshal(opts)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}
