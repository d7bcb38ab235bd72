// File: discovery.go
// Title: Configuration File Discovery Implementation
// Description: Locates a configuration file across an ordered list of
//              candidate paths and loads the first one found.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of file discovery
// - 2025-10-19 v0.2.0: Ordered candidate files instead of path/name/extension grid

package config

import (
	"os"
	"path/filepath"
	"strings"

	mdwerror "github.com/msto63/calc/foundation/core/error"
)

// DiscoveryOptions defines options for configuration file discovery
type DiscoveryOptions struct {
	Candidates []string // Files to try, in order; "~/" is expanded
	EnvPrefix  string   // Environment variable prefix for overrides
	Required   bool     // Whether finding a config file is required
}

// Discover loads the first existing candidate file. When none exists and
// the file is not required, an empty configuration is returned so that
// environment overrides and defaults still apply.
func Discover(options DiscoveryOptions) (*Config, error) {
	path, err := FindConfigFile(options.Candidates)
	if err != nil {
		if options.Required {
			return nil, err
		}
		return Empty(options.EnvPrefix), nil
	}

	cfg, err := LoadWithOptions(path, LoadOptions{
		Format:    FormatAuto,
		EnvPrefix: options.EnvPrefix,
	})
	if err != nil {
		return nil, mdwerror.Wrap(err, "found config file "+path+" but failed to load").
			WithOperation("config.Discover").
			WithDetail("configPath", path)
	}
	return cfg, nil
}

// FindConfigFile returns the first candidate that exists and is a regular file
func FindConfigFile(candidates []string) (string, error) {
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		path := ExpandHome(candidate)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}

	return "", mdwerror.New("no configuration file found").
		WithCode(mdwerror.CodeNotFound).
		WithOperation("config.FindConfigFile").
		WithDetail("candidates", strings.Join(candidates, ", "))
}

// ExpandHome replaces a leading "~/" with the user's home directory
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
