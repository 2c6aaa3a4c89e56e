// Package configloader provides configuration loading and resolution:
// XDG-compliant discovery, layered merging, and environment overrides.
package configloader

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdtree/pkg/config"
)

// Environment variables recognized as overrides.
const (
	EnvLogLevel = "MDTREE_LOG_LEVEL"
	EnvMatcher  = "MDTREE_MATCHER"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// If set, project config discovery is skipped.
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips environment variable overrides.
	IgnoreEnv bool
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. Environment variables (MDTREE_*)
//  2. Explicit config file (opts.ExplicitPath)
//  3. Project config (.mdtree.yml upward search)
//  4. User config ($XDG_CONFIG_HOME/mdtree/config.yaml)
//  5. System config (/etc/mdtree/config.yaml)
//  6. Defaults
//
// CLI flag overrides are the caller's business and sit above all of these.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{
		Config: config.NewConfig(),
		Paths:  paths,
	}

	// Apply files lowest to highest precedence. Each layer unmarshals onto
	// the accumulated config, so keys a file leaves out keep the value of
	// the layer below.
	if !opts.IgnoreSystemConfig && paths.System != "" {
		if err := applyFile(result, paths.System); err != nil {
			return nil, fmt.Errorf("load system config: %w", err)
		}
	}
	if !opts.IgnoreUserConfig && paths.User != "" {
		if err := applyFile(result, paths.User); err != nil {
			return nil, fmt.Errorf("load user config: %w", err)
		}
	}

	if paths.Explicit != "" {
		if err := applyFile(result, paths.Explicit); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	} else if !opts.IgnoreProjectConfig && paths.Project != "" {
		if err := applyFile(result, paths.Project); err != nil {
			return nil, fmt.Errorf("load project config: %w", err)
		}
	}

	if !opts.IgnoreEnv {
		applyEnv(result.Config)
	}

	if err := result.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return result, nil
}

func applyFile(result *LoadResult, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, result.Config); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	result.LoadedFrom = append(result.LoadedFrom, path)
	return nil
}

func applyEnv(cfg *config.Config) {
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = level
	}
	if matcher := os.Getenv(EnvMatcher); matcher != "" {
		cfg.Search.Matcher = matcher
	}
}
