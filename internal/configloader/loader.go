// Package configloader finds, merges and validates pepdigest configuration
// and resolves it into digestion options.
//
// Layers apply lowest first: built-in defaults, the system file, the user
// file, the project file (or the --config file in its place), PEPDIGEST_*
// environment variables and finally command-line flags.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/pepdigest/pkg/config"
	"github.com/yaklabco/pepdigest/pkg/fsutil"
)

// LoadOptions controls which layers Load reads.
type LoadOptions struct {
	// WorkingDir anchors the project file search. Empty means os.Getwd.
	WorkingDir string

	// ExplicitPath is the --config file. It replaces the project layer.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig holds values from command-line flags; it is applied last.
	CLIConfig *config.Config
}

// LoadResult is the merged configuration plus where it came from.
type LoadResult struct {
	Config *config.Config
	Paths  *ConfigPaths

	// LoadedFrom lists the files read, lowest precedence first.
	LoadedFrom []string

	// Warnings holds non-fatal findings on the merged configuration.
	Warnings []string
}

// fileLayer is one configuration file in the precedence chain.
type fileLayer struct {
	name string
	path string
}

// Load builds the effective configuration for one run.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	for _, layer := range fileLayers(paths, opts) {
		fileCfg, err := readLayer(layer)
		if err != nil {
			return nil, err
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}
	cfg = merge(cfg, opts.CLIConfig)

	// Each file may be valid alone and still conflict once merged.
	validation := Validate(cfg)
	if err := validation.Err(); err != nil {
		return nil, err
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// fileLayers lists the files to read, lowest precedence first.
func fileLayers(paths *ConfigPaths, opts LoadOptions) []fileLayer {
	var layers []fileLayer
	add := func(name, path string, skip bool) {
		if !skip && path != "" {
			layers = append(layers, fileLayer{name: name, path: path})
		}
	}

	add("system", paths.System, opts.IgnoreSystemConfig)
	add("user", paths.User, opts.IgnoreUserConfig)
	add("project", paths.Project, opts.IgnoreProjectConfig || paths.Explicit != "")
	add("explicit", paths.Explicit, false)
	return layers
}

// readLayer parses and validates one configuration file.
func readLayer(layer fileLayer) (*config.Config, error) {
	content, err := os.ReadFile(layer.path)
	if err != nil {
		return nil, fmt.Errorf("load %s config: read file: %w", layer.name, err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("load %s config: %s: %w", layer.name, layer.path, err)
	}

	if err := ValidateWithFile(cfg, layer.path).Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteConfig writes content to path atomically. An existing file is kept
// unless force is set.
func WriteConfig(ctx context.Context, path string, content []byte, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := fsutil.WriteAtomic(ctx, path, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
