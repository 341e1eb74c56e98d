package configloader

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"runtime"
)

// appDir names the pepdigest directory under system and user config roots.
const appDir = "pepdigest"

// ConfigPaths holds the configuration files found for one run.
// Empty fields mean the layer has no file.
type ConfigPaths struct {
	// System is /etc/pepdigest/config.yaml, or %ProgramData%\pepdigest on Windows.
	System string

	// User is $XDG_CONFIG_HOME/pepdigest/config.yaml.
	User string

	// Project is the nearest .pepdigest.yml at or above the working directory.
	Project string

	// Explicit is the --config path.
	Explicit string
}

// Project file names, most preferred first.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigNames = [...]string{
	".pepdigest.yml",
	".pepdigest.yaml",
	"pepdigest.yml",
	"pepdigest.yaml",
}

// File names inside the system and user config directories.
//
//nolint:gochecknoglobals // Read-only lookup table.
var sharedConfigNames = [...]string{"config.yaml", "config.yml"}

// Directories that mark the top of a repository; the upward search stops there.
//
//nolint:gochecknoglobals // Read-only lookup table.
var repositoryMarkers = [...]string{".git", ".hg", ".svn"}

// DefaultProjectConfig is the file name written by 'pepdigest init'.
func DefaultProjectConfig() string {
	return projectConfigNames[0]
}

// DiscoverPaths locates the system, user and project configuration files.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), sharedConfigNames[:]),
		User:    firstFile(userConfigDir(), sharedConfigNames[:]),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", appDir)
	}
	root := os.Getenv("ProgramData")
	if root == "" {
		root = `C:\ProgramData`
	}
	return filepath.Join(root, appDir)
}

// userConfigDir follows XDG on every platform so dotfile setups stay portable.
func userConfigDir() string {
	if root := os.Getenv("XDG_CONFIG_HOME"); root != "" {
		return filepath.Join(root, appDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDir)
}

// FindProjectConfig walks from startDir toward the filesystem root and returns
// the first project config file it sees. The walk ends without a match at a
// repository root or the home directory.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	home, _ := os.UserHomeDir()

	for candidate := range ancestors(dir) {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}
		if path := firstFile(candidate, projectConfigNames[:]); path != "" {
			return path, nil
		}
		if isRepositoryRoot(candidate) || candidate == home {
			break
		}
	}

	return "", nil
}

// ancestors yields dir and each of its parents up to the filesystem root.
func ancestors(dir string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			if !yield(dir) {
				return
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				return
			}
			dir = parent
		}
	}
}

// firstFile returns the first of names that exists as a regular file in dir.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		if path := filepath.Join(dir, name); fileExists(path) {
			return path
		}
	}
	return ""
}

func isRepositoryRoot(dir string) bool {
	for _, marker := range repositoryMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// fileExists reports whether path is an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
