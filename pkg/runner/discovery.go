package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Discover expands opts.Paths into the inputs to read, in order.
// Named files and StdinPath stay where they appear on the command line; a
// directory is replaced by its sequence files in lexical order. A path seen
// twice is read once.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	var inputs []string
	seen := make(map[string]bool)
	for _, arg := range opts.Paths {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		found, err := expandPath(ctx, workDir, arg, opts.extensions())
		if err != nil {
			return nil, err
		}
		for _, path := range found {
			if !seen[path] {
				seen[path] = true
				inputs = append(inputs, path)
			}
		}
	}
	return inputs, nil
}

// expandPath resolves one command-line argument to the files it names.
func expandPath(ctx context.Context, workDir, arg string, extensions []string) ([]string, error) {
	if arg == StdinPath {
		return []string{StdinPath}, nil
	}

	path := arg
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", arg, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return sequenceFiles(ctx, path, extensions)
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

// sequenceFiles walks root for files with a listed extension. Dot files and
// dot directories are skipped, as are symlinks that do not lead to a
// regular file. Unreadable directories are passed over silently.
func sequenceFiles(ctx context.Context, root string, extensions []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		switch {
		case errors.Is(err, fs.ErrPermission):
			return nil
		case err != nil:
			return err
		}

		hidden := strings.HasPrefix(entry.Name(), ".") && path != root
		if entry.IsDir() {
			if hidden {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden || !matchesExtension(path, extensions) {
			return nil
		}
		if entry.Type()&fs.ModeSymlink != 0 && !isRegularTarget(path) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	slices.Sort(files)
	return files, nil
}

func isRegularTarget(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// matchesExtension compares the file extension case-insensitively.
func matchesExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	return slices.ContainsFunc(extensions, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}
