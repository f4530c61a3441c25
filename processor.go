package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
	"github.com/spf13/viper"
)

// walkOptions controls directory expansion for --recursive and git inputs.
type walkOptions struct {
	Include  []string
	Exclude  []string
	MaxDepth int
	MaxSize  int64
	Hidden   bool
	NoIgnore bool
}

// walkOptionsFromFlags snapshots the filter settings through viper, so the
// config file and TALLY_* environment apply whenever the flag itself was not
// given on the command line. Excludes keep their own flag-bound variable:
// initConfig already folds the config's default_excludes into it.
func walkOptionsFromFlags() walkOptions {
	return walkOptions{
		Include:  parsePatterns(viper.GetString("include")),
		Exclude:  parsePatterns(excludePatterns),
		MaxDepth: viper.GetInt("max_depth"),
		MaxSize:  viper.GetInt64("max_size"),
		Hidden:   viper.GetBool("hidden"),
		NoIgnore: viper.GetBool("no_ignore"),
	}
}

// parsePatterns splits a comma-separated string of glob patterns.
func parsePatterns(patterns string) []string {
	if patterns == "" {
		return nil
	}
	return strings.Split(patterns, ",")
}

// matchesAnyPattern checks if the given name matches any of the glob patterns.
func matchesAnyPattern(name string, patterns []string) (bool, error) {
	for _, pattern := range patterns {
		matched, err := filepath.Match(pattern, name)
		if err != nil {
			return false, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// walkFiles walks a directory and returns the files to count, in lexical
// walk order. Hidden entries, .gitignore matches, excluded patterns, entries
// past the depth limit, and files over the size limit are skipped; include
// patterns, when given, restrict which files are kept.
func walkFiles(root string, opts walkOptions) ([]string, error) {
	var files []string
	var ignoreMatcher gitignore.IgnoreMatcher

	if !opts.NoIgnore {
		gitIgnorePath := filepath.Join(root, ".gitignore")
		if _, err := os.Stat(gitIgnorePath); err == nil {
			matcher, err := gitignore.NewGitIgnore(gitIgnorePath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "tally: could not parse %s: %v\n", gitIgnorePath, err)
			} else {
				ignoreMatcher = matcher
			}
		}
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			fmt.Fprintf(os.Stderr, "tally: %s: %v\n", path, err)
			return nil // report and continue
		}
		if path == root {
			return nil
		}

		baseName := d.Name()
		isDir := d.IsDir()

		if !opts.Hidden && isHidden(baseName) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		// go-gitignore resolves the match path against the .gitignore's
		// own directory, so it gets the walk path, not the relative one.
		if ignoreMatcher != nil && ignoreMatcher.Match(path, isDir) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		relPath, _ := filepath.Rel(root, path)
		if opts.MaxDepth > 0 && countPathSeparators(relPath) >= opts.MaxDepth {
			if isDir {
				return fs.SkipDir
			}
		}

		excluded, err := matchesAnyPattern(baseName, opts.Exclude)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tally: %s: %v\n", path, err)
		}
		if excluded {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}
		if isDir {
			return nil // traverse non-excluded directories
		}

		if len(opts.Include) > 0 {
			included, err := matchesAnyPattern(baseName, opts.Include)
			if err != nil {
				fmt.Fprintf(os.Stderr, "tally: %s: %v\n", path, err)
			}
			if !included {
				return nil
			}
		}

		if opts.MaxSize > 0 {
			info, err := d.Info()
			if err != nil {
				fmt.Fprintf(os.Stderr, "tally: %s: %v\n", path, err)
				return nil
			}
			if info.Size() > opts.MaxSize {
				logger.Debug().Str("path", path).Int64("size", info.Size()).Msg("skipping oversized file")
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", root, err)
	}

	logger.Debug().Str("root", root).Int("files", len(files)).Msg("directory expanded")
	return files, nil
}

// isHidden checks if a file name is hidden (starts with '.').
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	baseName := filepath.Base(name)
	return len(baseName) > 0 && baseName[0] == '.'
}

// countPathSeparators counts the number of path separators in a relative path.
func countPathSeparators(path string) int {
	path = filepath.ToSlash(path)
	if path == "." || path == "" {
		return 0
	}
	return strings.Count(strings.Trim(path, "/"), "/")
}
