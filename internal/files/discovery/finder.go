package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/vvka-141/markuid/internal/files/filesystem"
	"github.com/vvka-141/markuid/pkg/markuid"
)

// Finder expands paths into the list of markup files to process.
// Finder is safe for concurrent use as long as the filesystem provider is.
type Finder struct {
	fsProvider filesystem.FileSystemProvider
	include    []string
	exclude    []string
}

// NewFinder creates a finder on the OS filesystem.
func NewFinder(include, exclude []string) (*Finder, error) {
	return NewFinderWithFS(filesystem.NewOSFileSystem(), include, exclude)
}

// NewFinderWithFS creates a finder with a custom filesystem provider.
// It returns an error wrapping markuid.ErrInvalidConfig for malformed patterns.
// Panics if fsProvider is nil.
func NewFinderWithFS(fsProvider filesystem.FileSystemProvider, include, exclude []string) (*Finder, error) {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}

	inc, err := normalizePatterns(include)
	if err != nil {
		return nil, err
	}
	exc, err := normalizePatterns(exclude)
	if err != nil {
		return nil, err
	}
	if len(inc) == 0 {
		return nil, fmt.Errorf("at least one include pattern is required: %w", markuid.ErrInvalidConfig)
	}

	return &Finder{fsProvider: fsProvider, include: inc, exclude: exc}, nil
}

// Find returns the files named by paths, in argument order and without
// duplicates. Files found under a directory are listed in lexical order.
func (f *Finder) Find(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string

	add := func(p string) {
		key := filepath.Clean(p)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}

	for _, p := range paths {
		info, err := f.fsProvider.Stat(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("path %s does not exist: %w", p, markuid.ErrUsage)
			}
			return nil, fmt.Errorf("failed to access %s: %w", p, err)
		}

		if !info.IsDir() {
			add(p)
			continue
		}

		found, err := f.walk(p)
		if err != nil {
			return nil, err
		}
		for _, file := range found {
			add(file)
		}
	}

	return out, nil
}

func (f *Finder) walk(root string) ([]string, error) {
	dir, err := f.fsProvider.Open(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory: %w", err)
	}

	var files []string
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}

		rel := filepath.ToSlash(file.RelativePath())
		if rel == "." {
			return nil
		}

		if file.Info().IsDir() {
			if matchesAny(f.exclude, rel) || matchesAny(f.exclude, rel+"/") {
				return fs.SkipDir
			}
			return nil
		}

		if f.Matches(rel) {
			files = append(files, file.Path())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Matches reports whether rel (slash-separated, relative to a walked root)
// would be selected.
func (f *Finder) Matches(rel string) bool {
	rel = filepath.ToSlash(rel)
	return matchesAny(f.include, rel) && !matchesAny(f.exclude, rel)
}

func normalizePatterns(patterns []string) ([]string, error) {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		p = strings.TrimPrefix(filepath.ToSlash(p), "./")
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", p, markuid.ErrInvalidConfig)
		}
		out = append(out, p)
	}
	return out, nil
}

func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
