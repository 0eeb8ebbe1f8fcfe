// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// MatchDir returns the names of the regular files directly inside dir that
// match glob, in lexical order. Symlinks count when their target is a
// regular file.
func MatchDir(dir, glob string) ([]string, error) {
	if _, err := filepath.Match(glob, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", glob, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if ok, _ := filepath.Match(glob, entry.Name()); !ok {
			continue
		}
		if isRegular(dir, entry) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

func isRegular(dir string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.Type().IsRegular()
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.Mode().IsRegular()
}

// Pattern is a parsed file pattern expression of the form
//
//	[dir//]glob[|glob...]
//
// A "dir//" prefix matches files at any depth below dir. Without it, globs
// are matched against paths relative to the root.
type Pattern struct {
	Dir       string
	Recursive bool
	Globs     []string
}

// ParsePattern parses a pattern expression.
func ParsePattern(expr string) (Pattern, error) {
	var p Pattern
	rest := strings.TrimSpace(expr)
	if dir, globs, ok := strings.Cut(rest, "//"); ok {
		p.Dir = filepath.Clean(filepath.FromSlash(dir))
		p.Recursive = true
		rest = globs
	}
	for _, g := range strings.Split(rest, "|") {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if _, err := filepath.Match(g, ""); err != nil {
			return Pattern{}, fmt.Errorf("invalid glob %q in pattern %q: %w", g, expr, err)
		}
		p.Globs = append(p.Globs, g)
	}
	if len(p.Globs) == 0 {
		return Pattern{}, fmt.Errorf("pattern %q has no globs", expr)
	}
	return p, nil
}

// Match returns root-relative paths of the files matched by the pattern, in
// lexical order. A missing pattern directory matches nothing. Directories for
// which skip returns true are not descended into; skip may be nil.
func (p Pattern) Match(root string, skip func(rel string) bool) ([]string, error) {
	if !p.Recursive {
		return p.matchFlat(root)
	}

	base := filepath.Join(root, p.Dir)
	if !IsDir(base) {
		return nil, nil
	}

	var files []string
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != base && skip != nil && skip(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if p.matchName(d.Name()) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (p Pattern) matchFlat(root string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	for _, g := range p.Globs {
		matches, err := filepath.Glob(filepath.Join(root, g))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			rel, err := filepath.Rel(root, m)
			if err != nil {
				return nil, err
			}
			if _, dup := seen[rel]; !dup {
				seen[rel] = struct{}{}
				files = append(files, rel)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func (p Pattern) matchName(name string) bool {
	for _, g := range p.Globs {
		if ok, _ := filepath.Match(g, name); ok {
			return true
		}
	}
	return false
}
