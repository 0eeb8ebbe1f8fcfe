package host

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/gendriver/internal/fsutil"
)

// Packages is the set of package ids a host can resolve.
type Packages struct {
	roots []string
	known map[string]struct{}
}

// NewPackages returns a universe made of the explicitly known ids plus every
// package directory below roots. A leading "~/" in a root is expanded to the
// user's home directory.
func NewPackages(roots, known []string) *Packages {
	p := &Packages{known: make(map[string]struct{}, len(known))}
	for _, root := range roots {
		p.roots = append(p.roots, expandHome(root))
	}
	for _, id := range known {
		p.Add(id)
	}
	return p
}

// Add marks id as existing.
func (p *Packages) Add(id string) {
	if id = strings.TrimSpace(id); id != "" {
		p.known[id] = struct{}{}
	}
}

// Exists reports whether id names a known package or a directory under one
// of the roots.
func (p *Packages) Exists(id string) bool {
	if !validID(id) {
		return false
	}
	if _, ok := p.known[id]; ok {
		return true
	}
	for _, root := range p.roots {
		if fsutil.IsDir(filepath.Join(root, filepath.FromSlash(id))) {
			return true
		}
	}
	return false
}

// validID rejects ids that would resolve outside a package root.
func validID(id string) bool {
	if id == "" || strings.HasPrefix(id, "/") || filepath.IsAbs(id) {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(id), "/") {
		if part == ".." {
			return false
		}
	}
	return true
}

func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
