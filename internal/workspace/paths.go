// Package workspace guards file-system access for tools: every path coming
// from the model is resolved and boundary-checked here before any read or
// write happens.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathError is returned when a path fails validation (escapes the allowed
// directory, or cannot be resolved at all).
type PathError struct {
	Path   string
	Reason string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("invalid path %q: %s", e.Path, e.Reason)
}

// Guard resolves and validates file paths on behalf of tools.
//
// Relative paths are resolved against Root. When AllowedDir is non-empty,
// every resolved path must stay inside it; symlinks are resolved before the
// boundary check so a symlinked parent cannot smuggle access outside.
type Guard struct {
	root       string
	allowedDir string
}

// NewGuard builds a Guard. root defaults to the current working directory;
// an empty allowedDir disables the boundary check.
func NewGuard(root, allowedDir string) *Guard {
	if root == "" {
		if cwd, err := os.Getwd(); err == nil {
			root = cwd
		}
	}
	if allowedDir != "" {
		if abs, err := filepath.Abs(allowedDir); err == nil {
			allowedDir = abs
		}
		if resolved, err := filepath.EvalSymlinks(allowedDir); err == nil {
			allowedDir = resolved
		}
	}
	return &Guard{root: root, allowedDir: allowedDir}
}

// Root returns the directory relative paths are resolved against.
func (g *Guard) Root() string { return g.root }

// ValidatePath resolves path against the workspace root and enforces the
// allowed-directory restriction. It returns the resolved absolute path.
func (g *Guard) ValidatePath(path string) (string, error) {
	if path == "" {
		return "", &PathError{Path: path, Reason: "empty path"}
	}
	p := path
	if !filepath.IsAbs(p) {
		p = filepath.Join(g.root, p)
	}
	resolved, err := filepath.EvalSymlinks(p)
	if err != nil {
		// The leaf, and possibly whole subtrees, may not exist yet (writes).
		// Walk up to the deepest existing ancestor, resolve that, and rejoin
		// the missing components so a symlinked ancestor is still seen
		// through before the boundary check.
		base := filepath.Clean(p)
		var missing []string
		for {
			if r, perr := filepath.EvalSymlinks(base); perr == nil {
				for i := len(missing) - 1; i >= 0; i-- {
					r = filepath.Join(r, missing[i])
				}
				resolved = r
				break
			}
			parent := filepath.Dir(base)
			if parent == base {
				resolved = filepath.Clean(p)
				break
			}
			missing = append(missing, filepath.Base(base))
			base = parent
		}
	}
	if g.allowedDir != "" {
		rel, err := filepath.Rel(g.allowedDir, resolved)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", &PathError{Path: path, Reason: "outside the allowed directory " + g.allowedDir}
		}
	}
	return resolved, nil
}

// EnsureParentExists creates the parent directory of path when missing.
func (g *Guard) EnsureParentExists(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &PathError{Path: path, Reason: "create parent: " + err.Error()}
	}
	return nil
}

// GetSize returns the size of the file at path in bytes. The path is
// validated first; a missing file surfaces as the os.Stat error.
func (g *Guard) GetSize(path string) (int64, error) {
	fp, err := g.ValidatePath(path)
	if err != nil {
		return 0, err
	}
	info, err := os.Stat(fp)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
