package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// themesSubdir holds custom themes inside an assets directory.
const themesSubdir = "themes"

// FilesystemLoader loads themes from {root}/themes/{name}.css.
type FilesystemLoader struct {
	root string // absolute, symlinks resolved
}

// NewFilesystemLoader creates a FilesystemLoader for an assets directory.
// Returns ErrInvalidBasePath if dir is not an existing directory.
func NewFilesystemLoader(dir string) (*FilesystemLoader, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	root, err := resolvePath(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	info, err := os.Stat(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, root)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, root)
	}

	return &FilesystemLoader{root: root}, nil
}

// LoadTheme reads the stylesheet of the named theme.
func (f *FilesystemLoader) LoadTheme(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	target, err := resolvePath(filepath.Join(f.root, themesSubdir, name+".css"))
	if err != nil {
		return "", fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}
	if !within(f.root, target) {
		return "", fmt.Errorf("%w: theme %q resolves outside %s", ErrPathTraversal, name, f.root)
	}

	css, err := os.ReadFile(target) // #nosec G304 -- contained in root
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(css), nil
}

// resolvePath makes p absolute and follows symlinks when p exists.
// A missing path is returned unresolved so reading it reports not found.
func resolvePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

// within reports whether target lies strictly below root.
func within(root, target string) bool {
	return strings.HasPrefix(target, root+string(filepath.Separator))
}

var _ ThemeLoader = (*FilesystemLoader)(nil)
