package assets

import "errors"

// Resolver loads themes from a custom directory first and falls back to
// the built-in themes when a name is not found there.
type Resolver struct {
	custom   ThemeLoader // nil without a custom directory
	embedded ThemeLoader
}

// NewResolver creates a Resolver. An empty customDir uses built-in themes
// only; a non-empty one must be a readable directory.
func NewResolver(customDir string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}

	if customDir != "" {
		fsLoader, err := NewFilesystemLoader(customDir)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}

	return r, nil
}

// LoadTheme loads a theme, custom directory first.
func (r *Resolver) LoadTheme(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadTheme(name)
	}

	content, err := r.custom.LoadTheme(name)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, ErrThemeNotFound) {
		return "", err
	}

	return r.embedded.LoadTheme(name)
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ ThemeLoader = (*Resolver)(nil)
