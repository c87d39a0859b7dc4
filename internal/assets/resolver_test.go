package assets

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestNewResolver(t *testing.T) {
	t.Parallel()

	r, err := NewResolver("")
	if err != nil {
		t.Fatalf("NewResolver(\"\") error = %v", err)
	}
	if r.HasCustomLoader() {
		t.Error("expected no custom loader for empty path")
	}

	r, err = NewResolver(t.TempDir())
	if err != nil {
		t.Fatalf("NewResolver(tempdir) error = %v", err)
	}
	if !r.HasCustomLoader() {
		t.Error("expected custom loader for valid path")
	}

	if _, err := NewResolver(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("NewResolver(missing) error = %v, want ErrInvalidBasePath", err)
	}
}

func TestResolver_LoadTheme(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTheme(t, dir, "default", "/* custom default */")
	writeTheme(t, dir, "brand", "/* brand */")

	r, err := NewResolver(dir)
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	tests := []struct {
		name    string
		theme   string
		want    string
		wantErr error
	}{
		{name: "custom overrides built-in", theme: "default", want: "/* custom default */"},
		{name: "custom only", theme: "brand", want: "/* brand */"},
		{name: "falls back to built-in", theme: "minimal"},
		{name: "not found anywhere", theme: "nope", wantErr: ErrThemeNotFound},
		{name: "invalid name does not fall back", theme: "a.b", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := r.LoadTheme(tt.theme)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadTheme(%q) error = %v, want %v", tt.theme, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadTheme(%q) error = %v", tt.theme, err)
			}
			if tt.want != "" && got != tt.want {
				t.Errorf("LoadTheme(%q) = %q, want %q", tt.theme, got, tt.want)
			}
			if got == "" {
				t.Errorf("LoadTheme(%q) returned empty CSS", tt.theme)
			}
		})
	}
}
