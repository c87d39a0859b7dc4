package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that a theme name is safe to use as a file name.
// Dots are rejected so names cannot carry an extension or traverse.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
