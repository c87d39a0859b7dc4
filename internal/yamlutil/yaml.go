// Package yamlutil wraps YAML parsing to isolate the external dependency.
// Config files and component expression attributes both go through it.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData         = errors.New("yamlutil: nil or empty data")
	ErrNilDestination  = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge   = errors.New("yamlutil: input exceeds maximum size")
	ErrEmptyExpression = errors.New("yamlutil: empty expression")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalExpression decodes a component attribute expression such as
// {headers: ["a", "b"], rows: [[1, 2]]} or 600. YAML flow syntax accepts
// JSON and unquoted object keys alike.
func UnmarshalExpression(expr []byte, v any) error {
	expr = bytes.TrimSpace(expr)
	if len(expr) == 0 {
		return ErrEmptyExpression
	}
	if err := validateInput(expr, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(expr, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
