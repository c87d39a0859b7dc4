package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-mdx/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MDX_CONFIG: config file name or path
	Style      string        // MDX_STYLE: chroma highlight style
	Timeout    time.Duration // MDX_TIMEOUT: per-file render timeout
	InputDir   string        // MDX_INPUT_DIR: default input directory
	OutputDir  string        // MDX_OUTPUT_DIR: default output directory
	BasePath   string        // MDX_BASE_PATH: prefix for internal links
	Workers    int           // MDX_WORKERS: parallel workers
}

// knownEnvVars lists valid MDX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDX_CONFIG":     true,
	"MDX_STYLE":      true,
	"MDX_TIMEOUT":    true,
	"MDX_INPUT_DIR":  true,
	"MDX_OUTPUT_DIR": true,
	"MDX_BASE_PATH":  true,
	"MDX_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Invalid durations and worker counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MDX_CONFIG"),
		Style:      os.Getenv("MDX_STYLE"),
		InputDir:   os.Getenv("MDX_INPUT_DIR"),
		OutputDir:  os.Getenv("MDX_OUTPUT_DIR"),
		BasePath:   os.Getenv("MDX_BASE_PATH"),
	}

	if timeout := os.Getenv("MDX_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("MDX_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDX_* variables.
// Helps catch typos like MDX_OUTPUT instead of MDX_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MDX_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overlays environment values on a loaded config.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.Code.Style = env.Style
	}
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.BasePath != "" {
		cfg.Site.BasePath = env.BasePath
	}
}
