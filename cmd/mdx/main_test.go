package main

// Notes:
// - isCommand/looksLikeInput/hasVerboseFlag: we test argument routing.
// - runMain: we test exit codes for each command. File rendering itself is
//   covered in render_test.go.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

// testEnv returns an Environment writing to buffers with a frozen clock.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &Environment{
		Now:    func() time.Time { return fixed },
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

// writeFile writes content under dir, creating parents.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestIsCommand - Command name matching
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"render", true},
		{"css", true},
		{"completion", true},
		{"version", true},
		{"help", true},
		{"convert", false},
		{"post.md", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isCommand(tt.name); got != tt.want {
			t.Errorf("isCommand(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestLooksLikeInput - Shorthand detection
// ---------------------------------------------------------------------------

func TestLooksLikeInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name string
		arg  string
		want bool
	}{
		{"md file", "post.md", true},
		{"mdx file", "docs/intro.mdx", true},
		{"markdown upper case", "README.MARKDOWN", true},
		{"existing directory path", dir, true},
		{"missing directory path", filepath.Join(dir, "missing"), false},
		{"bare word", "posts", false},
		{"other extension", "notes.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := looksLikeInput(tt.arg); got != tt.want {
				t.Errorf("looksLikeInput(%q) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHasVerboseFlag / TestMaxprocsLogger - automaxprocs logging
// ---------------------------------------------------------------------------

func TestHasVerboseFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"short", []string{"mdx", "render", "-v", "a.md"}, true},
		{"long", []string{"mdx", "render", "--verbose"}, true},
		{"absent", []string{"mdx", "render", "a.md"}, false},
		{"after terminator", []string{"mdx", "render", "--", "-v"}, false},
	}

	for _, tt := range tests {
		if got := hasVerboseFlag(tt.args); got != tt.want {
			t.Errorf("%s: hasVerboseFlag(%v) = %v, want %v", tt.name, tt.args, got, tt.want)
		}
	}
}

func TestMaxprocsLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	maxprocsLogger([]string{"mdx", "render"}, &buf)("procs %d", 4)
	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote %q", buf.String())
	}

	maxprocsLogger([]string{"mdx", "-v"}, &buf)("procs %d", 4)
	if buf.String() != "procs 4\n" {
		t.Errorf("verbose logger wrote %q, want %q", buf.String(), "procs 4\n")
	}
}

// ---------------------------------------------------------------------------
// TestRunMain - Command dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	post := writeFile(t, dir, "post.md", "# Hello\n")

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "no command",
			args:       []string{"mdx"},
			wantCode:   ExitUsage,
			wantStderr: "Usage: mdx",
		},
		{
			name:       "version",
			args:       []string{"mdx", "version"},
			wantCode:   ExitSuccess,
			wantStdout: "go-mdx dev",
		},
		{
			name:       "help",
			args:       []string{"mdx", "help", "render"},
			wantCode:   ExitSuccess,
			wantStdout: "Usage: mdx render",
		},
		{
			name:       "unknown command",
			args:       []string{"mdx", "publish"},
			wantCode:   ExitUsage,
			wantStderr: "unknown command: publish",
		},
		{
			name:     "render help flag",
			args:     []string{"mdx", "render", "--help"},
			wantCode: ExitSuccess,
		},
		{
			name:       "render unknown flag",
			args:       []string{"mdx", "render", "--nope"},
			wantCode:   ExitUsage,
			wantStderr: "invalid usage",
		},
		{
			name:       "render missing file",
			args:       []string{"mdx", "render", filepath.Join(dir, "missing.md")},
			wantCode:   ExitIO,
			wantStderr: "missing.md",
		},
		{
			name:       "render without input",
			args:       []string{"mdx", "render"},
			wantCode:   ExitIO,
			wantStderr: "no input specified",
		},
		{
			name:       "render invalid workers",
			args:       []string{"mdx", "render", post, "-w", "-1"},
			wantCode:   ExitUsage,
			wantStderr: "invalid worker count",
		},
		{
			name:       "shorthand renders file",
			args:       []string{"mdx", post, "-o", filepath.Join(dir, "out.html")},
			wantCode:   ExitSuccess,
			wantStdout: "Created " + filepath.Join(dir, "out.html"),
		},
		{
			name:       "css unknown style",
			args:       []string{"mdx", "css", "no-such-style"},
			wantCode:   ExitUsage,
			wantStderr: "hint:",
		},
		{
			name:       "completion",
			args:       []string{"mdx", "completion", "bash"},
			wantCode:   ExitSuccess,
			wantStdout: "complete -F _mdx_completions mdx",
		},
		{
			name:       "completion unknown shell",
			args:       []string{"mdx", "completion", "tcsh"},
			wantCode:   ExitUsage,
			wantStderr: "unsupported shell",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv()
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, stderr.String())
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want to contain %q", stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want to contain %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}
