package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-mdx/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ErrUnknownCommand indicates an unrecognized subcommand.
var ErrUnknownCommand = errors.New("unknown command")

func main() {
	env := DefaultEnv()

	// Configure GOMAXPROCS with conditional logging.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(maxprocsLogger(os.Args, env.Stderr)))

	os.Exit(runMain(os.Args, env))
}

// maxprocsLogger routes automaxprocs output to w when --verbose is set.
func maxprocsLogger(args []string, w io.Writer) func(string, ...interface{}) {
	if !hasVerboseFlag(args) {
		return func(string, ...interface{}) {}
	}
	return func(format string, a ...interface{}) {
		fmt.Fprintf(w, format+"\n", a...)
	}
}

// hasVerboseFlag reports whether -v or --verbose appears before "--".
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}

// runMain dispatches a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	warnUnknownEnvVars(env.Stderr)

	cmd, rest := args[1], args[2:]

	// "mdx post.mdx" is shorthand for "mdx render post.mdx".
	if !isCommand(cmd) && looksLikeInput(cmd) {
		cmd, rest = "render", args[1:]
	}

	var err error
	switch cmd {
	case "render":
		err = runRenderCmd(rest, env)
	case "css":
		err = runCSS(rest, env)
	case "completion":
		err = runCompletion(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "go-mdx %s\n", Version)
	case "help":
		runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "%v: %s\n\n", ErrUnknownCommand, cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runRenderCmd parses render flags and runs the render command under a
// signal-aware context.
func runRenderCmd(args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	return runRender(ctx, positional, flags, env)
}

// isCommand reports whether name is a known subcommand.
func isCommand(name string) bool {
	switch name {
	case "render", "css", "completion", "version", "help":
		return true
	}
	return false
}

// looksLikeInput reports whether arg is a markdown file or an existing
// directory rather than a command name.
func looksLikeInput(arg string) bool {
	if fileutil.IsMarkdownFile(arg) {
		return true
	}
	if filepath.Base(arg) != arg {
		info, err := os.Stat(arg)
		return err == nil && info.IsDir()
	}
	return false
}
