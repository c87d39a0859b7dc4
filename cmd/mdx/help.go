package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdx <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render MDX/markdown files to HTML")
	fmt.Fprintln(w, "  css        Print the stylesheet of a highlight style")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdx help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdx render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render MDX/markdown files (.md, .mdx, .markdown) to HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    File or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-file render timeout (e.g., 10s)")
	fmt.Fprintln(w, "      --drafts              Render posts marked draft: true")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --base-path <s>       Prefix for internal links (e.g., /blog)")
	fmt.Fprintln(w, "      --hard-wraps          Newlines in paragraphs become <br />")
	fmt.Fprintln(w, "      --unsafe-html         Pass raw HTML through")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Code:")
	fmt.Fprintln(w, "      --style <s>           Chroma highlight style (default: github)")
	fmt.Fprintln(w, "      --fenced <s>          Fenced code: inline (components), block (chroma <pre>)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "      --page                Write complete HTML documents")
	fmt.Fprintln(w, "      --no-css              Do not embed any stylesheet")
	fmt.Fprintln(w, "      --lang <s>            Page language (default: en)")
	fmt.Fprintln(w, "      --theme <name>        Page theme: default, minimal, none")
	fmt.Fprintln(w, "      --assets-dir <dir>    Custom themes in <dir>/themes/<name>.css")
	fmt.Fprintln(w, "      --date-format <s>     publishedAt format: iso, european, us, long, or tokens")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Table of Contents:")
	fmt.Fprintln(w, "      --toc                 Add a numbered TOC (implies --page)")
	fmt.Fprintln(w, "      --toc-title <s>       TOC heading text")
	fmt.Fprintln(w, "      --toc-min-depth <n>   Min heading depth (1-6, default: 2)")
	fmt.Fprintln(w, "      --toc-max-depth <n>   Max heading depth (1-6, default: 3)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show sizes and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDX_CONFIG, MDX_STYLE, MDX_TIMEOUT, MDX_INPUT_DIR, MDX_OUTPUT_DIR,")
	fmt.Fprintln(w, "  MDX_BASE_PATH, MDX_WORKERS")
}

// printCSSUsage prints usage for the css command.
func printCSSUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdx css [style] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the CSS for a chroma highlight style (default: github).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -l, --list                List available styles")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "css":
		printCSSUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdx version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdx help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
