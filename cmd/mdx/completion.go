package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdx"
	"github.com/alnah/go-mdx/internal/assets"
	"github.com/alnah/go-mdx/internal/config"
	"github.com/alnah/go-mdx/internal/dateutil"
	"github.com/alnah/go-mdx/internal/fileutil"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagKind represents the completion type for a flag.
type flagKind int

const (
	flagValue flagKind = iota // free-form value
	flagBool
	flagEnum // has predefined values
	flagFile // file filtered by extension
	flagDir
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long   string   // output
	Short  string   // o (empty if none)
	Kind   flagKind // completion type
	Desc   string   // help text
	Values []string // for enum flags
	Exts   []string // for file flags, without dots
}

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
	Args  []string // fixed positional values
	Exts  []string // positional files, without dots; directories allowed too
}

// completionMeta holds completion hints that a FlagSet cannot express.
// Flag names, types and descriptions come from the FlagSet itself.
type completionMeta struct {
	Values []string
	Exts   []string
	IsDir  bool
}

func flagCompletionMeta() map[string]completionMeta {
	return map[string]completionMeta{
		"style":       {Values: mdx.HighlightStyles()},
		"fenced":      {Values: []string{config.FencedInline, config.FencedBlock}},
		"theme":       {Values: append(assets.Themes(), assets.NoTheme)},
		"date-format": {Values: datePresetNames()},
		"config":      {Exts: []string{"yaml", "yml"}},
		"output":      {IsDir: true},
		"assets-dir":  {IsDir: true},
	}
}

func datePresetNames() []string {
	names := make([]string, 0, len(dateutil.DatePresets))
	for name := range dateutil.DatePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// extractFlags reads flag definitions from fs and enriches them with
// completion metadata.
func extractFlags(fs *flag.FlagSet) []flagDef {
	meta := flagCompletionMeta()
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}
		if f.Value.Type() == "bool" {
			fd.Kind = flagBool
		}

		if m, ok := meta[f.Name]; ok {
			switch {
			case len(m.Values) > 0:
				fd.Kind = flagEnum
				fd.Values = m.Values
			case len(m.Exts) > 0:
				fd.Kind = flagFile
				fd.Exts = m.Exts
			case m.IsDir:
				fd.Kind = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

func markdownExts() []string {
	exts := make([]string, len(fileutil.MarkdownExtensions))
	for i, ext := range fileutil.MarkdownExtensions {
		exts[i] = strings.TrimPrefix(ext, ".")
	}
	return exts
}

// getCommands returns the command registry for completion.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:  "render",
			Desc:  "Render MDX/markdown files to HTML",
			Flags: extractFlags(newRenderFlagSet(&renderFlags{})),
			Exts:  markdownExts(),
		},
		{
			Name:  "css",
			Desc:  "Print the stylesheet of a highlight style",
			Flags: extractFlags(newCSSFlagSet(&cssFlags{})),
			Args:  mdx.HighlightStyles(),
		},
		{Name: "version", Desc: "Show version information"},
		{
			Name: "help",
			Desc: "Show help for a command",
			Args: []string{"render", "css", "version", "completion"},
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish)},
		},
	}
}

// GenerateCompletion writes the completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	cmds := getCommands()

	var script string
	switch shell {
	case ShellBash:
		script = generateBash(cmds)
	case ShellZsh:
		script = generateZsh(cmds)
	case ShellFish:
		script = generateFish(cmds)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}

	_, err := io.WriteString(w, script)
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: completion takes one shell name", ErrUsage)
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdx completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a shell completion script.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w, "  Bash:  eval \"$(mdx completion bash)\"   # in ~/.bashrc")
	fmt.Fprintln(w, "  Zsh:   eval \"$(mdx completion zsh)\"    # in ~/.zshrc, after compinit")
	fmt.Fprintln(w, "  Fish:  mdx completion fish > ~/.config/fish/completions/mdx.fish")
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# bash completion for mdx\n")
	b.WriteString("_mdx_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${cmd}\" in\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)

		var valued []flagDef
		for _, f := range c.Flags {
			if f.Kind != flagBool {
				valued = append(valued, f)
			}
		}
		if len(valued) > 0 {
			b.WriteString("        case \"${prev}\" in\n")
			for _, f := range valued {
				fmt.Fprintf(&b, "        %s)\n", strings.Join(flagNames(f), "|"))
				fmt.Fprintf(&b, "            COMPREPLY=(%s)\n", bashFlagValues(f))
				b.WriteString("            return\n")
				b.WriteString("            ;;\n")
			}
			b.WriteString("        esac\n")
		}

		if len(c.Flags) > 0 {
			var all []string
			for _, f := range c.Flags {
				all = append(all, flagNames(f)...)
			}
			b.WriteString("        if [[ ${cur} == -* ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", strings.Join(all, " "))
			b.WriteString("            return\n")
			b.WriteString("        fi\n")
		}

		switch {
		case len(c.Exts) > 0:
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -d -- \"${cur}\") $(compgen -f -X '!*.@(%s)' -- \"${cur}\"))\n",
				strings.Join(c.Exts, "|"))
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", strings.Join(c.Args, " "))
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("shopt -s extglob\n")
	b.WriteString("complete -F _mdx_completions mdx\n")
	return b.String()
}

func bashFlagValues(f flagDef) string {
	switch f.Kind {
	case flagEnum:
		return fmt.Sprintf("$(compgen -W \"%s\" -- \"${cur}\")", strings.Join(f.Values, " "))
	case flagFile:
		return fmt.Sprintf("$(compgen -d -- \"${cur}\") $(compgen -f -X '!*.@(%s)' -- \"${cur}\")", strings.Join(f.Exts, "|"))
	case flagDir:
		return "$(compgen -d -- \"${cur}\")"
	default:
		return ""
	}
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func generateZsh(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("#compdef mdx\n\n")
	b.WriteString("_mdx() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshQuote(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    local cmd=\"${words[2]}\"\n")
	b.WriteString("    shift words\n")
	b.WriteString("    (( CURRENT-- ))\n\n")
	b.WriteString("    case \"${cmd}\" in\n")

	for _, c := range cmds {
		specs := make([]string, 0, len(c.Flags)+1)
		for _, f := range c.Flags {
			specs = append(specs, zshFlagSpec(f))
		}
		switch {
		case len(c.Exts) > 0:
			specs = append(specs, fmt.Sprintf(`'*:file:_files -g "*.(%s)"'`, strings.Join(c.Exts, "|")))
		case len(c.Args) > 0:
			specs = append(specs, fmt.Sprintf("'1:value:(%s)'", strings.Join(c.Args, " ")))
		}
		if len(specs) == 0 {
			continue
		}

		fmt.Fprintf(&b, "    %s)\n", c.Name)
		b.WriteString("        _arguments \\\n")
		for i, spec := range specs {
			b.WriteString("            " + spec)
			if i < len(specs)-1 {
				b.WriteString(" \\")
			}
			b.WriteString("\n")
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _mdx mdx\n")
	return b.String()
}

func zshFlagSpec(f flagDef) string {
	desc := "[" + zshQuote(f.Desc) + "]"

	var action string
	switch f.Kind {
	case flagBool:
	case flagEnum:
		action = ":value:(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		action = `:file:_files -g "*.(` + strings.Join(f.Exts, "|") + `)"`
	case flagDir:
		action = ":directory:_files -/"
	default:
		action = ":value: "
	}

	if f.Short == "" {
		return "'--" + f.Long + desc + action + "'"
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
}

// zshQuote escapes text for a single-quoted _arguments description.
func zshQuote(s string) string {
	r := strings.NewReplacer(`'`, `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)
	return r.Replace(s)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func generateFish(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# fish completion for mdx\n")
	b.WriteString("function __fish_mdx_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_mdx_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c mdx -f\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c mdx -n __fish_mdx_needs_command -a %s -d '%s'\n", c.Name, fishQuote(c.Desc))
	}

	for _, c := range cmds {
		cond := fmt.Sprintf("-n '__fish_mdx_using_command %s'", c.Name)
		b.WriteString("\n")
		for _, f := range c.Flags {
			line := "complete -c mdx " + cond
			if f.Short != "" {
				line += " -s " + f.Short
			}
			line += " -l " + f.Long + " -d '" + fishQuote(f.Desc) + "'"
			switch f.Kind {
			case flagBool:
			case flagEnum:
				line += " -r -a '" + strings.Join(f.Values, " ") + "'"
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -r -a '(__fish_complete_directories)'"
			default:
				line += " -r"
			}
			b.WriteString(line + "\n")
		}
		switch {
		case len(c.Exts) > 0:
			fmt.Fprintf(&b, "complete -c mdx %s -F\n", cond)
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "complete -c mdx %s -a '%s'\n", cond, strings.Join(c.Args, " "))
		}
	}

	return b.String()
}

func fishQuote(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// flagNames returns the dashed spellings of a flag, short first.
func flagNames(f flagDef) []string {
	if f.Short == "" {
		return []string{"--" + f.Long}
	}
	return []string{"-" + f.Short, "--" + f.Long}
}
