package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leapverb/internal/cli"
	"github.com/leapstack-labs/leapverb/internal/cli/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// locationFlags pick the config file rather than a setting inside it, so
// they have no environment variable.
var locationFlags = map[string]bool{"config": true, "project-dir": true}

// generateCLIDocs writes index.md plus one page per top-level command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	pages := map[string][]byte{"index.md": cliIndex(root)}
	for _, cmd := range visibleCommands(root) {
		w := NewMarkdownWriter()
		w.Frontmatter(cmd.Name(), cmd.Short)
		w.GeneratedMarker()
		writeCommand(w, cmd, 1)
		pages[cmd.Name()+".md"] = w.Bytes()
	}

	for name, content := range pages {
		if err := os.WriteFile(filepath.Join(outDir, name), content, 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		log.Printf("  Generated %s", name)
	}
	return nil
}

func visibleCommands(cmd *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, c := range cmd.Commands() {
		if c.Hidden || c.Name() == "help" || strings.HasPrefix(c.Name(), "__") {
			continue
		}
		out = append(out, c)
	}
	return out
}

func cliIndex(root *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for leapverb")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("leapverb plays, checks and serves text adventures defined by a grammar file, a world seed and optional Starlark action scripts.")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/leapverb/cmd/leapverb@latest\nleapverb <command> [options]")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range visibleCommands(root) {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name()),
			cleanDescription(cmd.Short),
		})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	writeFlagsTable(w, root.PersistentFlags())

	w.Header(2, "Environment Variables")
	w.Paragraph("Each global setting can also come from the environment. Flags win over the environment, which wins over leapverb.yaml.")
	var env [][]string
	root.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden || locationFlags[f.Name] {
			return
		}
		env = append(env, []string{InlineCode(envName(f.Name)), cleanDescription(f.Usage)})
	})
	w.Table([]string{"Variable", "Description"}, env)

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Success"},
		{InlineCode("1"), "Error, a command that was not understood, or a failed check"},
	})
	return w.Bytes()
}

// envName maps a flag to the variable the config loader reads for it.
func envName(flag string) string {
	return config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// writeCommand documents cmd and, one heading level down, its subcommands.
func writeCommand(w *MarkdownWriter, cmd *cobra.Command, level int) {
	w.Header(level, strings.TrimPrefix(cmd.CommandPath(), "leapverb "))
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	usage := cmd.UseLine()
	if cmd.HasAvailableSubCommands() {
		usage = cmd.CommandPath() + " <subcommand> [options]"
	}
	w.CodeBlock("bash", usage)

	if len(cmd.Aliases) > 0 {
		aliases := make([]string, len(cmd.Aliases))
		for i, a := range cmd.Aliases {
			aliases[i] = InlineCode(a)
		}
		w.Paragraph("Aliases: " + strings.Join(aliases, ", "))
	}
	if cmd.HasAvailableLocalFlags() {
		w.Header(level+1, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}
	if cmd.Example != "" {
		w.Header(level+1, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}
	for _, sub := range visibleCommands(cmd) {
		writeCommand(w, sub, level+1)
	}
}

func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden || f.Name == "help" {
			return
		}
		short := ""
		if f.Shorthand != "" {
			short = "-" + f.Shorthand
		}
		def := f.DefValue
		if def == "[]" {
			def = ""
		}
		if def != "" && f.Value.Type() != "bool" {
			def = InlineCode(def)
		}
		rows = append(rows, []string{InlineCode("--" + f.Name), short, def, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Option", "Short", "Default", "Description"}, rows)
}

// cleanExample strips the indentation shared by every non-blank line.
func cleanExample(example string) string {
	lines := strings.Split(strings.Trim(example, "\n"), "\n")
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[i] = line[indent:]
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
