package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leapverb/pkg/lint"
	_ "github.com/leapstack-labs/leapverb/pkg/lint/rules"
)

// groupDescriptions provides human-readable descriptions for rule groups.
var groupDescriptions = map[string]string{
	"grammar": "Rules about verbs, synonyms and rule patterns that can never match as written.",
	"world":   "Rules about room maps and objects the player can never reach or name.",
}

var groupOrder = []string{"grammar", "world"}

// generateLintDocs generates the lint rules page.
func generateLintDocs(outDir string) error {
	log.Printf("Generating lint docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "index.md"), lintPage(lint.GetAll()), 0600); err != nil {
		return err
	}
	log.Printf("  Generated index.md")
	return nil
}

func lintPage(rules []lint.Rule) []byte {
	w := NewMarkdownWriter()

	w.Frontmatter("Linting", "Grammar and world lint rules run by leapverb check")
	w.GeneratedMarker()

	w.Header(1, "Linting")
	w.Paragraph(fmt.Sprintf("%s lints every grammar and world that loads without errors. There are **%d rules**.",
		InlineCode("leapverb check"), len(rules)))

	w.Header(2, "Severity Levels")
	w.Table(
		[]string{"Severity", "Effect"},
		[][]string{
			{InlineCode("error"), "Fails the check"},
			{InlineCode("warning"), "Reported; the check still passes"},
			{InlineCode("info"), "Reported"},
			{InlineCode("hint"), "Reported"},
		},
	)

	w.Header(2, "Configuration")
	w.Paragraph("Rules can be disabled or regraded in `leapverb.yaml`:")
	w.CodeBlock("yaml", `lint:
  disabled: [GR01]
  severity:
    WD01: error`)

	grouped := make(map[string][]lint.Rule)
	for _, r := range rules {
		grouped[r.Group()] = append(grouped[r.Group()], r)
	}

	for _, group := range groupOrder {
		groupRules := grouped[group]
		if len(groupRules) == 0 {
			continue
		}
		w.Line(fmt.Sprintf("## %s {#%s}", capitalizeFirst(group), group))
		w.Newline()
		if desc, ok := groupDescriptions[group]; ok {
			w.Paragraph(desc)
		}
		for _, rule := range groupRules {
			writeRuleDoc(w, rule)
		}
	}
	return w.Bytes()
}

// capitalizeFirst capitalizes the first letter of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// writeRuleDoc writes the documentation for a single rule.
func writeRuleDoc(w *MarkdownWriter, rule lint.Rule) {
	w.Line(fmt.Sprintf("### %s - %s {#%s}", rule.ID(), rule.Name(), rule.ID()))
	w.Newline()
	w.Line(fmt.Sprintf("**Severity:** %s", InlineCode(rule.DefaultSeverity().String())))
	w.Newline()
	w.Paragraph(cleanDescription(rule.Description()))
	w.Line("---")
	w.Newline()
}
