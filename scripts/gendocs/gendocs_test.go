package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMarkdownWriter(t *testing.T) {
	w := NewMarkdownWriter()
	w.Header(2, "Options")
	w.Table([]string{"Option", "Description"}, [][]string{{InlineCode("--output"), "a | b"}})
	w.BulletList([]string{Bold("one")})

	got := string(w.Bytes())
	for _, want := range []string{
		"## Options\n",
		"| Option | Description |\n| --- | --- |\n",
		"| `--output` | a \\| b |",
		"- **one**",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in:\n%s", want, got)
		}
	}
}

func TestGenerateLintDocs(t *testing.T) {
	dir := t.TempDir()
	if err := generateLintDocs(dir); err != nil {
		t.Fatalf("generateLintDocs: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "index.md"))
	if err != nil {
		t.Fatal(err)
	}
	page := string(b)
	for _, want := range []string{"## Grammar {#grammar}", "### GR02 - grammar.duplicate-rule", "## World {#world}", "### WD04"} {
		if !strings.Contains(page, want) {
			t.Errorf("lint page missing %q", want)
		}
	}
}

func TestGenerateCLIDocs(t *testing.T) {
	dir := t.TempDir()
	if err := generateCLIDocs(dir); err != nil {
		t.Fatalf("generateCLIDocs: %v", err)
	}
	for _, name := range []string{"index.md", "play.md", "parse.md", "check.md", "world.md", "serve.md"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
	b, err := os.ReadFile(filepath.Join(dir, "parse.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "leapverb parse") {
		t.Errorf("parse page should show the usage line:\n%s", b)
	}
}

func TestCleanExample(t *testing.T) {
	got := cleanExample("  leapverb check\n    leapverb check -o json\n")
	want := "leapverb check\n  leapverb check -o json"
	if got != want {
		t.Errorf("cleanExample = %q, want %q", got, want)
	}
}
