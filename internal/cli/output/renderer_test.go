package output

import (
	"bytes"
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func newTest(mode Mode, tty bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, tty, mode), out, errOut
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		mode Mode
		tty  bool
		want Mode
	}{
		{ModeAuto, true, ModeText},
		{ModeAuto, false, ModeMarkdown},
		{"", false, ModeMarkdown},
		{ModeJSON, true, ModeJSON},
		{ModeText, false, ModeText},
		{ModeMarkdown, true, ModeMarkdown},
	}
	for _, tt := range tests {
		r, _, _ := newTest(tt.mode, tt.tty)
		assert.Equal(t, tt.want, r.EffectiveMode(), "mode %q tty %v", tt.mode, tt.tty)
	}
}

func TestMarkdownOutput(t *testing.T) {
	r, out, errOut := newTest(ModeMarkdown, false)

	r.Header(2, "Verbs")
	r.Success("loaded")
	r.Muted("3 rules")
	r.Warning("no scripts")
	r.StatusLine("grammar.yaml", "success", "4 verbs")

	assert.Contains(t, out.String(), "## Verbs")
	assert.Contains(t, out.String(), "**loaded**")
	assert.Contains(t, out.String(), "_3 rules_")
	assert.Contains(t, out.String(), "- grammar.yaml: success (4 verbs)")
	assert.Contains(t, errOut.String(), "> **Warning:** no scripts")
	assert.False(t, ansi.MatchString(out.String()+errOut.String()))
}

func TestTextOutputWithoutTTYHasNoANSI(t *testing.T) {
	r, out, errOut := newTest(ModeText, false)

	r.Header(1, "World")
	r.Error("broken")
	r.StatusLine("cellar", "error", "")

	assert.Contains(t, out.String(), "World")
	assert.Contains(t, errOut.String(), "✗ broken")
	assert.False(t, ansi.MatchString(out.String()+errOut.String()))
}

func TestTable(t *testing.T) {
	r, out, _ := newTest(ModeMarkdown, false)
	r.Table([]string{"Verb", "Pattern"}, [][]string{{"take", "single"}})

	assert.Contains(t, out.String(), "| Verb | Pattern |")
	assert.Contains(t, out.String(), "| take | single |")

	r, out, _ = newTest(ModeText, false)
	r.Table([]string{"Verb"}, [][]string{{"look"}})
	assert.Contains(t, out.String(), "look")
	assert.Contains(t, out.String(), "┌")
}

func TestJSON(t *testing.T) {
	r, out, _ := newTest(ModeJSON, false)
	require.NoError(t, r.JSON(map[string]int{"verbs": 3}))

	var got map[string]int
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 3, got["verbs"])
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "# Title", FormatHeader(0, "Title"))
	assert.Equal(t, "### Title", FormatHeader(3, "Title"))
	assert.Equal(t, "- **Room:** cellar", FormatKeyValue("Room", "cellar"))
	assert.Equal(t, "```yaml\na: 1\n```", FormatCodeBlock("yaml", "a: 1\n"))
}
