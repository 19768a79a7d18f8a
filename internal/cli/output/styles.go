package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette colors.
var (
	colorAccent  = lipgloss.AdaptiveColor{Light: "#3B5B92", Dark: "#8BC34A"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	colorSuccess = lipgloss.Color("#43A047")
	colorWarning = lipgloss.Color("#FFB300")
	colorError   = lipgloss.Color("#E53935")
)

// Styles holds the lipgloss styles used for text output.
type Styles struct {
	Header   lipgloss.Style
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Prompt   lipgloss.Style
	Verb     lipgloss.Style
	Response lipgloss.Style
}

// NewStyles builds styles bound to w. When color is false every style
// renders plain text.
func NewStyles(w io.Writer, color bool) *Styles {
	var lr *lipgloss.Renderer
	if color {
		lr = lipgloss.NewRenderer(w)
	} else {
		lr = lipgloss.NewRenderer(w, termenv.WithProfile(termenv.Ascii))
	}

	return &Styles{
		Header:   lr.NewStyle().Bold(true).Foreground(colorAccent),
		Bold:     lr.NewStyle().Bold(true),
		Muted:    lr.NewStyle().Foreground(colorMuted),
		Success:  lr.NewStyle().Foreground(colorSuccess),
		Warning:  lr.NewStyle().Foreground(colorWarning),
		Error:    lr.NewStyle().Foreground(colorError).Bold(true),
		Prompt:   lr.NewStyle().Foreground(colorAccent).Bold(true),
		Verb:     lr.NewStyle().Foreground(colorAccent),
		Response: lr.NewStyle().PaddingLeft(2),
	}
}
