package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/leapverb/internal/cli/output"
	"github.com/leapstack-labs/leapverb/internal/engine"
	"github.com/spf13/cobra"
)

const prompt = "> "

// dotCommands are handled by the REPL itself.
var dotCommands = []string{".help", ".verbs", ".look", ".reload", ".transcript", ".clear", ".quit", ".exit"}

// NewPlayCommand creates the play command.
func NewPlayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play interactively",
		Long: `Start an interactive session. Each line is parsed against the grammar and
its action runs on the world store, so progress persists between sessions
when the world is a file.

Lines starting with a dot are session commands; type .help to list them.`,
		Example: `  # Play the game in the current project
  leapverb play

  # Reload grammar and scripts whenever they change on disk
  leapverb play --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd)
		},
	}
	cmd.Flags().Bool("watch", false, "Reload the grammar and scripts when they change")
	return cmd
}

func runPlay(cmd *cobra.Command) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg := &readline.Config{
		Prompt:          cc.Renderer.Styles().Prompt.Render(prompt),
		AutoComplete:    &verbCompleter{eng: cc.Engine},
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	}
	if cc.Cfg.History != "" {
		if err := os.MkdirAll(filepath.Dir(cc.Cfg.History), 0750); err == nil {
			cfg.HistoryFile = cc.Cfg.History
		}
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		go func() {
			err := cc.Engine.Watch(ctx, func(err error) {
				if err != nil {
					cc.Renderer.Warning(fmt.Sprintf("reload failed, keeping previous grammar: %v", err))
					return
				}
				cc.Renderer.Muted("grammar reloaded")
				rl.Refresh()
			})
			if err != nil {
				cc.Renderer.Warning(fmt.Sprintf("file watching disabled: %v", err))
			}
		}()
	}

	return NewSession(cc.Engine, cc.Renderer).Run(ctx, rl)
}

// LineReader is the part of readline the session loop needs.
type LineReader interface {
	Readline() (string, error)
}

// Session runs the interactive loop over an engine.
type Session struct {
	eng *engine.Engine
	r   *output.Renderer
}

// NewSession creates a session writing to r.
func NewSession(eng *engine.Engine, r *output.Renderer) *Session {
	return &Session{eng: eng, r: r}
}

// Run reads lines until EOF or .quit. Interrupts discard the current line.
func (s *Session) Run(ctx context.Context, in LineReader) error {
	styles := s.r.Styles()
	s.r.Println(styles.Header.Render("leapverb"))
	s.r.Println(styles.Muted.Render("Type .help for commands, .quit to exit"))
	s.r.Println()
	s.look(ctx)

	for {
		line, err := in.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ".") {
			if quit := s.dotCommand(ctx, line); quit {
				return nil
			}
			continue
		}

		s.exec(ctx, line)
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (s *Session) exec(ctx context.Context, line string) {
	res := s.eng.Exec(ctx, line)
	styles := s.r.Styles()
	switch {
	case !res.Understood:
		s.r.Println(styles.Muted.Render(res.Output))
	case res.Err != nil:
		s.r.Error(res.Err.Error())
	default:
		s.r.Println(styles.Response.Render(res.Output))
	}
	s.r.Println()
}

func (s *Session) look(ctx context.Context) {
	a, ok := s.eng.Catalog().Lookup("look")
	if !ok {
		return
	}
	out, err := a.Invoke(ctx, nil)
	if err != nil {
		s.r.Error(err.Error())
		return
	}
	s.r.Println(s.r.Styles().Response.Render(out))
	s.r.Println()
}

// dotCommand handles a session command and reports whether to quit.
func (s *Session) dotCommand(ctx context.Context, line string) bool {
	command := strings.ToLower(strings.Fields(line)[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printPlayHelp(s.r.Out())

	case ".verbs":
		words := s.eng.Grammar().VerbWords()
		s.r.Println(s.r.Styles().Verb.Render(strings.Join(words, " ")))

	case ".look":
		s.look(ctx)

	case ".reload":
		if err := s.eng.Reload(); err != nil {
			s.r.Warning(fmt.Sprintf("reload failed, keeping previous grammar: %v", err))
		} else {
			s.r.Success("grammar reloaded")
		}

	case ".transcript":
		turns, err := s.eng.Store().Transcript(ctx, s.eng.SessionID())
		if err != nil {
			s.r.Error(err.Error())
			break
		}
		for _, t := range turns {
			s.r.Printf("%3d  %s\n", t.Seq, t.Command)
		}

	case ".clear":
		s.r.Printf("\033[H\033[2J")

	default:
		s.r.Error(fmt.Sprintf("unknown command: %s (type .help for commands)", command))
	}
	return false
}

func printPlayHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .verbs          List the verbs the grammar understands
  .look           Describe the current room
  .reload         Reload the grammar and scripts
  .transcript     Show the commands entered this session
  .clear          Clear the screen
  .quit / .exit   Leave the game

Tips:
  - Articles such as "the" are ignored
  - Tab completes verbs
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

// verbCompleter completes the first word against the current grammar's
// verbs, so completion follows reloads.
type verbCompleter struct {
	eng *engine.Engine
}

func (c *verbCompleter) Do(line []rune, pos int) ([][]rune, int) {
	words := slices.Clone(c.eng.Grammar().VerbWords())
	slices.Sort(words)

	items := make([]readline.PrefixCompleterInterface, 0, len(words)+len(dotCommands))
	for _, w := range slices.Compact(words) {
		items = append(items, readline.PcItem(w))
	}
	for _, d := range dotCommands {
		items = append(items, readline.PcItem(d))
	}
	return readline.NewPrefixCompleter(items...).Do(line, pos)
}
