package commands

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapverb/internal/api"
	"github.com/leapstack-labs/leapverb/internal/cli/output"
	"github.com/leapstack-labs/leapverb/pkg/parser"
	"github.com/spf13/cobra"
)

// ErrNotUnderstood is returned by parse when a command matched no rule.
var ErrNotUnderstood = errors.New("command not understood")

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <command...>",
		Short: "Parse and run one command",
		Long: `Parse a single command against the grammar and run its action on the
world store. The command exits with status 1 when nothing matched.

Pass "-" to read commands from standard input, one per line.`,
		Example: `  # Run one command
  leapverb parse take the lamp

  # Show the match as JSON
  leapverb parse -o json put small crate on big crate

  # Replay a walkthrough
  leapverb parse - < walkthrough.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args)
		},
	}
	cmd.Flags().Bool("attempts", false, "Show rejected rules")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	showAttempts, _ := cmd.Flags().GetBool("attempts")
	ctx := cmd.Context()

	if len(args) == 1 && args[0] == "-" {
		var failed, total int
		sc := bufio.NewScanner(cmd.InOrStdin())
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			total++
			res := cc.Engine.Exec(ctx, line)
			if err := renderResult(cc.Renderer, line, res, showAttempts); err != nil {
				return err
			}
			if !res.Understood {
				failed++
			}
		}
		if err := sc.Err(); err != nil {
			return fmt.Errorf("failed to read commands: %w", err)
		}
		if failed > 0 {
			return fmt.Errorf("%w: %d of %d", ErrNotUnderstood, failed, total)
		}
		return nil
	}

	command := strings.Join(args, " ")
	res := cc.Engine.Exec(ctx, command)
	if err := renderResult(cc.Renderer, command, res, showAttempts); err != nil {
		return err
	}
	if !res.Understood {
		return ErrNotUnderstood
	}
	if res.Err != nil {
		return fmt.Errorf("action failed: %w", res.Err)
	}
	return nil
}

func renderResult(r *output.Renderer, command string, res parser.Result, showAttempts bool) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(api.NewParseResponse(res))

	case output.ModeMarkdown:
		r.Println(output.FormatHeader(2, "> "+command))
		r.Println(output.FormatKeyValue("Understood", fmt.Sprintf("%t", res.Understood)))
		if res.Understood {
			r.Println(output.FormatKeyValue("Verb", res.Verb))
			r.Println(output.FormatKeyValue("Pattern", "`"+res.Pattern+"`"))
		}
		if res.Err != nil {
			r.Println(output.FormatKeyValue("Error", res.Err.Error()))
		}
		r.Println()
		r.Println(res.Output)
		if showAttempts && len(res.Attempts) > 0 {
			r.Println()
			r.Println(output.FormatHeader(3, "Rejected rules"))
			for _, a := range res.Attempts {
				r.Printf("- %s `%s`: %v\n", a.Verb, a.Pattern, a.Err)
			}
		}
		r.Println()

	default:
		styles := r.Styles()
		if res.Understood {
			r.Println(res.Output)
		} else {
			r.Println(styles.Muted.Render(res.Output))
		}
		if res.Err != nil {
			r.Error(res.Err.Error())
		}
		if showAttempts {
			for _, a := range res.Attempts {
				r.Println(styles.Muted.Render(fmt.Sprintf("  %s %q: %v", a.Verb, a.Pattern, a.Err)))
			}
		}
	}
	return nil
}
