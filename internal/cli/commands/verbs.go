package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapverb/internal/api"
	"github.com/leapstack-labs/leapverb/internal/cli/output"
	"github.com/leapstack-labs/leapverb/internal/engine"
	"github.com/spf13/cobra"
)

// NewVerbsCommand creates the verbs command.
func NewVerbsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verbs",
		Short: "List verbs, synonyms and rules",
		Long: `List every verb in the grammar with its synonyms, rule patterns and the
action each rule runs, in the order they are tried.`,
		Example: `  leapverb verbs
  leapverb verbs -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerbs(cmd)
		},
	}
}

func runVerbs(cmd *cobra.Command) error {
	cc := NewCommandContextWithoutEngine(cmd)
	r := cc.Renderer

	// Building the grammar needs no world, so check is enough.
	report, err := engine.Check(cmd.Context(), engineConfig(cc.Cfg, cc.Logger))
	if err != nil {
		return err
	}
	if report.Grammar == nil {
		return fmt.Errorf("grammar failed to load: %w", report.Problems[0])
	}

	infos := api.NewVerbInfos(report.Grammar)
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(infos)
	}

	var rows [][]string
	for _, v := range infos {
		for i, rule := range v.Rules {
			words := ""
			if i == 0 {
				words = strings.Join(v.Words, ", ")
			}
			pattern := rule.Pattern
			if pattern == "" {
				pattern = "(no arguments)"
			}
			rows = append(rows, []string{words, pattern, rule.Action})
		}
	}
	r.Header(1, fmt.Sprintf("Verbs (%d)", len(infos)))
	r.Table([]string{"Verb", "Pattern", "Action"}, rows)
	return nil
}
