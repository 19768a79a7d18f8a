package commands

import (
	"fmt"

	"github.com/leapstack-labs/leapverb/internal/cli/output"
	"github.com/leapstack-labs/leapverb/internal/engine"
	"github.com/leapstack-labs/leapverb/pkg/lint"
	"github.com/spf13/cobra"
)

// CheckOutput is the JSON form of a check report.
type CheckOutput struct {
	OK          bool              `json:"ok"`
	Verbs       int               `json:"verbs"`
	Rules       int               `json:"rules"`
	Actions     []string          `json:"actions"`
	Scripts     int               `json:"scripts"`
	Rooms       int               `json:"rooms"`
	Objects     int               `json:"objects"`
	Problems    []string          `json:"problems"`
	Diagnostics []lint.Diagnostic `json:"diagnostics"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the grammar, scripts and world seed",
		Long: `Load the grammar, the action scripts and the world seed without opening
the world store, and report every problem found: malformed patterns,
unregistered symbols, arity mismatches, unknown actions, script errors
and inconsistent world definitions.

Definitions that load are then linted for things that cannot work as
written, such as duplicate rules or rooms no exit leads to. Rules can be
disabled or regraded under lint: in leapverb.yaml.

Exits with status 1 when any problem or error-level lint finding is found.`,
		Example: `  leapverb check
  leapverb check -o json
  leapverb check --rules`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if list, _ := cmd.Flags().GetBool("rules"); list {
				return runListRules(cmd)
			}
			return runCheck(cmd)
		},
	}
	cmd.Flags().Bool("rules", false, "List the lint rules instead of checking")
	return cmd
}

func runCheck(cmd *cobra.Command) error {
	cc := NewCommandContextWithoutEngine(cmd)
	r := cc.Renderer

	report, err := engine.Check(cmd.Context(), engineConfig(cc.Cfg, cc.Logger))
	if err != nil {
		return err
	}
	out := newCheckOutput(report)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if err := r.JSON(out); err != nil {
			return err
		}
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Check"))
		r.Println()
		r.Println(output.FormatKeyValue("Verbs", fmt.Sprint(out.Verbs)))
		r.Println(output.FormatKeyValue("Rules", fmt.Sprint(out.Rules)))
		r.Println(output.FormatKeyValue("Actions", fmt.Sprint(len(out.Actions))))
		r.Println(output.FormatKeyValue("Scripts", fmt.Sprint(out.Scripts)))
		if report.World != nil {
			r.Println(output.FormatKeyValue("World", fmt.Sprintf("%d rooms, %d objects", out.Rooms, out.Objects)))
		}
		if len(out.Problems) > 0 {
			r.Println()
			r.Println(output.FormatHeader(2, "Problems"))
			for _, p := range out.Problems {
				r.Println("- " + p)
			}
		}
		if len(out.Diagnostics) > 0 {
			r.Println()
			r.Println(output.FormatHeader(2, "Lint"))
			for _, d := range out.Diagnostics {
				r.Printf("- **%s** %s: %s\n", d.Severity, d.RuleID, d.Message)
			}
		}
	default:
		r.Header(1, "Check")
		if report.Grammar != nil {
			r.StatusLine("grammar", "success", fmt.Sprintf("%d verbs, %d rules", out.Verbs, out.Rules))
		} else {
			r.StatusLine("grammar", "error", "")
		}
		r.StatusLine("actions", "success", fmt.Sprintf("%d registered, %d from scripts", len(out.Actions), out.Scripts))
		if report.World != nil {
			r.StatusLine("world", "success", fmt.Sprintf("%d rooms, %d objects", out.Rooms, out.Objects))
		}
		for _, p := range out.Problems {
			r.Error(p)
		}
		for _, d := range out.Diagnostics {
			switch d.Severity {
			case lint.SeverityError:
				r.Error(d.String())
			case lint.SeverityWarning:
				r.Warning(d.String())
			default:
				r.Muted(d.String())
			}
		}
		if out.OK {
			r.Success("no problems found")
		}
	}

	if !out.OK {
		return fmt.Errorf("%d problem(s) found", failures(out))
	}
	return nil
}

// failures counts problems plus error-level lint findings.
func failures(out CheckOutput) int {
	n := len(out.Problems)
	for _, d := range out.Diagnostics {
		if d.Severity == lint.SeverityError {
			n++
		}
	}
	return n
}

func runListRules(cmd *cobra.Command) error {
	cc := NewCommandContextWithoutEngine(cmd)
	r := cc.Renderer
	lintCfg := cc.Cfg.Lint.Rules()

	rules := lint.GetAll()
	infos := make([]lint.RuleInfo, 0, len(rules))
	for _, rule := range rules {
		info := lint.GetRuleInfo(rule)
		info.DefaultSeverity = lintCfg.GetSeverity(info.ID, info.DefaultSeverity)
		infos = append(infos, info)
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(infos)
	}

	r.Header(1, fmt.Sprintf("Lint rules (%d)", len(infos)))
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		sev := info.DefaultSeverity.String()
		if lintCfg.IsDisabled(info.ID) {
			sev = "off"
		}
		rows = append(rows, []string{info.ID, info.Name, sev, info.Description})
	}
	r.Table([]string{"ID", "Name", "Severity", "Description"}, rows)
	return nil
}

func newCheckOutput(report *engine.Report) CheckOutput {
	out := CheckOutput{
		OK:          report.OK(),
		Actions:     report.Actions,
		Scripts:     report.Scripts,
		Problems:    make([]string, 0, len(report.Problems)),
		Diagnostics: report.Diagnostics,
	}
	if out.Diagnostics == nil {
		out.Diagnostics = []lint.Diagnostic{}
	}
	if report.Grammar != nil {
		for _, v := range report.Grammar.Verbs() {
			out.Verbs++
			out.Rules += len(v.Rules)
		}
	}
	if report.World != nil {
		out.Rooms = len(report.World.Rooms)
		out.Objects = len(report.World.Objects)
	}
	for _, p := range report.Problems {
		out.Problems = append(out.Problems, p.Error())
	}
	return out
}
