package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapverb/pkg/lint"
)

func fixedRule(id string, sev lint.Severity, subjects ...string) lint.Rule {
	return lint.Define(lint.RuleDef{
		ID:          id,
		Name:        "test." + id,
		Group:       "test",
		Description: "reports its subjects",
		Severity:    sev,
		Check: func(*lint.Project) []lint.Diagnostic {
			var out []lint.Diagnostic
			for _, s := range subjects {
				out = append(out, lint.Diagnostic{Subject: s, Message: s})
			}
			return out
		},
	})
}

func newRegistry() *lint.Registry {
	reg := lint.NewRegistry()
	reg.Register(fixedRule("TS02", lint.SeverityHint, "b", "a"))
	reg.Register(fixedRule("TS01", lint.SeverityWarning, "x"))
	reg.Register(fixedRule("TS03", lint.SeverityWarning, "y"))
	return reg
}

func TestAnalyzer_Analyze(t *testing.T) {
	tests := []struct {
		name   string
		config *lint.Config
		want   []string // "ID/subject/severity"
	}{
		{
			name: "defaults ordered by severity then id then subject",
			want: []string{"TS01/x/warning", "TS03/y/warning", "TS02/a/hint", "TS02/b/hint"},
		},
		{
			name:   "disabled rule is skipped",
			config: lint.NewConfig().Disable("ts01"),
			want:   []string{"TS03/y/warning", "TS02/a/hint", "TS02/b/hint"},
		},
		{
			name:   "severity override",
			config: lint.NewConfig().SetSeverity("TS02", lint.SeverityError),
			want:   []string{"TS02/a/error", "TS02/b/error", "TS01/x/warning", "TS03/y/warning"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := lint.NewAnalyzerWithRegistry(tt.config, newRegistry())
			var got []string
			for _, d := range a.Analyze(&lint.Project{}) {
				got = append(got, d.RuleID+"/"+d.Subject+"/"+d.Severity.String())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalyzer_NilProject(t *testing.T) {
	assert.Nil(t, lint.NewAnalyzerWithRegistry(nil, newRegistry()).Analyze(nil))
}

func TestRegistry(t *testing.T) {
	reg := newRegistry()
	assert.Equal(t, 3, reg.Count())

	ids := make([]string, 0)
	for _, r := range reg.GetAll() {
		ids = append(ids, r.ID())
	}
	assert.Equal(t, []string{"TS01", "TS02", "TS03"}, ids)

	r, ok := reg.GetByID("TS02")
	require.True(t, ok)
	info := lint.GetRuleInfo(r)
	assert.Equal(t, "test.TS02", info.Name)
	assert.Equal(t, lint.SeverityHint, info.DefaultSeverity)

	_, ok = reg.GetByID("nope")
	assert.False(t, ok)
	assert.Len(t, reg.GetByGroup("test"), 3)
	assert.Empty(t, reg.GetByGroup("world"))
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in      string
		want    lint.Severity
		wantErr bool
	}{
		{"error", lint.SeverityError, false},
		{"Warning", lint.SeverityWarning, false},
		{"warn", lint.SeverityWarning, false},
		{" info ", lint.SeverityInfo, false},
		{"hint", lint.SeverityHint, false},
		{"fatal", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := lint.ParseSeverity(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeverity_Text(t *testing.T) {
	b, err := lint.SeverityInfo.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "info", string(b))

	var s lint.Severity
	require.NoError(t, s.UnmarshalText([]byte("hint")))
	assert.Equal(t, lint.SeverityHint, s)
	assert.Error(t, s.UnmarshalText([]byte("loud")))
	assert.Equal(t, "unknown", lint.Severity(9).String())
}

func TestConfig(t *testing.T) {
	c := lint.NewConfig().Disable("gr01").SetSeverity("wd03", lint.SeverityWarning)
	assert.True(t, c.IsDisabled("GR01"), "ids are case-insensitive")
	assert.False(t, c.IsDisabled("GR02"))
	assert.Equal(t, lint.SeverityWarning, c.GetSeverity("WD03", lint.SeverityHint))
	assert.Equal(t, lint.SeverityInfo, c.GetSeverity("WD02", lint.SeverityInfo))

	var nilConfig *lint.Config
	assert.False(t, nilConfig.IsDisabled("GR01"))
	assert.Equal(t, lint.SeverityHint, nilConfig.GetSeverity("GR01", lint.SeverityHint))
}

func TestConfig_ZeroValue(t *testing.T) {
	var c lint.Config
	assert.False(t, c.IsDisabled("GR01"))

	c.Disable(" wd01 ").SetSeverity("WD01", lint.SeverityError)
	assert.True(t, c.IsDisabled("WD01"), "ids are trimmed")
	assert.Equal(t, lint.SeverityError, c.GetSeverity("wd01", lint.SeverityHint))

	c.SetSeverity("GR02", lint.SeverityHint)
	assert.False(t, c.IsDisabled("GR02"), "an override leaves the rule enabled")
	assert.Equal(t, lint.SeverityHint, c.GetSeverity("GR02", lint.SeverityError))
}

func TestHasErrors(t *testing.T) {
	assert.False(t, lint.HasErrors(nil))
	assert.False(t, lint.HasErrors([]lint.Diagnostic{{Severity: lint.SeverityWarning}}))
	assert.True(t, lint.HasErrors([]lint.Diagnostic{{Severity: lint.SeverityInfo}, {Severity: lint.SeverityError}}))
	assert.Equal(t, "warning GR02: dup", lint.Diagnostic{RuleID: "GR02", Severity: lint.SeverityWarning, Message: "dup"}.String())
}
