package normalize

import (
	"testing"

	"github.com/Veraticus/what-have-i-done/internal/model"
	"github.com/stretchr/testify/assert"
)

func rule(mutate func(*model.ProcessRule)) model.ProcessRule {
	r := model.DefaultProcessRule()
	mutate(&r)
	return r
}

func TestTitle(t *testing.T) {
	tests := []struct {
		rules    model.RuleSet
		name     string
		raw      string
		process  string
		expected string
	}{
		{
			name:     "no rule keeps raw title",
			rules:    model.RuleSet{},
			raw:      "  main.go - project - Visual Studio Code ",
			process:  "Code",
			expected: "  main.go - project - Visual Studio Code ",
		},
		{
			name: "entries by window title disabled collapses to process",
			rules: model.RuleSet{"slack": rule(func(r *model.ProcessRule) {
				r.EntriesByWindowTitle = false
			})},
			raw:      "general | Acme - Slack",
			process:  "slack",
			expected: "slack",
		},
		{
			name: "keep parts wins over remove parts",
			rules: model.RuleSet{"editor": rule(func(r *model.ProcessRule) {
				r.KeepParts = []int{0, 2}
				r.RemoveParts = []int{1}
			})},
			raw:      "A - B - C",
			process:  "editor",
			expected: "A - C",
		},
		{
			name: "remove parts",
			rules: model.RuleSet{"Code": rule(func(r *model.ProcessRule) {
				r.RemoveParts = []int{2}
			})},
			raw:      "main.go - whad - Visual Studio Code",
			process:  "Code",
			expected: "main.go - whad",
		},
		{
			name: "keep parts out of range is ignored",
			rules: model.RuleSet{"Code": rule(func(r *model.ProcessRule) {
				r.KeepParts = []int{1, 7}
			})},
			raw:      "main.go - whad - Visual Studio Code",
			process:  "Code",
			expected: "whad",
		},
		{
			name: "trim repeats until stable",
			rules: model.RuleSet{"term": rule(func(r *model.ProcessRule) {
				r.DoSeparations = false
				r.TrimCharacters = []string{"*", "●"}
			})},
			raw:      "●* notes.txt *● ",
			process:  "term",
			expected: "notes.txt",
		},
		{
			name: "trim characters strip surrounding markers",
			rules: model.RuleSet{"term": rule(func(r *model.ProcessRule) {
				r.DoSeparations = false
				r.TrimCharacters = []string{"●", "*"}
			})},
			raw:      "●*notes.txt*●",
			process:  "term",
			expected: "notes.txt",
		},
		{
			name: "group by separators in configuration order",
			rules: model.RuleSet{"chrome": rule(func(r *model.ProcessRule) {
				r.GroupBySeparators = []string{"Jira", "Acme"}
			})},
			raw:      "Acme - Ticket 12 - Jira - Google Chrome",
			process:  "chrome",
			expected: "Jira - Acme",
		},
		{
			name: "group by separators without match keeps trimmed title",
			rules: model.RuleSet{"chrome": rule(func(r *model.ProcessRule) {
				r.GroupBySeparators = []string{"Jira"}
			})},
			raw:      "  News - Google Chrome  ",
			process:  "chrome",
			expected: "News - Google Chrome",
		},
		{
			name: "group ignored when remove parts configured",
			rules: model.RuleSet{"chrome": rule(func(r *model.ProcessRule) {
				r.RemoveParts = []int{1}
				r.GroupBySeparators = []string{"Jira"}
			})},
			raw:      "Jira - Google Chrome",
			process:  "chrome",
			expected: "Jira",
		},
		{
			name: "case-insensitive rule lookup",
			rules: model.RuleSet{"code": rule(func(r *model.ProcessRule) {
				r.KeepParts = []int{1}
			})},
			raw:      "main.go - whad - Visual Studio Code",
			process:  "Code",
			expected: "whad",
		},
		{
			name: "empty title stays empty",
			rules: model.RuleSet{"Code": rule(func(r *model.ProcessRule) {
				r.KeepParts = []int{1}
			})},
			raw:      "",
			process:  "Code",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Title(tt.raw, tt.process, tt.rules))
		})
	}
}

func TestTitle_Deterministic(t *testing.T) {
	rules := model.RuleSet{"Code": rule(func(r *model.ProcessRule) {
		r.RemoveParts = []int{0}
		r.TrimCharacters = []string{"●"}
	})}
	raw := "● main.go - whad - Visual Studio Code"

	first := Title(raw, "Code", rules)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Title(raw, "Code", rules))
	}
}

func TestTitle_IdempotentWithoutSeparations(t *testing.T) {
	rules := model.RuleSet{
		"term": rule(func(r *model.ProcessRule) {
			r.DoSeparations = false
			r.TrimCharacters = []string{"*", "-"}
		}),
		"slack": rule(func(r *model.ProcessRule) {
			r.DoSeparations = false
			r.EntriesByWindowTitle = false
		}),
	}

	inputs := []struct{ raw, process string }{
		{"-* build *- ", "term"},
		{"  plain  ", "term"},
		{"general", "slack"},
	}

	for _, in := range inputs {
		once := Title(in.raw, in.process, rules)
		assert.Equal(t, once, Title(once, in.process, rules), in.raw)
	}
}
