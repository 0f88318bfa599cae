package model

import "strings"

// ProcessRule controls how the window titles of one process are turned into ledger keys.
type ProcessRule struct {
	Separator            string
	KeepParts            []int
	RemoveParts          []int
	TrimCharacters       []string
	GroupBySeparators    []string
	DoSeparations        bool
	EntriesByWindowTitle bool
}

// DefaultProcessRule returns the rule applied to fields a configuration leaves unset.
func DefaultProcessRule() ProcessRule {
	return ProcessRule{
		DoSeparations:        true,
		Separator:            " - ",
		EntriesByWindowTitle: true,
	}
}

// RuleSet maps process names to their rules.
type RuleSet map[string]ProcessRule

// Lookup finds the rule for a process. Exact matches win over case-insensitive ones.
func (r RuleSet) Lookup(processName string) (ProcessRule, bool) {
	if rule, ok := r[processName]; ok {
		return rule, true
	}
	for name, rule := range r {
		if strings.EqualFold(name, processName) {
			return rule, true
		}
	}
	return ProcessRule{}, false
}
