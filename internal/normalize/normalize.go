// Package normalize turns raw window titles into the keys the ledger groups time under.
package normalize

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/Veraticus/what-have-i-done/internal/model"
)

// Title applies the rule configured for processName to rawTitle.
// Processes without a rule keep their raw title.
func Title(rawTitle, processName string, rules model.RuleSet) string {
	rule, ok := rules.Lookup(processName)
	if !ok {
		return rawTitle
	}
	return Apply(rawTitle, processName, rule)
}

// Apply runs a single rule against a title.
func Apply(rawTitle, processName string, rule model.ProcessRule) string {
	if !rule.EntriesByWindowTitle {
		return processName
	}

	title := trim(rawTitle, rule.TrimCharacters)

	if !rule.DoSeparations || rule.Separator == "" {
		return title
	}

	parts := strings.Split(title, rule.Separator)

	switch {
	case len(rule.KeepParts) > 0:
		return strings.Join(selectParts(parts, func(i int) bool {
			return slices.Contains(rule.KeepParts, i)
		}), rule.Separator)
	case len(rule.RemoveParts) > 0:
		return strings.Join(selectParts(parts, func(i int) bool {
			return !slices.Contains(rule.RemoveParts, i)
		}), rule.Separator)
	case len(rule.GroupBySeparators) > 0:
		if grouped := groupParts(parts, rule.GroupBySeparators); len(grouped) > 0 {
			return strings.Join(grouped, rule.Separator)
		}
	}

	return title
}

// trim strips the first rune of every configured string from both ends, in order,
// followed by surrounding whitespace. Passes repeat until the title is stable so that
// a normalized title normalizes to itself.
func trim(title string, chars []string) string {
	for {
		before := title
		for _, c := range chars {
			r, size := utf8.DecodeRuneInString(c)
			if size == 0 {
				continue
			}
			title = strings.Trim(title, string(r))
		}
		title = strings.TrimSpace(title)
		if title == before {
			return title
		}
	}
}

func selectParts(parts []string, keep func(int) bool) []string {
	kept := make([]string, 0, len(parts))
	for i, part := range parts {
		if keep(i) {
			kept = append(kept, part)
		}
	}
	return kept
}

// groupParts keeps, for each configured value, the first part equal to it.
func groupParts(parts, values []string) []string {
	var grouped []string
	for _, value := range values {
		if idx := slices.Index(parts, value); idx >= 0 {
			grouped = append(grouped, parts[idx])
		}
	}
	return grouped
}
