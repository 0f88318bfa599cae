// Package report aggregates a ledger snapshot into the per-process summaries shown to
// the user and renders them as text.
package report

import (
	"slices"
	"sort"

	"github.com/Veraticus/what-have-i-done/internal/model"
)

// DefaultThreshold is the number of minutes below which entries count as micro periods.
const DefaultThreshold = 1.0

// MicroPeriodsTitle labels the line that folds suppressed entries of a process together.
const MicroPeriodsTitle = "[several micro periods, total]"

// Options controls which entries a summary keeps.
type Options struct {
	IdleProcesses []string
	// Threshold in minutes; zero or negative means DefaultThreshold.
	Threshold float64
	ShowAll   bool
}

// Item is one line under a process.
type Item struct {
	Title   string
	Minutes float64
	// Micro marks the synthetic line that totals suppressed entries.
	Micro bool
}

// ProcessSummary groups the shown items of one process.
type ProcessSummary struct {
	Name  string
	Items []Item
	Total float64
}

// Report is the outcome of Summarize.
type Report struct {
	Processes []ProcessSummary
	// Total is every minute in the ledger, including hidden processes.
	Total float64
	// Idle is the part of Total spent in idle processes.
	Idle float64
	// Active is Total minus Idle.
	Active float64
}

// Summarize groups entries by process, orders them by time spent and folds entries
// under the threshold into a micro period line unless ShowAll is set.
func Summarize(entries model.Entries, opts Options) Report {
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	var r Report

	for name, titles := range entries {
		total := entries.ProcessTotal(name)
		r.Total += total
		if slices.Contains(opts.IdleProcesses, name) {
			r.Idle += total
		}

		if !opts.ShowAll && total < threshold {
			continue
		}

		r.Processes = append(r.Processes, ProcessSummary{
			Name:  name,
			Total: total,
			Items: summarizeTitles(titles, threshold, opts.ShowAll),
		})
	}

	r.Active = r.Total - r.Idle

	sort.Slice(r.Processes, func(i, j int) bool {
		a, b := r.Processes[i], r.Processes[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.Name < b.Name
	})

	return r
}

func summarizeTitles(titles map[string]float64, threshold float64, showAll bool) []Item {
	items := make([]Item, 0, len(titles))
	for title, minutes := range titles {
		items = append(items, Item{Title: title, Minutes: minutes})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Minutes != items[j].Minutes {
			return items[i].Minutes > items[j].Minutes
		}
		return items[i].Title < items[j].Title
	})

	if showAll {
		return items
	}

	var (
		shown []Item
		micro float64
		found bool
	)
	for _, item := range items {
		if item.Minutes < threshold {
			micro += item.Minutes
			found = true
			continue
		}
		shown = append(shown, item)
	}

	if found && len(shown) > 0 {
		shown = append(shown, Item{Title: MicroPeriodsTitle, Minutes: micro, Micro: true})
	}

	return shown
}
