package model

import "time"

// Entries holds accumulated minutes keyed by process name and then by normalized title.
type Entries map[string]map[string]float64

// Clone returns a deep copy.
func (e Entries) Clone() Entries {
	out := make(Entries, len(e))
	for process, titles := range e {
		copied := make(map[string]float64, len(titles))
		for title, minutes := range titles {
			copied[title] = minutes
		}
		out[process] = copied
	}
	return out
}

// ProcessTotal sums every title recorded for a process.
func (e Entries) ProcessTotal(process string) float64 {
	var total float64
	for _, minutes := range e[process] {
		total += minutes
	}
	return total
}

// Total sums every entry.
func (e Entries) Total() float64 {
	var total float64
	for process := range e {
		total += e.ProcessTotal(process)
	}
	return total
}

// DayOf truncates t to local midnight of its calendar day.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
