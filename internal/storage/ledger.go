// Package storage persists the per-day activity ledgers as JSON files.
package storage

import (
	"fmt"
	"math"
	"time"

	"github.com/Veraticus/what-have-i-done/internal/common"
	"github.com/Veraticus/what-have-i-done/internal/model"
)

// Ledger is the in-memory record of one day's accumulated minutes.
// Every mutation is written through to the day's file.
type Ledger struct {
	day     time.Time
	store   *DayStore
	entries model.Entries
	path    string
	dirty   bool
}

// Day returns the calendar day the ledger belongs to.
func (l *Ledger) Day() time.Time {
	return l.day
}

// Path returns the file the ledger is persisted to.
func (l *Ledger) Path() string {
	return l.path
}

// Pending reports whether in-memory changes have not yet reached disk.
func (l *Ledger) Pending() bool {
	return l.dirty
}

// RecordTime adds minutes to a (process, title) pair and persists the whole ledger.
// On a persist failure the minutes stay recorded in memory and are written by the next
// successful save.
func (l *Ledger) RecordTime(process, title string, minutes float64) error {
	if err := validateKey(process, title); err != nil {
		return err
	}
	if err := validateMinutes(minutes); err != nil {
		return err
	}

	l.bucket(process)[title] += minutes
	l.dirty = true

	return l.Save()
}

// Adjust adds delta (which may be negative) to a pair, clamping the result at zero.
// It returns the new value.
func (l *Ledger) Adjust(process, title string, delta float64) (float64, error) {
	if err := validateKey(process, title); err != nil {
		return 0, err
	}
	if !finite(delta) {
		return 0, fmt.Errorf("%w: invalid adjustment %v", common.ErrInvalidInput, delta)
	}

	titles := l.bucket(process)
	value := math.Max(titles[title]+delta, 0)
	titles[title] = value
	l.dirty = true

	return value, l.Save()
}

// Minutes returns the minutes recorded for a pair.
func (l *Ledger) Minutes(process, title string) float64 {
	return l.entries[process][title]
}

// ProcessTotal returns the minutes recorded for every title of a process.
func (l *Ledger) ProcessTotal(process string) float64 {
	return l.entries.ProcessTotal(process)
}

// Total returns every minute recorded in the ledger.
func (l *Ledger) Total() float64 {
	return l.entries.Total()
}

// Snapshot returns a copy of the entries that callers may keep or modify.
func (l *Ledger) Snapshot() model.Entries {
	return l.entries.Clone()
}

// Save writes the ledger to disk if it has unsaved changes.
func (l *Ledger) Save() error {
	if !l.dirty {
		return nil
	}
	if err := l.store.write(l.path, l.entries); err != nil {
		return err
	}
	l.dirty = false
	return nil
}

func (l *Ledger) bucket(process string) map[string]float64 {
	titles, ok := l.entries[process]
	if !ok || titles == nil {
		titles = make(map[string]float64)
		l.entries[process] = titles
	}
	return titles
}
