package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/what-have-i-done/internal/common"
	"github.com/Veraticus/what-have-i-done/internal/model"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

const (
	filePrefix = "window_times_"
	fileSuffix = ".json"
	dayLayout  = "2006-01-02"
)

// DayStore reads and writes one ledger file per calendar day inside a folder.
type DayStore struct {
	fs  afero.Fs
	now func() time.Time
	dir string
}

// NewDayStore creates a store rooted at dir. A nil fs uses the operating system.
func NewDayStore(fsys afero.Fs, dir string) *DayStore {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &DayStore{
		fs:  fsys,
		dir: dir,
		now: time.Now,
	}
}

// Dir returns the folder holding the ledger files.
func (s *DayStore) Dir() string {
	return s.dir
}

// EnsureDir creates the ledger folder if needed.
func (s *DayStore) EnsureDir() error {
	if err := s.fs.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("failed to create ledger folder %s: %w", s.dir, err)
	}
	return nil
}

// FileName returns the base name of the ledger file for a day.
func FileName(day time.Time) string {
	return filePrefix + day.Format(dayLayout) + fileSuffix
}

// PathFor returns the ledger path for a day.
func (s *DayStore) PathFor(day time.Time) string {
	return filepath.Join(s.dir, FileName(day))
}

// Load reads the ledger for day. A missing file yields an empty ledger; a malformed one
// yields an error wrapping common.ErrCorruptLedger.
func (s *DayStore) Load(day time.Time) (*Ledger, error) {
	day = model.DayOf(day)
	path := s.PathFor(day)

	entries, err := s.ReadFile(path)
	switch {
	case errors.Is(err, common.ErrLedgerNotFound):
		entries = model.Entries{}
	case err != nil:
		return nil, err
	}

	return &Ledger{
		day:     day,
		path:    path,
		store:   s,
		entries: entries,
	}, nil
}

// Recover moves a corrupt ledger file aside and returns an empty ledger for the day.
// Callers use it only after deciding to discard an unreadable file.
func (s *DayStore) Recover(day time.Time) (*Ledger, error) {
	day = model.DayOf(day)
	path := s.PathFor(day)

	backup := fmt.Sprintf("%s.corrupt-%d", path, s.now().Unix())
	if err := s.fs.Rename(path, backup); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to move corrupt ledger aside: %w", err)
	}

	slog.Warn("Starting with an empty ledger after corrupt file",
		"path", path,
		"backup", backup)

	return &Ledger{
		day:     day,
		path:    path,
		store:   s,
		entries: model.Entries{},
	}, nil
}

// ReadFile decodes a ledger file without attaching it to a live ledger.
// It is used for historical summaries.
func (s *DayStore) ReadFile(path string) (model.Entries, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", common.ErrLedgerNotFound, path)
		}
		return nil, fmt.Errorf("failed to read ledger %s: %w", path, err)
	}

	var entries model.Entries
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrCorruptLedger, path, err)
	}
	if err := validateEntries(entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrCorruptLedger, path, err)
	}

	if entries == nil {
		entries = model.Entries{}
	}
	for process, titles := range entries {
		if titles == nil {
			entries[process] = map[string]float64{}
		}
	}

	return entries, nil
}

// ModTime returns when a ledger file was last written.
func (s *DayStore) ModTime(path string) (time.Time, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return time.Time{}, fmt.Errorf("%w: %s", common.ErrLedgerNotFound, path)
		}
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// Resolve maps a command-line argument to a ledger path. Arguments that parse as a
// date name that day's file; anything else is a file name relative to the ledger
// folder, or a path as given when that is where the file exists.
func (s *DayStore) Resolve(arg string, now time.Time) string {
	if day, ok := ParseDay(arg, now); ok {
		return s.PathFor(day)
	}
	if filepath.IsAbs(arg) {
		return arg
	}

	inFolder := filepath.Join(s.dir, arg)
	if _, err := s.fs.Stat(inFolder); err == nil {
		return inFolder
	}
	if _, err := s.fs.Stat(arg); err == nil {
		return arg
	}
	return inFolder
}

var dayLayouts = []string{
	dayLayout,
	"2006/01/02",
	"2006.01.02",
	"01/02/2006",
	"02.01.2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseDay parses the date formats accepted on the command line, plus "today" and
// "yesterday" relative to now.
func ParseDay(arg string, now time.Time) (time.Time, bool) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "today":
		return model.DayOf(now), true
	case "yesterday":
		return model.DayOf(now).AddDate(0, 0, -1), true
	}

	for _, layout := range dayLayouts {
		if t, err := time.ParseInLocation(layout, strings.TrimSpace(arg), now.Location()); err == nil {
			return model.DayOf(t), true
		}
	}
	return time.Time{}, false
}

// write replaces path atomically: the ledger goes to a uniquely named temporary file in
// the same folder, which is then renamed over the target.
func (s *DayStore) write(path string, entries model.Entries) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to marshal ledger: %w", common.ErrPersistFailure, err)
	}

	tmp := filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.New().String()))

	if err := afero.WriteFile(s.fs, tmp, data, 0o600); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("%w: %s: %w", common.ErrPersistFailure, path, err)
	}

	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("%w: %s: %w", common.ErrPersistFailure, path, err)
	}

	return nil
}
