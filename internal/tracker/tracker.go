// Package tracker attributes foreground window time to (process, title) pairs and keeps
// the day's ledger up to date.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/what-have-i-done/internal/common"
	"github.com/Veraticus/what-have-i-done/internal/model"
	"github.com/Veraticus/what-have-i-done/internal/normalize"
	"github.com/Veraticus/what-have-i-done/internal/probe"
	"github.com/Veraticus/what-have-i-done/internal/report"
	"github.com/Veraticus/what-have-i-done/internal/storage"
)

// The manual work bucket. No probe reports these names.
const (
	ManualProcess = "--MANUALLY ADDED--"
	ManualTitle   = "--MANUALLY ADDED--"
)

// The last save gets a few quick attempts before the time is given up.
var finalSaveRetry = common.RetryOptions{
	Retryable:    common.IsRecoverable,
	MaxAttempts:  3,
	InitialDelay: 50 * time.Millisecond,
	MaxDelay:     200 * time.Millisecond,
}

// Defaults used when Config leaves a field zero.
const (
	DefaultPollInterval = 1100 * time.Millisecond
	DefaultManualStep   = 15 * time.Minute
)

// Config holds the tracker settings.
type Config struct {
	Rules          model.RuleSet
	IdleProcesses  []string
	PollInterval   time.Duration
	ManualStep     time.Duration
	Threshold      float64
	RecoverCorrupt bool
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithSink sets where status lines, notices and summaries go.
func WithSink(sink Sink) Option {
	return func(t *Tracker) {
		if sink != nil {
			t.sink = sink
		}
	}
}

// WithCommands sets the channel user commands arrive on.
func WithCommands(commands <-chan Command) Option {
	return func(t *Tracker) {
		t.commands = commands
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// state is everything that changes from one poll to the next.
type state struct {
	previous       *model.WindowSample
	lastActive     *model.WindowSample
	pinned         *model.WindowSample
	currentProcess string
	currentTitle   string
	stopwatch      Stopwatch
	active         bool
}

// Tracker is a tracking session: it owns the live ledger and the tracking state and is
// their only writer. It is not safe for concurrent use; Run drives it from one goroutine.
type Tracker struct {
	probe    probe.WindowProbe
	sink     Sink
	store    *storage.DayStore
	ledger   *storage.Ledger
	commands <-chan Command
	now      func() time.Time
	logger   *slog.Logger
	unsaved  []*storage.Ledger
	cfg      Config
	state    state
}

// New creates a tracker and opens today's ledger.
func New(p probe.WindowProbe, store *storage.DayStore, cfg Config, opts ...Option) (*Tracker, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: probe is required", common.ErrMissingConfig)
	}
	if store == nil {
		return nil, fmt.Errorf("%w: ledger store is required", common.ErrMissingConfig)
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.ManualStep <= 0 {
		cfg.ManualStep = DefaultManualStep
	}

	t := &Tracker{
		probe:  p,
		store:  store,
		cfg:    cfg,
		sink:   discardSink{},
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if err := store.EnsureDir(); err != nil {
		return nil, err
	}

	ledger, err := t.openLedger(t.now())
	if err != nil {
		return nil, err
	}
	t.ledger = ledger

	return t, nil
}

// Day returns the day of the live ledger.
func (t *Tracker) Day() time.Time {
	return t.ledger.Day()
}

// Snapshot returns a copy of the recorded entries.
func (t *Tracker) Snapshot() model.Entries {
	return t.ledger.Snapshot()
}

// Run polls until ctx is canceled and then records the final partial interval.
func (t *Tracker) Run(ctx context.Context) (err error) {
	t.logger.Info("Tracking started",
		"ledger", t.ledger.Path(),
		"poll_interval", t.cfg.PollInterval)

	defer func() {
		if closeErr := t.Close(); err == nil {
			err = closeErr
		}
	}()

	timer := time.NewTimer(t.cfg.PollInterval)
	defer timer.Stop()

	for {
		if ctx.Err() != nil {
			return nil
		}
		if err := t.Tick(ctx); err != nil {
			return err
		}

		timer.Reset(t.cfg.PollInterval)
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
	}
}

// Tick performs one poll. Only errors that make further tracking impossible are returned.
func (t *Tracker) Tick(ctx context.Context) error {
	now := t.now()

	t.retryUnsaved()

	if err := t.rollover(now); err != nil {
		return err
	}

	t.observe(t.acquire(ctx, now), now)

	select {
	case cmd := <-t.commands:
		t.handle(ctx, cmd, now)
	default:
	}

	t.sink.Status(t.status(now))
	return nil
}

// Close records the running interval and writes every pending ledger.
func (t *Tracker) Close() error {
	now := t.now()
	_ = t.flush(now)
	t.state.stopwatch = t.state.stopwatch.Stop(now)

	var errs []error
	for _, l := range append(t.unsaved, t.ledger) {
		if err := common.WithRetry(context.Background(), l.Save, finalSaveRetry); err != nil {
			errs = append(errs, err)
		}
	}
	t.unsaved = nil

	t.logger.Info("Tracking stopped", "ledger", t.ledger.Path())
	return errors.Join(errs...)
}

func (t *Tracker) openLedger(now time.Time) (*storage.Ledger, error) {
	ledger, err := t.store.Load(now)
	if err == nil {
		return ledger, nil
	}
	if errors.Is(err, common.ErrCorruptLedger) && t.cfg.RecoverCorrupt {
		t.logger.Warn("Ledger is corrupt, recovering with an empty one", "error", err)
		return t.store.Recover(now)
	}
	return nil, err
}

// rollover switches to a new ledger when the calendar day changes. Time running at
// the moment of the switch belongs to the old day.
func (t *Tracker) rollover(now time.Time) error {
	if model.SameDay(now, t.ledger.Day()) {
		return nil
	}

	t.logger.Info("Day changed, saving previous day", "day", t.ledger.Day().Format(time.DateOnly))

	flushErr := t.flush(now)
	old := t.ledger
	if err := old.Save(); err != nil {
		if flushErr == nil {
			t.persistFailed(err)
		}
		t.unsaved = append(t.unsaved, old)
	}

	next, err := t.openLedger(now)
	if err != nil {
		return fmt.Errorf("failed to open ledger for %s: %w", now.Format(time.DateOnly), err)
	}
	t.ledger = next

	t.state.currentProcess = ""
	t.state.currentTitle = ""
	t.state.stopwatch = t.state.stopwatch.Reset()
	t.state.pinned = nil

	t.sink.Notice(Notice{Kind: NoticeDayStarted, Day: next.Day()})
	if next.Total() > 0 {
		t.sink.Summary(t.summary(now, false))
	}

	return nil
}

// acquire samples the pinned window, or the foreground window when nothing is pinned
// or the pinned window has closed.
func (t *Tracker) acquire(ctx context.Context, now time.Time) model.WindowSample {
	if pinned := t.state.pinned; pinned != nil {
		sample, ok, err := t.probe.WindowByHandle(ctx, pinned.Handle)
		switch {
		case err != nil:
			t.logger.Debug("Pinned window probe failed", "window", pinned.String(), "error", err)
			return model.NoActiveWindow
		case ok && !sample.IsNoActive():
			return sample
		}

		t.endCurrent(now)
		t.state.pinned = nil
		t.logger.Info("Pinned window was closed", "window", pinned.String())
		t.sink.Notice(Notice{Kind: NoticePinnedClosed, Window: *pinned})
	}

	return t.foreground(ctx)
}

func (t *Tracker) foreground(ctx context.Context) model.WindowSample {
	sample, err := t.probe.ActiveWindow(ctx)
	if err != nil {
		t.logger.Debug("Window probe failed", "error", err)
		return model.NoActiveWindow
	}
	return sample
}

// observe folds one sample into the tracking state.
func (t *Tracker) observe(sample model.WindowSample, now time.Time) {
	process := sample.ProcessName
	title := normalize.Title(sample.Title, process, t.cfg.Rules)
	active := !sample.IsNoActive() && strings.TrimSpace(process) != "" && strings.TrimSpace(title) != ""
	t.state.active = active

	if !active {
		t.state.stopwatch = t.state.stopwatch.Stop(now)
	} else if t.state.currentTitle != "" {
		t.state.stopwatch = t.state.stopwatch.Start(now)
	}

	// Samples without a handle are not windows and never become pin candidates.
	if sample.Handle != 0 {
		s := sample
		if t.state.lastActive == nil || t.state.lastActive.Handle != sample.Handle {
			t.state.previous = t.state.lastActive
		}
		t.state.lastActive = &s
	}

	if active && (process != t.state.currentProcess || title != t.state.currentTitle) {
		_ = t.flush(now)
		t.logger.Debug("Window changed", "process", process, "title", title)
		t.state.currentProcess = process
		t.state.currentTitle = title
		t.state.stopwatch = t.state.stopwatch.Restart(now)
	}
}

// flush records the stopwatch under the current pair and zeroes it, keeping it running
// if it was. A returned error has already been reported.
func (t *Tracker) flush(now time.Time) error {
	elapsed := t.state.stopwatch.Elapsed(now)
	if t.state.stopwatch.Running() {
		t.state.stopwatch = t.state.stopwatch.Restart(now)
	} else {
		t.state.stopwatch = t.state.stopwatch.Reset()
	}

	if t.state.currentProcess == "" || t.state.currentTitle == "" || elapsed <= 0 {
		return nil
	}

	if err := t.ledger.RecordTime(t.state.currentProcess, t.state.currentTitle, elapsed.Minutes()); err != nil {
		t.persistFailed(err)
		return err
	}
	return nil
}

// endCurrent flushes and forgets the current pair.
func (t *Tracker) endCurrent(now time.Time) {
	_ = t.flush(now)
	t.state.currentProcess = ""
	t.state.currentTitle = ""
	t.state.stopwatch = t.state.stopwatch.Reset()
}

func (t *Tracker) handle(ctx context.Context, cmd Command, now time.Time) {
	t.logger.Debug("Command received", "command", cmd.String())

	switch cmd {
	case CommandSummary, CommandDetails:
		t.sink.Summary(t.summary(now, cmd == CommandDetails))

	case CommandManualAdd, CommandManualSubtract:
		delta := t.cfg.ManualStep.Minutes()
		if cmd == CommandManualSubtract {
			delta = -delta
		}
		_ = t.flush(now)
		total, err := t.ledger.Adjust(ManualProcess, ManualTitle, delta)
		if err != nil {
			t.persistFailed(err)
		}
		t.sink.Notice(Notice{Kind: NoticeManualAdjusted, Minutes: delta, Total: total})

	case CommandPin:
		t.pin(ctx, now)

	case CommandUnpin:
		t.unpin(ctx, now)

	default:
		t.logger.Warn("Unknown command", "command", int(cmd))
	}
}

// pin freezes tracking on the window that was in the foreground before the current one.
func (t *Tracker) pin(ctx context.Context, now time.Time) {
	previous := t.state.previous
	if previous == nil {
		t.sink.Notice(Notice{Kind: NoticeNothingToPin})
		return
	}

	sample, ok, err := t.probe.WindowByHandle(ctx, previous.Handle)
	if err != nil || !ok || sample.IsNoActive() {
		t.logger.Debug("Previous window is gone, not pinning", "window", previous.String(), "error", err)
		t.sink.Notice(Notice{Kind: NoticeNothingToPin, Window: *previous})
		return
	}

	_ = t.flush(now)
	t.state.pinned = &sample
	t.observe(sample, now)

	t.logger.Info("Pinned window", "window", sample.String())
	t.sink.Notice(Notice{Kind: NoticePinned, Window: sample})
}

// unpin records the pinned period once and resumes with the foreground window.
func (t *Tracker) unpin(ctx context.Context, now time.Time) {
	pinned := t.state.pinned
	if pinned == nil {
		return
	}

	t.endCurrent(now)
	t.state.pinned = nil

	t.logger.Info("Unpinned window", "window", pinned.String())
	t.sink.Notice(Notice{Kind: NoticeUnpinned, Window: *pinned})

	t.observe(t.foreground(ctx), now)
}

func (t *Tracker) status(now time.Time) Status {
	if !t.state.active || t.state.currentProcess == "" {
		return Status{Pinned: t.state.pinned != nil}
	}

	running := t.state.stopwatch.Elapsed(now).Minutes()
	return Status{
		Active:         true,
		Pinned:         t.state.pinned != nil,
		Process:        t.state.currentProcess,
		Title:          t.state.currentTitle,
		WindowMinutes:  t.ledger.Minutes(t.state.currentProcess, t.state.currentTitle) + running,
		ProcessMinutes: t.ledger.ProcessTotal(t.state.currentProcess) + running,
		DayMinutes:     t.ledger.Total() + running,
	}
}

// summary reports the ledger including the time still running on the current pair.
func (t *Tracker) summary(now time.Time, details bool) Summary {
	entries := t.ledger.Snapshot()
	if running := t.state.stopwatch.Elapsed(now).Minutes(); running > 0 && t.state.currentProcess != "" {
		if entries[t.state.currentProcess] == nil {
			entries[t.state.currentProcess] = map[string]float64{}
		}
		entries[t.state.currentProcess][t.state.currentTitle] += running
	}

	return Summary{
		Day:     t.ledger.Day(),
		Details: details,
		Report: report.Summarize(entries, report.Options{
			Threshold:     t.cfg.Threshold,
			IdleProcesses: t.cfg.IdleProcesses,
		}),
	}
}

func (t *Tracker) persistFailed(err error) {
	common.LogError(err, "Failed to persist ledger, minutes kept in memory", common.Fields{
		"ledger": t.ledger.Path(),
	})
	t.sink.Notice(Notice{Kind: NoticePersistFailed, Err: err})
}

func (t *Tracker) retryUnsaved() {
	if t.ledger.Pending() {
		if err := t.ledger.Save(); err == nil {
			t.logger.Info("Pending ledger changes saved", "ledger", t.ledger.Path())
		}
	}

	kept := t.unsaved[:0]
	for _, l := range t.unsaved {
		if err := l.Save(); err != nil {
			kept = append(kept, l)
		}
	}
	t.unsaved = kept
}
