package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/Veraticus/what-have-i-done/internal/cli"
	"github.com/Veraticus/what-have-i-done/internal/common"
	"github.com/Veraticus/what-have-i-done/internal/report"
	"github.com/Veraticus/what-have-i-done/internal/storage"
	"github.com/Veraticus/what-have-i-done/internal/tracker"
	"github.com/Veraticus/what-have-i-done/internal/tui"
)

const logFileName = "whad.log"

// runLive tracks the foreground window until the user quits or ctx is canceled.
func (a *app) runLive(ctx context.Context) error {
	defer a.closeLog()

	s := a.settings
	store := storage.NewDayStore(a.fs, s.LedgerFolder)
	if err := store.EnsureDir(); err != nil {
		return err
	}

	live := a.interactive() && !a.flags.plain
	if live && s.LogFile == "" {
		// Log lines would tear the live view apart.
		if err := a.setupLogging(filepath.Join(s.LedgerFolder, logFileName)); err != nil {
			return fmt.Errorf("failed to setup logging: %w", err)
		}
	}

	// Without a keyboard TTY the live view cannot run, but a terminal on stdout can
	// still have its status line redrawn in place.
	redraw := !live && !a.flags.plain && isTerminal(a.out)

	common.LogInfo("Starting live tracking", common.Fields{
		"ledger_folder": s.LedgerFolder,
		"live_view":     live,
		"redraw":        redraw,
		"poll_interval": s.PollInterval,
	})

	commands := make(chan tracker.Command, 1)
	console := cli.NewConsole(a.out, redraw)
	var sink tracker.Sink = console
	tuiSink := tui.NewSink()
	if live {
		sink = tuiSink
	}

	tr, err := tracker.New(a.windowProbe(), store, tracker.Config{
		Rules:          s.Rules,
		IdleProcesses:  s.IdleProcesses,
		PollInterval:   s.PollInterval,
		ManualStep:     s.ManualStep,
		Threshold:      s.Threshold,
		RecoverCorrupt: s.RecoverCorrupt,
	}, tracker.WithSink(sink), tracker.WithCommands(commands), tracker.WithClock(a.now))
	if err != nil {
		return err
	}

	opts := report.Options{Threshold: s.Threshold, IdleProcesses: s.IdleProcesses}

	console.Println(cli.FormatTitle(fmt.Sprintf("What Have I Done (whad) %s", version)))
	if snapshot := tr.Snapshot(); snapshot.Total() > 0 {
		if err := cli.WriteSummary(a.out, "Quick recap what have I done today:", report.Summarize(snapshot, opts), true); err != nil {
			return err
		}
	}

	var runErr error
	if live {
		runErr = tui.Run(ctx, tr, tuiSink, commands)
	} else {
		console.Println(cli.SubtleStyle.Render("Keys: s summary, d details, m/n manual work +/-, p pin, u unpin, q quit (each followed by Enter)"))
		runErr = a.runPlain(ctx, tr, console, commands)
	}

	if err := cli.WriteSummary(a.out, "Summary", report.Summarize(tr.Snapshot(), opts), true); err != nil {
		slog.Debug("Failed to write shutdown summary", "error", err)
	}
	console.Println("Quitting.")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

func (a *app) runPlain(ctx context.Context, tr *tracker.Tracker, console *cli.Console, commands chan tracker.Command) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	handler := cli.NewInterruptHandler(console)
	ctx = handler.HandleInterrupts(ctx)

	go func() {
		reader := cli.NewNonBlockingReader(a.in)
		if err := cli.ReadCommands(ctx, reader, commands, handler.Interrupt); err != nil {
			slog.Debug("Command input closed", "error", err)
		}
	}()

	return tr.Run(ctx)
}
