package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Veraticus/what-have-i-done/internal/cli"
	"github.com/Veraticus/what-have-i-done/internal/common"
	"github.com/Veraticus/what-have-i-done/internal/report"
	"github.com/Veraticus/what-have-i-done/internal/storage"
	"github.com/dustin/go-humanize"
)

// runSummary prints the report of one stored day and exits. It never touches the live
// ledger of a running tracker.
func (a *app) runSummary(_ context.Context, arg string) error {
	store := storage.NewDayStore(a.fs, a.settings.LedgerFolder)
	path := store.Resolve(arg, a.now())

	entries, err := store.ReadFile(path)
	switch {
	case errors.Is(err, common.ErrLedgerNotFound):
		return common.NewUserError(fmt.Sprintf("File %s not found", path), err)
	case errors.Is(err, common.ErrCorruptLedger):
		return common.NewUserError("Invalid log file format", err)
	case err != nil:
		return fmt.Errorf("failed to load ledger: %w", err)
	}

	common.LogDebug("Summarizing ledger", common.Fields{
		"path":      path,
		"processes": len(entries),
	})

	title := "Summary for " + filepath.Base(path)
	if modified, err := store.ModTime(path); err == nil {
		title += fmt.Sprintf(" (updated %s)", humanize.RelTime(modified, a.now(), "ago", "from now"))
	}

	r := report.Summarize(entries, report.Options{
		ShowAll:       a.flags.all,
		Threshold:     a.settings.Threshold,
		IdleProcesses: a.settings.IdleProcesses,
	})

	if a.flags.copy {
		var b strings.Builder
		if err := cli.WriteSummary(&b, title, r, true); err != nil {
			return err
		}
		if err := a.windowProbe().CopyToClipboard(b.String()); err != nil {
			slog.Warn("Failed to copy summary to clipboard", "error", err)
		} else {
			_, err := fmt.Fprintln(a.out, cli.FormatSuccess("Summary copied to clipboard"))
			return err
		}
	}

	return cli.WriteSummary(a.out, title, r, a.flags.details)
}
