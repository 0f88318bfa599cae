package cli

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/Veraticus/what-have-i-done/internal/report"
	"github.com/Veraticus/what-have-i-done/internal/tracker"
)

// TitleLimit is the longest window title shown in full on the status line.
const TitleLimit = 50

const rule = "==================================================================="

// FormatStatus renders the live status line.
func FormatStatus(st tracker.Status) string {
	if !st.Active {
		if st.Pinned {
			return SubtleStyle.Render("Pinned window is not available")
		}
		return SubtleStyle.Render("No active window")
	}

	label := "Active window"
	if st.Pinned {
		label = PinIcon + " Pinned window"
	}

	return fmt.Sprintf("%s: [%s] %s (Current window: %s, App total: %s) ==> Today: %s",
		label,
		ProcessStyle.Render(st.Process),
		WindowStyle.Render(report.ShortTitle(st.Title, TitleLimit)),
		TimeStyle.Render(report.FormatClock(st.WindowMinutes)),
		TimeStyle.Render(report.FormatClock(st.ProcessMinutes)),
		DayStyle.Render(report.FormatClock(st.DayMinutes)),
	)
}

// FormatNotice renders a one-off tracker event.
func FormatNotice(n tracker.Notice) string {
	switch n.Kind {
	case tracker.NoticeDayStarted:
		return TitleStyle.Render(fmt.Sprintf("Starting new day tracking for %s", n.Day.Format(time.DateOnly)))
	case tracker.NoticePinned:
		return FormatSuccess(fmt.Sprintf("Pinned window: [%s] %s", n.Window.ProcessName, report.ShortTitle(n.Window.Title, TitleLimit)))
	case tracker.NoticeUnpinned:
		return FormatSuccess("Unpinned window.")
	case tracker.NoticePinnedClosed:
		return FormatWarning("Pinned window was closed.")
	case tracker.NoticeNothingToPin:
		return FormatWarning("No previous window to pin.")
	case tracker.NoticeManualAdjusted:
		verb := "added"
		if n.Minutes < 0 {
			verb = "removed"
		}
		return FormatInfo(fmt.Sprintf("Manual work: %s %g minutes. Total today: %s",
			verb, math.Abs(n.Minutes), report.FormatDuration(n.Total)))
	case tracker.NoticePersistFailed:
		return FormatError(fmt.Sprintf("Failed to save the ledger, time is kept in memory: %v", n.Err))
	default:
		return ""
	}
}

// WriteSummary writes a framed report of the day.
func WriteSummary(w io.Writer, title string, r report.Report, details bool) error {
	var b strings.Builder
	b.WriteString("\n" + rule + "\n")
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("-", len(rule)) + "\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	if len(r.Processes) == 0 {
		if _, err := io.WriteString(w, SubtleStyle.Render("Nothing recorded yet.")+"\n"); err != nil {
			return err
		}
	}

	if err := report.Render(w, r, report.RenderOptions{Details: details, Totals: true}); err != nil {
		return err
	}

	_, err := io.WriteString(w, rule+"\n")
	return err
}

// SummaryTitle returns the heading of a live summary.
func SummaryTitle(s tracker.Summary) string {
	if s.Details {
		return "Detailed summary for " + s.Day.Format(time.DateOnly)
	}
	return "Summary for " + s.Day.Format(time.DateOnly)
}
