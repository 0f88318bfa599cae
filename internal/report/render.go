package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const divider = "-------------------------------------------------------------------"

// RenderOptions selects how much of a report is written.
type RenderOptions struct {
	// Details lists the items under every process.
	Details bool
	// Totals appends the TOTAL / IDLE / TOTAL (without IDLE) footer.
	Totals bool
}

type styles struct {
	process lipgloss.Style
	time    lipgloss.Style
	idle    lipgloss.Style
	active  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		process: r.NewStyle().Foreground(lipgloss.Color("#FFE66D")),
		time:    r.NewStyle().Foreground(lipgloss.Color("#4ECDC4")),
		idle:    r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		active:  r.NewStyle().Foreground(lipgloss.Color("#10b981")),
	}
}

// Render writes r as text. Colors are only emitted when w is a color terminal.
func Render(w io.Writer, r Report, opts RenderOptions) error {
	s := newStyles(w)

	width := 0
	for _, p := range r.Processes {
		width = max(width, lipgloss.Width(p.Name))
	}

	var b strings.Builder
	for _, p := range r.Processes {
		pad := strings.Repeat(" ", width-lipgloss.Width(p.Name))
		fmt.Fprintf(&b, "[%s%s] Total: %s\n", s.process.Render(p.Name), pad, s.time.Render(FormatDuration(p.Total)))

		if !opts.Details {
			continue
		}
		for _, item := range p.Items {
			fmt.Fprintf(&b, "  + %s - %s\n", s.time.Render(FormatDuration(item.Minutes)), item.Title)
		}
		b.WriteString("\n")
	}

	if opts.Totals {
		label := func(text string) string {
			return text + strings.Repeat(" ", max(width+2, len("TOTAL (without IDLE)")+1)-len(text))
		}
		b.WriteString(divider + "\n")
		fmt.Fprintf(&b, "%s  %s\n", label("TOTAL"), s.time.Render(FormatDuration(r.Total)))
		fmt.Fprintf(&b, "%s%s\n", label("IDLE"), s.idle.Render("- "+FormatDuration(r.Idle)))
		fmt.Fprintf(&b, "%s  %s\n", label("TOTAL (without IDLE)"), s.active.Render(FormatDuration(r.Active)))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// String renders r without colors.
func (r Report) String() string {
	var b strings.Builder
	_ = Render(&b, r, RenderOptions{Details: true, Totals: true})
	return b.String()
}

// FormatDuration formats minutes as hh:mm:ss, truncating partial seconds.
func FormatDuration(minutes float64) string {
	d := time.Duration(minutes * float64(time.Minute)).Truncate(time.Second)
	if d < 0 {
		d = 0
	}
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	sec := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}

// FormatClock formats minutes as mm:ss, or hh:mm:ss from one hour on.
func FormatClock(minutes float64) string {
	if minutes >= 60 {
		return FormatDuration(minutes)
	}
	d := time.Duration(minutes * float64(time.Minute)).Truncate(time.Second)
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%02d:%02d", int(d/time.Minute), int(d%time.Minute/time.Second))
}

// ShortTitle shortens titles longer than limit runes to their first and last twenty runes.
func ShortTitle(title string, limit int) string {
	runes := []rune(title)
	if len(runes) <= limit || limit < 43 {
		return title
	}
	return string(runes[:20]) + "..." + string(runes[len(runes)-20:])
}
