package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/Veraticus/what-have-i-done/internal/tracker"
	"github.com/charmbracelet/lipgloss"
)

// Console is a tracker.Sink that writes plain lines. In live mode the status line is
// redrawn in place; otherwise it is printed only when the window changes.
type Console struct {
	w        io.Writer
	last     tracker.Status
	lastLen  int
	mu       sync.Mutex
	live     bool
	hasLast  bool
	statusOn bool
}

// NewConsole creates a console sink writing to w.
func NewConsole(w io.Writer, live bool) *Console {
	return &Console{w: w, live: live}
}

// Status implements tracker.Sink.
func (c *Console) Status(st tracker.Status) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.live {
		line := FormatStatus(st)
		pad := strings.Repeat(" ", max(c.lastLen-lipgloss.Width(line), 0))
		c.write("\r" + line + pad)
		c.lastLen = lipgloss.Width(line)
		c.statusOn = true
		return
	}

	if c.hasLast && sameWindow(c.last, st) {
		return
	}
	c.last = st
	c.hasLast = true
	c.write(FormatStatus(st) + "\n")
}

// Notice implements tracker.Sink.
func (c *Console) Notice(n tracker.Notice) {
	msg := FormatNotice(n)
	if msg == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.breakLine()
	c.write(msg + "\n")
}

// Summary implements tracker.Sink.
func (c *Console) Summary(s tracker.Summary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.breakLine()
	if err := WriteSummary(c.w, SummaryTitle(s), s.Report, s.Details); err != nil {
		slog.Debug("Failed to write summary", "error", err)
	}
}

// Write implements io.Writer so other output can share the console.
func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.breakLine()
	return c.w.Write(p)
}

// Println writes a line, moving off the status line first.
func (c *Console) Println(a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.breakLine()
	c.write(fmt.Sprintln(a...))
}

func (c *Console) breakLine() {
	if c.statusOn {
		c.write("\n")
		c.statusOn = false
		c.lastLen = 0
	}
}

func (c *Console) write(s string) {
	if _, err := io.WriteString(c.w, s); err != nil {
		slog.Debug("Failed to write to console", "error", err)
	}
}

func sameWindow(a, b tracker.Status) bool {
	return a.Active == b.Active && a.Pinned == b.Pinned && a.Process == b.Process && a.Title == b.Title
}
