package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/what-have-i-done/internal/tracker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// Runner is the tracking loop the live view is attached to.
type Runner interface {
	Run(ctx context.Context) error
}

// Sink forwards tracker output to a running program. Output produced before the program
// starts is dropped.
type Sink struct {
	program *tea.Program
}

// NewSink creates a sink that is attached by Run.
func NewSink() *Sink {
	return &Sink{}
}

func (s *Sink) send(msg tea.Msg) {
	if s.program != nil {
		s.program.Send(msg)
	}
}

// Status implements tracker.Sink.
func (s *Sink) Status(st tracker.Status) { s.send(statusMsg{status: st}) }

// Notice implements tracker.Sink.
func (s *Sink) Notice(n tracker.Notice) { s.send(noticeMsg{notice: n}) }

// Summary implements tracker.Sink.
func (s *Sink) Summary(sum tracker.Summary) { s.send(summaryMsg{summary: sum}) }

// Run shows the live view while r tracks, and returns once tracking has stopped.
// Quitting the view cancels tracking; canceling ctx closes the view.
func Run(ctx context.Context, r Runner, sink *Sink, commands chan<- tracker.Command, opts ...Option) error {
	if r == nil || sink == nil {
		return errors.New("tracker and sink are required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(newModel(cfg, commands, cancel), cfg.Options...)
	sink.program = program

	done := make(chan error, 1)
	go func() {
		err := r.Run(ctx)
		done <- err
		program.Send(trackerDoneMsg{err: err})
	}()

	final, err := program.Run()
	cancel()
	trackErr := <-done

	if err != nil {
		return fmt.Errorf("live view failed: %w", err)
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return trackErr
}

func truncate(line string, width int) string {
	if width <= 0 {
		return line
	}
	return strings.TrimRight(ansi.Truncate(line, width, "…"), " ")
}
