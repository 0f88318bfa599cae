// Package probe answers which window is in the foreground. The tracker only sees the
// WindowProbe interface; each supported platform has its own implementation file.
package probe

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/what-have-i-done/internal/common"
	"github.com/Veraticus/what-have-i-done/internal/model"
	"github.com/atotto/clipboard"
	"github.com/shirou/gopsutil/process"
)

// WindowProbe is the operating system capability the tracker polls.
type WindowProbe interface {
	// ActiveWindow returns the foreground window, or model.NoActiveWindow when there is none.
	ActiveWindow(ctx context.Context) (model.WindowSample, error)

	// WindowByHandle re-reads a specific window. The boolean is false once the window is gone.
	WindowByHandle(ctx context.Context, handle model.Handle) (model.WindowSample, bool, error)

	// CopyToClipboard places text on the system clipboard.
	CopyToClipboard(text string) error
}

// New returns the probe for the current platform.
func New() WindowProbe {
	return newPlatformProbe()
}

// processName resolves a pid to the executable name without any ".exe" suffix.
func processName(ctx context.Context, pid int32) (string, error) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return "", fmt.Errorf("%w: process %d: %w", common.ErrProbeUnavailable, pid, err)
	}
	name, err := p.NameWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: process %d name: %w", common.ErrProbeUnavailable, pid, err)
	}
	return strings.TrimSuffix(name, ".exe"), nil
}

// processAlive reports whether pid still refers to a running process.
func processAlive(ctx context.Context, pid int32) bool {
	alive, err := process.PidExistsWithContext(ctx, pid)
	return err == nil && alive
}

// copyToClipboard is shared by every platform probe.
func copyToClipboard(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("%w: no clipboard utility available", common.ErrProbeUnavailable)
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: clipboard: %w", common.ErrProbeUnavailable, err)
	}
	return nil
}
