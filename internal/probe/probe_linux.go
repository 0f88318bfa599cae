//go:build linux

package probe

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Veraticus/what-have-i-done/internal/common"
	"github.com/Veraticus/what-have-i-done/internal/model"
)

// xdotoolProbe reads X11 windows through the xdotool utility.
type xdotoolProbe struct {
	binary string
}

func newPlatformProbe() WindowProbe {
	return &xdotoolProbe{binary: "xdotool"}
}

func (p *xdotoolProbe) run(ctx context.Context, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %s %s: %w (%s)", common.ErrProbeUnavailable,
			p.binary, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimRight(stdout.String(), "\r\n"), nil
}

func (p *xdotoolProbe) ActiveWindow(ctx context.Context) (model.WindowSample, error) {
	out, err := p.run(ctx, "getactivewindow")
	if err != nil {
		return model.NoActiveWindow, err
	}
	id, err := strconv.ParseUint(strings.TrimSpace(out), 10, 64)
	if err != nil || id == 0 {
		return model.NoActiveWindow, nil
	}

	sample, ok, err := p.WindowByHandle(ctx, model.Handle(id))
	if err != nil || !ok {
		return model.NoActiveWindow, err
	}
	return sample, nil
}

func (p *xdotoolProbe) WindowByHandle(ctx context.Context, handle model.Handle) (model.WindowSample, bool, error) {
	if handle == 0 {
		return model.NoActiveWindow, false, nil
	}
	id := strconv.FormatUint(uint64(handle), 10)

	title, err := p.run(ctx, "getwindowname", id)
	if err != nil {
		// xdotool fails on windows that no longer exist.
		return model.NoActiveWindow, false, nil
	}

	pidText, err := p.run(ctx, "getwindowpid", id)
	if err != nil {
		return model.NoActiveWindow, false, nil
	}
	pid, err := strconv.ParseInt(strings.TrimSpace(pidText), 10, 32)
	if err != nil {
		return model.NoActiveWindow, false, fmt.Errorf("%w: bad pid %q", common.ErrProbeUnavailable, pidText)
	}

	name, err := processName(ctx, int32(pid))
	if err != nil {
		return model.NoActiveWindow, false, err
	}

	return model.WindowSample{
		Title:       title,
		ProcessName: name,
		Handle:      handle,
	}, true, nil
}

func (p *xdotoolProbe) CopyToClipboard(text string) error {
	return copyToClipboard(text)
}
