//go:build darwin

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

// On macOS the handle is the owning application's pid; System Events exposes the
// front window title of any running application process.
const frontmostScript = `tell application "System Events"
	set frontApp to first application process whose frontmost is true
	set appPID to unix id of frontApp
	set winTitle to ""
	try
		set winTitle to name of front window of frontApp
	end try
end tell
return (appPID as text) & linefeed & winTitle`

const byPIDScript = `tell application "System Events"
	set theApp to first application process whose unix id is %d
	set winTitle to ""
	try
		set winTitle to name of front window of theApp
	end try
end tell
return winTitle`

type osascriptProbe struct{}

func newPlatformProbe() WindowProbe {
	return &osascriptProbe{}
}

func (p *osascriptProbe) run(ctx context.Context, script string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "osascript", "-e", script)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: osascript: %w (%s)", common.ErrProbeUnavailable, err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimRight(stdout.String(), "\r\n"), nil
}

func (p *osascriptProbe) ActiveWindow(ctx context.Context) (model.WindowSample, error) {
	out, err := p.run(ctx, frontmostScript)
	if err != nil {
		return model.NoActiveWindow, err
	}

	pidText, title, _ := strings.Cut(out, "\n")
	pid, err := strconv.ParseInt(strings.TrimSpace(pidText), 10, 32)
	if err != nil || pid == 0 {
		return model.NoActiveWindow, nil
	}

	name, err := processName(ctx, int32(pid))
	if err != nil {
		return model.NoActiveWindow, err
	}

	return model.WindowSample{
		Title:       title,
		ProcessName: name,
		Handle:      model.Handle(pid),
	}, nil
}

func (p *osascriptProbe) WindowByHandle(ctx context.Context, handle model.Handle) (model.WindowSample, bool, error) {
	pid := int32(handle)
	if handle == 0 || !processAlive(ctx, pid) {
		return model.NoActiveWindow, false, nil
	}

	title, err := p.run(ctx, fmt.Sprintf(byPIDScript, pid))
	if err != nil {
		return model.NoActiveWindow, false, err
	}
	name, err := processName(ctx, pid)
	if err != nil {
		return model.NoActiveWindow, false, err
	}

	return model.WindowSample{
		Title:       title,
		ProcessName: name,
		Handle:      handle,
	}, true, nil
}

func (p *osascriptProbe) CopyToClipboard(text string) error {
	return copyToClipboard(text)
}
