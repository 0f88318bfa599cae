//go:build windows

package probe

import (
	"context"
	"fmt"
	"unsafe"

	"github.com/Veraticus/what-have-i-done/internal/common"
	"github.com/Veraticus/what-have-i-done/internal/model"
	"golang.org/x/sys/windows"
)

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW     = user32.NewProc("GetWindowTextLengthW")
	procGetWindowThreadProcessID = user32.NewProc("GetWindowThreadProcessId")
	procIsWindow                 = user32.NewProc("IsWindow")
)

type win32Probe struct{}

func newPlatformProbe() WindowProbe {
	return &win32Probe{}
}

func (p *win32Probe) ActiveWindow(ctx context.Context) (model.WindowSample, error) {
	if err := user32.Load(); err != nil {
		return model.NoActiveWindow, fmt.Errorf("%w: %w", common.ErrProbeUnavailable, err)
	}
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return model.NoActiveWindow, nil
	}

	sample, ok, err := p.WindowByHandle(ctx, model.Handle(hwnd))
	if err != nil || !ok {
		return model.NoActiveWindow, err
	}
	return sample, nil
}

func (p *win32Probe) WindowByHandle(ctx context.Context, handle model.Handle) (model.WindowSample, bool, error) {
	hwnd := uintptr(handle)
	if hwnd == 0 {
		return model.NoActiveWindow, false, nil
	}
	if alive, _, _ := procIsWindow.Call(hwnd); alive == 0 {
		return model.NoActiveWindow, false, nil
	}

	length, _, _ := procGetWindowTextLengthW.Call(hwnd)
	if length == 0 {
		return model.NoActiveWindow, false, nil
	}
	buf := make([]uint16, length+1)
	n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return model.NoActiveWindow, false, nil
	}

	var pid uint32
	procGetWindowThreadProcessID.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	name, err := processName(ctx, int32(pid))
	if err != nil {
		return model.NoActiveWindow, false, err
	}

	return model.WindowSample{
		Title:       windows.UTF16ToString(buf[:n]),
		ProcessName: name,
		Handle:      handle,
	}, true, nil
}

func (p *win32Probe) CopyToClipboard(text string) error {
	return copyToClipboard(text)
}
