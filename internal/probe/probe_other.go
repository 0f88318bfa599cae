//go:build !linux && !darwin && !windows

package probe

import (
	"context"
	"fmt"
	"runtime"

	"github.com/Veraticus/what-have-i-done/internal/common"
	"github.com/Veraticus/what-have-i-done/internal/model"
)

type unsupportedProbe struct{}

func newPlatformProbe() WindowProbe {
	return unsupportedProbe{}
}

func (unsupportedProbe) ActiveWindow(context.Context) (model.WindowSample, error) {
	return model.NoActiveWindow, fmt.Errorf("%w: %s is not supported", common.ErrProbeUnavailable, runtime.GOOS)
}

func (unsupportedProbe) WindowByHandle(context.Context, model.Handle) (model.WindowSample, bool, error) {
	return model.NoActiveWindow, false, fmt.Errorf("%w: %s is not supported", common.ErrProbeUnavailable, runtime.GOOS)
}

func (unsupportedProbe) CopyToClipboard(text string) error {
	return copyToClipboard(text)
}
