package model

import "fmt"

// Handle identifies an OS window across polls. Zero means no window.
type Handle uint64

// Sentinel strings reported by probes when nothing is in the foreground.
const (
	NoActiveProcess = "--System--"
	NoActiveTitle   = "--System--"
)

// WindowSample is a single observation of a window taken by a probe.
type WindowSample struct {
	Title       string
	ProcessName string
	Handle      Handle
}

// NoActiveWindow is the sample probes return when no window is focused.
var NoActiveWindow = WindowSample{
	Title:       NoActiveTitle,
	ProcessName: NoActiveProcess,
}

// IsNoActive reports whether the sample marks the absence of a foreground window.
func (w WindowSample) IsNoActive() bool {
	return w.ProcessName == NoActiveProcess && w.Title == NoActiveTitle
}

// String returns a short description used in logs.
func (w WindowSample) String() string {
	return fmt.Sprintf("[%s] %s (#%d)", w.ProcessName, w.Title, w.Handle)
}
