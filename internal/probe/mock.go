package probe

import (
	"context"
	"sync"

	"github.com/Veraticus/what-have-i-done/internal/model"
)

// MockProbe is a scripted WindowProbe for tests.
type MockProbe struct {
	windows    map[model.Handle]model.WindowSample
	activeErr  error
	clipboard  []string
	active     model.Handle
	activeHits int
	handleHits int
	mu         sync.Mutex
}

// NewMockProbe creates a probe with no windows and nothing in the foreground.
func NewMockProbe() *MockProbe {
	return &MockProbe{
		windows: make(map[model.Handle]model.WindowSample),
	}
}

// Open registers a window, replacing any window with the same handle.
func (m *MockProbe) Open(sample model.WindowSample) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.windows[sample.Handle] = sample
}

// Focus brings a registered window to the foreground, opening it if needed.
func (m *MockProbe) Focus(sample model.WindowSample) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.windows[sample.Handle] = sample
	m.active = sample.Handle
}

// Blur leaves nothing in the foreground.
func (m *MockProbe) Blur() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = 0
}

// Close removes a window. Closing the foreground window blurs it.
func (m *MockProbe) Close(handle model.Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.windows, handle)
	if m.active == handle {
		m.active = 0
	}
}

// FailWith makes ActiveWindow return err until it is called again with nil.
func (m *MockProbe) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activeErr = err
}

// ActiveWindow implements WindowProbe.
func (m *MockProbe) ActiveWindow(_ context.Context) (model.WindowSample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activeHits++
	if m.activeErr != nil {
		return model.NoActiveWindow, m.activeErr
	}
	sample, ok := m.windows[m.active]
	if !ok {
		return model.NoActiveWindow, nil
	}
	return sample, nil
}

// WindowByHandle implements WindowProbe.
func (m *MockProbe) WindowByHandle(_ context.Context, handle model.Handle) (model.WindowSample, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handleHits++
	sample, ok := m.windows[handle]
	if !ok {
		return model.NoActiveWindow, false, nil
	}
	return sample, true, nil
}

// CopyToClipboard implements WindowProbe.
func (m *MockProbe) CopyToClipboard(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clipboard = append(m.clipboard, text)
	return nil
}

// Clipboard returns everything copied so far.
func (m *MockProbe) Clipboard() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.clipboard...)
}

// Calls returns how often ActiveWindow and WindowByHandle were called.
func (m *MockProbe) Calls() (active, byHandle int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeHits, m.handleHits
}
