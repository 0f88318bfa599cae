package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Veraticus/what-have-i-done/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_FoldsMicroPeriods(t *testing.T) {
	entries := model.Entries{
		"Editor": {"file.txt": 5.0, "other.txt": 0.5},
	}

	r := Summarize(entries, Options{Threshold: 1.0})

	require.Len(t, r.Processes, 1)
	editor := r.Processes[0]
	assert.Equal(t, "Editor", editor.Name)
	assert.InDelta(t, 5.5, editor.Total, 1e-9)
	assert.Equal(t, []Item{
		{Title: "file.txt", Minutes: 5.0},
		{Title: MicroPeriodsTitle, Minutes: 0.5, Micro: true},
	}, editor.Items)
}

func TestSummarize(t *testing.T) {
	entries := model.Entries{
		"Code":     {"a.go": 30, "b.go": 45, "c.go": 0.2, "d.go": 0.3},
		"firefox":  {"Docs": 0.4, "News": 0.5},
		"LockApp":  {"LockApp": 20},
		"terminal": {"zsh": 0.1},
	}

	tests := []struct {
		name      string
		opts      Options
		processes []string
		codeItems []Item
	}{
		{
			name:      "default threshold hides small processes",
			opts:      Options{},
			processes: []string{"Code", "LockApp"},
			codeItems: []Item{
				{Title: "b.go", Minutes: 45},
				{Title: "a.go", Minutes: 30},
				{Title: MicroPeriodsTitle, Minutes: 0.5, Micro: true},
			},
		},
		{
			name:      "show all keeps everything",
			opts:      Options{ShowAll: true},
			processes: []string{"Code", "LockApp", "firefox", "terminal"},
			codeItems: []Item{
				{Title: "b.go", Minutes: 45},
				{Title: "a.go", Minutes: 30},
				{Title: "d.go", Minutes: 0.3},
				{Title: "c.go", Minutes: 0.2},
			},
		},
		{
			name:      "higher threshold",
			opts:      Options{Threshold: 40},
			processes: []string{"Code"},
			codeItems: []Item{
				{Title: "b.go", Minutes: 45},
				{Title: MicroPeriodsTitle, Minutes: 30.5, Micro: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Summarize(entries, tt.opts)

			var names []string
			for _, p := range r.Processes {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.processes, names)

			require.NotEmpty(t, r.Processes)
			require.Len(t, r.Processes[0].Items, len(tt.codeItems))
			for i, want := range tt.codeItems {
				got := r.Processes[0].Items[i]
				assert.Equal(t, want.Title, got.Title)
				assert.Equal(t, want.Micro, got.Micro)
				assert.InDelta(t, want.Minutes, got.Minutes, 1e-9)
			}
		})
	}
}

func TestSummarize_ProcessWithOnlyMicroPeriods(t *testing.T) {
	entries := model.Entries{
		"chat": {"a": 0.6, "b": 0.6},
	}

	r := Summarize(entries, Options{})

	require.Len(t, r.Processes, 1)
	assert.InDelta(t, 1.2, r.Processes[0].Total, 1e-9)
	assert.Empty(t, r.Processes[0].Items)
}

func TestSummarize_Totals(t *testing.T) {
	entries := model.Entries{
		"Code":    {"a.go": 30},
		"LockApp": {"LockApp": 20},
		"tiny":    {"x": 0.5},
	}

	r := Summarize(entries, Options{IdleProcesses: []string{"LockApp", "screensaver"}})

	assert.InDelta(t, 50.5, r.Total, 1e-9)
	assert.InDelta(t, 20, r.Idle, 1e-9)
	assert.InDelta(t, 30.5, r.Active, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	r := Summarize(model.Entries{}, Options{})
	assert.Empty(t, r.Processes)
	assert.Zero(t, r.Total)
}

func TestSummarize_TiesAreStable(t *testing.T) {
	entries := model.Entries{
		"b": {"y": 5, "x": 5},
		"a": {"z": 10},
	}

	for i := 0; i < 5; i++ {
		r := Summarize(entries, Options{})
		require.Len(t, r.Processes, 2)
		assert.Equal(t, "a", r.Processes[0].Name)
		assert.Equal(t, "b", r.Processes[1].Name)
		assert.Equal(t, "x", r.Processes[1].Items[0].Title)
	}
}

func TestRender(t *testing.T) {
	r := Summarize(model.Entries{
		"Editor":  {"file.txt": 5.0, "other.txt": 0.5},
		"LockApp": {"LockApp": 90},
	}, Options{IdleProcesses: []string{"LockApp"}})

	t.Run("summary only", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, r, RenderOptions{}))
		assert.Equal(t, "[LockApp] Total: 01:30:00\n[Editor ] Total: 00:05:30\n", buf.String())
	})

	t.Run("details and totals", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, r, RenderOptions{Details: true, Totals: true}))
		out := buf.String()

		assert.Contains(t, out, "  + 00:05:00 - file.txt\n")
		assert.Contains(t, out, "  + 00:00:30 - [several micro periods, total]\n")
		assert.Contains(t, out, divider)

		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		require.GreaterOrEqual(t, len(lines), 3)
		footer := lines[len(lines)-3:]
		assert.True(t, strings.HasPrefix(footer[0], "TOTAL "))
		assert.True(t, strings.HasSuffix(footer[0], "01:35:30"))
		assert.True(t, strings.HasSuffix(footer[1], "- 01:30:00"))
		assert.True(t, strings.HasSuffix(footer[2], "00:05:30"))
		assert.Equal(t, len(footer[0]), len(footer[1]))
		assert.Equal(t, len(footer[0]), len(footer[2]))
	})
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		expected string
		minutes  float64
	}{
		{minutes: 0, expected: "00:00:00"},
		{minutes: 0.5, expected: "00:00:30"},
		{minutes: 5.5, expected: "00:05:30"},
		{minutes: 61.25, expected: "01:01:15"},
		{minutes: 1500, expected: "25:00:00"},
		{minutes: -3, expected: "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.minutes))
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "02:30", FormatClock(2.5))
	assert.Equal(t, "59:59", FormatClock(59.99))
	assert.Equal(t, "01:00:00", FormatClock(60))
	assert.Equal(t, "02:05:30", FormatClock(125.5))
}

func TestShortTitle(t *testing.T) {
	assert.Equal(t, "short", ShortTitle("short", 50))

	long := strings.Repeat("a", 20) + strings.Repeat("-", 30) + strings.Repeat("z", 20)
	assert.Equal(t, strings.Repeat("a", 20)+"..."+strings.Repeat("z", 20), ShortTitle(long, 50))
}
