package cli

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/what-have-i-done/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandForKey(t *testing.T) {
	tests := []struct {
		key  string
		want tracker.Command
		ok   bool
	}{
		{"s", tracker.CommandSummary, true},
		{"D", tracker.CommandDetails, true},
		{" m ", tracker.CommandManualAdd, true},
		{"n", tracker.CommandManualSubtract, true},
		{"p", tracker.CommandPin, true},
		{"u", tracker.CommandUnpin, true},
		{"q", 0, false},
		{"x", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cmd, ok := CommandForKey(tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, cmd)
		})
	}
}

func TestReadCommands(t *testing.T) {
	t.Run("forwards known keys until EOF", func(t *testing.T) {
		commands := make(chan tracker.Command, 8)
		r := NewNonBlockingReader(strings.NewReader("s\nwhat\np\n\nu"))

		err := ReadCommands(context.Background(), r, commands, func() { t.Fatal("unexpected quit") })
		require.NoError(t, err)
		close(commands)

		var got []tracker.Command
		for cmd := range commands {
			got = append(got, cmd)
		}
		assert.Equal(t, []tracker.Command{tracker.CommandSummary, tracker.CommandPin, tracker.CommandUnpin}, got)
	})

	t.Run("quit key stops reading", func(t *testing.T) {
		commands := make(chan tracker.Command, 8)
		r := NewNonBlockingReader(strings.NewReader("m\nq\nd\n"))
		quit := false

		require.NoError(t, ReadCommands(context.Background(), r, commands, func() { quit = true }))

		assert.True(t, quit)
		require.Len(t, commands, 1)
		assert.Equal(t, tracker.CommandManualAdd, <-commands)
	})

	t.Run("full channel drops commands", func(t *testing.T) {
		commands := make(chan tracker.Command, 1)
		r := NewNonBlockingReader(strings.NewReader("s\nd\n"))

		require.NoError(t, ReadCommands(context.Background(), r, commands, func() {}))

		require.Len(t, commands, 1)
		assert.Equal(t, tracker.CommandSummary, <-commands)
	})

	t.Run("returns on cancellation", func(t *testing.T) {
		pr, pw := io.Pipe()
		defer func() { _ = pw.Close() }()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := ReadCommands(ctx, NewNonBlockingReader(pr), make(chan tracker.Command, 1), func() {})
		assert.NoError(t, err)
	})
}
