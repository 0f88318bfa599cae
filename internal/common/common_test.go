package common

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry(t *testing.T) {
	fast := RetryOptions{InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return ErrPersistFailure
			}
			return nil
		}, fast)

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up keeping the cause", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return fmt.Errorf("%w: disk full", ErrPersistFailure)
		}, fast)

		assert.Equal(t, 3, calls)
		assert.ErrorIs(t, err, ErrMaxRetries)
		assert.ErrorIs(t, err, ErrPersistFailure)
	})

	t.Run("stops on errors that are not retryable", func(t *testing.T) {
		opts := fast
		opts.Retryable = IsRecoverable
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return ErrInvalidInput
		}, opts)

		assert.Equal(t, 1, calls)
		assert.Equal(t, ErrInvalidInput, err)
	})

	t.Run("honors cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := WithRetry(ctx, func() error { return ErrPersistFailure }, RetryOptions{InitialDelay: time.Hour})
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, ErrPersistFailure)
	})
}

func TestIsRecoverable(t *testing.T) {
	assert.True(t, IsRecoverable(fmt.Errorf("save: %w", ErrPersistFailure)))
	assert.True(t, IsRecoverable(ErrProbeUnavailable))
	assert.False(t, IsRecoverable(ErrCorruptLedger))
	assert.False(t, IsRecoverable(nil))
}

func TestUserError(t *testing.T) {
	err := NewUserError("File x.json not found", ErrLedgerNotFound)
	assert.EqualError(t, err, "File x.json not found: ledger not found")
	assert.ErrorIs(t, err, ErrLedgerNotFound)

	var userErr *UserError
	require.True(t, errors.As(err, &userErr))
	assert.Equal(t, "File x.json not found", userErr.UserMessage)

	assert.EqualError(t, NewUserError("plain", nil), "plain")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSetupLogger(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	require.NoError(t, SetupLogger(slog.LevelInfo, "json", &buf))

	LogDebug("hidden", nil)
	LogInfo("shown", Fields{"ledger": "a.json"})
	LogError(ErrPersistFailure, "failed", Fields{"attempt": 2})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"ledger":"a.json"`)
	assert.Contains(t, out, `"error":"ledger persist failed"`)

	assert.ErrorIs(t, SetupLogger(slog.LevelInfo, "xml", &buf), ErrInvalidConfig)
}
