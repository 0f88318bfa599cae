package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/what-have-i-done/internal/tracker"
)

// Keys accepted in plain console mode, one per line.
const (
	KeySummary        = "s"
	KeyDetails        = "d"
	KeyManualAdd      = "m"
	KeyManualSubtract = "n"
	KeyPin            = "p"
	KeyUnpin          = "u"
	KeyQuit           = "q"
)

// CommandForKey maps a key to a tracker command.
func CommandForKey(key string) (tracker.Command, bool) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case KeySummary:
		return tracker.CommandSummary, true
	case KeyDetails:
		return tracker.CommandDetails, true
	case KeyManualAdd:
		return tracker.CommandManualAdd, true
	case KeyManualSubtract:
		return tracker.CommandManualSubtract, true
	case KeyPin:
		return tracker.CommandPin, true
	case KeyUnpin:
		return tracker.CommandUnpin, true
	default:
		return 0, false
	}
}

// ReadCommands forwards commands typed on r until ctx ends or input closes. A quit key
// calls quit. Commands are dropped when the tracker has not picked up earlier ones yet.
func ReadCommands(ctx context.Context, r *NonBlockingReader, commands chan<- tracker.Command, quit func()) error {
	for {
		line, err := r.ReadLine(ctx)
		if line != "" {
			if strings.EqualFold(line, KeyQuit) {
				quit()
				return nil
			}
			send(commands, line)
		}

		switch {
		case errors.Is(err, ErrInputCancelled):
			return nil
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}
	}
}

func send(commands chan<- tracker.Command, line string) {
	cmd, ok := CommandForKey(line)
	if !ok {
		slog.Debug("Ignoring unknown key", "key", line)
		return
	}

	select {
	case commands <- cmd:
	default:
		slog.Warn("Command dropped, tracker is busy", "command", cmd.String())
	}
}
