package tracker

import "time"

// Stopwatch measures active time for the current window. It is a value: every
// operation returns the updated stopwatch and takes the current time explicitly.
type Stopwatch struct {
	runningSince time.Time
	accumulated  time.Duration
}

// Running reports whether the stopwatch is counting.
func (s Stopwatch) Running() bool {
	return !s.runningSince.IsZero()
}

// Start resumes counting at now. Starting a running stopwatch changes nothing.
func (s Stopwatch) Start(now time.Time) Stopwatch {
	if s.Running() {
		return s
	}
	s.runningSince = now
	return s
}

// Stop pauses counting at now, keeping the elapsed time.
func (s Stopwatch) Stop(now time.Time) Stopwatch {
	if !s.Running() {
		return s
	}
	s.accumulated = s.Elapsed(now)
	s.runningSince = time.Time{}
	return s
}

// Reset returns a stopped stopwatch with nothing elapsed.
func (s Stopwatch) Reset() Stopwatch {
	return Stopwatch{}
}

// Restart returns a stopwatch counting from zero at now.
func (s Stopwatch) Restart(now time.Time) Stopwatch {
	return Stopwatch{runningSince: now}
}

// Elapsed returns the counted time as of now. Clock steps backwards count as zero.
func (s Stopwatch) Elapsed(now time.Time) time.Duration {
	if !s.Running() {
		return s.accumulated
	}
	running := now.Sub(s.runningSince)
	if running < 0 {
		running = 0
	}
	return s.accumulated + running
}
