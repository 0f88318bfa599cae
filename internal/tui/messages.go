package tui

import "github.com/Veraticus/what-have-i-done/internal/tracker"

// Messages sent from the tracker goroutine.
type statusMsg struct {
	status tracker.Status
}

type noticeMsg struct {
	notice tracker.Notice
}

type summaryMsg struct {
	summary tracker.Summary
}

type trackerDoneMsg struct {
	err error
}
