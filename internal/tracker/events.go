package tracker

import (
	"time"

	"github.com/Veraticus/what-have-i-done/internal/model"
	"github.com/Veraticus/what-have-i-done/internal/report"
)

// Command is a user request delivered to the tracker between polls.
type Command int

// Commands understood by the tracker.
const (
	CommandSummary Command = iota + 1
	CommandDetails
	CommandManualAdd
	CommandManualSubtract
	CommandPin
	CommandUnpin
)

func (c Command) String() string {
	switch c {
	case CommandSummary:
		return "summary"
	case CommandDetails:
		return "details"
	case CommandManualAdd:
		return "manual-add"
	case CommandManualSubtract:
		return "manual-subtract"
	case CommandPin:
		return "pin"
	case CommandUnpin:
		return "unpin"
	default:
		return "unknown"
	}
}

// NoticeKind identifies a one-off event worth telling the user about.
type NoticeKind int

// Notice kinds.
const (
	NoticeDayStarted NoticeKind = iota + 1
	NoticePinned
	NoticeUnpinned
	NoticePinnedClosed
	NoticeNothingToPin
	NoticeManualAdjusted
	NoticePersistFailed
)

// Notice describes an event. Only the fields relevant to Kind are set.
type Notice struct {
	Day    time.Time
	Err    error
	Window model.WindowSample
	// Minutes is the manual adjustment applied.
	Minutes float64
	// Total is the manual bucket after the adjustment.
	Total float64
	Kind  NoticeKind
}

// Status is the live view of the current window, published once per poll.
type Status struct {
	Process string
	Title   string
	// WindowMinutes covers the current pair: recorded plus running time.
	WindowMinutes float64
	// ProcessMinutes covers every title of the current process.
	ProcessMinutes float64
	// DayMinutes covers the whole day.
	DayMinutes float64
	Active     bool
	Pinned     bool
}

// Summary is a report requested by the user.
type Summary struct {
	Day     time.Time
	Report  report.Report
	Details bool
}

// Sink receives everything the tracker wants shown. Implementations must not block.
type Sink interface {
	Status(Status)
	Notice(Notice)
	Summary(Summary)
}

type discardSink struct{}

func (discardSink) Status(Status)   {}
func (discardSink) Notice(Notice)   {}
func (discardSink) Summary(Summary) {}
