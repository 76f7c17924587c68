package monitor

import (
	"time"

	"github.com/marcus/chaoskb/internal/remap"
)

// TickMsg triggers a status refresh
type TickMsg time.Time

// EventKind classifies an activity entry
type EventKind int

const (
	EventResult EventKind = iota
	EventShuffle
	EventTimerShuffle
	EventCaps
	EventPause
	EventResume
)

// String returns the badge text for the kind
func (k EventKind) String() string {
	switch k {
	case EventShuffle:
		return "shuffle"
	case EventTimerShuffle:
		return "timer"
	case EventCaps:
		return "caps"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	default:
		return "remap"
	}
}

// Event is one line of the activity log
type Event struct {
	Kind   EventKind
	At     time.Time
	Text   string
	Result remap.Result
}

// maxEvents caps the activity log
const maxEvents = 200

// eventSink receives prompt outcomes from the interaction loop.
type eventSink struct {
	events []Event
}

func (s *eventSink) Prompt() {}

func (s *eventSink) Shuffled(m *remap.Mapping) {
	s.add(Event{Kind: EventShuffle, Text: shuffleText(m)})
}

func (s *eventSink) CapsToggled(inverted bool) {
	s.add(Event{Kind: EventCaps, Text: capsText(inverted)})
}

func (s *eventSink) Result(res remap.Result) {
	s.add(Event{Kind: EventResult, Result: res})
}

func (s *eventSink) add(e Event) {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	s.events = append(s.events, e)
	if len(s.events) > maxEvents {
		s.events = s.events[len(s.events)-maxEvents:]
	}
}
