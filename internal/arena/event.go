package arena

import "fmt"

// EventKind identifies what happened during a frame.
type EventKind int

const (
	EventPaddleMoved EventKind = iota
	EventBallSpawned
	EventScored
	EventMoverMoved
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventPaddleMoved:
		return "paddle_moved"
	case EventBallSpawned:
		return "ball_spawned"
	case EventScored:
		return "scored"
	case EventMoverMoved:
		return "mover_moved"
	default:
		return "unknown"
	}
}

// Event is emitted by Advance.
// Side is set for PaddleMoved and Scored; Mover is set for MoverMoved.
type Event struct {
	Kind  EventKind
	Side  Side
	Mover string
}

// PaddleMoved reports that a paddle changed position.
func PaddleMoved(side Side) Event {
	return Event{Kind: EventPaddleMoved, Side: side}
}

// BallSpawned reports that a new ball entered play.
func BallSpawned() Event {
	return Event{Kind: EventBallSpawned}
}

// Scored reports that side won a point.
func Scored(side Side) Event {
	return Event{Kind: EventScored, Side: side}
}

// MoverMoved reports that the named mover changed position.
func MoverMoved(name string) Event {
	return Event{Kind: EventMoverMoved, Mover: name}
}

func (e Event) String() string {
	switch e.Kind {
	case EventPaddleMoved, EventScored:
		return fmt.Sprintf("%s{%s}", e.Kind, e.Side)
	case EventMoverMoved:
		return fmt.Sprintf("%s{%s}", e.Kind, e.Mover)
	default:
		return e.Kind.String()
	}
}
