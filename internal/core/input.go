package core

// Direction is one of the four cardinal movement directions a player can
// hold. Directions serialize as their string names in recordings.
type Direction string

const (
	DirUp    Direction = "up"
	DirDown  Direction = "down"
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

// Directions lists all valid directions in a stable order.
// Used when serializing direction sets deterministically.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// Action names a discrete input channel for press/release events.
// The four direction channels share names with Direction values.
type Action string

const (
	ActionUp        Action = "up"
	ActionDown      Action = "down"
	ActionLeft      Action = "left"
	ActionRight     Action = "right"
	ActionPrimary   Action = "action"
	ActionSecondary Action = "secondary"
	ActionPause     Action = "pause"
	ActionPointer   Action = "pointer"
)

// Action returns the event channel corresponding to this direction.
func (d Direction) Action() Action {
	return Action(d)
}

// GameInput is the normalized input snapshot aggregated from all sources.
// It is rebuilt every time the input manager is asked for current input and
// mutated only by source event handlers.
type GameInput struct {
	// Directions holds the set of directions currently asserted by any
	// source. Multiple sources may assert the same direction.
	Directions map[Direction]bool

	Action          bool // Primary action (fire, flap, rotate)
	SecondaryAction bool // Secondary action (special, drop)
	Pause           bool // Pause request

	Pointer     *Vec2 // Last known pointer position, nil if none seen
	PointerDown bool  // Whether the pointer/touch is currently down
}

// NewGameInput creates an empty input snapshot.
func NewGameInput() GameInput {
	return GameInput{Directions: make(map[Direction]bool)}
}

// SetDirection asserts or releases a direction.
func (in *GameInput) SetDirection(d Direction, held bool) {
	if in.Directions == nil {
		in.Directions = make(map[Direction]bool)
	}
	if held {
		in.Directions[d] = true
	} else {
		delete(in.Directions, d)
	}
}

// Has reports whether the given direction is currently asserted.
func (in GameInput) Has(d Direction) bool {
	return in.Directions[d]
}

// Clone returns a deep copy, including the direction set and pointer.
// Buffered frames hold clones so later source mutation cannot corrupt them.
func (in GameInput) Clone() GameInput {
	c := GameInput{
		Action:          in.Action,
		SecondaryAction: in.SecondaryAction,
		Pause:           in.Pause,
		PointerDown:     in.PointerDown,
		Directions:      make(map[Direction]bool, len(in.Directions)),
	}
	for d, held := range in.Directions {
		if held {
			c.Directions[d] = true
		}
	}
	if in.Pointer != nil {
		p := *in.Pointer
		c.Pointer = &p
	}
	return c
}

// Clear releases all directions, buttons and pointer state.
func (in *GameInput) Clear() {
	for d := range in.Directions {
		delete(in.Directions, d)
	}
	in.Action = false
	in.SecondaryAction = false
	in.Pause = false
	in.Pointer = nil
	in.PointerDown = false
}

// Equal reports field-for-field equality with another snapshot.
// Direction sets compare by membership, not iteration order.
func (in GameInput) Equal(o GameInput) bool {
	if in.Action != o.Action || in.SecondaryAction != o.SecondaryAction ||
		in.Pause != o.Pause || in.PointerDown != o.PointerDown {
		return false
	}
	if (in.Pointer == nil) != (o.Pointer == nil) {
		return false
	}
	if in.Pointer != nil && *in.Pointer != *o.Pointer {
		return false
	}
	if len(in.Directions) != len(o.Directions) {
		return false
	}
	for d, held := range in.Directions {
		if held && !o.Directions[d] {
			return false
		}
	}
	return true
}
