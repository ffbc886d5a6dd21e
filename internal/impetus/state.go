package impetus

import "fmt"

type State int

const (
	Idle State = iota
	Dragging
	Decelerating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Decelerating:
		return "decelerating"
	}
	return fmt.Sprintf("state(%d)", int(s))
}
