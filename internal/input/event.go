// Package input normalizes pointer events into a single sample type and
// routes them from a Surface to subscribed handlers.
package input

import "fmt"

type Kind int

const (
	Down Kind = iota
	Move
	Up
	Cancel
)

func (k Kind) String() string {
	switch k {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	case Cancel:
		return "cancel"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MouseContact is the contact id of a mouse pointer. Touch contacts use
// non-negative ids.
const MouseContact = -1

// PointerSample is a pointer position in surface coordinates.
type PointerSample struct {
	X, Y      float64
	ContactID int
}

type Event struct {
	Kind Kind
	PointerSample
}

type Handler func(PointerSample)
