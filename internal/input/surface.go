package input

import (
	"strings"
)

// Source delivers pointer-down events for one element.
type Source interface {
	OnDown(h Handler) (unsubscribe func())
}

// Rect is an axis-aligned hit area.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Element is a named region of a Surface. The root element covers the
// whole surface.
type Element struct {
	id   string
	area *Rect
	down *listeners
}

func (e *Element) ID() string { return e.id }

func (e *Element) Area() (Rect, bool) {
	if e.area == nil {
		return Rect{}, false
	}
	return *e.area, true
}

// SetArea moves or resizes the element. Subscriptions are kept.
func (e *Element) SetArea(r Rect) { e.area = &r }

func (e *Element) OnDown(h Handler) func() {
	return e.down.add(h)
}

func (e *Element) hit(x, y float64) bool {
	return e.area == nil || e.area.Contains(x, y)
}

// Surface is the document-level event target. Down events are delivered
// to every element under the pointer; move, up and cancel go to the
// surface listeners only.
type Surface struct {
	root      *Element
	elements  []*Element
	listeners map[Kind]*listeners
}

func NewSurface() *Surface {
	s := &Surface{
		root:      &Element{id: "root", down: newListeners()},
		listeners: make(map[Kind]*listeners),
	}
	for _, k := range []Kind{Down, Move, Up, Cancel} {
		s.listeners[k] = newListeners()
	}
	return s
}

func (s *Surface) Root() *Element { return s.root }

// Add registers an element covering area, replacing any element with the
// same id.
func (s *Surface) Add(id string, area Rect) *Element {
	s.Remove(id)
	el := &Element{id: id, area: &area, down: newListeners()}
	s.elements = append(s.elements, el)
	return el
}

func (s *Surface) Remove(id string) {
	for i, el := range s.elements {
		if el.id == id {
			s.elements = append(s.elements[:i], s.elements[i+1:]...)
			return
		}
	}
}

// Query resolves a selector: "#id" or "id" names an element; "", ":root"
// and "document" name the root.
func (s *Surface) Query(selector string) (*Element, bool) {
	sel := strings.TrimSpace(selector)
	switch sel {
	case "", ":root", "document":
		return s.root, true
	}
	sel = strings.TrimPrefix(sel, "#")
	for _, el := range s.elements {
		if el.id == sel {
			return el, true
		}
	}
	return nil, false
}

// On subscribes h to surface-level events of kind k.
func (s *Surface) On(k Kind, h Handler) func() {
	l, ok := s.listeners[k]
	if !ok {
		return func() {}
	}
	return l.add(h)
}

// Dispatch delivers ev and reports how many handlers received it.
func (s *Surface) Dispatch(ev Event) int {
	if ev.Kind != Down {
		return s.listeners[ev.Kind].emit(ev.PointerSample)
	}

	n := 0
	for _, el := range s.elements {
		if el.hit(ev.X, ev.Y) {
			n += el.down.emit(ev.PointerSample)
		}
	}
	n += s.root.down.emit(ev.PointerSample)
	n += s.listeners[Down].emit(ev.PointerSample)
	return n
}

// Listening reports the number of surface-level handlers for k.
func (s *Surface) Listening(k Kind) int {
	if l, ok := s.listeners[k]; ok {
		return len(l.order)
	}
	return 0
}

type listeners struct {
	next  int
	order []int
	fns   map[int]Handler
}

func newListeners() *listeners {
	return &listeners{fns: make(map[int]Handler)}
}

func (l *listeners) add(h Handler) func() {
	l.next++
	id := l.next
	l.order = append(l.order, id)
	l.fns[id] = h

	return func() {
		if _, ok := l.fns[id]; !ok {
			return
		}
		delete(l.fns, id)
		for i, v := range l.order {
			if v == id {
				l.order = append(l.order[:i], l.order[i+1:]...)
				break
			}
		}
	}
}

// emit calls handlers in subscription order. Handlers removed by an
// earlier handler during the same emit are skipped.
func (l *listeners) emit(p PointerSample) int {
	ids := make([]int, len(l.order))
	copy(ids, l.order)

	n := 0
	for _, id := range ids {
		h, ok := l.fns[id]
		if !ok {
			continue
		}
		h(p)
		n++
	}
	return n
}
