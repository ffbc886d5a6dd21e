package input

import "testing"

func TestSurface_DownRouting(t *testing.T) {
	s := NewSurface()
	pad := s.Add("pad", Rect{X: 0, Y: 0, W: 10, H: 10})

	var padHits, rootHits int
	pad.OnDown(func(PointerSample) { padHits++ })
	s.Root().OnDown(func(PointerSample) { rootHits++ })

	s.Dispatch(Event{Kind: Down, PointerSample: PointerSample{X: 5, Y: 5}})
	s.Dispatch(Event{Kind: Down, PointerSample: PointerSample{X: 50, Y: 5}})

	if padHits != 1 {
		t.Errorf("expected 1 pad hit, got %d", padHits)
	}
	if rootHits != 2 {
		t.Errorf("expected root to see every down, got %d", rootHits)
	}
}

func TestSurface_MoveGoesToSurfaceListeners(t *testing.T) {
	s := NewSurface()
	pad := s.Add("pad", Rect{W: 10, H: 10})

	padHits := 0
	pad.OnDown(func(PointerSample) { padHits++ })

	var got []PointerSample
	unsub := s.On(Move, func(p PointerSample) { got = append(got, p) })

	s.Dispatch(Event{Kind: Move, PointerSample: PointerSample{X: 1, Y: 2, ContactID: 3}})
	unsub()
	unsub()
	s.Dispatch(Event{Kind: Move, PointerSample: PointerSample{X: 4, Y: 5}})

	if len(got) != 1 || got[0].ContactID != 3 {
		t.Errorf("unexpected moves: %+v", got)
	}
	if padHits != 0 {
		t.Error("move must not reach element down listeners")
	}
	if s.Listening(Move) != 0 {
		t.Errorf("expected no move listeners, got %d", s.Listening(Move))
	}
}

func TestSurface_UnsubscribeDuringDispatch(t *testing.T) {
	s := NewSurface()

	var second func()
	calls := 0
	s.On(Up, func(PointerSample) {
		calls++
		second()
	})
	second = s.On(Up, func(PointerSample) { calls++ })

	if n := s.Dispatch(Event{Kind: Up}); n != 1 {
		t.Errorf("expected 1 delivery, got %d", n)
	}
	if calls != 1 {
		t.Errorf("removed handler still ran, calls=%d", calls)
	}
}

func TestSurface_Query(t *testing.T) {
	s := NewSurface()
	s.Add("canvas", Rect{W: 1, H: 1})

	tests := []struct {
		sel  string
		want string
		ok   bool
	}{
		{"", "root", true},
		{"document", "root", true},
		{":root", "root", true},
		{"#canvas", "canvas", true},
		{"canvas", "canvas", true},
		{"#missing", "", false},
	}

	for _, tt := range tests {
		el, ok := s.Query(tt.sel)
		if ok != tt.ok {
			t.Errorf("Query(%q) ok=%v, want %v", tt.sel, ok, tt.ok)
			continue
		}
		if ok && el.ID() != tt.want {
			t.Errorf("Query(%q) = %s, want %s", tt.sel, el.ID(), tt.want)
		}
	}

	s.Remove("canvas")
	if _, ok := s.Query("#canvas"); ok {
		t.Error("removed element still resolvable")
	}
}

func TestKindString(t *testing.T) {
	if Down.String() != "down" || Cancel.String() != "cancel" || Kind(9).String() != "kind(9)" {
		t.Error("unexpected Kind strings")
	}
}

func TestDefaultSurface(t *testing.T) {
	if Default() != Default() {
		t.Error("Default should return one shared surface")
	}
	if n := Default().Listening(Move); n != 1 {
		t.Errorf("expected one host move listener, got %d", n)
	}
}

func TestProbe(t *testing.T) {
	tests := []struct {
		term  string
		hover bool
	}{
		{"", false},
		{"dumb", false},
		{"linux", false},
		{"vt100", false},
		{"xterm-256color", true},
		{"screen", true},
	}
	for _, tt := range tests {
		if got := probe(tt.term).Hover; got != tt.hover {
			t.Errorf("probe(%q).Hover = %v, want %v", tt.term, got, tt.hover)
		}
	}
}

func TestElement_SetArea(t *testing.T) {
	s := NewSurface()
	el := s.Add("pad", Rect{X: 0, Y: 0, W: 10, H: 10})

	hits := 0
	el.OnDown(func(PointerSample) { hits++ })

	el.SetArea(Rect{X: 20, Y: 20, W: 10, H: 10})
	s.Dispatch(Event{Kind: Down, PointerSample: PointerSample{X: 5, Y: 5}})
	if hits != 0 {
		t.Errorf("expected old area to miss, got %d hits", hits)
	}
	s.Dispatch(Event{Kind: Down, PointerSample: PointerSample{X: 25, Y: 25}})
	if hits != 1 {
		t.Errorf("expected 1 hit after resize, got %d", hits)
	}
}
