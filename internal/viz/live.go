package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/impetus/internal/config"
	"github.com/san-kum/impetus/internal/frame"
	"github.com/san-kum/impetus/internal/impetus"
	"github.com/san-kum/impetus/internal/input"
	"github.com/san-kum/impetus/internal/motion"
	"go.uber.org/zap"
)

const (
	defaultCols     = 60
	defaultRows     = 20
	sidebarWidth    = 34
	historyCapacity = 240
	trailLength     = 24
	multiplierStep  = 1.25

	// top-left corner of the canvas inside the pad border, in cells
	padOriginX = 1
	padOriginY = 1
)

const helpText = `
╭──────────────────────────────────╮
│  drag     throw the target       │
│  space/p  pause or resume        │
│  r        recenter               │
│  + / -    scale multiplier       │
│  ?        toggle this help       │
│  q        quit                   │
╰──────────────────────────────────╯`

type FrameMsg time.Time

// padState is written by controller callbacks. Model is copied on every
// Update, so it holds this by pointer.
type padState struct {
	target    motion.Point
	trail     []motion.Point
	speeds    []float64
	xs        []float64
	throws    int
	lastEvent string
}

func (s *padState) update(x, y float64) {
	p := motion.Point{X: x, Y: y}
	s.speeds = appendCapped(s.speeds, p.Sub(s.target).Norm(), historyCapacity)
	s.xs = appendCapped(s.xs, x, historyCapacity)
	s.target = p
	s.trail = appendCapped(s.trail, p, trailLength)
}

func (s *padState) reset(p motion.Point) {
	s.target = p
	s.trail = s.trail[:0]
}

func appendCapped[T any](s []T, v T, limit int) []T {
	s = append(s, v)
	if len(s) > limit {
		s = s[len(s)-limit:]
	}
	return s
}

// Model is the live drag pad.
type Model struct {
	ctl      *impetus.Controller
	surface  *input.Surface
	pad      *input.Element
	queue    *frame.Queue
	state    *padState
	canvas   *Canvas
	cfg      *config.Config
	preset   string
	interval time.Duration

	// axes left unbounded by the config follow the pad size
	autoX, autoY bool
	showHelp     bool
}

func NewModel(cfg *config.Config, preset string, log *zap.Logger) (Model, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}

	m := Model{
		surface:  input.NewSurface(),
		queue:    frame.NewQueue(frame.SystemClock{}),
		state:    &padState{},
		canvas:   NewCanvas(defaultCols, defaultRows),
		cfg:      cfg,
		preset:   preset,
		interval: frame.Interval(cfg.FPS),
		autoX:    cfg.BoundX == nil,
		autoY:    cfg.BoundY == nil,
	}
	w, h := m.canvas.Dots()
	m.pad = m.surface.Add("pad", input.Rect{W: float64(w), H: float64(h)})

	opts := cfg.Options(impetus.DefaultOptions())
	opts.Surface = m.surface
	opts.Selector = "#pad"
	opts.Scheduler = m.queue
	opts.Logger = log
	if m.autoX {
		opts.BoundX = motion.NewRange(0, float64(w-2))
	}
	if m.autoY {
		opts.BoundY = motion.NewRange(0, float64(h-2))
	}
	if opts.InitialValues == nil {
		c := m.center()
		opts.InitialValues = &c
	}

	st := m.state
	opts.OnUpdate = st.update
	opts.OnStart = func(x, y float64) { st.lastEvent = "grab" }
	opts.OnStartDecelerating = func(x, y float64) { st.lastEvent = "release" }
	opts.OnEndDecelerating = func(x, y float64) {
		st.lastEvent = "settled"
		st.throws++
	}

	ctl, err := impetus.New(opts)
	if err != nil {
		return Model{}, err
	}
	m.ctl = ctl
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return FrameMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.ctl.Destroy()
			return m, tea.Quit
		case " ", "p":
			if m.ctl.Paused() {
				m.ctl.Resume()
			} else {
				m.ctl.Pause()
			}
		case "r":
			m.recenter()
		case "+", "=":
			m.ctl.SetMultiplier(m.ctl.Multiplier() * multiplierStep)
		case "-", "_":
			m.ctl.SetMultiplier(m.ctl.Multiplier() / multiplierStep)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		if ev, ok := pointerEvent(msg); ok {
			m.surface.Dispatch(ev)
		}
	case FrameMsg:
		m.queue.Flush()
		return m, m.tick()
	}
	return m, nil
}

// pointerEvent maps a terminal mouse event onto canvas dots. Only the
// left button starts a drag.
func pointerEvent(msg tea.MouseMsg) (input.Event, bool) {
	var kind input.Kind
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		kind = input.Down
	case msg.Action == tea.MouseActionMotion:
		kind = input.Move
	case msg.Action == tea.MouseActionRelease:
		kind = input.Up
	default:
		return input.Event{}, false
	}

	return input.Event{
		Kind: kind,
		PointerSample: input.PointerSample{
			X:         float64((msg.X-padOriginX)*2 + 1),
			Y:         float64((msg.Y-padOriginY)*4 + 2),
			ContactID: input.MouseContact,
		},
	}, true
}

func (m *Model) center() motion.Point {
	w, h := m.canvas.Dots()
	return motion.Point{X: float64(w/2 - 1), Y: float64(h/2 - 1)}
}

func (m *Model) recenter() {
	c := m.center()
	m.ctl.SetValues(c.X, c.Y)
	m.state.reset(c)
}

func (m *Model) resize(width, height int) {
	cols := width - sidebarWidth - 3
	rows := height - 3
	if cols < 8 {
		cols = 8
	}
	if rows < 4 {
		rows = 4
	}

	m.canvas = NewCanvas(cols, rows)
	w, h := m.canvas.Dots()
	m.pad.SetArea(input.Rect{W: float64(w), H: float64(h)})
	if m.autoX {
		m.ctl.SetBoundX(motion.Range{Min: 0, Max: float64(w - 2)})
	}
	if m.autoY {
		m.ctl.SetBoundY(motion.Range{Min: 0, Max: float64(h - 2)})
	}
}

func (m Model) draw() {
	m.canvas.Clear()
	trail := m.state.trail
	for i := 1; i < len(trail); i++ {
		a, b := trail[i-1], trail[i]
		m.canvas.DrawLine(round(a.X), round(a.Y), round(b.X), round(b.Y))
	}
	x, y := m.ctl.Values()
	m.canvas.Blob(round(x), round(y))
}

func round(v float64) int { return int(math.Round(v)) }

func (m Model) status() string {
	if m.ctl.Paused() {
		return statusPaused.Render("PAUSED")
	}
	switch m.ctl.State() {
	case impetus.Dragging:
		return statusDrag.Render("DRAGGING")
	case impetus.Decelerating:
		return statusCoast.Render("COASTING")
	}
	return statusIdle.Render("IDLE")
}

func (m Model) View() string {
	m.draw()
	pad := padStyle.Render(m.canvas.String())

	var s strings.Builder
	title := "IMPETUS"
	if m.preset != "" {
		title += " · " + m.preset
	}
	s.WriteString(titleStyle.Render(title) + "\n")
	s.WriteString(m.status() + "\n\n")

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	x, y := m.ctl.Values()
	v := m.ctl.Velocity()
	row("Position", fmt.Sprintf("%.1f, %.1f", x, y))
	row("Velocity", fmt.Sprintf("%.2f, %.2f", v.X, v.Y))
	row("Multiplier", fmt.Sprintf("%.2f", m.ctl.Multiplier()))
	row("Friction", fmt.Sprintf("%.2f", m.cfg.Friction))
	row("Bounce", fmt.Sprintf("%t", m.cfg.Bounce))
	row("Throws", fmt.Sprintf("%d", m.state.throws))
	if m.state.lastEvent != "" {
		row("Last", m.state.lastEvent)
	}

	s.WriteString("\n" + labelStyle.Render("Speed") + "\n" + Sparkline(m.state.speeds, sidebarWidth-4) + "\n")
	if len(m.state.xs) > 1 {
		chart := asciigraph.Plot(m.state.xs, asciigraph.Height(5), asciigraph.Width(sidebarWidth-10), asciigraph.Caption("x"))
		s.WriteString("\n" + graphStyle.Render(chart) + "\n")
	}
	s.WriteString("\n" + keyHint.Render("p:pause r:reset +/-:mult ?:help q:quit"))

	view := lipgloss.JoinHorizontal(lipgloss.Top, pad, sidebarStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + view
	}
	return view
}

// Run starts the pad in the alternate screen. Terminals that report hover
// motion get all-motion tracking; the rest only report motion while a
// button is held, which is all a drag needs.
func Run(m Model) error {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if input.Capabilities().Hover {
		opts = append(opts, tea.WithMouseAllMotion())
	} else {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
