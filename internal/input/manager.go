package input

import (
	"sort"

	"github.com/charmbracelet/log"

	"github.com/arcadekit/engine/internal/core"
)

// Handler observes input edges before game logic sees them. Returning true
// consumes the event and stops propagation to lower-priority handlers.
type Handler func(Event) bool

// HandlerRegistration identifies a registered handler for removal.
type HandlerRegistration struct {
	id int
}

type registeredHandler struct {
	id       int
	priority int
	fn       Handler
}

// ManagerOptions configures a Manager. Zero values select defaults.
type ManagerOptions struct {
	// Bindings maps physical key codes to input channels. Defaults to
	// DefaultBindings().
	Bindings map[string]core.Action

	// Buffer receives per-frame captures and edge events. Defaults to a
	// buffer with default sizing.
	Buffer *Buffer

	// Logger defaults to log.Default().
	Logger *log.Logger
}

// Manager aggregates keyboard, pointer and touch sources into one normalized
// GameInput and feeds edges into the frame buffer. Not safe for concurrent
// use; in the terminal host all events arrive on the program goroutine.
type Manager struct {
	current  core.GameInput
	keysDown map[string]bool
	bindings map[string]core.Action
	buffer   *Buffer
	logger   *log.Logger

	// frame is the frame number events are currently tagged with; it is
	// the frame after the most recent capture.
	frame uint64

	handlers    []registeredHandler
	nextHandler int

	// swipeReleases holds directions to auto-release after the next
	// capture, so a swipe registers as a one-frame press. tapReleases
	// does the same for keys on hosts that never deliver key-up events.
	swipeReleases []core.Direction
	tapReleases   []string
}

// DefaultBindings returns the standard keyboard layout: arrows and WASD for
// movement, space for the primary action, x for the secondary, p and esc
// for pause.
func DefaultBindings() map[string]core.Action {
	return map[string]core.Action{
		"up":    core.ActionUp,
		"down":  core.ActionDown,
		"left":  core.ActionLeft,
		"right": core.ActionRight,
		"w":     core.ActionUp,
		"s":     core.ActionDown,
		"a":     core.ActionLeft,
		"d":     core.ActionRight,
		" ":     core.ActionPrimary,
		"x":     core.ActionSecondary,
		"p":     core.ActionPause,
		"esc":   core.ActionPause,
	}
}

// NewManager creates a manager with an empty input state.
func NewManager(opts ManagerOptions) *Manager {
	if opts.Bindings == nil {
		opts.Bindings = DefaultBindings()
	}
	if opts.Buffer == nil {
		opts.Buffer = NewBuffer(BufferOptions{Logger: opts.Logger})
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Manager{
		current:  core.NewGameInput(),
		keysDown: make(map[string]bool),
		bindings: opts.Bindings,
		buffer:   opts.Buffer,
		logger:   opts.Logger,
	}
}

// Buffer returns the frame buffer the manager feeds.
func (m *Manager) Buffer() *Buffer { return m.buffer }

// Current returns a deep copy of the live input state.
func (m *Manager) Current() core.GameInput {
	return m.current.Clone()
}

// KeyDown processes a key press. Held-key repeats are ignored so each
// physical press produces exactly one press edge.
func (m *Manager) KeyDown(code string) {
	if m.keysDown[code] {
		return
	}
	m.keysDown[code] = true

	action, bound := m.bindings[code]
	if !bound {
		return
	}
	m.applyAction(action, true)
	m.emit(action, true)
}

// KeyUp processes a key release.
func (m *Manager) KeyUp(code string) {
	if !m.keysDown[code] {
		return
	}
	delete(m.keysDown, code)

	action, bound := m.bindings[code]
	if !bound {
		return
	}
	m.applyAction(action, false)
	m.emit(action, false)
}

// PointerMove updates the tracked pointer position.
func (m *Manager) PointerMove(x, y float64) {
	m.current.Pointer = &core.Vec2{X: x, Y: y}
}

// PointerDown registers a pointer press at the given position.
func (m *Manager) PointerDown(x, y float64) {
	m.current.Pointer = &core.Vec2{X: x, Y: y}
	if m.current.PointerDown {
		return
	}
	m.current.PointerDown = true
	m.emit(core.ActionPointer, true)
}

// PointerUp registers a pointer release.
func (m *Manager) PointerUp() {
	if !m.current.PointerDown {
		return
	}
	m.current.PointerDown = false
	m.emit(core.ActionPointer, false)
}

// Tap registers a key press with an automatic release applied after the
// next captured frame. Terminal hosts use this since they receive discrete
// keypresses but no key-up events.
func (m *Manager) Tap(code string) {
	m.KeyDown(code)
	m.tapReleases = append(m.tapReleases, code)
}

// Swipe registers a touch swipe as a directional press lasting exactly one
// frame: the press is visible in the next captured snapshot and the release
// is applied right after that capture.
func (m *Manager) Swipe(dir core.Direction) {
	m.current.SetDirection(dir, true)
	m.emit(dir.Action(), true)
	m.swipeReleases = append(m.swipeReleases, dir)
}

// Blur releases every held key, direction and button. Called when the host
// window loses focus, so keys released while unfocused cannot stick.
func (m *Manager) Blur() {
	for code := range m.keysDown {
		m.KeyUp(code)
	}
	if m.current.PointerDown {
		m.PointerUp()
	}
	m.current.Clear()
	m.swipeReleases = nil
	m.tapReleases = nil
}

// CaptureFrame snapshots the current input into the buffer for the given
// frame, applies deferred swipe releases and evicts stale frames. The host
// calls this exactly once per loop frame.
func (m *Manager) CaptureFrame(frame uint64) {
	m.buffer.CaptureFrame(frame, m.current)
	m.frame = frame + 1

	for _, dir := range m.swipeReleases {
		m.current.SetDirection(dir, false)
		m.emit(dir.Action(), false)
	}
	m.swipeReleases = nil

	for _, code := range m.tapReleases {
		m.KeyUp(code)
	}
	m.tapReleases = nil

	m.buffer.Cleanup(frame)
}

// RegisterHandler adds an edge handler. Handlers run in descending priority
// order; a handler that returns true consumes the event.
func (m *Manager) RegisterHandler(priority int, fn Handler) *HandlerRegistration {
	id := m.nextHandler
	m.nextHandler++
	m.handlers = append(m.handlers, registeredHandler{id: id, priority: priority, fn: fn})
	sort.SliceStable(m.handlers, func(i, j int) bool {
		return m.handlers[i].priority > m.handlers[j].priority
	})
	return &HandlerRegistration{id: id}
}

// UnregisterHandler removes a handler. Unknown registrations are ignored.
func (m *Manager) UnregisterHandler(r *HandlerRegistration) {
	if r == nil {
		return
	}
	for i, h := range m.handlers {
		if h.id == r.id {
			m.handlers = append(m.handlers[:i], m.handlers[i+1:]...)
			return
		}
	}
}

// Reset clears all live input state and the frame buffer.
func (m *Manager) Reset() {
	m.current = core.NewGameInput()
	m.keysDown = make(map[string]bool)
	m.swipeReleases = nil
	m.tapReleases = nil
	m.frame = 0
	m.buffer.Reset()
}

func (m *Manager) applyAction(action core.Action, pressed bool) {
	switch action {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		m.current.SetDirection(core.Direction(action), pressed)
	case core.ActionPrimary:
		m.current.Action = pressed
	case core.ActionSecondary:
		m.current.SecondaryAction = pressed
	case core.ActionPause:
		m.current.Pause = pressed
	}
}

// emit records the edge in the buffer and dispatches it to handlers.
func (m *Manager) emit(action core.Action, pressed bool) {
	m.buffer.AddEvent(m.frame, action, pressed)

	e := Event{Frame: m.frame, Action: action, Pressed: pressed}
	for _, h := range m.handlers {
		if h.fn(e) {
			return
		}
	}
}
