// Package fsm provides a generic, config-driven finite state machine with
// guarded transitions, lifecycle hooks and synchronous transition
// notifications. One machine is instantiated per game session.
package fsm

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
)

// Hook runs on state entry or exit. The second argument is the other state
// involved: the previous state for OnEnter, the next state for OnExit.
// The context is the opaque value supplied in Config; the machine never
// inspects it.
type Hook func(ctx any, other string)

// UpdateHook runs every frame while its state is current.
type UpdateHook func(ctx any, dtMS float64)

// StateDefinition describes one named state and its optional hooks.
type StateDefinition struct {
	Name     string
	OnEnter  Hook
	OnExit   Hook
	OnUpdate UpdateHook
}

// TransitionDefinition allows the (From, To) pair, optionally guarded by a
// condition and accompanied by a callback invoked between the exit and
// enter hooks.
type TransitionDefinition struct {
	From, To     string
	Condition    func(ctx any) bool
	OnTransition func(ctx any)
}

// Config configures a Machine. A nil Transitions table allows every
// non-self transition; supplying a table restricts transitions to exactly
// the listed pairs (which may include self-transitions).
type Config struct {
	States      []StateDefinition
	Transitions []TransitionDefinition
	Initial     string
	Context     any

	// Logger receives hook and listener fault reports and illegal
	// transition warnings. Defaults to log.Default().
	Logger *log.Logger
}

// TransitionEvent is published to subscribers after every completed
// transition.
type TransitionEvent struct {
	PreviousState string
	CurrentState  string
	Timestamp     time.Time
}

// Listener receives transition events.
type Listener func(TransitionEvent)

// Subscription identifies a registered listener for Unsubscribe.
type Subscription struct {
	id int
}

// Machine is always in exactly one named state from the configured set.
// It is not safe for concurrent use; all engine state is mutated from the
// per-frame callback chain.
type Machine struct {
	states      map[string]StateDefinition
	transitions map[[2]string]TransitionDefinition
	allowAll    bool
	initial     string
	current     string
	previous    string
	ctx         any
	logger      *log.Logger

	listeners map[int]Listener
	subOrder  []int
	nextSub   int
}

// New validates the configuration and creates a machine in the initial
// state. Configuration errors (no states, duplicate state names, initial or
// transition endpoints outside the state set) are fatal: the machine cannot
// be built.
func New(cfg Config) (*Machine, error) {
	if len(cfg.States) == 0 {
		return nil, fmt.Errorf("fsm: at least one state is required")
	}

	states := make(map[string]StateDefinition, len(cfg.States))
	for _, s := range cfg.States {
		if _, dup := states[s.Name]; dup {
			return nil, fmt.Errorf("fsm: duplicate state %q", s.Name)
		}
		states[s.Name] = s
	}

	if _, ok := states[cfg.Initial]; !ok {
		return nil, fmt.Errorf("fsm: initial state %q is not in the state set", cfg.Initial)
	}

	var transitions map[[2]string]TransitionDefinition
	if cfg.Transitions != nil {
		transitions = make(map[[2]string]TransitionDefinition, len(cfg.Transitions))
		for _, tr := range cfg.Transitions {
			if _, ok := states[tr.From]; !ok {
				return nil, fmt.Errorf("fsm: transition from unknown state %q", tr.From)
			}
			if _, ok := states[tr.To]; !ok {
				return nil, fmt.Errorf("fsm: transition to unknown state %q", tr.To)
			}
			transitions[[2]string{tr.From, tr.To}] = tr
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Machine{
		states:      states,
		transitions: transitions,
		allowAll:    cfg.Transitions == nil,
		initial:     cfg.Initial,
		current:     cfg.Initial,
		ctx:         cfg.Context,
		logger:      logger,
		listeners:   make(map[int]Listener),
	}, nil
}

// Current returns the name of the current state.
func (m *Machine) Current() string { return m.current }

// Previous returns the name of the state before the last transition, or ""
// if no transition has happened yet.
func (m *Machine) Previous() string { return m.previous }

// CanTransitionTo reports whether TransitionTo(name) would succeed right
// now, including the transition guard. Exposed for UI gating.
func (m *Machine) CanTransitionTo(name string) bool {
	_, ok := m.lookup(name)
	return ok
}

// ValidTransitions returns the sorted list of states reachable from the
// current state.
func (m *Machine) ValidTransitions() []string {
	var valid []string
	for name := range m.states {
		if _, ok := m.lookup(name); ok {
			valid = append(valid, name)
		}
	}
	sort.Strings(valid)
	return valid
}

// lookup validates a transition target and returns its definition, if the
// table has one.
func (m *Machine) lookup(name string) (TransitionDefinition, bool) {
	if _, exists := m.states[name]; !exists {
		return TransitionDefinition{}, false
	}
	if m.allowAll {
		// Self-transitions are illegal unless explicitly allowed.
		if name == m.current {
			return TransitionDefinition{}, false
		}
		return TransitionDefinition{}, true
	}

	def, ok := m.transitions[[2]string{m.current, name}]
	if !ok {
		return TransitionDefinition{}, false
	}
	if def.Condition != nil && !def.Condition(m.ctx) {
		return TransitionDefinition{}, false
	}
	return def, true
}

// TransitionTo moves the machine to the named state if the transition is
// legal, running exit, transition and enter hooks and notifying all
// subscribers. Returns false, leaving the state unchanged, on an illegal
// transition. Hook and listener panics are logged and contained; they never
// abort the transition.
func (m *Machine) TransitionTo(name string) bool {
	def, ok := m.lookup(name)
	if !ok {
		m.logger.Warn("illegal state transition rejected",
			"from", m.current, "to", name)
		return false
	}

	m.apply(name, def)
	return true
}

// Reset forces a transition back to the initial state, running the same
// hook sequence while bypassing the transition-table legality check.
// Reset is always permitted.
func (m *Machine) Reset() {
	def := m.transitions[[2]string{m.current, m.initial}]
	m.apply(m.initial, def)
}

// apply performs the hook/swap/notify sequence for an already validated
// transition.
func (m *Machine) apply(name string, def TransitionDefinition) {
	from := m.current
	to := m.states[name]

	if exit := m.states[from].OnExit; exit != nil {
		m.runHook("exit", from, func() { exit(m.ctx, name) })
	}
	if def.OnTransition != nil {
		m.runHook("transition", from, func() { def.OnTransition(m.ctx) })
	}

	m.previous = from
	m.current = name

	if to.OnEnter != nil {
		m.runHook("enter", name, func() { to.OnEnter(m.ctx, from) })
	}

	event := TransitionEvent{
		PreviousState: from,
		CurrentState:  name,
		Timestamp:     time.Now(),
	}
	for _, id := range m.subOrder {
		listener, ok := m.listeners[id]
		if !ok {
			continue
		}
		m.notify(listener, event)
	}
}

// Update invokes the current state's OnUpdate hook, if defined.
func (m *Machine) Update(dtMS float64) {
	if hook := m.states[m.current].OnUpdate; hook != nil {
		m.runHook("update", m.current, func() { hook(m.ctx, dtMS) })
	}
}

// Subscribe registers a listener for transition events and returns its
// subscription handle.
func (m *Machine) Subscribe(l Listener) *Subscription {
	id := m.nextSub
	m.nextSub++
	m.listeners[id] = l
	m.subOrder = append(m.subOrder, id)
	return &Subscription{id: id}
}

// Unsubscribe removes a previously registered listener. Unknown or already
// removed subscriptions are ignored.
func (m *Machine) Unsubscribe(s *Subscription) {
	if s == nil {
		return
	}
	delete(m.listeners, s.id)
}

// runHook contains a hook panic so a faulty hook cannot abort a transition
// or stall the frame loop.
func (m *Machine) runHook(kind, state string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("state hook panicked",
				"hook", kind, "state", state, "error", r)
		}
	}()
	fn()
}

// notify contains a listener panic so one bad subscriber cannot block the
// others.
func (m *Machine) notify(l Listener, e TransitionEvent) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("transition listener panicked",
				"from", e.PreviousState, "to", e.CurrentState, "error", r)
		}
	}()
	l(e)
}
