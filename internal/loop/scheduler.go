package loop

import (
	"sync"
	"time"
)

// Scheduler is the host's one-shot "run this at the next frame" primitive.
// Schedule returns a cancel function that unschedules the callback if it has
// not run yet. The loop reschedules itself from within each frame callback,
// so callbacks are serialized by construction.
type Scheduler interface {
	Schedule(fn func()) (cancel func())
}

// TimerScheduler runs callbacks at a fixed rate using the process timer.
// It is the standalone (non-TUI) host primitive.
type TimerScheduler struct {
	interval time.Duration
}

// NewTimerScheduler creates a scheduler firing at the given frames per
// second. Rates below 1 fall back to 60.
func NewTimerScheduler(fps int) *TimerScheduler {
	if fps < 1 {
		fps = 60
	}
	return &TimerScheduler{interval: time.Second / time.Duration(fps)}
}

// Schedule runs fn once after one frame interval.
func (s *TimerScheduler) Schedule(fn func()) (cancel func()) {
	t := time.AfterFunc(s.interval, fn)
	return func() { t.Stop() }
}

// ManualScheduler queues callbacks until the owner pumps them explicitly.
// The TUI host pumps one callback per tick message; tests pump frames
// deterministically.
type ManualScheduler struct {
	mu    sync.Mutex
	next  int
	queue map[int]func()
	order []int
}

// NewManualScheduler creates an empty manual scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{queue: make(map[int]func())}
}

// Schedule queues fn for the next pump.
func (s *ManualScheduler) Schedule(fn func()) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	s.queue[id] = fn
	s.order = append(s.order, id)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.queue, id)
	}
}

// RunNext runs the oldest queued callback, if any.
// Returns false when nothing was pending.
func (s *ManualScheduler) RunNext() bool {
	s.mu.Lock()
	var fn func()
	for len(s.order) > 0 {
		id := s.order[0]
		s.order = s.order[1:]
		if f, ok := s.queue[id]; ok {
			delete(s.queue, id)
			fn = f
			break
		}
	}
	s.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}

// Pending returns the number of queued callbacks.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}
