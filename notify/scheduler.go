package notify

import (
	"sync"
	"time"

	"github.com/deemkeen/bloglist/domain"
)

// DefaultDuration is how long a notification stays visible
const DefaultDuration = 5 * time.Second

// Scheduler owns a single notification slot. A new notification replaces the
// current one and restarts the expiry timer.
type Scheduler struct {
	duration time.Duration

	mu       sync.Mutex
	current  domain.Notification
	timer    *time.Timer
	gen      uint64
	onChange func(message string)
}

// NewScheduler creates a scheduler whose Notify uses duration; a
// non-positive duration selects DefaultDuration.
func NewScheduler(duration time.Duration) *Scheduler {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Scheduler{duration: duration}
}

// OnChange registers fn to be called after every change of the slot, with
// the new message ("" once it expired). fn runs outside the lock and, for
// expiry, on the timer's goroutine.
func (s *Scheduler) OnChange(fn func(message string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Notify shows message for the default duration
func (s *Scheduler) Notify(message string) {
	s.NotifyFor(message, s.duration)
}

// NotifyFor shows message for d
func (s *Scheduler) NotifyFor(message string, d time.Duration) {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.current = domain.Notification{Message: message, ExpiresAt: time.Now().Add(d)}
	// The timer may already have fired and be waiting for the lock, so the
	// generation decides whether it still owns the slot.
	s.timer = time.AfterFunc(d, func() { s.expire(gen) })
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(message)
	}
}

func (s *Scheduler) expire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.current = domain.Notification{}
	s.timer = nil
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn("")
	}
}

// Current returns the live message, if any
func (s *Scheduler) Current() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current.Message == "" {
		return "", false
	}
	return s.current.Message, true
}

// Notification returns a copy of the slot
func (s *Scheduler) Notification() domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Stop cancels the pending expiry and empties the slot
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	s.current = domain.Notification{}
}
