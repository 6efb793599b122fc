package notify

import (
	"sync"
	"testing"
	"time"
)

func TestNewScheduler(t *testing.T) {
	if s := NewScheduler(0); s.duration != DefaultDuration {
		t.Errorf("Expected default duration %v, got %v", DefaultDuration, s.duration)
	}
	if s := NewScheduler(time.Second); s.duration != time.Second {
		t.Errorf("Expected 1s, got %v", s.duration)
	}
	if _, ok := NewScheduler(0).Current(); ok {
		t.Error("Expected new scheduler to be idle")
	}
}

func TestNotify_Expires(t *testing.T) {
	s := NewScheduler(50 * time.Millisecond)
	defer s.Stop()

	s.Notify("Blog deleted")
	msg, ok := s.Current()
	if !ok || msg != "Blog deleted" {
		t.Fatalf("Expected 'Blog deleted', got %q ok=%v", msg, ok)
	}

	time.Sleep(150 * time.Millisecond)
	if _, ok := s.Current(); ok {
		t.Error("Expected notification to expire")
	}
}

func TestNotify_ReplacesAndResetsTimer(t *testing.T) {
	s := NewScheduler(time.Minute)
	defer s.Stop()

	s.NotifyFor("X", 100*time.Millisecond)
	s.NotifyFor("Y", 100*time.Millisecond)

	if msg, _ := s.Current(); msg != "Y" {
		t.Fatalf("Expected 'Y', got %q", msg)
	}

	// X must never come back while Y is live
	deadline := time.Now().Add(90 * time.Millisecond)
	for time.Now().Before(deadline) {
		if msg, _ := s.Current(); msg == "X" {
			t.Fatal("Old message reappeared")
		}
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)
	if msg, ok := s.Current(); ok {
		t.Errorf("Expected slot to be empty after expiry, got %q", msg)
	}
}

func TestNotify_StaleTimerDoesNotClearNewerMessage(t *testing.T) {
	s := NewScheduler(time.Minute)
	defer s.Stop()

	s.NotifyFor("X", 20*time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	s.NotifyFor("Y", 200*time.Millisecond)

	// Well past X's deadline, well before Y's
	time.Sleep(60 * time.Millisecond)
	if msg, ok := s.Current(); !ok || msg != "Y" {
		t.Errorf("Expected 'Y' to still be shown, got %q ok=%v", msg, ok)
	}
}

func TestNotify_StaleGenerationIgnored(t *testing.T) {
	s := NewScheduler(time.Minute)
	defer s.Stop()

	s.Notify("X")
	staleGen := s.gen
	s.Notify("Y")

	// Simulate X's timer firing after Y was armed
	s.expire(staleGen)
	if msg, _ := s.Current(); msg != "Y" {
		t.Errorf("Expected 'Y', got %q", msg)
	}

	s.expire(s.gen)
	if _, ok := s.Current(); ok {
		t.Error("Expected slot to be cleared by the current generation")
	}
}

func TestNotification(t *testing.T) {
	s := NewScheduler(time.Minute)
	defer s.Stop()

	before := time.Now()
	s.Notify("Welcome, Dan Abramov!")
	n := s.Notification()

	if n.Message != "Welcome, Dan Abramov!" {
		t.Errorf("Unexpected message %q", n.Message)
	}
	if n.ExpiresAt.Before(before.Add(time.Minute)) {
		t.Errorf("Expected expiry at least a minute ahead, got %v", n.ExpiresAt)
	}
	if !n.Active(time.Now()) {
		t.Error("Expected notification to be active")
	}
}

func TestOnChange(t *testing.T) {
	s := NewScheduler(20 * time.Millisecond)
	defer s.Stop()

	var mu sync.Mutex
	var changes []string
	done := make(chan struct{})
	s.OnChange(func(message string) {
		mu.Lock()
		changes = append(changes, message)
		mu.Unlock()
		if message == "" {
			close(done)
		}
	})

	s.Notify("Blog deleted")

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Expected expiry callback")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(changes) != 2 || changes[0] != "Blog deleted" || changes[1] != "" {
		t.Errorf("Expected [Blog deleted, \"\"], got %q", changes)
	}
}

func TestStop(t *testing.T) {
	s := NewScheduler(20 * time.Millisecond)

	fired := make(chan struct{}, 1)
	s.Notify("X")
	s.OnChange(func(string) { fired <- struct{}{} })
	s.Stop()

	if _, ok := s.Current(); ok {
		t.Error("Expected empty slot after Stop")
	}

	select {
	case <-fired:
		t.Error("Expected no expiry after Stop")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestSchedulersAreIndependent(t *testing.T) {
	a := NewScheduler(time.Minute)
	b := NewScheduler(20 * time.Millisecond)
	defer a.Stop()
	defer b.Stop()

	a.Notify("A")
	b.Notify("B")
	time.Sleep(60 * time.Millisecond)

	if msg, ok := a.Current(); !ok || msg != "A" {
		t.Errorf("Expected 'A' to survive another scheduler's expiry, got %q", msg)
	}
	if _, ok := b.Current(); ok {
		t.Error("Expected 'B' to expire")
	}
}
