package session

import "testing"

func TestSetNotifiesOnlyOnFlip(t *testing.T) {
	var s State
	var events []bool
	unsubscribe := s.Subscribe(func(authed bool) { events = append(events, authed) })

	s.Set("admin@example.com")
	s.Set("other@example.com") // still authenticated, no event
	s.Set("")

	if len(events) != 2 || events[0] != true || events[1] != false {
		t.Fatalf("events = %v, want [true false]", events)
	}

	unsubscribe()
	s.Set("admin@example.com")
	if len(events) != 2 {
		t.Errorf("unsubscribed callback still invoked: %v", events)
	}
	if !s.Authenticated() || s.Identity() != "admin@example.com" {
		t.Errorf("unexpected state: %q", s.Identity())
	}
}
