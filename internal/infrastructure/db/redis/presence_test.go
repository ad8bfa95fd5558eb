package redis

import "testing"

func TestPresenceKeyShape(t *testing.T) {
	p := NewPresenceTracker(nil)
	if got := p.key("u1"); got != "presence:u1" {
		t.Errorf("key = %q, want presence:u1", got)
	}
	if a, b := p.key("u1"), p.key("u2"); a == b {
		t.Error("distinct users must not share a presence key")
	}
}
