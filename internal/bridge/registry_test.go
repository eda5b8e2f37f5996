package bridge

import "testing"

func TestRegistry_StartsEmpty(t *testing.T) {
	r := NewRegistry()
	if r.Current() != nil {
		t.Error("new registry should have no connection")
	}
}

func TestRegistry_SetAndCurrent(t *testing.T) {
	r := NewRegistry()
	c := &Conn{id: "a"}

	r.Set(c)
	if got := r.Current(); got != c {
		t.Errorf("Current() = %v, want %v", got, c)
	}
}

func TestRegistry_NewestConnectionWins(t *testing.T) {
	r := NewRegistry()
	old := &Conn{id: "old"}
	fresh := &Conn{id: "fresh"}

	r.Set(old)
	r.Set(fresh)

	if got := r.Current(); got != fresh {
		t.Errorf("Current() = %v, want the replacement connection", got)
	}
}

func TestRegistry_ClearRemovesCurrent(t *testing.T) {
	r := NewRegistry()
	c := &Conn{id: "a"}

	r.Set(c)
	r.Clear(c)

	if r.Current() != nil {
		t.Error("Clear should remove the current connection")
	}
}

func TestRegistry_StaleClearIsNoOp(t *testing.T) {
	r := NewRegistry()
	old := &Conn{id: "old"}
	fresh := &Conn{id: "fresh"}

	r.Set(old)
	r.Set(fresh)

	// The old connection's disconnect arrives after it was replaced.
	r.Clear(old)

	if got := r.Current(); got != fresh {
		t.Errorf("stale Clear removed the live connection: Current() = %v", got)
	}
}
