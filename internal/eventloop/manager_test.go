package eventloop

import (
	"testing"
	"time"
)

func TestAfterFuncFires(t *testing.T) {
	m := NewManager()
	done := make(chan struct{})

	m.AfterFunc("enb-1", "test-timer", 0.01, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestAfterFuncRescheduleCancelsPrior(t *testing.T) {
	m := NewManager()
	fired := make(chan int, 2)

	m.AfterFunc("enb-1", "k", 0.2, func() { fired <- 1 })
	m.AfterFunc("enb-1", "k", 0.01, func() { fired <- 2 })

	select {
	case v := <-fired:
		if v != 2 {
			t.Fatalf("expected the rescheduled (second) timer to fire, got %d", v)
		}
	case <-time.After(time.Second):
		t.Fatal("no timer fired")
	}

	select {
	case v := <-fired:
		t.Fatalf("expected the superseded timer to have been canceled, but it fired with %d", v)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestCancel(t *testing.T) {
	m := NewManager()
	fired := false
	h := m.AfterFunc("enb-1", "k", 0.05, func() { fired = true })

	if !h.Cancel() {
		t.Fatal("Cancel() = false, want true for a timer that hasn't fired yet")
	}
	if m.Count() != 0 {
		t.Errorf("Count() = %d after cancel, want 0", m.Count())
	}

	time.Sleep(150 * time.Millisecond)
	if fired {
		t.Error("canceled timer fired anyway")
	}
}

func TestCount(t *testing.T) {
	m := NewManager()
	if m.Count() != 0 {
		t.Fatalf("Count() = %d, want 0 on a fresh manager", m.Count())
	}

	done := make(chan struct{})
	m.AfterFunc("enb-1", "a", 0.01, func() { close(done) })
	if m.Count() != 1 {
		t.Errorf("Count() = %d, want 1 after scheduling", m.Count())
	}

	<-done
	time.Sleep(20 * time.Millisecond)
	if m.Count() != 0 {
		t.Errorf("Count() = %d after firing, want 0", m.Count())
	}
}
