// Package eventloop schedules the delayed transitions a provisioning state
// machine arms on enter() — the Baicells REM wait, the reboot-inform
// timeout, the post-reboot settle delay — and lets the state machine cancel
// a timer that has gone stale before a fresh one is armed.
package eventloop

import (
	"sync"
	"time"

	"github.com/enbacsd/enbacsd/internal/logging"
	"github.com/enbacsd/enbacsd/pkg/enbacs"
)

// timerKey uniquely identifies one outstanding timer: a device and the
// purpose it was scheduled for ("config-delay", "reboot-timeout", ...).
// Scheduling a new timer under the same key cancels any prior one, mirroring
// the at-most-one-pending-timer invariant every state machine keeps.
type timerKey struct {
	device string
	key    string
}

// handle is the Cancelable returned to callers. It satisfies
// pkg/enbacs.Cancelable.
type handle struct {
	mgr   *Manager
	key   timerKey
	timer *time.Timer
}

// Cancel stops the timer if it has not yet fired. Returns false if it had
// already fired or been canceled.
func (h *handle) Cancel() bool {
	stopped := h.timer.Stop()
	h.mgr.mu.Lock()
	if cur, ok := h.mgr.timers[h.key]; ok && cur == h {
		delete(h.mgr.timers, h.key)
	}
	h.mgr.mu.Unlock()
	return stopped
}

// Manager is the process-wide timer service. It is safe for concurrent use
// by many state machines, per spec.md §5's "shared resources" rule.
type Manager struct {
	mu     sync.Mutex
	timers map[timerKey]*handle
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{timers: make(map[timerKey]*handle)}
}

// AfterFunc arms cb to run after seconds elapse, canceling whatever timer
// was previously outstanding under the same (device, key) pair. Satisfies
// enbacs.Timer.
func (m *Manager) AfterFunc(device, key string, seconds float64, cb func()) enbacs.Cancelable {
	tk := timerKey{device: device, key: key}

	m.mu.Lock()
	if existing, ok := m.timers[tk]; ok {
		existing.timer.Stop()
		delete(m.timers, tk)
	}
	m.mu.Unlock()

	h := &handle{mgr: m, key: tk}
	h.timer = time.AfterFunc(time.Duration(seconds*float64(time.Second)), func() {
		m.mu.Lock()
		cur, ok := m.timers[tk]
		if ok {
			delete(m.timers, tk)
		}
		m.mu.Unlock()
		if !ok || cur != h {
			return
		}
		logging.WithDevice(device).WithField("timer", key).Debug("timer fired")
		cb()
	})

	m.mu.Lock()
	m.timers[tk] = h
	m.mu.Unlock()

	return h
}

// Count returns the number of currently outstanding timers, for tests.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}
