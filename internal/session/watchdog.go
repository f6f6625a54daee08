package session

import (
	"sync"
	"time"
)

type watchdogState int

const (
	watchdogArmed watchdogState = iota
	watchdogFired
	watchdogCancelled
)

// Watchdog enforces the maximum lifetime of one session. It is bound to a
// single token and never rearmed.
type Watchdog struct {
	mu       sync.Mutex
	state    watchdogState
	timer    *time.Timer
	deadline time.Time
	done     chan struct{}
}

// Schedule arms a one-shot timer. onFire runs exactly once if limit elapses
// before tok trips, and never otherwise.
func Schedule(tok *Token, limit time.Duration, onFire func()) *Watchdog {
	w := &Watchdog{
		deadline: time.Now().Add(limit),
		done:     make(chan struct{}),
	}

	w.mu.Lock()
	w.timer = time.AfterFunc(limit, func() { w.fire(tok, onFire) })
	w.mu.Unlock()

	go func() {
		select {
		case <-tok.Done():
			w.Cancel()
		case <-w.done:
		}
	}()
	return w
}

func (w *Watchdog) fire(tok *Token, onFire func()) {
	w.mu.Lock()
	if w.state != watchdogArmed {
		w.mu.Unlock()
		return
	}
	if tok.Tripped() {
		w.cancelLocked()
		w.mu.Unlock()
		return
	}
	w.state = watchdogFired
	close(w.done)
	w.mu.Unlock()

	onFire()
}

// Cancel disarms the timer and reports whether it was still armed.
func (w *Watchdog) Cancel() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != watchdogArmed {
		return false
	}
	w.cancelLocked()
	return true
}

func (w *Watchdog) cancelLocked() {
	w.state = watchdogCancelled
	w.timer.Stop()
	close(w.done)
}

func (w *Watchdog) Fired() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state == watchdogFired
}

func (w *Watchdog) Deadline() time.Time { return w.deadline }
