package game

import (
	"sync"
	"time"
)

// Timer drives a session's countdown, ticking once per interval for as long
// as the session is alive. The goroutine exits on its own when the session
// reaches game over; Stop exists for evicting a session that is still live.
type Timer struct {
	stop chan struct{}
	once sync.Once
}

// StartTimer binds a ticking goroutine to the session's lifetime.
func StartTimer(s *Session, interval time.Duration) *Timer {
	t := &Timer{stop: make(chan struct{})}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if !s.Tick() {
					return
				}
			case <-t.stop:
				return
			}
		}
	}()
	return t
}

// Stop halts the timer. Safe to call more than once.
func (t *Timer) Stop() {
	t.once.Do(func() { close(t.stop) })
}
