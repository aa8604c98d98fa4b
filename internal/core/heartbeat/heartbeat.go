// Package heartbeat provides the periodic tick that drives the countdown
// while it is running.
package heartbeat

import (
	"sync"
	"time"
)

// Heartbeat calls a function once per interval between Start and Stop.
type Heartbeat struct {
	mu       sync.Mutex
	interval time.Duration
	onBeat   func(time.Time)
	stopCh   chan struct{}
}

// New creates a stopped Heartbeat. A non-positive interval means one second.
func New(interval time.Duration, onBeat func(time.Time)) *Heartbeat {
	if interval <= 0 {
		interval = time.Second
	}
	return &Heartbeat{
		interval: interval,
		onBeat:   onBeat,
	}
}

// Start launches the ticking loop. It is a no-op while already beating.
func (beat *Heartbeat) Start() {
	beat.mu.Lock()
	defer beat.mu.Unlock()
	if beat.stopCh != nil {
		return
	}
	beat.stopCh = make(chan struct{})
	go beat.run(beat.stopCh)
}

// Stop terminates the ticking loop without waiting for an in-flight beat.
// It may be called from onBeat.
func (beat *Heartbeat) Stop() {
	beat.mu.Lock()
	defer beat.mu.Unlock()
	if beat.stopCh == nil {
		return
	}
	close(beat.stopCh)
	beat.stopCh = nil
}

// Active reports whether the loop is running.
func (beat *Heartbeat) Active() bool {
	beat.mu.Lock()
	defer beat.mu.Unlock()
	return beat.stopCh != nil
}

func (beat *Heartbeat) run(stopCh <-chan struct{}) {
	ticker := time.NewTicker(beat.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case tickTime := <-ticker.C:
			select {
			case <-stopCh:
				return
			default:
			}
			if beat.onBeat != nil {
				beat.onBeat(tickTime)
			}
		}
	}
}
