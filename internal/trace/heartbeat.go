package trace

import (
	"strconv"
	"sync"
	"time"
)

// Heartbeat emits periodic events so a stuck run is visible in the trace:
// heartbeats that keep coming without SpanEnd events point at a rule that
// never converges or a file that never finishes.
type Heartbeat struct {
	tracer   Tracer
	interval time.Duration
	done     chan struct{}
	stopped  sync.WaitGroup
	once     sync.Once
}

// StartHeartbeat starts emitting every interval. It returns nil, which is
// safe to Stop, when tracing is off or interval is not positive.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{
		tracer:   tracer,
		interval: interval,
		done:     make(chan struct{}),
	}
	h.stopped.Add(1)
	go h.loop()
	return h
}

func (h *Heartbeat) loop() {
	defer h.stopped.Done()
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	gid := goroutineID()
	for beat := 1; ; beat++ {
		select {
		case <-h.done:
			return
		case now := <-ticker.C:
			h.tracer.Emit(&Event{
				Time:   now,
				Seq:    NextSeq(),
				Kind:   KindHeartbeat,
				Scope:  ScopeRun,
				GID:    gid,
				Name:   "heartbeat",
				Detail: "#" + strconv.Itoa(beat),
			})
		}
	}
}

// Stop ends the heartbeat and waits for the goroutine. Safe to call more
// than once and on nil.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.done) })
	h.stopped.Wait()
}
