package trace

import (
	"bufio"
	"io"
	"sync"
)

// RingTracer keeps the most recent events in a fixed-size buffer. A run that
// loops or fails can be inspected after the fact without streaming every
// pass of every file.
type RingTracer struct {
	mu     sync.Mutex
	events []Event
	next   int // slot for the next event
	count  int // stored events, at most len(events)
	level  Level

	// set by New in ring mode; Close dumps there
	out    io.Writer
	closer io.Closer
	format Format
	closed bool
}

// NewRingTracer returns a ring holding up to capacity events (4096 if
// capacity is not positive).
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{events: make([]Event, capacity), level: level}
}

func (r *RingTracer) dumpTo(w io.Writer, closer io.Closer, format Format) {
	r.out, r.closer, r.format = w, closer, format
}

func (r *RingTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !r.level.ShouldEmit(ev.Scope) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *ev
	stored.Seq = NextSeq()
	r.events[r.next] = stored
	r.next = (r.next + 1) % len(r.events)
	r.count = min(r.count+1, len(r.events))
}

// Snapshot copies the stored events, oldest first.
func (r *RingTracer) Snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, 0, r.count)
	first := (r.next - r.count + len(r.events)) % len(r.events)
	for i := range r.count {
		out = append(out, r.events[(first+i)%len(r.events)])
	}
	return out
}

// Dump writes the stored events to w, oldest first.
func (r *RingTracer) Dump(w io.Writer, format Format) error {
	events := r.Snapshot()
	bw := bufio.NewWriter(w)
	if format == FormatChrome {
		if _, err := bw.WriteString(chromeHeader); err != nil {
			return err
		}
	}
	for i := range events {
		if format == FormatChrome && i > 0 {
			if _, err := bw.WriteString(",\n"); err != nil {
				return err
			}
		}
		if _, err := bw.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}
	if format == FormatChrome {
		if _, err := bw.WriteString(chromeFooter); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func (r *RingTracer) Flush() error { return nil }

// Close dumps the ring when New configured an output. Later calls do nothing.
func (r *RingTracer) Close() error {
	r.mu.Lock()
	if r.closed || r.out == nil {
		r.closed = true
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	err := r.Dump(r.out, r.format)
	if r.closer != nil {
		if cerr := r.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (r *RingTracer) Level() Level { return r.level }
func (r *RingTracer) Enabled() bool { return r.level > LevelOff }
