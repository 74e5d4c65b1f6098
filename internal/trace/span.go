package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns the next global event sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID returns a fresh span identifier.
func NextSpanID() uint64 { return spanCounter.Add(1) }

// goroutineID parses the id from the "goroutine N [" stack header. Chrome
// traces use it as the thread id so parallel files land on separate rows.
func goroutineID() uint64 {
	var buf [64]byte
	header := buf[:runtime.Stack(buf[:], false)]
	header, ok := bytes.CutPrefix(header, []byte("goroutine "))
	if !ok {
		return 0
	}
	if i := bytes.IndexByte(header, ' '); i >= 0 {
		header = header[:i]
	}
	gid, err := strconv.ParseUint(string(header), 10, 64)
	if err != nil {
		return 0
	}
	return gid
}

// Span is an open begin/end pair. A Span from a disabled tracer is inert.
type Span struct {
	tracer Tracer
	begin  Event
	extra  map[string]string
}

func inert() *Span { return &Span{tracer: Nop} }

// Begin emits a SpanBegin event and returns the span to End. parent is the
// enclosing span ID, 0 for a root span.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return inert()
	}
	s := &Span{
		tracer: t,
		begin: Event{
			Time:     time.Now(),
			Kind:     KindSpanBegin,
			Scope:    scope,
			SpanID:   NextSpanID(),
			ParentID: parent,
			GID:      goroutineID(),
			Name:     name,
		},
	}
	ev := s.begin
	ev.Seq = NextSeq()
	t.Emit(&ev)
	return s
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		SpanID:   NextSpanID(),
		ParentID: parent,
		GID:      goroutineID(),
		Name:     name,
		Detail:   detail,
	})
}

// End emits the SpanEnd event and returns the span duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil || !s.tracer.Enabled() {
		return 0
	}
	now := time.Now()
	ev := s.begin
	ev.Time = now
	ev.Seq = NextSeq()
	ev.Kind = KindSpanEnd
	ev.Detail = detail
	ev.Extra = s.extra
	s.tracer.Emit(&ev)
	return now.Sub(s.begin.Time)
}

// WithExtra attaches a key/value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil || !s.tracer.Enabled() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// ID returns the span ID, 0 for inert spans.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.begin.SpanID
}
