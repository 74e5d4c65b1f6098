package trace

import (
	"bufio"
	"io"
	"sync"
)

const (
	chromeHeader = "{\"traceEvents\":[\n"
	chromeFooter = "\n]}\n"
)

// StreamTracer writes each event to its output as it is emitted. Write
// errors are dropped: tracing never fails a formatting run.
type StreamTracer struct {
	mu      sync.Mutex
	w       *bufio.Writer
	closer  io.Closer
	level   Level
	format  Format
	written int
	closed  bool
}

// NewStreamTracer returns a tracer writing to w. w is not closed by Close.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return newStreamTracer(w, nil, level, format)
}

func newStreamTracer(w io.Writer, closer io.Closer, level Level, format Format) *StreamTracer {
	t := &StreamTracer{w: bufio.NewWriter(w), closer: closer, level: level, format: format}
	if format == FormatChrome {
		_, _ = t.w.WriteString(chromeHeader)
	}
	return t
}

func (t *StreamTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	ev.Seq = NextSeq()
	data := FormatEvent(ev, t.format)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	if t.format == FormatChrome && t.written > 0 {
		_, _ = t.w.WriteString(",\n")
	}
	_, _ = t.w.Write(data)
	t.written++
	// текстовый вывод читают вживую, поэтому сбрасываем сразу
	if t.format == FormatText {
		_ = t.w.Flush()
	}
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.w.Flush()
}

// Close terminates a Chrome array, flushes and closes a file created by New.
func (t *StreamTracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	if t.format == FormatChrome {
		_, _ = t.w.WriteString(chromeFooter)
	}
	err := t.w.Flush()
	if t.closer != nil {
		if cerr := t.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (t *StreamTracer) Level() Level { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
