package trace

import "errors"

// MultiTracer fans events out to several tracers. Its level is the highest
// of theirs; each child still filters by its own level.
type MultiTracer struct {
	tracers []Tracer
	level   Level
}

func NewMultiTracer(tracers ...Tracer) *MultiTracer {
	m := &MultiTracer{tracers: tracers}
	for _, t := range tracers {
		m.level = max(m.level, t.Level())
	}
	return m
}

func (m *MultiTracer) Emit(ev *Event) {
	for _, t := range m.tracers {
		// копия: потоковый трейсер проставляет Seq в событии
		cp := *ev
		t.Emit(&cp)
	}
}

func (m *MultiTracer) Flush() error {
	errs := make([]error, 0, len(m.tracers))
	for _, t := range m.tracers {
		errs = append(errs, t.Flush())
	}
	return errors.Join(errs...)
}

func (m *MultiTracer) Close() error {
	errs := make([]error, 0, len(m.tracers))
	for _, t := range m.tracers {
		errs = append(errs, t.Close())
	}
	return errors.Join(errs...)
}

func (m *MultiTracer) Level() Level { return m.level }
func (m *MultiTracer) Enabled() bool { return m.level > LevelOff }

// Ring returns the first ring tracer among the children, or nil.
func (m *MultiTracer) Ring() *RingTracer {
	for _, t := range m.tracers {
		if r, ok := t.(*RingTracer); ok {
			return r
		}
	}
	return nil
}
