package diag

import "swiftfmt/internal/source"

type reportKey struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

// DedupReporter forwards each distinct (code, severity, span, message) once.
// Rules revisit the same tokens on every engine pass, so the engine reports
// through one per run. Not safe for concurrent use.
type DedupReporter struct {
	next Reporter
	seen map[reportKey]struct{}
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[reportKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r == nil || r.next == nil {
		return
	}
	key := reportKey{code: code, sev: sev, span: primary, msg: msg}
	if _, dup := r.seen[key]; dup {
		return
	}
	r.seen[key] = struct{}{}
	r.next.Report(code, sev, primary, msg, notes)
}
