package rules

import (
	"math"

	"fortio.org/safecast"

	"swiftfmt/internal/config"
	"swiftfmt/internal/decl"
	"swiftfmt/internal/diag"
	"swiftfmt/internal/source"
	"swiftfmt/internal/stream"
	"swiftfmt/internal/trace"
)

// Formatter is the state a rule sees: the stream of the file being formatted
// and the options. It is owned by one engine run and never shared.
type Formatter struct {
	*stream.Stream
	Options config.Options

	file     source.FileID
	reporter diag.Reporter
	tracer   trace.Tracer
	span     uint64 // active pass span
	rule     string // rule being applied
}

// Declarations parses the current stream. The result is only valid until
// the next edit; callers must not keep it across mutations.
func (f *Formatter) Declarations() ([]decl.Declaration, error) {
	return decl.Parse(f.Stream)
}

// Span returns the byte span of token i in the current stream.
func (f *Formatter) Span(i int) source.Span {
	start := 0
	for j := 0; j < i && j < f.Len(); j++ {
		start += len(f.At(j).Text)
	}
	return spanOf(f.file, start, start+len(f.At(i).Text))
}

// spanOf builds a span, clamping offsets that do not fit a uint32.
func spanOf(file source.FileID, start, end int) source.Span {
	return source.Span{File: file, Start: clampOffset(start), End: clampOffset(end)}
}

func clampOffset(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return math.MaxUint32
	}
	return v
}

// Report emits a diagnostic anchored at token i.
func (f *Formatter) Report(code diag.Code, sev diag.Severity, i int, msg string) {
	if f.reporter == nil {
		return
	}
	if f.rule != "" {
		msg = f.rule + ": " + msg
	}
	f.reporter.Report(code, sev, f.Span(i), msg, nil)
}

// Trace records a rule-level point event under the current pass.
func (f *Formatter) Trace(detail string) {
	trace.Point(f.tracer, trace.ScopeRule, "rule:"+f.rule, detail, f.span)
}
