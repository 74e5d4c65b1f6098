// Package trace records what a swiftfmt run spends its time on: command
// spans, one span per file, one per rule engine pass and point events for
// single rule applications. It is meant for slow or non-converging inputs.
//
//	swiftfmt --trace=- --trace-level=detail format Sources/
//	swiftfmt --trace=run.json --trace-format=chrome format .
//
// Storage modes: stream writes every event as it happens, ring keeps the
// last --trace-ring-size events and writes them on Close, both does the two.
// Formats are text, ndjson and chrome (an array for chrome://tracing or
// Perfetto); auto picks chrome for .json paths, ndjson for .ndjson and text
// otherwise.
//
// Level gates scope: error records nothing on its own, phase adds run
// and file spans, detail adds passes, debug adds rule events.
//
// The tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.StartSpan(ctx, trace.ScopeFile, "file:"+path)
//	defer span.End("")
//
// StartSpan nests under the span already in ctx. Nop is returned when no
// tracer is attached, and every helper accepts it.
package trace
