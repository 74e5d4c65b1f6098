package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"swiftfmt/internal/diag"
	"swiftfmt/internal/source"
)

type Options struct {
	// Reporter receives lexical anomalies. May be nil: anomalies are still
	// kept as Error tokens.
	Reporter diag.Reporter
	// File is stamped on every reported span.
	File source.FileID
}

func (lx *Lexer) report(code diag.Code, sev diag.Severity, start, end int, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	lx.opts.Reporter.Report(code, sev, lx.span(start, end), msg, nil)
}

func (lx *Lexer) errLex(code diag.Code, start, end int, msg string) {
	lx.report(code, diag.SevError, start, end, msg)
}

func (lx *Lexer) span(start, end int) source.Span {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		panic(fmt.Errorf("span start overflow: %w", err))
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		panic(fmt.Errorf("span end overflow: %w", err))
	}
	return source.Span{File: lx.opts.File, Start: s, End: e}
}
