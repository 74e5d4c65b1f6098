package rules

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"swiftfmt/internal/config"
	"swiftfmt/internal/diag"
	"swiftfmt/internal/source"
	"swiftfmt/internal/stream"
	"swiftfmt/internal/token"
	"swiftfmt/internal/trace"
)

// Engine applies an ordered rule list until the stream stops changing.
type Engine struct {
	rules []Rule
	opts  config.Options

	// Reporter receives rule diagnostics. Nil drops them.
	Reporter diag.Reporter
	// Tracer records pass spans and rule events. Nil means trace.Nop.
	Tracer trace.Tracer
}

// Result describes one engine run.
type Result struct {
	Tokens    []token.Token
	Passes    int
	Changed   bool
	Converged bool
	// Applied lists rules that changed the stream, in first-change order.
	Applied []string
}

// NewEngine validates the rule list against itself and the options.
func NewEngine(rules []Rule, opts config.Options) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := checkRules(rules); err != nil {
		return nil, err
	}
	return &Engine{rules: rules, opts: opts}, nil
}

// Rules returns the enabled rule list.
func (e *Engine) Rules() []Rule { return e.rules }

// ApplyRules is the plain entry point: it formats toks with the given rules
// and options and returns the rewritten tokens.
func ApplyRules(toks []token.Token, rules []Rule, opts config.Options) ([]token.Token, error) {
	e, err := NewEngine(rules, opts)
	if err != nil {
		return nil, err
	}
	res, err := e.Apply(context.Background(), 0, toks)
	if err != nil {
		return nil, err
	}
	return res.Tokens, nil
}

// Apply runs the rules over a private copy of toks. Diagnostics are stamped
// with file. The context is checked between passes.
func (e *Engine) Apply(ctx context.Context, file source.FileID, toks []token.Token) (Result, error) {
	tracer := e.Tracer
	if tracer == nil {
		tracer = trace.FromContext(ctx)
	}
	var reporter diag.Reporter
	if e.Reporter != nil {
		reporter = diag.NewDedupReporter(e.Reporter)
	}

	s := stream.New(toks)
	original := s.String()
	f := &Formatter{
		Stream:   s,
		Options:  e.opts,
		file:     file,
		reporter: reporter,
		tracer:   tracer,
	}
	wellFormed := !s.HasErrors()
	parent := trace.CurrentSpan(ctx).SpanID

	res := Result{}
	applied := make(map[string]struct{})
	var changed []string
	for pass := 1; pass <= e.opts.MaxPasses; pass++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		span := trace.Begin(tracer, trace.ScopePass, "pass:"+strconv.Itoa(pass), parent)
		f.span = span.ID()
		var err error
		changed, err = e.runPass(f, wellFormed, pass, applied, &res)
		span.WithExtra("changed", strconv.FormatBool(len(changed) > 0)).End("")
		if err != nil {
			return Result{}, err
		}
		res.Passes = pass
		if len(changed) == 0 {
			res.Converged = true
			break
		}
	}
	f.rule = ""
	if !res.Converged {
		diag.ReportWarning(reporter, diag.FmtPassLimit, source.Span{File: file},
			fmt.Sprintf("output still changing after %d passes", e.opts.MaxPasses)).
			WithNote(source.Span{}, "last pass rewritten by "+strings.Join(changed, ", ")).
			Emit()
	}

	// партиция должна восстанавливать поток; иначе вывод нельзя доверять
	if _, err := f.Declarations(); err != nil {
		return Result{}, fmt.Errorf("format: %w", err)
	}

	res.Tokens = s.Tokens()
	res.Changed = s.String() != original
	return res, nil
}

// runPass applies every rule once and returns the rules that changed the stream.
func (e *Engine) runPass(f *Formatter, wellFormed bool, pass int, applied map[string]struct{}, res *Result) ([]string, error) {
	var changed []string
	for _, r := range e.rules {
		f.rule = r.Name
		if r.WellFormed && !wellFormed {
			if pass == 1 {
				f.Report(diag.FmtSkippedMalformed, diag.SevInfo, 0, "skipped: file contains malformed tokens")
			}
			continue
		}
		before := f.String()
		if err := r.Apply(f); err != nil {
			return changed, fmt.Errorf("rule %s: %w", r.Name, err)
		}
		if f.String() == before {
			continue
		}
		changed = append(changed, r.Name)
		f.Trace("changed")
		if _, ok := applied[r.Name]; !ok {
			applied[r.Name] = struct{}{}
			res.Applied = append(res.Applied, r.Name)
		}
	}
	return changed, nil
}
