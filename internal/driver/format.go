package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"swiftfmt/internal/cache"
	"swiftfmt/internal/config"
	"swiftfmt/internal/decl"
	"swiftfmt/internal/diag"
	"swiftfmt/internal/lexer"
	"swiftfmt/internal/observ"
	"swiftfmt/internal/rules"
	"swiftfmt/internal/source"
	"swiftfmt/internal/token"
	"swiftfmt/internal/trace"
)

// FormatOptions configures code formatting.
type FormatOptions struct {
	// Check leaves files alone; Changed reports whether formatting would
	// update them and a FmtNotFormatted warning marks the first difference.
	Check bool
	// Stdout returns formatted content in the results without touching
	// files on disk.
	Stdout         bool
	Jobs           int
	MaxDiagnostics int
	Options        config.Options
	// Cache skips files whose content is known to be formatted. May be nil.
	Cache *cache.Cache
	// Timer accumulates read, format and write durations. May be nil.
	Timer *observ.Timer
	// OnResult is called from worker goroutines after each file.
	OnResult func(FormatResult)
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	FileID    source.FileID
	Changed   bool
	Cached    bool
	Err       error
	Formatted []byte
	Passes    int
	Applied   []string
	Bag       *diag.Bag
}

// NewEngine builds the rule engine for opts from the built-in catalog.
func NewEngine(opts config.Options) (*rules.Engine, error) {
	enabled, err := rules.Select(rules.Default(), opts)
	if err != nil {
		return nil, err
	}
	return rules.NewEngine(enabled, opts)
}

// FormatPaths formats provided files or directories (recursively collecting
// .swift files) in parallel. Files that fail keep their content; the error
// is in their result. The returned FileSet resolves diagnostic spans.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) (*source.FileSet, []FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	engine, err := NewEngine(opts.Options)
	if err != nil {
		return nil, nil, err
	}

	started := time.Now()
	files, err := CollectFiles(ctx, paths, opts.Options.Exclude)
	opts.Timer.Add("collect", time.Since(started))
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, ErrNoSourceFiles
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	fileSet := source.NewFileSet()
	optionsHash := opts.Options.Hash()

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FormatResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			fctx, span := trace.StartSpan(gctx, trace.ScopeFile, "file:"+path)
			res := formatFile(fctx, fileSet, engine, path, optionsHash, &opts)
			span.WithExtra("changed", strconv.FormatBool(res.Changed)).End(resultDetail(res))

			if errors.Is(res.Err, context.Canceled) || errors.Is(res.Err, context.DeadlineExceeded) {
				return res.Err
			}
			results[i] = res
			if opts.OnResult != nil {
				opts.OnResult(res)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// FormatSource formats content that does not live on disk, such as stdin.
// The formatted text is always returned in the result.
func FormatSource(ctx context.Context, name string, raw []byte, opts FormatOptions) (*source.FileSet, FormatResult, error) {
	engine, err := NewEngine(opts.Options)
	if err != nil {
		return nil, FormatResult{}, err
	}
	fileSet := source.NewFileSet()
	res := FormatResult{Path: name, Bag: diag.NewBag(maxDiagnostics(&opts))}

	content, _, err := source.Decode(raw)
	if err != nil {
		res.Err = err
		res.FileID = fileSet.AddVirtual(name, nil)
		res.Bag.Add(diag.New(diag.SevError, diag.IODecodeFailed, source.Span{File: res.FileID}, err.Error()))
		return fileSet, res, nil
	}
	res.FileID = fileSet.AddVirtual(name, content)
	formatted, err := runEngine(ctx, engine, fileSet.Get(res.FileID), &res, &opts)
	if err != nil {
		return fileSet, res, ctxErr(err)
	}
	res.Formatted = formatted
	if opts.Check && res.Changed {
		reportNotFormatted(&res, content, formatted)
	}
	return fileSet, res, nil
}

func formatFile(ctx context.Context, fileSet *source.FileSet, engine *rules.Engine, path string, optionsHash [32]byte, opts *FormatOptions) FormatResult {
	res := FormatResult{Path: path, Bag: diag.NewBag(maxDiagnostics(opts))}

	started := time.Now()
	id, err := fileSet.Load(path)
	opts.Timer.Add("read", time.Since(started))
	if err != nil {
		// пустой виртуальный файл, чтобы диагностика указывала на путь
		res.Err = err
		res.FileID = fileSet.AddVirtual(path, nil)
		res.Bag.Add(diag.New(diag.SevError, diag.IOReadFailed, source.Span{File: res.FileID}, "failed to load file: "+err.Error()))
		return res
	}
	res.FileID = id
	file := fileSet.Get(id)

	if opts.Cache.Has(cache.Key(file.Content, optionsHash)) {
		res.Cached = true
		if opts.Stdout {
			res.Formatted = file.Content
		}
		return res
	}

	formatted, err := runEngine(ctx, engine, file, &res, opts)
	if err != nil {
		return res
	}

	switch {
	case opts.Check:
		if res.Changed {
			reportNotFormatted(&res, file.Content, formatted)
			return res
		}
	case opts.Stdout:
		res.Formatted = formatted
	case res.Changed:
		started = time.Now()
		err = source.WriteFile(path, formatted, file.Encoding)
		opts.Timer.Add("write", time.Since(started))
		if err != nil {
			res.Err = err
			res.Bag.Add(diag.New(diag.SevError, diag.IOWriteFailed, source.Span{File: id}, "failed to write file: "+err.Error()))
			return res
		}
	}

	entry := &cache.Entry{Path: path, Size: len(formatted), Rules: res.Applied}
	if err := opts.Cache.Put(cache.Key(formatted, optionsHash), entry); err != nil {
		res.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheCorrupt, source.Span{File: id}, "cache write failed: "+err.Error()))
	}
	return res
}

// runEngine tokenizes file and applies the rules. Rule and lexer
// diagnostics go to res.Bag. A partition failure is reported and returned.
func runEngine(ctx context.Context, engine *rules.Engine, file *source.File, res *FormatResult, opts *FormatOptions) ([]byte, error) {
	started := time.Now()
	defer func() { opts.Timer.Add("format", time.Since(started)) }()

	reporter := &diag.BagReporter{Bag: res.Bag}
	toks := lexer.TokenizeWithOptions(string(file.Content), lexer.Options{Reporter: reporter, File: file.ID})

	// движок общий для всех воркеров, репортер у каждого файла свой
	e := *engine
	e.Reporter = reporter
	out, err := e.Apply(ctx, file.ID, toks)
	if err != nil {
		res.Err = err
		if errors.Is(err, decl.ErrPartition) {
			res.Bag.Add(diag.New(diag.SevError, diag.FmtPartition, source.Span{File: file.ID}, "file left unformatted: "+err.Error()))
		} else if ctxErr(err) == nil {
			res.Bag.Add(diag.New(diag.SevError, diag.FmtRuleFailed, source.Span{File: file.ID}, err.Error()))
		}
		return nil, err
	}
	formatted := []byte(token.Render(out.Tokens))
	res.Passes = out.Passes
	res.Applied = out.Applied
	res.Changed = !bytes.Equal(formatted, file.Content)
	return formatted, nil
}

// reportNotFormatted adds a warning at the first byte that formatting changes.
func reportNotFormatted(res *FormatResult, before, after []byte) {
	off, err := safecast.Conv[uint32](firstDiff(before, after))
	if err != nil {
		off = 0
	}
	msg := "file is not formatted"
	if len(res.Applied) > 0 {
		msg = fmt.Sprintf("file is not formatted (rules: %v)", res.Applied)
	}
	res.Bag.Add(diag.New(diag.SevWarning, diag.FmtNotFormatted, source.Point(res.FileID, off), msg))
}

func firstDiff(a, b []byte) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// ctxErr returns err when it is a cancellation, nil otherwise.
func ctxErr(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func maxDiagnostics(opts *FormatOptions) int {
	if opts.MaxDiagnostics <= 0 {
		return 256
	}
	return opts.MaxDiagnostics
}

func resultDetail(res FormatResult) string {
	switch {
	case res.Err != nil:
		return "error"
	case res.Cached:
		return "cached"
	case res.Changed:
		return "changed"
	default:
		return "unchanged"
	}
}
