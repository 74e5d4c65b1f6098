package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"swiftfmt/internal/diag"
	"swiftfmt/internal/source"
)

// длиннее этого абсолютный путь в авто-режиме сокращается до имени файла
const autoPathLimit = 40

type palette struct {
	err, warn, info, note, code, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue, color.Bold),
		caret:  color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		// отчёт о времени фаз печатается при любом пороге
		if d.Severity < opts.MinSeverity && d.Code != diag.ObsTimings {
			continue
		}
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			formatPath(fs.Get(d.Primary.File), opts.PathMode, opts.BaseDir),
			start.Line, start.Col,
			p.severity(d.Severity).Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			d.Message)
		writeSnippet(w, fs, d.Primary, opts.Context, p)

		if !opts.ShowNotes && d.Code != diag.ObsTimings {
			continue
		}
		for _, n := range d.Notes {
			if n.Span == (source.Span{}) || fs.Get(n.Span.File) == nil {
				fmt.Fprintf(w, "  %s: %s\n", p.note.Sprint("note"), n.Msg)
				continue
			}
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s: %s:%d:%d: %s\n", p.note.Sprint("note"),
				formatPath(fs.Get(n.Span.File), opts.PathMode, opts.BaseDir), ns.Line, ns.Col, n.Msg)
		}
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "%s: %d more diagnostics not shown (--max-diagnostics)\n", p.note.Sprint("note"), n)
	}
}

// writeSnippet prints the lines around span with a caret line under the
// primary one. Files without content print nothing.
func writeSnippet(w io.Writer, fs *source.FileSet, span source.Span, context int8, p palette) {
	f := fs.Get(span.File)
	if f == nil || len(f.Content) == 0 {
		return
	}
	start, end := fs.Resolve(span)
	ctx := uint32(max(context, 0))
	first := start.Line - min(ctx, start.Line-1)
	last := start.Line + ctx
	width := len(strconv.FormatUint(uint64(last), 10))

	for n := first; n <= last; n++ {
		line := f.GetLine(n)
		if n > start.Line && line == "" && f.LineStart(n) >= uint32(len(f.Content)) {
			break
		}
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", width, n), line)
		if n != start.Line {
			continue
		}
		col := int(start.Col) - 1
		stop := len(line)
		if end.Line == start.Line {
			stop = min(int(end.Col)-1, len(line))
		}
		col = min(col, len(line))
		underline := "^"
		if cells := runewidth.StringWidth(line[col:max(stop, col)]); cells > 1 {
			underline += strings.Repeat("~", cells-1)
		}
		fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", width, ""), padding(line[:col]), p.caret.Sprint(underline))
	}
}

// padding returns whitespace as wide as prefix, keeping tabs so the caret
// lines up in the terminal.
func padding(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

func formatPath(f *source.File, mode PathMode, baseDir string) string {
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil && f.Flags&source.FileVirtual == 0 {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case PathModeRelative:
		return f.DisplayPath(baseDir)
	case PathModeBasename:
		return filepath.Base(f.Path)
	default:
		if filepath.IsAbs(f.Path) && len(f.Path) > autoPathLimit {
			return filepath.Base(f.Path)
		}
		return f.Path
	}
}
