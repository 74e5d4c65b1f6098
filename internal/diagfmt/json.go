package diagfmt

import (
	"encoding/json"
	"io"

	"swiftfmt/internal/diag"
	"swiftfmt/internal/source"
)

// Location is a span in JSON output. Line and column fields are present
// only with JSONOpts.IncludePositions.
type Location struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// Note без позиции сериализуется без location
type Note struct {
	Message  string    `json:"message"`
	Location *Location `json:"location,omitempty"`
}

type Diagnostic struct {
	Severity string   `json:"severity"`
	Code     string   `json:"code"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Location Location `json:"location"`
	Notes    []Note   `json:"notes,omitempty"`
}

// Report is the JSON document for a diagnostic bag. Errors and Warnings
// count the whole bag, Diagnostics only what passed JSONOpts.Max. Dropped
// counts diagnostics the bag rejected at its cap.
type Report struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
	Count       int          `json:"count"`
	Errors      int          `json:"errors"`
	Warnings    int          `json:"warnings"`
	Truncated   bool         `json:"truncated,omitempty"`
	Dropped     int          `json:"dropped,omitempty"`
}

type locator struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (l locator) at(span source.Span) Location {
	loc := Location{
		File:      formatPath(l.fs.Get(span.File), l.opts.PathMode, l.opts.BaseDir),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if l.opts.IncludePositions {
		start, end := l.fs.Resolve(span)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

// BuildReport converts bag without encoding it, so callers can embed the
// result in a larger document.
func BuildReport(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) Report {
	l := locator{fs: fs, opts: opts}
	items := bag.Items()
	rep := Report{Dropped: bag.Dropped()}
	for _, d := range items {
		switch d.Severity {
		case diag.SevError:
			rep.Errors++
		case diag.SevWarning:
			rep.Warnings++
		}
	}
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
		rep.Truncated = true
	}

	rep.Diagnostics = make([]Diagnostic, 0, len(items))
	for _, d := range items {
		out := Diagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Location: l.at(d.Primary),
		}
		// отчёт о времени фаз лежит в заметке, без неё он пуст
		if opts.IncludeNotes || d.Code == diag.ObsTimings {
			for _, n := range d.Notes {
				note := Note{Message: n.Msg}
				if n.Span != (source.Span{}) {
					loc := l.at(n.Span)
					note.Location = &loc
				}
				out.Notes = append(out.Notes, note)
			}
		}
		rep.Diagnostics = append(rep.Diagnostics, out)
	}
	rep.Count = len(rep.Diagnostics)
	return rep
}

// JSON writes bag as an indented Report.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildReport(bag, fs, opts))
}
