package trace

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Format is the encoding of written trace events.
type Format uint8

const (
	FormatAuto   Format = iota // by output extension
	FormatText                 // human-readable lines
	FormatNDJSON               // one JSON object per line
	FormatChrome               // chrome://tracing event array
)

var formatNames = map[string]Format{
	"":       FormatAuto,
	"auto":   FormatAuto,
	"text":   FormatText,
	"ndjson": FormatNDJSON,
	"chrome": FormatChrome,
}

// ParseFormat converts a --trace-format value to Format.
func ParseFormat(s string) (Format, error) {
	if f, ok := formatNames[strings.ToLower(s)]; ok {
		return f, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson|chrome)", s)
}

// FormatEvent encodes ev. FormatAuto falls back to text.
func FormatEvent(ev *Event, format Format) []byte {
	switch format {
	case FormatNDJSON:
		return append(marshal(ndjsonEvent{
			Time:     ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
			Seq:      ev.Seq,
			Kind:     ev.Kind.String(),
			Scope:    ev.Scope.String(),
			SpanID:   ev.SpanID,
			ParentID: ev.ParentID,
			GID:      ev.GID,
			Name:     ev.Name,
			Detail:   ev.Detail,
			Extra:    ev.Extra,
		}), '\n')
	case FormatChrome:
		return marshal(chromeEventOf(ev))
	default:
		return formatText(ev)
	}
}

type ndjsonEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id"`
	ParentID uint64            `json:"parent_id,omitempty"`
	GID      uint64            `json:"gid,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

// chromeEvent is one element of the Trace Event Format array. The array
// brackets are written by the tracer that owns the output.
type chromeEvent struct {
	Name  string            `json:"name"`
	Cat   string            `json:"cat"`
	Ph    string            `json:"ph"`
	TS    int64             `json:"ts"`
	PID   int               `json:"pid"`
	TID   uint64            `json:"tid"`
	Scope string            `json:"s,omitempty"`
	Args  map[string]string `json:"args,omitempty"`
}

func chromeEventOf(ev *Event) chromeEvent {
	c := chromeEvent{
		Name: ev.Name,
		Cat:  ev.Scope.String(),
		Ph:   "i",
		TS:   ev.Time.UnixMicro(),
		PID:  1,
		TID:  ev.GID,
		Args: ev.Extra,
	}
	if ev.Kind.valid() {
		c.Ph = kindInfo[ev.Kind].phase
	}
	if c.Ph == "i" {
		c.Scope = "t"
	}
	if ev.Detail != "" {
		c.Args = maps.Clone(ev.Extra)
		if c.Args == nil {
			c.Args = make(map[string]string, 1)
		}
		c.Args["detail"] = ev.Detail
	}
	return c
}

func marshal(v any) []byte {
	data, _ := json.Marshal(v)
	return data
}

// formatText renders "[seq] → name (detail) {k=v}" with child spans
// indented. Extra keys are sorted.
func formatText(ev *Event) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%6d] ", ev.Seq)
	if ev.ParentID > 0 {
		sb.WriteString("  ")
	}
	if ev.Kind.valid() {
		sb.WriteString(kindInfo[ev.Kind].glyph)
		sb.WriteByte(' ')
	}
	sb.WriteString(ev.Name)
	if ev.Detail != "" {
		fmt.Fprintf(&sb, " (%s)", ev.Detail)
	}
	if len(ev.Extra) > 0 {
		pairs := make([]string, 0, len(ev.Extra))
		for _, k := range slices.Sorted(maps.Keys(ev.Extra)) {
			pairs = append(pairs, k+"="+ev.Extra[k])
		}
		fmt.Fprintf(&sb, " {%s}", strings.Join(pairs, ", "))
	}
	sb.WriteByte('\n')
	return []byte(sb.String())
}
