package trace

import "time"

// Kind is the type of a trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
)

var kindInfo = [...]struct {
	name  string
	glyph string // маркер в текстовом формате
	phase string // поле ph в chrome://tracing
}{
	KindSpanBegin: {"begin", "→", "B"},
	KindSpanEnd:   {"end", "←", "E"},
	KindPoint:     {"point", "•", "i"},
	KindHeartbeat: {"heartbeat", "♡", "i"},
}

func (k Kind) valid() bool { return k > 0 && int(k) < len(kindInfo) }

func (k Kind) String() string {
	if !k.valid() {
		return "unknown"
	}
	return kindInfo[k].name
}

// Scope is the granularity of an event. Smaller values are coarser.
type Scope uint8

const (
	// ScopeRun covers a whole command invocation.
	ScopeRun Scope = iota + 1
	// ScopeFile covers reading, formatting and writing one file.
	ScopeFile
	// ScopePass covers one sweep of the rule engine over a file.
	ScopePass
	// ScopeRule covers a single rule application.
	ScopeRule
)

var scopeNames = [...]string{
	ScopeRun:  "run",
	ScopeFile: "file",
	ScopePass: "pass",
	ScopeRule: "rule",
}

func (s Scope) String() string {
	if s == 0 || int(s) >= len(scopeNames) {
		return "unknown"
	}
	return scopeNames[s]
}

// Event is one trace record. Seq is assigned by the tracer that stores it.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 для корневых спанов
	GID      uint64
	Name     string // "format", "file:a.swift", "pass:2", "rule:hoistTry"
	Detail   string
	Extra    map[string]string
}
