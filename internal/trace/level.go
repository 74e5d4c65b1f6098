package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // only emit on failures
	LevelPhase               // run + file boundaries
	LevelDetail              // engine passes
	LevelDebug               // everything including single rules
)

var levelNames = [...]string{
	LevelOff:    "off",
	LevelError:  "error",
	LevelPhase:  "phase",
	LevelDetail: "detail",
	LevelDebug:  "debug",
}

// deepest scope emitted per level; zero means none
var levelScopes = [...]Scope{
	LevelPhase:  ScopeFile,
	LevelDetail: ScopePass,
	LevelDebug:  ScopeRule,
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a flag value to a Level, ignoring case.
func ParseLevel(s string) (Level, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for l, name := range levelNames {
		if name == want {
			return Level(l), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
}

// ShouldEmit reports whether events of scope are recorded at this level.
// LevelError records nothing on its own.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(levelScopes) {
		return false
	}
	return scope != 0 && scope <= levelScopes[l]
}
