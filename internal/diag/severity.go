package diag

import (
	"fmt"
	"strings"
)

// Severity orders diagnostics: rules report refusals as info, unformatted
// files as warnings and anything that left a file untouched as an error.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// ParseSeverity reads a severity name in any case; "warn" is accepted.
func ParseSeverity(s string) (Severity, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "WARN" {
		return SevWarning, nil
	}
	for i, n := range severityNames {
		if n == name {
			return Severity(i), nil
		}
	}
	return SevInfo, fmt.Errorf("invalid severity %q (expected info|warning|error)", s)
}
