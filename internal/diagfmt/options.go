package diagfmt

import "swiftfmt/internal/diag"

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto shortens long absolute paths to the base name.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	// PathModeRelative shows paths relative to BaseDir.
	PathModeRelative
	PathModeBasename
)

var pathModeNames = map[string]PathMode{
	"":         PathModeAuto,
	"auto":     PathModeAuto,
	"absolute": PathModeAbsolute,
	"relative": PathModeRelative,
	"basename": PathModeBasename,
}

// ParsePathMode parses the --path-mode flag value.
func ParsePathMode(s string) (PathMode, bool) {
	m, ok := pathModeNames[s]
	return m, ok
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	Context  int8 // строк контекста до и после основной строки
	PathMode PathMode
	BaseDir  string // для PathModeRelative
	// MinSeverity hides diagnostics below it.
	MinSeverity diag.Severity
	ShowNotes   bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	BaseDir          string
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
}
