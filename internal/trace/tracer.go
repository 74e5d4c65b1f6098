package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Tracer receives trace events. Implementations must be goroutine-safe:
// the driver formats files in parallel and every worker emits.
type Tracer interface {
	Emit(ev *Event)
	// Flush pushes buffered events to the output.
	Flush() error
	// Close flushes and releases the output. Ring tracers dump here.
	Close() error
	Level() Level
	// Enabled reports Level() > LevelOff.
	Enabled() bool
}

type nopTracer struct{}

func (nopTracer) Emit(*Event) {}
func (nopTracer) Flush() error { return nil }
func (nopTracer) Close() error { return nil }
func (nopTracer) Level() Level { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop discards everything. Returned by FromContext when no tracer is set.
var Nop Tracer = nopTracer{}

// StorageMode selects where events go.
type StorageMode uint8

const (
	// ModeStream writes every event as it happens.
	ModeStream StorageMode = iota + 1
	// ModeRing keeps the last events in memory and writes them on Close.
	ModeRing
	// ModeBoth streams and keeps a ring.
	ModeBoth
)

var modeNames = map[StorageMode]string{
	ModeStream: "stream",
	ModeRing:   "ring",
	ModeBoth:   "both",
}

func (m StorageMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseMode converts a flag value to StorageMode.
func ParseMode(s string) (StorageMode, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for mode, name := range modeNames {
		if name == want {
			return mode, nil
		}
	}
	return ModeStream, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

// Config describes the tracer built by New.
type Config struct {
	Level Level
	Mode  StorageMode
	// Format of the output; FormatAuto picks it from OutputPath.
	Format Format
	// Output takes precedence over OutputPath. It is never closed.
	Output io.Writer
	// OutputPath is a file to create; "" or "-" means stderr.
	OutputPath string
	// RingSize is the ring capacity, 4096 when zero.
	RingSize int
	// Heartbeat is informational: callers start it with StartHeartbeat.
	Heartbeat time.Duration
}

const defaultRingSize = 4096

// New builds the tracer described by cfg. LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = defaultRingSize
	}
	format := resolveFormat(cfg.Format, cfg.OutputPath)

	w, owned, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.Mode {
	case ModeStream:
		return newStreamTracer(w, owned, cfg.Level, format), nil
	case ModeRing:
		ring := NewRingTracer(cfg.RingSize, cfg.Level)
		ring.dumpTo(w, owned, format)
		return ring, nil
	case ModeBoth:
		// кольцо только хранит события, поток уже пишет их в вывод
		return NewMultiTracer(
			newStreamTracer(w, owned, cfg.Level, format),
			NewRingTracer(cfg.RingSize, cfg.Level),
		), nil
	}
	if owned != nil {
		_ = owned.Close()
	}
	return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
}

// resolveFormat maps FormatAuto to a concrete format by file extension.
func resolveFormat(format Format, path string) Format {
	if format != FormatAuto {
		return format
	}
	switch {
	case strings.HasSuffix(path, ".ndjson"):
		return FormatNDJSON
	case filepath.Ext(path) == ".json":
		return FormatChrome
	}
	return FormatText
}

// openOutput returns the destination writer and, when New created it, the
// file to close.
func openOutput(cfg Config) (io.Writer, io.Closer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return os.Stderr, nil, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, f, nil
}
