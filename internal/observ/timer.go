package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Timer sums durations per stage. Workers formatting different files report
// into the same Timer, so stage totals can exceed the wall time.
type Timer struct {
	mu      sync.Mutex
	started time.Time
	stages  []stage
	index   map[string]int
}

type stage struct {
	name  string
	dur   time.Duration
	count int
}

func NewTimer() *Timer {
	return &Timer{started: time.Now(), index: make(map[string]int, 8)}
}

// Add accumulates d into the stage called name. Stages keep the order of
// their first Add. A nil Timer ignores the call.
func (t *Timer) Add(name string, d time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	i, ok := t.index[name]
	if !ok {
		i = len(t.stages)
		t.index[name] = i
		t.stages = append(t.stages, stage{name: name})
	}
	t.stages[i].dur += d
	t.stages[i].count++
}

// StageReport is one stage of the serialized report.
type StageReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Count      int     `json:"count"`
}

// Report is a snapshot of the timer. TotalMS sums the stages, WallMS is the
// time since NewTimer.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	WallMS  float64       `json:"wall_ms"`
	Stages  []StageReport `json:"stages"`
}

func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	rep := Report{
		WallMS: millis(time.Since(t.started)),
		Stages: make([]StageReport, 0, len(t.stages)),
	}
	for _, s := range t.stages {
		ms := millis(s.dur)
		rep.TotalMS += ms
		rep.Stages = append(rep.Stages, StageReport{Name: s.name, DurationMS: ms, Count: s.count})
	}
	return rep
}

// Summary renders the report as the aligned table printed by --timings.
func (t *Timer) Summary() string {
	rep := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, s := range rep.Stages {
		fmt.Fprintf(&sb, "  %-12s %9.2f ms  x%d\n", s.Name, s.DurationMS, s.Count)
	}
	fmt.Fprintf(&sb, "  %-12s %9.2f ms\n", "total", rep.TotalMS)
	fmt.Fprintf(&sb, "  %-12s %9.2f ms\n", "wall", rep.WallMS)
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
