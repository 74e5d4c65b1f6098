package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerAccumulatesStages(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("format", time.Millisecond)
		}()
	}
	wg.Wait()
	tm.Add("write", 2*time.Millisecond)

	rep := tm.Report()
	if len(rep.Stages) != 2 {
		t.Fatalf("expected 2 stages, got %+v", rep.Stages)
	}
	if s := rep.Stages[0]; s.Name != "format" || s.Count != 4 || s.DurationMS != 4 {
		t.Fatalf("unexpected format stage: %+v", s)
	}
	if rep.TotalMS != 6 || rep.WallMS < 0 {
		t.Fatalf("total = %v, wall = %v", rep.TotalMS, rep.WallMS)
	}
	sum := tm.Summary()
	for _, want := range []string{"format", "x4", "total", "wall"} {
		if !strings.Contains(sum, want) {
			t.Errorf("summary lacks %q:\n%s", want, sum)
		}
	}
}

func TestNilTimerIsInert(t *testing.T) {
	var tm *Timer
	tm.Add("x", time.Second)
	if r := tm.Report(); len(r.Stages) != 0 {
		t.Fatalf("nil timer reported %+v", r)
	}
}
