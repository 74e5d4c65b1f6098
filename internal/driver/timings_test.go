package driver

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"swiftfmt/internal/diag"
	"swiftfmt/internal/observ"
	"swiftfmt/internal/source"
)

func TestAppendTimingDiagnostic(t *testing.T) {
	timer := observ.NewTimer()
	timer.Add("format", 3*time.Millisecond)

	// мешок уже полон: отчёт всё равно должен попасть в него
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevError, diag.IOReadFailed, source.Span{}, "x"))
	AppendTimingDiagnostic(bag, timer, 2)

	if bag.Len() != 2 || bag.Dropped() != 0 {
		t.Fatalf("Len = %d, Dropped = %d; want 2, 0", bag.Len(), bag.Dropped())
	}
	d := bag.Items()[1]
	if d.Code != diag.ObsTimings || !strings.Contains(d.Message, "over 2 files") || len(d.Notes) != 1 {
		t.Fatalf("unexpected timing diagnostic: %+v", d)
	}
	var payload struct {
		Kind   string               `json:"kind"`
		Files  int                  `json:"files"`
		Stages []observ.StageReport `json:"stages"`
	}
	if err := json.Unmarshal([]byte(d.Notes[0].Msg), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Kind != "format" || payload.Files != 2 || len(payload.Stages) != 1 || payload.Stages[0].DurationMS != 3 {
		t.Fatalf("unexpected payload: %+v", payload)
	}

	AppendTimingDiagnostic(nil, timer, 0)
	AppendTimingDiagnostic(bag, nil, 0)
}
