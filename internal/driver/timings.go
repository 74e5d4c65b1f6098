package driver

import (
	"encoding/json"
	"fmt"

	"swiftfmt/internal/diag"
	"swiftfmt/internal/observ"
	"swiftfmt/internal/source"
)

type timingPayload struct {
	Kind  string `json:"kind"`
	Files int    `json:"files"`
	observ.Report
}

// AppendTimingDiagnostic adds the timer report to bag as an info
// diagnostic whose note carries the JSON payload.
func AppendTimingDiagnostic(bag *diag.Bag, timer *observ.Timer, files int) {
	if bag == nil || timer == nil {
		return
	}
	report := timer.Report()
	payload := timingPayload{Kind: "format", Files: files, Report: report}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	msg := fmt.Sprintf("timings (%s): %.2f ms wall, %.2f ms in stages over %d files", payload.Kind, report.WallMS, report.TotalMS, files)
	entry := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, msg).WithNote(source.Span{}, string(data))

	if bag.Len() < bag.Cap() {
		bag.Add(entry)
		return
	}
	overflow := diag.NewBag(1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
