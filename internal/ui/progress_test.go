package ui

import (
	"strings"
	"testing"
)

func TestProgressTracksFiles(t *testing.T) {
	m := newProgressModel("swiftfmt", []string{"a.swift", "b.swift"}, nil)

	m.applyEvent(Event{File: "a.swift", Status: StatusChanged})
	m.applyEvent(Event{File: "b.swift", Status: StatusWorking})
	m.applyEvent(Event{File: "unknown.swift", Status: StatusError})
	m.applyEvent(Event{Label: "2 files"})

	if got := m.fraction(); got != 0.75 {
		t.Fatalf("fraction = %v, want 0.75", got)
	}
	view := stripANSI(m.View())
	for _, want := range []string{"swiftfmt (2 files)", "changed a.swift", "formatting b.swift"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestProgressFoldsFinishedFiles(t *testing.T) {
	files := []string{"a.swift", "b.swift", "c.swift", "d.swift", "e.swift"}
	m := newProgressModel("swiftfmt", files, nil)
	m.rows = 3
	m.applyEvent(Event{File: "a.swift", Status: StatusUnchanged})
	m.applyEvent(Event{File: "b.swift", Status: StatusCached})
	m.applyEvent(Event{File: "c.swift", Status: StatusChanged})
	m.applyEvent(Event{File: "d.swift", Status: StatusError})

	shown, hidden := m.visible()
	var names []string
	for _, item := range shown {
		names = append(names, item.path)
	}
	if got := strings.Join(names, ","); got != "c.swift,d.swift,e.swift" || hidden != 2 {
		t.Fatalf("visible = %s (+%d hidden)", got, hidden)
	}
	if got := stripANSI(m.tally()); got != "1 changed, 1 unchanged, 1 cached, 1 error" {
		t.Fatalf("tally = %q", got)
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "... 2 more") {
		t.Fatalf("view lacks the folded count:\n%s", view)
	}
}

func TestDoneClosesView(t *testing.T) {
	events := make(chan Event)
	close(events)
	m := newProgressModel("swiftfmt", []string{"a.swift"}, events)
	if _, ok := m.listenForEvent()().(doneMsg); !ok {
		t.Fatal("closed channel must produce doneMsg")
	}
	m.Update(doneMsg{})
	if !strings.HasPrefix(stripANSI(m.View()), "done: swiftfmt") {
		t.Fatalf("unexpected final view:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Sources/App/VeryLongFileName.swift", 12); got != "Sources/A..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("short", 12); got != "short" {
		t.Fatalf("truncate = %q", got)
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
