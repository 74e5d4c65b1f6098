package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestVersionIsDottedTriple(t *testing.T) {
	if core, _, _ := strings.Cut(Version, "-"); strings.Count(core, ".") != 2 {
		t.Errorf("Version = %q, want MAJOR.MINOR.PATCH[-pre]", Version)
	}
}

func TestColorize(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })

	for _, v := range []string{
		"0.1.0",
		"1.2.3",
		"0.1.0-dev",
		"1.2.3-rc.1+build.123",
		"dev",
		"1.2",
	} {
		if got := Colorize(v); got != v {
			t.Errorf("Colorize(%q) without color = %q", v, got)
		}
	}

	color.NoColor = false
	versionMajorColor.EnableColor()
	versionMinorColor.EnableColor()
	versionPatchColor.EnableColor()
	t.Cleanup(func() {
		versionMajorColor.DisableColor()
		versionMinorColor.DisableColor()
		versionPatchColor.DisableColor()
	})
	got := Colorize("1.2.3-dev")
	want := versionMajorColor.Sprint("1") + "." + versionMinorColor.Sprint("2") + "." + versionPatchColor.Sprint("3") + "-dev"
	if got != want {
		t.Errorf("Colorize = %q, want %q", got, want)
	}
}

func BenchmarkColorize(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Colorize("1.2.3-rc.1")
	}
}
