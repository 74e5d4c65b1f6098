package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"swiftfmt/internal/config"
	"swiftfmt/internal/driver"
	"swiftfmt/internal/trace"
	"swiftfmt/internal/ui"
)

func newFormatTestCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "format"}
	registerFormatFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatal(err)
	}
	return cmd
}

func TestParseSwitch(t *testing.T) {
	cases := map[string]switchMode{
		"":     switchAuto,
		"auto": switchAuto,
		" On ": switchOn,
		"OFF":  switchOff,
	}
	for in, want := range cases {
		got, err := parseSwitch("ui", in)
		if err != nil || got != want {
			t.Errorf("parseSwitch(%q) = %d, %v; want %d", in, got, err, want)
		}
	}
	if _, err := parseSwitch("ui", "sometimes"); err == nil || !strings.Contains(err.Error(), "--ui") {
		t.Errorf("expected an --ui error, got %v", err)
	}
	if !switchOn.enabled(nil) || switchOff.enabled(nil) {
		t.Error("explicit modes must not consult the terminal")
	}
}

func TestResolveOptionsDefaults(t *testing.T) {
	opts, err := resolveOptions(newFormatTestCmd(t))
	if err != nil {
		t.Fatal(err)
	}
	if opts.Hash() != config.Default().Hash() {
		t.Fatalf("unexpected options without flags: %+v", opts)
	}
}

func TestResolveOptionsFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swiftfmt.toml")
	body := "disable = [\"consecutiveSpaces\"]\nmax-passes = 4\nhoist-pattern-let = true\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cmd := newFormatTestCmd(t,
		"--config", path,
		"--disable", "trailingSpace",
		"--hoist-pattern-let=false",
		"--exclude", "Generated/",
	)
	opts, err := resolveOptions(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(opts.Disable, []string{"consecutiveSpaces", "trailingSpace"}) {
		t.Errorf("Disable = %v", opts.Disable)
	}
	if opts.HoistPatternLet {
		t.Error("flag did not override hoist-pattern-let")
	}
	if opts.MaxPasses != 4 {
		t.Errorf("MaxPasses = %d, want 4", opts.MaxPasses)
	}
	if !slices.Equal(opts.Exclude, []string{"Generated/"}) {
		t.Errorf("Exclude = %v", opts.Exclude)
	}
}

func TestResolveOptionsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swiftfmt.toml")
	if err := os.WriteFile(path, []byte("indent = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveOptions(newFormatTestCmd(t, "--config", path)); !errors.Is(err, config.ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
}

func TestListRules(t *testing.T) {
	opts := config.Default()
	opts.Disable = []string{"hoistAwait"}
	infos, err := listRules(opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 5 {
		t.Fatalf("expected the full catalog, got %d rules", len(infos))
	}
	for _, info := range infos {
		if info.Help == "" {
			t.Errorf("rule %s has no help", info.Name)
		}
		if want := info.Name != "hoistAwait"; info.Enabled != want {
			t.Errorf("rule %s enabled = %v, want %v", info.Name, info.Enabled, want)
		}
	}

	var buf bytes.Buffer
	if err := renderRulesText(&buf, infos); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "hoistAwait") || !strings.Contains(buf.String(), "off") {
		t.Fatalf("unexpected listing:\n%s", buf.String())
	}

	opts.Disable = []string{"noSuchRule"}
	if _, err := listRules(opts); err == nil {
		t.Fatal("expected an error for an unknown rule")
	}
}

func TestRenderFormatText(t *testing.T) {
	results := []driver.FormatResult{
		{Path: "a.swift", Changed: true},
		{Path: "b.swift"},
		{Path: "c.swift", Err: errors.New("boom")},
	}

	var stdout, stderr bytes.Buffer
	hasErrors, hasChanges := renderFormatText(&stdout, &stderr, results, false, false)
	if !hasErrors || !hasChanges {
		t.Fatalf("hasErrors=%v hasChanges=%v", hasErrors, hasChanges)
	}
	if stdout.String() != "reformatted a.swift\n" {
		t.Errorf("stdout = %q", stdout.String())
	}
	if stderr.String() != "format: c.swift: boom\n" {
		t.Errorf("stderr = %q", stderr.String())
	}

	stdout.Reset()
	renderFormatText(&stdout, &stderr, results, true, false)
	if stdout.String() != "a.swift\n" {
		t.Errorf("check stdout = %q", stdout.String())
	}

	stdout.Reset()
	renderFormatText(&stdout, &stderr, results, true, true)
	if stdout.Len() != 0 {
		t.Errorf("quiet stdout = %q", stdout.String())
	}
}

func TestEventStatus(t *testing.T) {
	cases := []struct {
		res  driver.FormatResult
		want ui.Status
	}{
		{driver.FormatResult{Err: errors.New("x"), Changed: true}, ui.StatusError},
		{driver.FormatResult{Cached: true}, ui.StatusCached},
		{driver.FormatResult{Changed: true}, ui.StatusChanged},
		{driver.FormatResult{}, ui.StatusUnchanged},
	}
	for _, c := range cases {
		if got := eventStatus(c.res); got != c.want {
			t.Errorf("eventStatus(%+v) = %v, want %v", c.res, got, c.want)
		}
	}
}

func TestRenderVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	info := versionInfo{Version: "1.2.3", GitCommit: "abc"}
	if err := renderVersionJSON(&buf, info, versionOptions{showHash: true, showDate: true}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`"tool": "swiftfmt"`, `"git_commit": "abc"`, `"build_date": "unknown"`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in %s", want, out)
		}
	}
	if strings.Contains(out, "git_message") {
		t.Errorf("unexpected git_message in %s", out)
	}
}

func TestRenderVersionPretty(t *testing.T) {
	info := versionInfo{Version: "1.2.3", GitCommit: "abc", GoVersion: "go1.25.1"}

	var plain bytes.Buffer
	renderVersionPretty(&plain, info, versionOptions{}, false)
	if !strings.HasPrefix(plain.String(), "swiftfmt 1.2.3: ") || !strings.Contains(plain.String(), "--full") {
		t.Fatalf("unexpected output:\n%s", plain.String())
	}

	var full bytes.Buffer
	renderVersionPretty(&full, info, versionOptions{showHash: true, showDate: true}, false)
	for _, want := range []string{"commit:  abc\n", "built:   unknown\n", "go:      go1.25.1\n"} {
		if !strings.Contains(full.String(), want) {
			t.Errorf("missing %q in:\n%s", want, full.String())
		}
	}
	if strings.Contains(full.String(), "message:") {
		t.Errorf("message shown without --message:\n%s", full.String())
	}
}

func globalFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("swiftfmt", pflag.ContinueOnError)
	registerGlobalFlags(flags)
	if err := flags.Parse(args); err != nil {
		t.Fatal(err)
	}
	return flags
}

func TestTraceConfig(t *testing.T) {
	if _, ok, err := traceConfig(globalFlags(t)); ok || err != nil {
		t.Fatalf("tracing enabled by default: ok=%v err=%v", ok, err)
	}

	cfg, ok, err := traceConfig(globalFlags(t, "--trace", "out.json"))
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if cfg.Level != trace.LevelPhase || cfg.OutputPath != "out.json" || cfg.RingSize != 4096 {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	cfg, ok, err = traceConfig(globalFlags(t, "--trace-level", "debug", "--trace-mode", "ring", "--trace-format", "ndjson"))
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if cfg.Level != trace.LevelDebug || cfg.Mode != trace.ModeRing || cfg.Format != trace.FormatNDJSON {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	if _, _, err := traceConfig(globalFlags(t, "--trace-level", "loud")); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
	if _, _, err := traceConfig(globalFlags(t, "--trace", "x", "--trace-mode", "disk")); err == nil {
		t.Fatal("expected an error for an unknown mode")
	}
}
