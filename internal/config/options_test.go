package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"swiftfmt/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "swiftfmt.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
rules = ["hoistTry", "hoistPatternLet"]
hoist-pattern-let = false
throw-capturing = ["expectError"]
max-passes = 3
exclude = ["Generated/"]
`)
	opts, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if opts.HoistPatternLet || opts.MaxPasses != 3 || !opts.TrimBlankLines {
		t.Fatalf("unexpected options %+v", opts)
	}
	if !slices.Equal(opts.Rules, []string{"hoistTry", "hoistPatternLet"}) {
		t.Fatalf("Rules = %v", opts.Rules)
	}
	if !slices.Equal(opts.ThrowCapturing, []string{"expectError"}) || !slices.Equal(opts.Exclude, []string{"Generated/"}) {
		t.Fatalf("lists = %v %v", opts.ThrowCapturing, opts.Exclude)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "max-passes = 2\nindent = 4\n")
	_, err := config.Load(path)
	if !errors.Is(err, config.ErrUnknownKey) {
		t.Fatalf("err = %v, want ErrUnknownKey", err)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := writeConfig(t, "max-passes = 0\n")
	if _, err := config.Load(path); !errors.Is(err, config.ErrBadValue) {
		t.Fatalf("err = %v, want ErrBadValue", err)
	}
}

func TestLoadReportsSyntaxErrors(t *testing.T) {
	path := writeConfig(t, "rules = [\n")
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestHashTracksFormattingOptions(t *testing.T) {
	a := config.Default()
	b := config.Default()
	if a.Hash() != b.Hash() {
		t.Fatal("equal options hash differently")
	}
	b.Exclude = []string{"vendor/"}
	if a.Hash() != b.Hash() {
		t.Fatal("exclude patterns changed the hash")
	}
	b.HoistPatternLet = false
	if a.Hash() == b.Hash() {
		t.Fatal("mode change did not change the hash")
	}
}
