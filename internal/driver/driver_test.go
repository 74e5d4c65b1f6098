package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"swiftfmt/internal/cache"
	"swiftfmt/internal/config"
	"swiftfmt/internal/decl"
	"swiftfmt/internal/diag"
	"swiftfmt/internal/observ"
	"swiftfmt/internal/rules"
	"swiftfmt/internal/source"
)

const (
	unformatted = "let x = foo(try bar())  \n"
	formatted   = "let x = try foo(bar())\n"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	for _, rel := range []string{
		"App/main.swift",
		"App/notes.txt",
		"App/Sub/model.swift",
		"App/skip_me.swift",
		"App/.build/cached.swift",
		"App/Generated/api.swift",
		"App/Pods/lib.swift",
	} {
		writeFile(t, filepath.Join(dir, rel), "")
	}
	writeFile(t, filepath.Join(dir, "App/.gitignore"), "Generated/\n")

	root := filepath.Join(dir, "App")
	explicit := filepath.Join(root, "main.swift")
	got, err := CollectFiles(context.Background(), []string{root, explicit}, []string{"skip_*.swift"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(root, "Sub", "model.swift"), explicit}
	if !slices.Equal(got, want) {
		t.Fatalf("CollectFiles = %v, want %v", got, want)
	}
}

func TestCollectFilesMissingPath(t *testing.T) {
	_, err := CollectFiles(context.Background(), []string{filepath.Join(t.TempDir(), "nope")}, nil)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestFormatPathsRewritesFiles(t *testing.T) {
	dir := t.TempDir()
	changed := filepath.Join(dir, "a.swift")
	clean := filepath.Join(dir, "b.swift")
	writeFile(t, changed, unformatted)
	writeFile(t, clean, formatted)

	timer := observ.NewTimer()
	var mu sync.Mutex
	var seen []string
	opts := FormatOptions{
		Options: config.Default(),
		Jobs:    2,
		Timer:   timer,
		OnResult: func(r FormatResult) {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, r.Path)
		},
	}
	_, results, err := FormatPaths(context.Background(), []string{dir}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 || len(seen) != 2 {
		t.Fatalf("expected 2 results, got %d (callbacks %d)", len(results), len(seen))
	}
	if r := results[0]; r.Path != changed || !r.Changed || r.Err != nil {
		t.Fatalf("unexpected result for a.swift: %+v", r)
	}
	if !slices.Equal(results[0].Applied, []string{"hoistTry", "trailingSpace"}) {
		t.Fatalf("applied = %v", results[0].Applied)
	}
	if r := results[1]; r.Changed || r.Err != nil {
		t.Fatalf("unexpected result for b.swift: %+v", r)
	}
	if got := readFile(t, changed); got != formatted {
		t.Fatalf("a.swift = %q", got)
	}
	if timer.Report().TotalMS < 0 || len(timer.Report().Stages) == 0 {
		t.Fatal("timer recorded no phases")
	}
}

func TestFormatPathsCheckLeavesFilesAlone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.swift")
	writeFile(t, path, unformatted)

	_, results, err := FormatPaths(context.Background(), []string{path}, FormatOptions{Check: true, Options: config.Default()})
	if err != nil {
		t.Fatal(err)
	}
	r := results[0]
	if !r.Changed || r.Formatted != nil {
		t.Fatalf("unexpected check result: %+v", r)
	}
	if got := readFile(t, path); got != unformatted {
		t.Fatalf("check mode modified the file: %q", got)
	}
	var found *diag.Diagnostic
	for i, d := range r.Bag.Items() {
		if d.Code == diag.FmtNotFormatted {
			found = &r.Bag.Items()[i]
		}
	}
	if found == nil {
		t.Fatalf("missing not-formatted warning: %+v", r.Bag.Items())
	}
	// "let x = " is shared, the first change is where try is inserted
	if found.Primary.Start != 8 || found.Severity != diag.SevWarning {
		t.Fatalf("unexpected warning: %+v", *found)
	}
}

func TestFormatPathsStdout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.swift")
	writeFile(t, path, unformatted)

	_, results, err := FormatPaths(context.Background(), []string{path}, FormatOptions{Stdout: true, Options: config.Default()})
	if err != nil {
		t.Fatal(err)
	}
	if got := string(results[0].Formatted); got != formatted {
		t.Fatalf("formatted = %q", got)
	}
	if got := readFile(t, path); got != unformatted {
		t.Fatalf("stdout mode modified the file: %q", got)
	}
}

func TestFormatPathsPreservesEncoding(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wide.swift")
	raw, err := source.Encode([]byte(unformatted), source.UTF16LE)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := FormatPaths(context.Background(), []string{path}, FormatOptions{Options: config.Default()}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text, enc, err := source.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if enc != source.UTF16LE || string(text) != formatted {
		t.Fatalf("got %s %q", enc, text)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode changed to %v", info.Mode().Perm())
	}
}

func TestFormatPathsUsesCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "src", "a.swift")
	writeFile(t, path, unformatted)
	c, err := cache.Open(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := FormatOptions{Options: config.Default(), Cache: c}

	_, first, err := FormatPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first[0].Cached || !first[0].Changed {
		t.Fatalf("first run: %+v", first[0])
	}
	_, second, err := FormatPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second[0].Cached || second[0].Changed {
		t.Fatalf("second run: %+v", second[0])
	}

	// other options, other key
	opts.Options.HoistPatternLet = false
	_, third, err := FormatPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third[0].Cached {
		t.Fatalf("cache hit across option sets: %+v", third[0])
	}
}

func TestFormatPathsErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "readme.md"), "")

	if _, _, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{Options: config.Default()}); !errors.Is(err, ErrNoSourceFiles) {
		t.Fatalf("expected ErrNoSourceFiles, got %v", err)
	}

	opts := FormatOptions{Options: config.Default()}
	opts.Options.Disable = []string{"noSuchRule"}
	if _, _, err := FormatPaths(context.Background(), []string{dir}, opts); !errors.Is(err, rules.ErrUnknownRule) {
		t.Fatalf("expected ErrUnknownRule, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := FormatPaths(ctx, []string{dir}, FormatOptions{Options: config.Default()}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFormatSource(t *testing.T) {
	_, res, err := FormatSource(context.Background(), "<stdin>", []byte(unformatted), FormatOptions{Options: config.Default()})
	if err != nil {
		t.Fatal(err)
	}
	if string(res.Formatted) != formatted || !res.Changed {
		t.Fatalf("unexpected result: %+v", res)
	}

	_, res, err = FormatSource(context.Background(), "<stdin>", []byte("let s = \"open\n"), FormatOptions{Options: config.Default()})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Bag.HasErrors() {
		t.Fatal("expected lexer errors for an unterminated string")
	}
}

func TestDecls(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.swift")
	writeFile(t, path, "import Foundation\n\nstruct S {\n    let a = 1\n    func f() {}\n}\n")

	res, err := Decls(path, 16)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Decls) != 2 {
		t.Fatalf("expected 2 top-level declarations, got %d", len(res.Decls))
	}
	s := res.Decls[1]
	if s.Kind != decl.Type || s.Name != "S" || len(s.Body) != 2 {
		t.Fatalf("unexpected struct declaration: %+v", s)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", res.Bag.Items())
	}
}
