package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"swiftfmt/internal/cache"
	"swiftfmt/internal/config"
	"swiftfmt/internal/diag"
	"swiftfmt/internal/diagfmt"
	"swiftfmt/internal/driver"
	"swiftfmt/internal/observ"
	"swiftfmt/internal/source"
	"swiftfmt/internal/trace"
)

var (
	errChangesRequired = errors.New("format: formatting changes required")
	errFormatFailed    = errors.New("format: failed to format some files")
)

var formatCmd = &cobra.Command{
	Use:     "format [flags] <path|-> [path...]",
	Aliases: []string{"fmt"},
	Short:   "Format Swift source files",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runFormat,
}

func init() {
	registerFormatFlags(formatCmd)
}

func registerFormatFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Bool("check", false, "report files that need formatting without rewriting them")
	flags.Bool("lint", false, "like --check, and print a diagnostic for every unformatted file")
	flags.Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	flags.String("format", "text", "output format (text|json)")
	flags.Int("jobs", 0, "files formatted in parallel (0 = GOMAXPROCS)")
	flags.String("config", "", "TOML options file")
	flags.StringSlice("rules", nil, "rules to enable instead of the default set")
	flags.StringSlice("disable", nil, "rules to disable")
	flags.Bool("hoist-pattern-let", true, "hoist let/var out of case patterns (false pushes them onto bindings)")
	flags.StringSlice("exclude", nil, "gitignore-style patterns of files to skip")
	flags.Bool("cache", true, "skip files recorded as already formatted")
	flags.String("cache-dir", "", "cache location (default $XDG_CACHE_HOME/swiftfmt)")
	flags.String("ui", "off", "progress view (auto|on|off)")
	flags.String("path-mode", "auto", "paths in diagnostics (auto|absolute|relative|basename)")
	flags.String("min-severity", "warning", "lowest severity printed by --lint (info|warning|error)")
}

// formatFlags are the command-line values of one format run.
type formatFlags struct {
	check, lint, stdout bool
	outputFormat        string
	quiet, timings      bool
	pathMode            diagfmt.PathMode
	minSeverity         diag.Severity
	ui                  switchMode
}

func runFormat(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	ff, err := readFormatFlags(cmd)
	if err != nil {
		return err
	}
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}

	fo := driver.FormatOptions{
		Check:          ff.check || ff.lint,
		Stdout:         ff.stdout,
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
		Options:        opts,
	}
	if ff.timings {
		fo.Timer = observ.NewTimer()
	}

	ctx, span := trace.StartSpan(cmd.Context(), trace.ScopeRun, "format")
	defer span.End("")

	if slices.Equal(args, []string{driver.StdinPath}) {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("format: failed to read stdin: %w", err)
		}
		fileSet, res, err := driver.FormatSource(ctx, "<stdin>", raw, fo)
		if err != nil {
			return err
		}
		return finishFormat(cmd, ff, fileSet, []driver.FormatResult{res}, fo.Timer, !fo.Check)
	}
	if slices.Contains(args, driver.StdinPath) {
		return fmt.Errorf("format: %q cannot be combined with other paths", driver.StdinPath)
	}

	if useCache, _ := cmd.Flags().GetBool("cache"); useCache && !fo.Check {
		if fo.Cache, err = openCache(cmd); err != nil {
			return err
		}
	}

	var (
		fileSet *source.FileSet
		results []driver.FormatResult
	)
	if shouldUseTUI(ff.ui) && !ff.stdout && ff.outputFormat == "text" {
		files, err := driver.CollectFiles(ctx, args, opts.Exclude)
		if err != nil {
			return err
		}
		fileSet, results, err = runFormatWithUI(ctx, "swiftfmt format", files, args, fo)
		if err != nil {
			return err
		}
		ff.quiet = true
	} else {
		fileSet, results, err = driver.FormatPaths(ctx, args, fo)
		if err != nil {
			return err
		}
	}
	return finishFormat(cmd, ff, fileSet, results, fo.Timer, ff.stdout)
}

func readFormatFlags(cmd *cobra.Command) (formatFlags, error) {
	var ff formatFlags
	var err error
	if ff.check, err = cmd.Flags().GetBool("check"); err != nil {
		return ff, err
	}
	if ff.lint, err = cmd.Flags().GetBool("lint"); err != nil {
		return ff, err
	}
	if ff.stdout, err = cmd.Flags().GetBool("stdout"); err != nil {
		return ff, err
	}
	if ff.outputFormat, err = cmd.Flags().GetString("format"); err != nil {
		return ff, err
	}
	if ff.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return ff, err
	}
	if ff.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return ff, err
	}

	switch ff.outputFormat {
	case "text", "json":
	default:
		return ff, fmt.Errorf("format: unsupported output format %q", ff.outputFormat)
	}
	if ff.stdout && (ff.check || ff.lint) {
		return ff, fmt.Errorf("format: --stdout cannot be used with --check or --lint")
	}
	if ff.stdout && ff.outputFormat != "text" {
		return ff, fmt.Errorf("format: --stdout is only supported with text output")
	}

	pathMode, _ := cmd.Flags().GetString("path-mode")
	mode, ok := diagfmt.ParsePathMode(pathMode)
	if !ok {
		return ff, fmt.Errorf("format: invalid --path-mode %q", pathMode)
	}
	ff.pathMode = mode

	minSeverity, _ := cmd.Flags().GetString("min-severity")
	if ff.minSeverity, err = diag.ParseSeverity(minSeverity); err != nil {
		return ff, fmt.Errorf("format: %w", err)
	}

	uiValue, _ := cmd.Flags().GetString("ui")
	if ff.ui, err = parseSwitch("ui", uiValue); err != nil {
		return ff, err
	}
	return ff, nil
}

// resolveOptions loads --config (or the defaults) and applies the flags the
// user set explicitly on top.
func resolveOptions(cmd *cobra.Command) (config.Options, error) {
	flags := cmd.Flags()
	opts := config.Default()
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Options{}, err
		}
		opts = loaded
	}
	if flags.Changed("rules") {
		opts.Rules, _ = flags.GetStringSlice("rules")
	}
	if flags.Changed("disable") {
		disable, _ := flags.GetStringSlice("disable")
		opts.Disable = append(opts.Disable, disable...)
	}
	if flags.Changed("hoist-pattern-let") {
		opts.HoistPatternLet, _ = flags.GetBool("hoist-pattern-let")
	}
	if flags.Changed("exclude") {
		exclude, _ := flags.GetStringSlice("exclude")
		opts.Exclude = append(opts.Exclude, exclude...)
	}
	if err := opts.Validate(); err != nil {
		return config.Options{}, err
	}
	return opts, nil
}

func openCache(cmd *cobra.Command) (*cache.Cache, error) {
	dir, _ := cmd.Flags().GetString("cache-dir")
	if dir == "" {
		var err error
		if dir, err = cache.DefaultDir("swiftfmt"); err != nil {
			return nil, fmt.Errorf("format: cache: %w", err)
		}
	}
	return cache.Open(dir)
}

// finishFormat prints the results and maps them to the exit status.
func finishFormat(cmd *cobra.Command, ff formatFlags, fileSet *source.FileSet, results []driver.FormatResult, timer *observ.Timer, toStdout bool) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	check := ff.check || ff.lint

	bag := diag.NewBag(0)
	for _, res := range results {
		if res.Bag != nil {
			bag.Merge(res.Bag)
		}
	}
	bag.Sort()

	var hasErrors, hasChanges bool
	switch {
	case ff.outputFormat == "json":
		if ff.timings {
			driver.AppendTimingDiagnostic(bag, timer, len(results))
		}
		if err := renderFormatJSON(stdout, results, bag, fileSet, check, ff.pathMode); err != nil {
			return err
		}
		hasErrors, hasChanges = summarize(results)
	case toStdout:
		hasErrors = renderFormatStdout(stdout, stderr, results)
	default:
		hasErrors, hasChanges = renderFormatText(stdout, stderr, results, check, ff.quiet)
	}

	if ff.lint && ff.outputFormat == "text" {
		color, err := useColor(cmd, os.Stderr)
		if err != nil {
			return err
		}
		if ff.timings {
			driver.AppendTimingDiagnostic(bag, timer, len(results))
		}
		diagfmt.Pretty(stderr, bag, fileSet, diagfmt.PrettyOpts{
			Color:       color,
			Context:     1,
			PathMode:    ff.pathMode,
			MinSeverity: ff.minSeverity,
		})
	} else if ff.timings && ff.outputFormat == "text" && timer != nil {
		fmt.Fprint(stderr, timer.Summary())
	}

	if hasErrors {
		return errFormatFailed
	}
	if check && hasChanges {
		return errChangesRequired
	}
	return nil
}

func summarize(results []driver.FormatResult) (hasErrors, hasChanges bool) {
	for _, res := range results {
		hasErrors = hasErrors || res.Err != nil
		hasChanges = hasChanges || res.Changed
	}
	return hasErrors, hasChanges
}

func renderFormatStdout(stdout, stderr io.Writer, results []driver.FormatResult) (hasErrors bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(stderr, "format: %s: %v\n", res.Path, res.Err)
			continue
		}
		_, _ = stdout.Write(res.Formatted)
	}
	return hasErrors
}

func renderFormatText(stdout, stderr io.Writer, results []driver.FormatResult, check, quiet bool) (hasErrors, hasChanges bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(stderr, "format: %s: %v\n", res.Path, res.Err)
			continue
		}
		if !res.Changed {
			continue
		}
		hasChanges = true
		if quiet {
			continue
		}
		if check {
			fmt.Fprintln(stdout, res.Path)
		} else {
			fmt.Fprintf(stdout, "reformatted %s\n", res.Path)
		}
	}
	return hasErrors, hasChanges
}

type formatResultJSON struct {
	Path    string   `json:"path"`
	Changed bool     `json:"changed"`
	Cached  bool     `json:"cached,omitempty"`
	Passes  int      `json:"passes,omitempty"`
	Rules   []string `json:"rules,omitempty"`
	Error   string   `json:"error,omitempty"`
}

type formatOutputJSON struct {
	Check       bool               `json:"check"`
	Files       []formatResultJSON `json:"files"`
	Diagnostics diagfmt.Report     `json:"diagnostics"`
}

func renderFormatJSON(w io.Writer, results []driver.FormatResult, bag *diag.Bag, fileSet *source.FileSet, check bool, mode diagfmt.PathMode) error {
	payload := formatOutputJSON{
		Check: check,
		Files: make([]formatResultJSON, 0, len(results)),
	}
	for _, res := range results {
		jr := formatResultJSON{
			Path:    res.Path,
			Changed: res.Changed,
			Cached:  res.Cached,
			Passes:  res.Passes,
			Rules:   res.Applied,
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload.Files = append(payload.Files, jr)
	}
	payload.Diagnostics = diagfmt.BuildReport(bag, fileSet, diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         mode,
		IncludeNotes:     true,
	})

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
