package main

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"swiftfmt/internal/version"
)

const versionTagline = "hoists what it can, leaves the rest"

type versionInfo struct {
	Version    string
	GitCommit  string
	GitMessage string
	BuildDate  string
	GoVersion  string
}

type versionOptions struct {
	json        bool
	showHash    bool
	showMessage bool
	showDate    bool
}

type versionPayload struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	Tagline    string `json:"tagline"`
	GoVersion  string `json:"go_version,omitempty"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show swiftfmt build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	flags := versionCmd.Flags()
	flags.Bool("hash", false, "include git commit hash")
	flags.Bool("message", false, "include git commit message")
	flags.Bool("date", false, "include build timestamp")
	flags.Bool("full", false, "show all recorded build metadata")
	flags.String("format", "pretty", "output format (pretty|json)")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	full, _ := flags.GetBool("full")
	hash, _ := flags.GetBool("hash")
	message, _ := flags.GetBool("message")
	date, _ := flags.GetBool("date")
	format, _ := flags.GetString("format")

	opts := versionOptions{showHash: hash || full, showMessage: message || full, showDate: date || full}
	switch strings.ToLower(format) {
	case "pretty":
	case "json":
		opts.json = true
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	info := collectVersionInfo()
	if opts.json {
		return renderVersionJSON(cmd.OutOrStdout(), info, opts)
	}
	colored, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}
	renderVersionPretty(cmd.OutOrStdout(), info, opts, colored)
	return nil
}

// collectVersionInfo берёт значения из -ldflags, а недостающие коммит и
// дату достаёт из VCS-меток сборки.
func collectVersionInfo() versionInfo {
	info := versionInfo{
		Version:    cmp.Or(strings.TrimSpace(version.Version), "dev"),
		GitCommit:  strings.TrimSpace(version.GitCommit),
		GitMessage: strings.TrimSpace(version.GitMessage),
		BuildDate:  strings.TrimSpace(version.BuildDate),
		GoVersion:  runtime.Version(),
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.GitCommit = cmp.Or(info.GitCommit, s.Value)
		case "vcs.time":
			info.BuildDate = cmp.Or(info.BuildDate, s.Value)
		}
	}
	return info
}

func renderVersionPretty(out io.Writer, info versionInfo, opts versionOptions, colored bool) {
	v := info.Version
	if colored {
		v = version.Colorize(v)
	}
	fmt.Fprintf(out, "swiftfmt %s: %s\n", v, versionTagline)
	rows := []struct {
		label string
		value string
		show  bool
	}{
		{"commit", info.GitCommit, opts.showHash},
		{"message", info.GitMessage, opts.showMessage},
		{"built", info.BuildDate, opts.showDate},
		{"go", info.GoVersion, opts.showHash || opts.showMessage || opts.showDate},
	}
	shown := false
	for _, r := range rows {
		if r.show {
			fmt.Fprintf(out, "%-8s %s\n", r.label+":", cmp.Or(r.value, "unknown"))
			shown = true
		}
	}
	if !shown {
		fmt.Fprintln(out, "set --hash, --message, --date or --full for build details")
	}
}

func renderVersionJSON(out io.Writer, info versionInfo, opts versionOptions) error {
	payload := versionPayload{
		Tool:      "swiftfmt",
		Version:   info.Version,
		Tagline:   versionTagline,
		GoVersion: info.GoVersion,
	}
	if opts.showHash {
		payload.GitCommit = cmp.Or(info.GitCommit, "unknown")
	}
	if opts.showMessage {
		payload.GitMessage = cmp.Or(info.GitMessage, "unknown")
	}
	if opts.showDate {
		payload.BuildDate = cmp.Or(info.BuildDate, "unknown")
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
