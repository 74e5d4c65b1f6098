package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"swiftfmt/internal/config"
	"swiftfmt/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the formatting rules",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "text", "output format (text|json)")
	rulesCmd.Flags().String("config", "", "TOML options file used to resolve the enabled set")
}

type ruleInfo struct {
	Name       string   `json:"name"`
	Help       string   `json:"help"`
	Enabled    bool     `json:"enabled"`
	WellFormed bool     `json:"well_formed,omitempty"`
	Conflicts  []string `json:"conflicts_with,omitempty"`
}

func runRules(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	opts := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if opts, err = config.Load(path); err != nil {
			return err
		}
	}
	infos, err := listRules(opts)
	if err != nil {
		return err
	}

	switch format {
	case "text":
		return renderRulesText(cmd.OutOrStdout(), infos)
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	default:
		return fmt.Errorf("rules: unsupported output format %q", format)
	}
}

// listRules describes the catalog in application order and marks the rules
// opts enables.
func listRules(opts config.Options) ([]ruleInfo, error) {
	catalog := rules.Default()
	enabled, err := rules.Select(catalog, opts)
	if err != nil {
		return nil, err
	}
	names := rules.Names(enabled)
	infos := make([]ruleInfo, 0, len(catalog))
	for _, r := range catalog {
		infos = append(infos, ruleInfo{
			Name:       r.Name,
			Help:       r.Help,
			Enabled:    slices.Contains(names, r.Name),
			WellFormed: r.WellFormed,
			Conflicts:  r.ConflictsWith,
		})
	}
	return infos, nil
}

func renderRulesText(w io.Writer, infos []ruleInfo) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, info := range infos {
		state := "off"
		if info.Enabled {
			state = "on"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Name, state, info.Help)
	}
	return tw.Flush()
}
