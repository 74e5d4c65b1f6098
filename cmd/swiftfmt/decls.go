package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"swiftfmt/internal/diagfmt"
	"swiftfmt/internal/driver"
)

var declsCmd = &cobra.Command{
	Use:   "decls [flags] <file.swift|->",
	Short: "Print the declaration tree of a Swift source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecls,
}

func init() {
	declsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runDecls(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Decls(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("declaration parsing failed: %w", err)
	}
	if err := printDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}

	switch format {
	case "pretty":
		return diagfmt.FormatDeclsPretty(cmd.OutOrStdout(), result.Decls)
	case "json":
		return diagfmt.FormatDeclsJSON(cmd.OutOrStdout(), result.Decls)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
