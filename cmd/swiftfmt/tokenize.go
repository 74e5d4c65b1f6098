package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"swiftfmt/internal/diag"
	"swiftfmt/internal/diagfmt"
	"swiftfmt/internal/driver"
	"swiftfmt/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.swift|->",
	Short: "Tokenize a Swift source file",
	Long:  `Tokenize breaks down a Swift source file into the tokens the rules operate on`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("no-trivia", false, "omit whitespace, line break and comment tokens")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	noTrivia, _ := cmd.Flags().GetBool("no-trivia")
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Tokenize(filePath, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if err := printDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}

	// индексы и позиции считаются по полному потоку даже с --no-trivia
	opts := diagfmt.TokenOpts{SkipTrivia: noTrivia}
	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet, result.File.ID, opts)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens, result.File.ID, opts)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// printDiagnostics writes lexer diagnostics, if any, to stderr.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	if !bag.HasErrors() && !bag.HasWarnings() {
		return nil
	}
	color, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	bag.Sort()
	diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, diagfmt.PrettyOpts{
		Color:   color,
		Context: 2,
	})
	return nil
}
