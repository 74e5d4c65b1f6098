package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"swiftfmt/internal/version"
)

var (
	traceCleanup   = func() {}
	profileCleanup = func() {}
)

func cleanup() {
	traceCleanup()
	profileCleanup()
}

var rootCmd = &cobra.Command{
	Use:   "swiftfmt",
	Short: "Swift source formatter",
	Long:  `swiftfmt rewrites Swift sources with a set of independent, semantics-preserving rules`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		stopProfiling, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		profileCleanup = stopProfiling
		stopTracing, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = stopTracing
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		cleanup()
	},
	SilenceErrors: true,
	SilenceUsage:  true,
}

// main initializes the CLI, registers subcommands and persistent flags and
// executes the root command. Any error exits with status 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(declsCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)

	registerGlobalFlags(rootCmd.PersistentFlags())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		cleanup()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// registerGlobalFlags adds the flags shared by every command.
func registerGlobalFlags(flags *pflag.FlagSet) {
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	flags.String("trace", "", "write a trace to this file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson|chrome)")
	flags.Int("trace-ring-size", 4096, "events kept in ring mode")
	flags.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval")
	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to this file")
}
