package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"swiftfmt/internal/trace"
)

// traceConfig builds the tracer configuration from the persistent --trace*
// flags. ok is false when tracing stays disabled.
func traceConfig(flags *pflag.FlagSet) (cfg trace.Config, ok bool, err error) {
	var level, mode, format string
	for name, dst := range map[string]*string{
		"trace":        &cfg.OutputPath,
		"trace-level":  &level,
		"trace-mode":   &mode,
		"trace-format": &format,
	} {
		if *dst, err = flags.GetString(name); err != nil {
			return cfg, false, fmt.Errorf("failed to get %s flag: %w", name, err)
		}
	}
	if cfg.RingSize, err = flags.GetInt("trace-ring-size"); err != nil {
		return cfg, false, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	if cfg.Heartbeat, err = flags.GetDuration("trace-heartbeat"); err != nil {
		return cfg, false, fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	if cfg.Level, err = trace.ParseLevel(level); err != nil {
		return cfg, false, fmt.Errorf("invalid trace level: %w", err)
	}
	if cfg.Level == trace.LevelOff {
		if cfg.OutputPath == "" {
			return cfg, false, nil
		}
		// путь без уровня включает трассировку фаз
		cfg.Level = trace.LevelPhase
	}
	if cfg.Mode, err = trace.ParseMode(mode); err != nil {
		return cfg, false, fmt.Errorf("invalid trace mode: %w", err)
	}
	if cfg.Format, err = trace.ParseFormat(format); err != nil {
		return cfg, false, fmt.Errorf("invalid trace format: %w", err)
	}
	return cfg, true, nil
}

// setupTracing attaches a tracer to the command context and returns the
// cleanup that flushes it. Cleanup may be called more than once.
func setupTracing(cmd *cobra.Command) (func(), error) {
	cfg, ok, err := traceConfig(cmd.Root().PersistentFlags())
	if err != nil {
		return nil, err
	}
	if !ok {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)

	var heartbeat *trace.Heartbeat
	if cfg.Heartbeat > 0 {
		heartbeat = trace.StartHeartbeat(tracer, cfg.Heartbeat)
	}

	done := false
	return func() {
		if done {
			return
		}
		done = true
		heartbeat.Stop()
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		// в режиме ring Close выгружает буфер в --trace
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}, nil
}
