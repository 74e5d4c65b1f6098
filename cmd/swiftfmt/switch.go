package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// switchMode is the value of an auto|on|off flag such as --color or --ui.
type switchMode uint8

const (
	switchAuto switchMode = iota
	switchOn
	switchOff
)

var switchNames = map[string]switchMode{
	"":     switchAuto,
	"auto": switchAuto,
	"on":   switchOn,
	"off":  switchOff,
}

func parseSwitch(flag, value string) (switchMode, error) {
	if m, ok := switchNames[strings.ToLower(strings.TrimSpace(value))]; ok {
		return m, nil
	}
	return switchAuto, fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
}

// enabled resolves auto against f: on only for an interactive terminal.
func (m switchMode) enabled(f *os.File) bool {
	switch m {
	case switchOn:
		return true
	case switchOff:
		return false
	}
	return isTerminal(f)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// shouldUseTUI включает прогресс только в интерактивном терминале вне CI.
func shouldUseTUI(mode switchMode) bool {
	if mode == switchAuto && os.Getenv("CI") != "" {
		return false
	}
	return mode.enabled(os.Stdout)
}

// useColor resolves the --color flag for output written to f.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	mode, err := parseSwitch("color", value)
	if err != nil {
		return false, err
	}
	return mode.enabled(f), nil
}
