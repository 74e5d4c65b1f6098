// Package config holds the formatting options and loads them from TOML.
package config

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrUnknownKey reports keys in a config file that no option uses.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrBadValue reports an option value outside its domain.
	ErrBadValue = errors.New("invalid config value")
)

// DefaultMaxPasses bounds the rule engine fixed-point loop.
const DefaultMaxPasses = 10

// Options is the opaque configuration handed to rules.
type Options struct {
	// Rules lists enabled rule names; empty means the default set.
	Rules []string `toml:"rules"`
	// Disable removes rules from the enabled set.
	Disable []string `toml:"disable"`
	// HoistPatternLet selects hoist mode (case let .foo(a)) over
	// un-hoist mode (case .foo(let a)).
	HoistPatternLet bool `toml:"hoist-pattern-let"`
	// ThrowCapturing names calls that absorb try.
	ThrowCapturing []string `toml:"throw-capturing"`
	// AsyncCapturing names calls that absorb await.
	AsyncCapturing []string `toml:"async-capturing"`
	MaxPasses      int      `toml:"max-passes"`
	// TrimBlankLines strips indentation on otherwise empty lines.
	TrimBlankLines bool `toml:"trim-blank-lines"`
	// Exclude holds gitignore-style patterns skipped by file collection.
	Exclude []string `toml:"exclude"`
}

// Default returns the built-in options.
func Default() Options {
	return Options{
		HoistPatternLet: true,
		MaxPasses:       DefaultMaxPasses,
		TrimBlankLines:  true,
	}
}

// Validate checks option values.
func (o Options) Validate() error {
	if o.MaxPasses < 1 {
		return fmt.Errorf("%w: max-passes must be at least 1, got %d", ErrBadValue, o.MaxPasses)
	}
	for _, name := range slices.Concat(o.Rules, o.Disable) {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: empty rule name", ErrBadValue)
		}
	}
	return nil
}

// Load reads options from an explicit TOML file on top of Default.
func Load(path string) (Options, error) {
	opts := Default()
	meta, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return Options{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Options{}, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	if err := opts.Validate(); err != nil {
		return Options{}, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}

// Hash fingerprints the options that affect formatting output. Exclude is
// left out: it selects files but never changes how one is formatted.
func (o Options) Hash() [32]byte {
	o.Exclude = nil
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(o); err != nil {
		// Options holds only strings, bools and ints
		panic(err)
	}
	return sha256.Sum256(buf.Bytes())
}
