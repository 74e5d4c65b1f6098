// Package rules holds the rewrite rules and the fixed-point engine that
// applies them to a token stream.
package rules

import (
	"errors"
	"fmt"
	"slices"

	"swiftfmt/internal/config"
)

var (
	// ErrUnknownRule reports a rule name that is not in the catalog.
	ErrUnknownRule = errors.New("unknown rule")
	// ErrConflict reports two enabled rules that cannot run together, or a
	// rule listed twice.
	ErrConflict = errors.New("conflicting rules")
)

// Rule is one self-idempotent rewrite. Apply edits the formatter stream in
// place; leaving it byte-identical means "no change".
type Rule struct {
	Name string
	Help string
	// Apply runs the rewrite once over the whole stream.
	Apply func(f *Formatter) error
	// Disabled reports whether the options switch the rule off. Optional.
	Disabled func(opts config.Options) bool
	// ConflictsWith names rules that must not be enabled together with this one.
	ConflictsWith []string
	// WellFormed rules are skipped on streams containing Error tokens.
	WellFormed bool
}

// Default returns the rule catalog in application order. Each call builds a
// fresh slice.
func Default() []Rule {
	return []Rule{
		{
			Name:       "hoistPatternLet",
			Help:       "Move let/var in case patterns to the front, or push them down onto each binding.",
			Apply:      hoistPatternLet,
			WellFormed: true,
		},
		{
			Name:       "hoistTry",
			Help:       "Move inner try markers to the start of the enclosing expression.",
			Apply:      hoistTry,
			WellFormed: true,
		},
		{
			Name:       "hoistAwait",
			Help:       "Move inner await markers to the start of the enclosing expression.",
			Apply:      hoistAwait,
			WellFormed: true,
		},
		{
			Name:  "consecutiveSpaces",
			Help:  "Collapse runs of spaces between tokens on the same line.",
			Apply: consecutiveSpaces,
		},
		{
			Name:  "trailingSpace",
			Help:  "Remove whitespace at the end of lines.",
			Apply: trailingSpace,
		},
	}
}

// Names lists rule names in order.
func Names(rules []Rule) []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return names
}

// Select resolves the enabled rules from catalog according to opts: an
// explicit Rules list replaces the default set, Disable removes from it and
// rules whose Disabled hook fires are dropped. Catalog order is kept.
func Select(catalog []Rule, opts config.Options) ([]Rule, error) {
	known := Names(catalog)
	for _, name := range slices.Concat(opts.Rules, opts.Disable) {
		if !slices.Contains(known, name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
		}
	}
	out := make([]Rule, 0, len(catalog))
	for _, r := range catalog {
		if len(opts.Rules) > 0 && !slices.Contains(opts.Rules, r.Name) {
			continue
		}
		if slices.Contains(opts.Disable, r.Name) {
			continue
		}
		if r.Disabled != nil && r.Disabled(opts) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// checkRules rejects duplicate names and enabled conflicting pairs.
func checkRules(rules []Rule) error {
	seen := make(map[string]struct{}, len(rules))
	for _, r := range rules {
		if r.Apply == nil {
			return fmt.Errorf("rule %q has no Apply function", r.Name)
		}
		if _, dup := seen[r.Name]; dup {
			return fmt.Errorf("%w: %q listed twice", ErrConflict, r.Name)
		}
		seen[r.Name] = struct{}{}
	}
	for _, r := range rules {
		for _, other := range r.ConflictsWith {
			if _, ok := seen[other]; ok {
				return fmt.Errorf("%w: %q and %q", ErrConflict, r.Name, other)
			}
		}
	}
	return nil
}
