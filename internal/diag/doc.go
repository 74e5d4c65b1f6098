// Package diag defines the diagnostic model shared by the lexer, the rule
// engine, configuration loading and the driver.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// string form (LEX1xxx lexical anomalies, FMT2xxx rule engine, IO4xxx file
// access, CFG5xxx configuration), a short Message, the Primary span and
// optional Notes.
//
// Producers emit through a Reporter so that they never depend on storage.
// BagReporter aggregates into a Bag, DedupReporter drops repeats, and
// NopReporter discards everything. Rendering lives in internal/diagfmt.
//
// Lexical anomalies are never fatal: the lexer keeps going and the rule
// engine skips rules that need well-formed input.
package diag
