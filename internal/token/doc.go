// Package token defines the lexical token model for Swift sources.
// Invariants:
//   - The stream is exhaustive: spaces, linebreaks and comments are tokens,
//     so concatenating Token.Text in order reproduces the source exactly.
//   - Token values are immutable; rules replace tokens, never mutate them.
//   - Scopes are implicit: a StartOfScope token and its matching EndOfScope
//     token delimit one. Their kind (closure, body, tuple, ...) is decided
//     by the classify package, not stored here.
//   - Unrecognized input is kept verbatim as Error tokens.
package token
