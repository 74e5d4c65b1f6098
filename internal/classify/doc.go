// Package classify answers the context questions the token grammar leaves
// open: is this '{' a closure or a body, does this token begin a statement,
// where does an expression end, which declaration scope encloses a token.
//
// Every classifier is a pure function of (*stream.Stream, index). Nothing is
// cached between calls, so rules may ask again after each edit and always get
// the answer for the current stream. When a heuristic cannot decide it picks
// the conservative answer: "not a closure", "not a statement start".
package classify
