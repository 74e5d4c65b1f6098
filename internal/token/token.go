package token

import (
	"strings"
)

// Token represents a single lexical unit with its exact source text.
type Token struct {
	Kind Kind
	Text string
	Op   OpKind // only for Kind == Operator
	Doc  bool   // only for Kind == Comment
}

// New creates a token of the given kind.
func New(kind Kind, text string) Token {
	return Token{Kind: kind, Text: text}
}

// NewOperator creates an operator token with a fixity.
func NewOperator(text string, op OpKind) Token {
	return Token{Kind: Operator, Text: text, Op: op}
}

// Render concatenates token texts, reproducing the source.
func Render(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// Is reports whether the token has the given kind and text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// IsSpace reports whether the token is horizontal whitespace.
func (t Token) IsSpace() bool { return t.Kind == Space }

// IsLinebreak reports whether the token is a line terminator.
func (t Token) IsLinebreak() bool { return t.Kind == Linebreak }

// IsComment reports whether the token is a line or block comment.
func (t Token) IsComment() bool { return t.Kind == Comment }

// IsSpaceOrComment reports whether the token is a space or a comment.
func (t Token) IsSpaceOrComment() bool { return t.Kind == Space || t.Kind == Comment }

// IsTrivia reports whether the token carries no syntax.
func (t Token) IsTrivia() bool {
	return t.Kind == Space || t.Kind == Comment || t.Kind == Linebreak
}

// IsKeyword reports whether the token is the keyword text.
// An empty text matches any keyword.
func (t Token) IsKeyword(text string) bool {
	return t.Kind == Keyword && (text == "" || t.Text == text)
}

// IsIdentifier reports whether the token is the identifier text.
// An empty text matches any identifier.
func (t Token) IsIdentifier(text string) bool {
	return t.Kind == Identifier && (text == "" || t.Text == text)
}

// IsOperator reports whether the token is the operator text.
// An empty text matches any operator.
func (t Token) IsOperator(text string) bool {
	return t.Kind == Operator && (text == "" || t.Text == text)
}

// IsOp reports whether the token is an operator of the given text and fixity.
func (t Token) IsOp(text string, op OpKind) bool {
	return t.Kind == Operator && t.Op == op && (text == "" || t.Text == text)
}

// IsDelimiter reports whether the token is the delimiter text.
func (t Token) IsDelimiter(text string) bool {
	return t.Kind == Delimiter && (text == "" || t.Text == text)
}

// IsStartOfScope reports whether the token opens the given scope.
// An empty text matches any opener.
func (t Token) IsStartOfScope(text string) bool {
	return t.Kind == StartOfScope && (text == "" || t.Text == text)
}

// IsEndOfScope reports whether the token closes the given scope.
// An empty text matches any closer.
func (t Token) IsEndOfScope(text string) bool {
	return t.Kind == EndOfScope && (text == "" || t.Text == text)
}

// IsStringDelimiter reports whether the token opens or closes a string.
func (t Token) IsStringDelimiter() bool {
	if t.Kind != StartOfScope && t.Kind != EndOfScope {
		return false
	}
	return strings.Contains(t.Text, `"`)
}

// IsLiteral reports whether the token is a number or a literal keyword.
// String literals are scopes and are not single tokens.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Number:
		return true
	case Keyword:
		switch t.Text {
		case "nil", "true", "false":
			return true
		}
	}
	return false
}

// IsOperand reports whether the token can end an operand: x, 1, self, ), ], }, >.
func (t Token) IsOperand() bool {
	switch t.Kind {
	case Identifier, Number:
		return true
	case Keyword:
		switch t.Text {
		case "self", "Self", "super", "nil", "true", "false", "Any", "init":
			return true
		}
	case EndOfScope:
		return t.Text != "#endif"
	case Operator:
		return t.Op == Postfix
	}
	return false
}

var comparisons = map[string]struct{}{
	"==": {}, "!=": {}, "===": {}, "!==": {}, "<=": {}, ">=": {}, "~=": {},
}

// IsAssignment reports whether the token is = or a compound assignment.
func (t Token) IsAssignment() bool {
	if t.Kind != Operator || t.Op != Infix {
		return false
	}
	if t.Text == "=" {
		return true
	}
	if len(t.Text) < 2 || !strings.HasSuffix(t.Text, "=") {
		return false
	}
	_, cmp := comparisons[t.Text]
	return !cmp
}

// ClosingFor returns the closer text matching an opener, or "".
func ClosingFor(open string) string {
	switch open {
	case "(", `\(`:
		return ")"
	case "[":
		return "]"
	case "{":
		return "}"
	case "<":
		return ">"
	case "#if":
		return "#endif"
	}
	if strings.HasPrefix(open, `\`) && strings.HasSuffix(open, "(") {
		// raw interpolation \#(
		return ")"
	}
	if strings.Contains(open, `"`) {
		hashes := strings.Count(open, "#")
		quotes := strings.TrimLeft(open, "#")
		return quotes + strings.Repeat("#", hashes)
	}
	return ""
}
