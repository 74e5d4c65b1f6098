package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Error marks unrecognized or malformed input, preserved verbatim.
	Error Kind = iota
	// Identifier represents a name, including backtick-escaped names.
	Identifier
	// Keyword represents a reserved word or a #directive.
	Keyword
	// Operator represents an operator with a resolved fixity.
	Operator
	// Number represents a numeric literal.
	Number
	// StringBody represents literal text inside a string scope.
	StringBody
	// Attribute represents an @attribute marker.
	Attribute
	// Delimiter represents ',', ';' or ':'.
	Delimiter
	// StartOfScope represents an opener: ( [ { < " """ #" \( #if.
	StartOfScope
	// EndOfScope represents a closer matching a StartOfScope.
	EndOfScope
	// Comment represents a whole line or block comment.
	Comment
	// Linebreak represents a single \n, \r or \r\n.
	Linebreak
	// Space represents a run of spaces and tabs.
	Space
)

var kindNames = [...]string{
	Error:        "error",
	Identifier:   "identifier",
	Keyword:      "keyword",
	Operator:     "operator",
	Number:       "number",
	StringBody:   "string",
	Attribute:    "attribute",
	Delimiter:    "delimiter",
	StartOfScope: "startOfScope",
	EndOfScope:   "endOfScope",
	Comment:      "comment",
	Linebreak:    "linebreak",
	Space:        "space",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// OpKind is the fixity of an operator token.
type OpKind uint8

const (
	// OpNone is used for every non-operator token.
	OpNone OpKind = iota
	// Prefix operators bind to the operand on their right: -x, .foo, &x.
	Prefix
	// Infix operators sit between two operands: a + b, a.b.
	Infix
	// Postfix operators bind to the operand on their left: x!, x?.
	Postfix
)

func (o OpKind) String() string {
	switch o {
	case Prefix:
		return "prefix"
	case Infix:
		return "infix"
	case Postfix:
		return "postfix"
	default:
		return "none"
	}
}
