package token

var keywords = map[string]struct{}{
	"let": {}, "var": {}, "func": {}, "init": {}, "deinit": {}, "subscript": {},
	"class": {}, "struct": {}, "enum": {}, "protocol": {}, "extension": {},
	"import": {}, "typealias": {}, "associatedtype": {}, "operator": {},
	"precedencegroup": {},
	"public": {}, "private": {}, "fileprivate": {}, "internal": {}, "static": {},
	"if": {}, "else": {}, "guard": {}, "while": {}, "for": {}, "in": {},
	"repeat": {}, "switch": {}, "case": {}, "default": {}, "where": {},
	"do": {}, "catch": {}, "throw": {}, "throws": {}, "rethrows": {},
	"try": {}, "await": {}, "return": {}, "break": {}, "continue": {},
	"fallthrough": {}, "defer": {},
	"as": {}, "is": {}, "inout": {},
	"self": {}, "Self": {}, "super": {}, "nil": {}, "true": {}, "false": {},
	"Any": {},
}

// LookupKeyword reports whether ident is a reserved Swift word.
// Contextual words (async, get, set, willSet, didSet, actor, some, any, ...)
// are identifiers; callers check them by text.
func LookupKeyword(ident string) bool {
	_, ok := keywords[ident]
	return ok
}

var declarationKeywords = map[string]struct{}{
	"let": {}, "var": {}, "func": {}, "init": {}, "deinit": {}, "subscript": {},
	"class": {}, "struct": {}, "enum": {}, "protocol": {}, "extension": {},
	"import": {}, "typealias": {}, "associatedtype": {}, "operator": {},
	"precedencegroup": {}, "case": {},
}

// IsDeclarationKeyword reports whether text introduces a declaration.
// "actor" and "macro" are contextual and matched separately.
func IsDeclarationKeyword(text string) bool {
	_, ok := declarationKeywords[text]
	return ok
}

var typeKeywords = map[string]struct{}{
	"class": {}, "struct": {}, "enum": {}, "protocol": {}, "extension": {},
	"actor": {},
}

// IsTypeKeyword reports whether text introduces a type body.
func IsTypeKeyword(text string) bool {
	_, ok := typeKeywords[text]
	return ok
}

var modifiers = map[string]struct{}{
	"public": {}, "private": {}, "fileprivate": {}, "internal": {}, "open": {},
	"package": {}, "static": {}, "class": {}, "final": {}, "override": {},
	"required": {}, "convenience": {}, "mutating": {}, "nonmutating": {},
	"lazy": {}, "weak": {}, "unowned": {}, "optional": {}, "dynamic": {},
	"indirect": {}, "prefix": {}, "postfix": {}, "infix": {},
	"nonisolated": {}, "isolated": {}, "distributed": {}, "consuming": {},
	"borrowing": {}, "__consuming": {}, "__owned": {}, "__shared": {},
}

// IsModifier reports whether text is a declaration modifier.
func IsModifier(text string) bool {
	_, ok := modifiers[text]
	return ok
}

var accessors = map[string]struct{}{
	"get": {}, "set": {}, "willSet": {}, "didSet": {}, "init": {},
	"_modify": {}, "_read": {}, "modify": {}, "read": {}, "unsafeAddress": {},
	"unsafeMutableAddress": {},
}

// IsAccessorName reports whether text can name a property accessor.
func IsAccessorName(text string) bool {
	_, ok := accessors[text]
	return ok
}
