package driver

import (
	"io"
	"os"

	"swiftfmt/internal/decl"
	"swiftfmt/internal/diag"
	"swiftfmt/internal/lexer"
	"swiftfmt/internal/source"
	"swiftfmt/internal/token"
)

// StdinPath names standard input on the command line.
const StdinPath = "-"

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path (or stdin for "-") and lexes it. Lexical anomalies
// are collected in Bag.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := load(fs, path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	tokens := lexer.TokenizeWithOptions(string(file.Content), lexer.Options{
		Reporter: &diag.BagReporter{Bag: bag},
		File:     fileID,
	})

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}

type DeclsResult struct {
	*TokenizeResult
	Decls []decl.Declaration
}

// Decls tokenizes path and splits it into the declaration tree.
func Decls(path string, maxDiagnostics int) (*DeclsResult, error) {
	tr, err := Tokenize(path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	decls, err := decl.ParseTokens(tr.Tokens)
	if err != nil {
		return nil, err
	}
	return &DeclsResult{TokenizeResult: tr, Decls: decls}, nil
}

func load(fs *source.FileSet, path string) (source.FileID, error) {
	if path != StdinPath {
		return fs.Load(path)
	}
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return 0, err
	}
	content, _, err := source.Decode(raw)
	if err != nil {
		return 0, err
	}
	return fs.AddVirtual("<stdin>", content), nil
}
