package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"fortio.org/safecast"

	"swiftfmt/internal/source"
	"swiftfmt/internal/token"
)

type TokenOutput struct {
	Kind  string      `json:"kind"`
	Text  string      `json:"text"`
	Op    string      `json:"op,omitempty"`
	Doc   bool        `json:"doc,omitempty"`
	Span  source.Span `json:"span"`
	Index int         `json:"index"`
}

// tokenSpans computes byte spans by accumulating token lengths; tokens
// cover the file without gaps.
func tokenSpans(tokens []token.Token, file source.FileID) []source.Span {
	spans := make([]source.Span, len(tokens))
	off := 0
	for i, tok := range tokens {
		start, err := safecast.Conv[uint32](off)
		if err != nil {
			panic(fmt.Errorf("token offset overflow: %w", err))
		}
		off += len(tok.Text)
		end, err := safecast.Conv[uint32](off)
		if err != nil {
			panic(fmt.Errorf("token offset overflow: %w", err))
		}
		spans[i] = source.Span{File: file, Start: start, End: end}
	}
	return spans
}

// TokenOpts selects which tokens the dumps print. Indices and spans always
// refer to the full stream.
type TokenOpts struct {
	SkipTrivia bool
}

func (o TokenOpts) skip(tok token.Token) bool {
	return o.SkipTrivia && tok.IsTrivia()
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet, file source.FileID, opts TokenOpts) error {
	for i, span := range tokenSpans(tokens, file) {
		tok := tokens[i]
		if opts.skip(tok) {
			continue
		}
		startPos, endPos := fs.Resolve(span)

		if _, err := fmt.Fprintf(w, "%4d: %-13s %q at %d:%d-%d:%d", i+1, tok.Kind.String(), tok.Text,
			startPos.Line, startPos.Col, endPos.Line, endPos.Col); err != nil {
			return err
		}
		switch {
		case tok.Kind == token.Operator:
			fmt.Fprintf(w, " (%s)", tok.Op)
		case tok.Doc:
			fmt.Fprint(w, " (doc)")
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, file source.FileID, opts TokenOpts) error {
	output := make([]TokenOutput, 0, len(tokens))
	for i, span := range tokenSpans(tokens, file) {
		tok := tokens[i]
		if opts.skip(tok) {
			continue
		}
		out := TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Doc:   tok.Doc,
			Span:  span,
			Index: i,
		}
		if tok.Kind == token.Operator {
			out.Op = tok.Op.String()
		}
		output = append(output, out)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
