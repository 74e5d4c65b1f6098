package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"swiftfmt/internal/decl"
)

// DeclOutput is the JSON form of one declaration.
type DeclOutput struct {
	Kind      string       `json:"kind"`
	Keyword   string       `json:"keyword,omitempty"`
	Name      string       `json:"name,omitempty"`
	Modifiers []string     `json:"modifiers,omitempty"`
	Signature string       `json:"signature,omitempty"`
	Start     int          `json:"start"`
	End       int          `json:"end"`
	Body      []DeclOutput `json:"body,omitempty"`
}

func buildDecls(decls []decl.Declaration) []DeclOutput {
	if len(decls) == 0 {
		return nil
	}
	out := make([]DeclOutput, len(decls))
	for i := range decls {
		d := &decls[i]
		out[i] = DeclOutput{
			Kind:      d.Kind.String(),
			Keyword:   d.Keyword,
			Name:      d.Name,
			Modifiers: d.Modifiers,
			Start:     d.Start,
			End:       d.End,
			Body:      buildDecls(d.Body),
		}
		if d.Keyword != "" {
			out[i].Signature = d.Signature()
		}
	}
	return out
}

// FormatDeclsPretty prints the declaration tree, one node per line,
// children indented under their parent.
func FormatDeclsPretty(w io.Writer, decls []decl.Declaration) error {
	var err error
	decl.Walk(decls, func(d *decl.Declaration, depth int) {
		if err != nil {
			return
		}
		var sb strings.Builder
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(d.Kind.String())
		if d.Keyword != "" {
			fmt.Fprintf(&sb, " %s", d.Keyword)
		}
		if d.Name != "" {
			fmt.Fprintf(&sb, " %q", d.Name)
		}
		if len(d.Modifiers) > 0 {
			fmt.Fprintf(&sb, " [%s]", strings.Join(d.Modifiers, " "))
		}
		fmt.Fprintf(&sb, " tokens %d..%d", d.Start, d.End)
		_, err = fmt.Fprintln(w, sb.String())
	})
	return err
}

// FormatDeclsJSON выводит дерево деклараций в JSON формате
func FormatDeclsJSON(w io.Writer, decls []decl.Declaration) error {
	output := buildDecls(decls)
	if output == nil {
		output = []DeclOutput{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
