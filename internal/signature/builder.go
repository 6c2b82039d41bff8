package signature

import (
	"strings"

	"github.com/mvp-joe/code-skeleton/internal/grammar"
)

// fields accumulates signature fields in order. Empty fields are skipped and
// the rest are joined with single spaces.
type fields []string

func (f *fields) add(s string) {
	if s != "" {
		*f = append(*f, s)
	}
}

// addNode adds the source text of node, if present.
func (f *fields) addNode(node grammar.Node, source []byte) {
	f.add(grammar.Text(node, source))
}

func (f fields) String() string {
	return strings.Join(f, " ")
}

// orRaw returns sig, or the raw text of decl when sig carries no content.
// A signature is never empty.
func orRaw(sig string, decl grammar.Node, source []byte) string {
	if strings.TrimSpace(sig) != "" {
		return sig
	}
	return grammar.Text(decl, source)
}

// modifiersText concatenates the children of decl's modifiers list. Annotations
// are followed by a newline so each stays on its own line; other modifiers are
// separated by spaces and the last one is not padded.
func modifiersText(decl grammar.Node, source []byte) string {
	mods := grammar.ChildOfKind(decl, "modifiers")
	if mods == nil {
		return ""
	}

	var texts []string
	for i := 0; i < mods.ChildCount(); i++ {
		if text := grammar.Text(mods.Child(i), source); text != "" {
			texts = append(texts, text)
		}
	}

	var sb strings.Builder
	for i, text := range texts {
		sb.WriteString(text)
		switch {
		case strings.HasPrefix(text, "@"):
			sb.WriteString("\n")
		case i < len(texts)-1:
			sb.WriteString(" ")
		}
	}
	return sb.String()
}
