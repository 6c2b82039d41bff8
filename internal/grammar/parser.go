package grammar

import (
	"errors"
	"fmt"
	"os"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

var (
	// ErrReadSource wraps failures loading a source file.
	ErrReadSource = errors.New("failed to read source")

	// ErrParse indicates the grammar engine produced no tree.
	ErrParse = errors.New("failed to parse source")
)

// Parser wraps a tree-sitter parser configured for one language.
// A Parser is not safe for concurrent use; create one per goroutine.
// IMPORTANT: always call Close() (CGO-owned memory).
type Parser struct {
	parser   *sitter.Parser
	language Language
}

// NewParser creates a parser for lang.
func NewParser(lang Language) (*Parser, error) {
	language, err := sitterLanguage(lang)
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	if parser == nil {
		return nil, fmt.Errorf("failed to create tree-sitter parser")
	}
	if err := parser.SetLanguage(language); err != nil {
		parser.Close()
		return nil, fmt.Errorf("failed to set language %s: %w", lang, err)
	}

	return &Parser{parser: parser, language: lang}, nil
}

// Language returns the language the parser was built for.
func (p *Parser) Language() Language {
	return p.language
}

// Parse parses source into a syntax tree. The caller must Close the tree.
func (p *Parser) Parse(source []byte) (*Tree, error) {
	tree := p.parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, p.language)
	}
	return &Tree{tree: tree, language: p.language, source: source}, nil
}

// Close releases the parser.
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
		p.parser = nil
	}
}

// Parse is a one-shot helper: it creates a parser, parses source and releases
// the parser. The returned tree must be closed by the caller.
func Parse(source []byte, lang Language) (*Tree, error) {
	parser, err := NewParser(lang)
	if err != nil {
		return nil, err
	}
	defer parser.Close()
	return parser.Parse(source)
}

// Tree is a parsed syntax tree together with the source it was parsed from.
type Tree struct {
	tree     *sitter.Tree
	language Language
	source   []byte
}

// Root returns the root node, or nil for a closed tree.
func (t *Tree) Root() Node {
	if t == nil || t.tree == nil {
		return nil
	}
	return wrap(t.tree.RootNode())
}

// Language returns the language the tree was parsed as.
func (t *Tree) Language() Language {
	return t.language
}

// Source returns the source bytes backing the tree.
func (t *Tree) Source() []byte {
	return t.source
}

// Close releases the tree. Nodes obtained from it must not be used afterwards.
func (t *Tree) Close() {
	if t != nil && t.tree != nil {
		t.tree.Close()
		t.tree = nil
	}
}

// ReadSource loads a source file fully into memory.
func ReadSource(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrReadSource, path, err)
	}
	return data, nil
}
