package grammar

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// Language identifies a supported source language.
type Language string

const (
	Java   Language = "java"
	Python Language = "python"
)

// ErrUnsupportedLanguage is returned for any language tag other than java or python.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Languages lists every supported language in a stable order.
func Languages() []Language {
	return []Language{Java, Python}
}

// ParseLanguage normalizes a language tag ("Java", " python ") and validates it.
func ParseLanguage(s string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(s)))
	switch lang {
	case Java, Python:
		return lang, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
}

// DetectLanguage returns the language for a file extension, or "" when the
// extension is not handled.
func DetectLanguage(path string) Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".java":
		return Java
	case ".py", ".pyi", ".pyw":
		return Python
	default:
		return ""
	}
}

// Extensions returns the file extensions handled for lang.
func Extensions(lang Language) []string {
	switch lang {
	case Java:
		return []string{".java"}
	case Python:
		return []string{".py", ".pyi", ".pyw"}
	default:
		return nil
	}
}

// sitterLanguage returns the tree-sitter grammar for lang.
func sitterLanguage(lang Language) (*sitter.Language, error) {
	switch lang {
	case Java:
		return sitter.NewLanguage(java.Language()), nil
	case Python:
		return sitter.NewLanguage(python.Language()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, string(lang))
	}
}

// Resolve picks the language for path: an explicit name wins, otherwise the
// file extension decides.
func Resolve(path, name string) (Language, error) {
	if strings.TrimSpace(name) != "" {
		return ParseLanguage(name)
	}
	if lang := DetectLanguage(path); lang != "" {
		return lang, nil
	}
	return "", fmt.Errorf("%w: cannot detect language of %s", ErrUnsupportedLanguage, path)
}
