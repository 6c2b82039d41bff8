// Package skeleton turns source files into skeleton documents: the signatures
// of every declared entity, nested by containment, plus syntax diagnostics.
package skeleton

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mvp-joe/code-skeleton/internal/diagnostics"
	"github.com/mvp-joe/code-skeleton/internal/grammar"
	"github.com/mvp-joe/code-skeleton/internal/signature"
)

// Options tunes extraction and rendering.
type Options struct {
	ContextLines       int
	MaxDiagnosticQueue int
	MaxDocumentBytes   int
}

// DefaultOptions returns 2 context lines, an unbounded diagnostic queue and
// the 3 MiB document cap.
func DefaultOptions() Options {
	return Options{
		ContextLines:     diagnostics.DefaultContextLines,
		MaxDocumentBytes: DefaultMaxDocumentBytes,
	}
}

// Engine runs the extraction pipeline. Every call is independent and an
// Engine is safe for concurrent use.
type Engine struct {
	opts   Options
	logger *logrus.Logger
}

// NewEngine creates an engine. A nil logger discards log output.
func NewEngine(opts Options, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.PanicLevel)
	}
	return &Engine{opts: opts, logger: logger}
}

// Options returns the engine configuration.
func (e *Engine) Options() Options {
	return e.opts
}

// ExtractSignatures builds the forest for an already parsed tree, letting a
// caller reuse one parse for several queries.
func (e *Engine) ExtractSignatures(tree *grammar.Tree) (signature.Forest, error) {
	if tree == nil {
		return signature.Forest{}, nil
	}
	return signature.Extract(tree.Root(), tree.Source(), tree.Language())
}

// ExtractSignaturesFromFile reads, parses and extracts path.
func (e *Engine) ExtractSignaturesFromFile(path string, lang grammar.Language) (signature.Forest, error) {
	lang, err := grammar.ParseLanguage(string(lang))
	if err != nil {
		return nil, err
	}
	source, err := grammar.ReadSource(path)
	if err != nil {
		return nil, err
	}

	tree, err := grammar.Parse(source, lang)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return e.ExtractSignatures(tree)
}

// Analyze reads path and extracts signatures and diagnostics.
func (e *Engine) Analyze(path string, lang grammar.Language) (*Result, error) {
	lang, err := grammar.ParseLanguage(string(lang))
	if err != nil {
		return nil, err
	}
	source, err := grammar.ReadSource(path)
	if err != nil {
		return nil, err
	}
	return e.AnalyzeSource(path, source, lang)
}

// AnalyzeSource extracts signatures and diagnostics from source already in
// memory. path is only used for reporting.
func (e *Engine) AnalyzeSource(path string, source []byte, lang grammar.Language) (*Result, error) {
	lang, err := grammar.ParseLanguage(string(lang))
	if err != nil {
		return nil, err
	}

	tree, err := grammar.Parse(source, lang)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer tree.Close()

	forest, err := signature.Extract(tree.Root(), source, lang)
	if err != nil {
		return nil, err
	}
	diags := diagnostics.Extract(tree.Root(), source, diagnostics.Options{
		ContextLines: e.opts.ContextLines,
		MaxQueue:     e.opts.MaxDiagnosticQueue,
	})

	e.logger.WithFields(logrus.Fields{
		"path":        path,
		"language":    lang,
		"entities":    forest.Len(),
		"diagnostics": len(diags),
	}).Debug("extracted skeleton")

	return &Result{Path: path, Language: lang, Forest: forest, Diagnostics: diags}, nil
}

// Render serializes result, restricted to rng when it is non-nil.
func (e *Engine) Render(result *Result, rng *LineRange) (*Document, error) {
	if rng != nil {
		if err := rng.Validate(); err != nil {
			return nil, err
		}
		result = FilterResult(result, *rng)
	}

	doc := Render(result.Forest, result.Diagnostics, result.Path, rng, e.opts.MaxDocumentBytes)
	if doc.Truncated {
		e.logger.WithFields(logrus.Fields{
			"path":      result.Path,
			"max_bytes": e.opts.MaxDocumentBytes,
		}).Warn("skeleton document truncated")
	}
	return doc, nil
}

// GetSkeletonXML renders the whole file.
func (e *Engine) GetSkeletonXML(path string, lang grammar.Language) (*Document, error) {
	result, err := e.Analyze(path, lang)
	if err != nil {
		return nil, err
	}
	return e.Render(result, nil)
}

// GetSkeletonXMLRange renders the entities and diagnostics touching the
// inclusive, 1-indexed range start..end.
func (e *Engine) GetSkeletonXMLRange(path string, lang grammar.Language, start, end int) (*Document, error) {
	rng := LineRange{Start: start, End: end}
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	result, err := e.Analyze(path, lang)
	if err != nil {
		return nil, err
	}
	return e.Render(result, &rng)
}
