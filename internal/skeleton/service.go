package skeleton

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mvp-joe/code-skeleton/internal/cache"
	"github.com/mvp-joe/code-skeleton/internal/grammar"
	"github.com/mvp-joe/code-skeleton/internal/signature"
)

// Service fronts an Engine with a document cache keyed by file content.
type Service struct {
	engine *Engine
	store  cache.Store
	logger *logrus.Logger
}

// NewService creates a service. A nil store disables caching.
func NewService(engine *Engine, store cache.Store, logger *logrus.Logger) *Service {
	if store == nil {
		store = cache.Nop{}
	}
	if logger == nil {
		logger = engine.logger
	}
	return &Service{engine: engine, store: store, logger: logger}
}

// Engine returns the underlying engine.
func (s *Service) Engine() *Engine {
	return s.engine
}

// Skeleton renders path, restricted to rng when non-nil. An empty language is
// detected from the file extension.
func (s *Service) Skeleton(ctx context.Context, path, language string, rng *LineRange) (*Document, error) {
	lang, err := grammar.Resolve(path, language)
	if err != nil {
		return nil, err
	}
	if rng != nil {
		if err := rng.Validate(); err != nil {
			return nil, err
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	source, err := grammar.ReadSource(abs)
	if err != nil {
		return nil, err
	}

	key := cache.Key{Path: abs, Display: path, Language: string(lang), Digest: cache.Digest(source)}
	if rng != nil {
		key.Start, key.End = rng.Start, rng.End
	}

	entry, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.WithError(err).WithField("path", abs).Warn("skeleton cache read failed")
	}
	if ok {
		s.logger.WithField("path", abs).Debug("skeleton cache hit")
		return &Document{Path: path, Range: rng, Text: entry.Text, Truncated: entry.Truncated}, nil
	}

	result, err := s.engine.AnalyzeSource(path, source, lang)
	if err != nil {
		return nil, err
	}
	doc, err := s.engine.Render(result, rng)
	if err != nil {
		return nil, err
	}

	entry = cache.Entry{Text: doc.Text, Truncated: doc.Truncated, CreatedAt: time.Now()}
	if err := s.store.Put(ctx, key, entry); err != nil {
		s.logger.WithError(err).WithField("path", abs).Warn("skeleton cache write failed")
	}
	return doc, nil
}

// Signatures returns the signature forest of path.
func (s *Service) Signatures(ctx context.Context, path, language string) (signature.Forest, error) {
	lang, err := grammar.Resolve(path, language)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.engine.ExtractSignaturesFromFile(path, lang)
}

// Invalidate drops cached documents for paths.
func (s *Service) Invalidate(ctx context.Context, paths ...string) error {
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		if err := s.store.InvalidatePath(ctx, abs); err != nil {
			return err
		}
		s.logger.WithField("path", abs).Debug("skeleton cache invalidated")
	}
	return nil
}

// Stats reports cache statistics.
func (s *Service) Stats(ctx context.Context) (cache.Stats, error) {
	return s.store.Stats(ctx)
}
