// Package service wires the knowledge base, index cache and retriever into
// the operations exposed to the CLI and TUI.
package service

import (
	"context"

	"tripguide/internal/domain"
	"tripguide/internal/logger"
	"tripguide/internal/retriever"
	"tripguide/internal/tfidf"
	"tripguide/internal/watcher"
)

// Stats describes the current index generation.
type Stats struct {
	Documents int
	Chunks    int
	Terms     int
}

// RAGService answers retrieval queries against a lazily built index.
type RAGService struct {
	cache     *tfidf.Cache
	threshold float64
	topK      int
}

// NewRAGService creates a service that builds its index from source.
func NewRAGService(source domain.DocumentSource, chunker domain.Chunker, threshold float64, topK int) *RAGService {
	if topK <= 0 {
		topK = retriever.DefaultLimit
	}
	return &RAGService{
		cache:     tfidf.NewCache(source, chunker),
		threshold: threshold,
		topK:      topK,
	}
}

// TopK returns the default result count.
func (s *RAGService) TopK() int { return s.topK }

// Query returns the best chunks for query. A limit <= 0 selects the
// configured default.
func (s *RAGService) Query(query string, limit int) ([]domain.RetrievedChunk, error) {
	if limit <= 0 {
		limit = s.topK
	}
	ix, err := s.cache.Get()
	if err != nil {
		return nil, err
	}
	results := retriever.Retrieve(query, limit, ix, retriever.WithThreshold(s.threshold))
	if logger.IsVerbose() {
		for _, r := range results {
			logger.Debug("  %s %.3f %s", r.ID, r.Score, r.Title)
		}
	}
	return results, nil
}

// Stats reports the size of the current index, building it if needed.
func (s *RAGService) Stats() (Stats, error) {
	ix, err := s.cache.Get()
	if err != nil {
		return Stats{}, err
	}
	sources := map[string]struct{}{}
	for _, c := range ix.Chunks() {
		sources[c.SourceID] = struct{}{}
	}
	return Stats{Documents: len(sources), Chunks: ix.Len(), Terms: len(ix.Terms())}, nil
}

// Reload rebuilds the index from the knowledge base.
func (s *RAGService) Reload() error {
	_, err := s.cache.Rebuild()
	return err
}

// Follow rebuilds the index for every knowledge-base change until ctx is done
// or events is closed. Failed rebuilds keep the previous index. onReload, if
// set, is called after each attempt.
func (s *RAGService) Follow(ctx context.Context, events <-chan watcher.Event, onReload func(error)) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			logger.Info("knowledge base changed (%s), rebuilding index", ev.Path)
			err := s.Reload()
			if err != nil {
				logger.Warn("rebuild failed, keeping previous index: %v", err)
			}
			if onReload != nil {
				onReload(err)
			}
		}
	}
}
