// Package retriever ranks indexed chunks against a free-text query by
// TF-IDF cosine similarity.
package retriever

import (
	"sort"

	"tripguide/internal/domain"
	"tripguide/internal/logger"
	"tripguide/internal/tfidf"
	"tripguide/internal/tokenizer"
)

// DefaultThreshold is the similarity a chunk must exceed to be returned.
const DefaultThreshold = 0.05

// DefaultLimit is the number of chunks callers usually cite.
const DefaultLimit = 4

type options struct {
	threshold float64
}

// Option configures a retrieval.
type Option func(*options)

// WithThreshold sets the relevance cutoff. Negative values are ignored.
func WithThreshold(threshold float64) Option {
	return func(o *options) {
		if threshold >= 0 {
			o.threshold = threshold
		}
	}
}

// Retrieve returns at most limit chunks of idx whose cosine similarity to
// query is above the relevance threshold, best first. Ties keep index order.
// A query with no index-eligible terms, an empty index or limit <= 0 yields
// an empty result.
func Retrieve(query string, limit int, idx *tfidf.Index, opts ...Option) []domain.RetrievedChunk {
	o := options{threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(&o)
	}
	if limit <= 0 || idx.Len() == 0 {
		return []domain.RetrievedChunk{}
	}
	terms := tokenizer.Tokenize(query)
	if len(terms) == 0 {
		logger.Debug("query %q has no index-eligible terms", query)
		return []domain.RetrievedChunk{}
	}
	qvec := idx.Vectorize(terms)

	type scored struct {
		idx   int
		score float64
	}
	var hits []scored
	for i := 0; i < idx.Len(); i++ {
		score := tfidf.Cosine(qvec, idx.ChunkVector(i))
		if score <= o.threshold {
			continue
		}
		if score > 1 {
			score = 1
		}
		hits = append(hits, scored{i, score})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	if len(hits) > limit {
		hits = hits[:limit]
	}

	results := make([]domain.RetrievedChunk, 0, len(hits))
	for _, h := range hits {
		c := idx.Chunk(h.idx)
		results = append(results, domain.RetrievedChunk{
			ID:       c.ID,
			SourceID: c.SourceID,
			Title:    c.Title,
			URL:      c.URL,
			Content:  c.Content,
			Score:    h.score,
		})
	}
	logger.Debug("query %q: %d terms, %d of %d chunks above %.2f", query, len(terms), len(results), idx.Len(), o.threshold)
	return results
}
