package tfidf

import (
	"sort"
	"strconv"

	"tripguide/internal/domain"
	"tripguide/internal/tokenizer"
)

// Index is an immutable set of vectorized chunks plus the IDF table used to
// weight them. Query vectors must be built from the same table, so vectors
// from different Index values are never comparable.
type Index struct {
	chunks []domain.Chunk
	idf    map[string]float64
}

// Build chunks every document, computes corpus-wide IDF over all chunks and
// vectorizes each chunk. Chunk ids are "<sourceId>-<ordinal>" with 1-based
// ordinals. Zero documents produce an empty index.
func Build(documents []domain.Document, chunker domain.Chunker) *Index {
	var chunks []domain.Chunk
	var tokens [][]string
	for _, doc := range documents {
		for i, text := range chunker.Split(doc) {
			chunks = append(chunks, domain.Chunk{
				ID:       doc.ID + "-" + strconv.Itoa(i+1),
				SourceID: doc.ID,
				Title:    doc.Title,
				URL:      doc.URL,
				Content:  text,
			})
			tokens = append(tokens, tokenizer.Tokenize(text))
		}
	}

	idf := ComputeIDF(tokens)
	for i := range chunks {
		vec := Vectorize(tokens[i], idf)
		chunks[i].Terms = vec.Weights
		chunks[i].Norm = vec.Norm
	}
	return &Index{chunks: chunks, idf: idf}
}

// Len returns the number of chunks.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.chunks)
}

// Chunk returns the i-th chunk in build order.
func (ix *Index) Chunk(i int) domain.Chunk { return ix.chunks[i] }

// Chunks returns a copy of the chunk sequence in build order.
func (ix *Index) Chunks() []domain.Chunk {
	if ix == nil {
		return nil
	}
	out := make([]domain.Chunk, len(ix.chunks))
	copy(out, ix.chunks)
	return out
}

// IDF returns the weight of term and whether the term was seen at build time.
func (ix *Index) IDF(term string) (float64, bool) {
	if ix == nil {
		return 0, false
	}
	w, ok := ix.idf[term]
	return w, ok
}

// Terms returns the sorted vocabulary.
func (ix *Index) Terms() []string {
	if ix == nil {
		return nil
	}
	terms := make([]string, 0, len(ix.idf))
	for term := range ix.idf {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// Vectorize weights query tokens with this index's IDF table.
func (ix *Index) Vectorize(tokens []string) Vector {
	if ix == nil {
		return Vectorize(tokens, nil)
	}
	return Vectorize(tokens, ix.idf)
}

// ChunkVector returns the stored vector of the i-th chunk.
func (ix *Index) ChunkVector(i int) Vector {
	c := ix.chunks[i]
	return Vector{Weights: c.Terms, Norm: c.Norm}
}
