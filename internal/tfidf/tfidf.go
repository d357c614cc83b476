// Package tfidf builds immutable TF-IDF indexes over chunked documents.
package tfidf

import (
	"math"
	"sort"
)

// Vector is a sparse TF-IDF term vector with its cached L2 norm.
type Vector struct {
	Weights map[string]float64
	Norm    float64
}

// ComputeIDF returns the smoothed inverse document frequency of every term
// seen in chunks. Document frequency counts distinct chunks, not occurrences:
//
//	idf(t) = ln((N+1)/(df(t)+1)) + 1
func ComputeIDF(chunks [][]string) map[string]float64 {
	df := make(map[string]int)
	for _, tokens := range chunks {
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	idf := make(map[string]float64, len(df))
	n := float64(len(chunks))
	for term, count := range df {
		idf[term] = math.Log((n+1)/(float64(count)+1)) + 1
	}
	return idf
}

// Vectorize weights each distinct token by its term frequency times its IDF.
// Terms absent from idf weigh 1.
func Vectorize(tokens []string, idf map[string]float64) Vector {
	if len(tokens) == 0 {
		return Vector{Weights: map[string]float64{}}
	}
	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}
	total := float64(len(tokens))
	weights := make(map[string]float64, len(counts))
	for term, count := range counts {
		w, ok := idf[term]
		if !ok {
			w = 1
		}
		weights[term] = float64(count) / total * w
	}
	return Vector{Weights: weights, Norm: norm(weights)}
}

// Cosine returns the cosine similarity of a and b, or 0 when either norm is 0.
// Terms are visited in sorted order so equal inputs give bit-identical output.
func Cosine(a, b Vector) float64 {
	if a.Norm == 0 || b.Norm == 0 {
		return 0
	}
	small, large := a.Weights, b.Weights
	if len(large) < len(small) {
		small, large = large, small
	}
	dot := 0.0
	for _, term := range sortedTerms(small) {
		if w, ok := large[term]; ok {
			dot += small[term] * w
		}
	}
	return dot / (a.Norm * b.Norm)
}

func norm(weights map[string]float64) float64 {
	sum := 0.0
	for _, term := range sortedTerms(weights) {
		sum += weights[term] * weights[term]
	}
	return math.Sqrt(sum)
}

func sortedTerms(weights map[string]float64) []string {
	terms := make([]string, 0, len(weights))
	for term := range weights {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
