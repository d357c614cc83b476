// Package tokenizer turns raw English text into index-eligible terms.
package tokenizer

import (
	"strings"
	"unicode"
)

// MinTermLength is the shortest token kept by Tokenize.
const MinTermLength = 3

// Tokenize lowercases text, replaces every character outside [a-z0-9] and
// whitespace with a space, splits on whitespace and drops short tokens and
// stopwords.
func Tokenize(text string) []string {
	if text == "" {
		return []string{}
	}
	lower := strings.ToLower(text)
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case unicode.IsSpace(r):
			return r
		default:
			return ' '
		}
	}, lower)
	raw := strings.Fields(cleaned)
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		if len(t) < MinTermLength {
			continue
		}
		if IsStopword(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// IsStopword reports whether term is in the fixed English stopword set.
func IsStopword(term string) bool {
	_, ok := stopwords[term]
	return ok
}

var stopwords = func() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "its", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
		"you", "your", "yours", "our", "ours", "we", "they", "them", "their", "his", "her", "she", "him", "what", "which", "who", "whom", "when", "where", "why", "how", "all", "any", "both", "each", "few", "more", "most", "other", "some", "not", "only", "have", "has", "had", "having", "does", "did", "doing", "would", "could", "there", "here", "also", "please", "want", "like",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
