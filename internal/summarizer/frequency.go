// Package summarizer picks short excerpts of retrieved chunks for display.
package summarizer

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"tripguide/internal/tokenizer"
)

var sentencePattern = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)

// FrequencySummarizer ranks sentences by term frequency, boosting terms that
// appear in the query.
type FrequencySummarizer struct {
	queryBoost float64
}

// NewFrequencySummarizer creates a frequency-based sentence ranker summarizer.
func NewFrequencySummarizer() *FrequencySummarizer {
	return &FrequencySummarizer{queryBoost: 2}
}

// Excerpt returns up to maxSentences sentences of text in their original
// order, preferring sentences dense in frequent and query terms.
func (s *FrequencySummarizer) Excerpt(text, query string, maxSentences int) string {
	if maxSentences <= 0 {
		maxSentences = 2
	}
	sentences := sentencePattern.FindAllString(text, -1)
	if len(sentences) == 0 {
		return strings.TrimSpace(text)
	}
	if len(sentences) <= maxSentences {
		return joinTrimmed(sentences)
	}

	freq := map[string]float64{}
	tokens := make([][]string, len(sentences))
	for i, sent := range sentences {
		tokens[i] = tokenizer.Tokenize(sent)
		for _, tok := range tokens[i] {
			freq[tok]++
		}
	}
	maxF := 0.0
	for _, v := range freq {
		if v > maxF {
			maxF = v
		}
	}
	if maxF > 0 {
		for k, v := range freq {
			freq[k] = v / maxF
		}
	}
	for _, tok := range tokenizer.Tokenize(query) {
		if _, ok := freq[tok]; ok {
			freq[tok] += s.queryBoost
		}
	}

	type pair struct {
		idx   int
		score float64
	}
	scores := make([]pair, len(sentences))
	for i := range sentences {
		score := 0.0
		for _, tok := range tokens[i] {
			score += freq[tok]
		}
		// Normalize by sentence length to avoid bias
		if l := float64(len(tokens[i])); l > 0 {
			score /= math.Sqrt(l)
		}
		scores[i] = pair{i, score}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	// Keep original order among selected
	selected := make([]int, maxSentences)
	for i := 0; i < maxSentences; i++ {
		selected[i] = scores[i].idx
	}
	sort.Ints(selected)
	picked := make([]string, len(selected))
	for i, idx := range selected {
		picked[i] = sentences[idx]
	}
	return joinTrimmed(picked)
}

func joinTrimmed(sentences []string) string {
	out := make([]string, 0, len(sentences))
	for _, s := range sentences {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, " ")
}
