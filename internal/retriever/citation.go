package retriever

import (
	"strconv"
	"strings"

	"tripguide/internal/domain"
)

// NoSources is the sources sentinel used when nothing was retrieved.
const NoSources = "none"

// Citation pairs a retrieved chunk with its rank-ordered token (S1, S2, ...).
type Citation struct {
	Token string
	Chunk domain.RetrievedChunk
}

// Citations labels results by rank order, not by score value.
func Citations(results []domain.RetrievedChunk) []Citation {
	out := make([]Citation, len(results))
	for i, r := range results {
		out[i] = Citation{Token: "S" + strconv.Itoa(i+1), Chunk: r}
	}
	return out
}

// CitationTokens returns just the tokens of Citations(results).
func CitationTokens(results []domain.RetrievedChunk) []string {
	tokens := make([]string, len(results))
	for i := range results {
		tokens[i] = "S" + strconv.Itoa(i+1)
	}
	return tokens
}

// FormatSources renders a sources line such as "Sources: [S1], [S2]".
func FormatSources(tokens []string) string {
	var kept []string
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t == "" || strings.EqualFold(t, NoSources) {
			continue
		}
		if !strings.HasPrefix(t, "[") {
			t = "[" + t + "]"
		}
		kept = append(kept, t)
	}
	if len(kept) == 0 {
		return "Sources: " + NoSources
	}
	return "Sources: " + strings.Join(kept, ", ")
}
