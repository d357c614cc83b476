package chunker

import (
	"fmt"

	"tripguide/internal/domain"
)

// New returns the chunker registered under kind. An empty kind selects
// paragraph chunking.
func New(kind string, sentencesPerChunk, overlapSentences int) (domain.Chunker, error) {
	switch kind {
	case "paragraph", "":
		return NewParagraphChunker(), nil
	case "sentence":
		return NewSentenceChunker(sentencesPerChunk, overlapSentences), nil
	default:
		return nil, fmt.Errorf("unknown chunker: %s", kind)
	}
}
