// Package chunker splits source documents into retrievable text units.
package chunker

import (
	"regexp"
	"strings"

	"tripguide/internal/domain"
)

var blankLines = regexp.MustCompile(`\r?\n[ \t]*(?:\r?\n[ \t]*)+`)

// ParagraphChunker splits content on blank-line boundaries.
type ParagraphChunker struct{}

func NewParagraphChunker() *ParagraphChunker { return &ParagraphChunker{} }

// Split returns the trimmed, non-empty paragraphs of the document. A document
// with content but no usable paragraph boundaries yields a single chunk.
func (c *ParagraphChunker) Split(document domain.Document) []string {
	trimmed := strings.TrimSpace(document.Content)
	if trimmed == "" {
		return nil
	}
	parts := blankLines.Split(trimmed, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{trimmed}
	}
	return out
}
