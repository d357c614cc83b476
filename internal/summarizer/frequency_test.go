package summarizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcerpt_ShortTextUnchanged(t *testing.T) {
	s := NewFrequencySummarizer()
	assert.Equal(t, "One. Two.", s.Excerpt(" One.  Two. ", "", 2))
	assert.Equal(t, "no punctuation", s.Excerpt(" no punctuation ", "", 2))
	assert.Equal(t, "", s.Excerpt("", "query", 2))
}

func TestExcerpt_PrefersQueryTerms(t *testing.T) {
	s := NewFrequencySummarizer()
	text := "The old town is walkable. Trains to Khiva leave at night. Museums close on Mondays. Book sleeper trains early."
	got := s.Excerpt(text, "khiva trains", 2)
	assert.Equal(t, "Trains to Khiva leave at night. Book sleeper trains early.", got)
}

func TestExcerpt_KeepsOriginalOrder(t *testing.T) {
	s := NewFrequencySummarizer()
	text := "Plov for lunch. Walk the bazaar. Plov again for dinner."
	got := s.Excerpt(text, "plov", 2)
	assert.Equal(t, "Plov for lunch. Plov again for dinner.", got)
}

func TestExcerpt_DefaultLength(t *testing.T) {
	s := NewFrequencySummarizer()
	got := s.Excerpt("One one. Two two. Three three. Four four.", "", 0)
	assert.Len(t, sentencePattern.FindAllString(got, -1), 2)
}
