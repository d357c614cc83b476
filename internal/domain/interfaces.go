package domain

// Document is a single knowledge-base record loaded from the document source.
type Document struct {
	ID      string   `json:"id" yaml:"id" toml:"id"`
	Title   string   `json:"title" yaml:"title" toml:"title"`
	URL     string   `json:"url" yaml:"url" toml:"url"`
	Content string   `json:"content" yaml:"content" toml:"content"`
	Tags    []string `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty"`
}

// Chunk is a paragraph-sized retrievable unit derived from one Document.
// Chunks are created by the index builder and never mutated afterwards.
type Chunk struct {
	ID       string
	SourceID string
	Title    string
	URL      string
	Content  string
	// Terms maps each distinct term to its TF-IDF weight.
	Terms map[string]float64
	// Norm is the precomputed L2 norm of Terms.
	Norm float64
}

// RetrievedChunk is a query-time match with its cosine similarity score.
type RetrievedChunk struct {
	ID       string  `json:"id"`
	SourceID string  `json:"sourceId"`
	Title    string  `json:"title"`
	URL      string  `json:"url"`
	Content  string  `json:"content"`
	Score    float64 `json:"score"`
}

// Chunker splits a document into raw paragraph texts suitable for indexing.
type Chunker interface {
	Split(document Document) []string
}

// DocumentSource supplies the ordered document set an index is built from.
type DocumentSource interface {
	Load() ([]Document, error)
}

// DocumentSourceFunc adapts a plain function to DocumentSource.
type DocumentSourceFunc func() ([]Document, error)

// Load calls f.
func (f DocumentSourceFunc) Load() ([]Document, error) { return f() }
