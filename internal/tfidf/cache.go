package tfidf

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"tripguide/internal/domain"
	"tripguide/internal/logger"
)

// Cache owns the process-wide current Index. The index is built lazily from
// the document source on first use and replaced wholesale on Rebuild. Builds
// run one at a time, so a build that started later is never overwritten by
// one that started earlier.
type Cache struct {
	source  domain.DocumentSource
	chunker domain.Chunker

	mu      sync.RWMutex
	current *Index
	buildMu sync.Mutex
	builds  singleflight.Group
}

// NewCache returns an empty cache that builds from source using chunker.
func NewCache(source domain.DocumentSource, chunker domain.Chunker) *Cache {
	return &Cache{source: source, chunker: chunker}
}

// Get returns the current index, building it if absent. Concurrent first
// callers share a single build.
func (c *Cache) Get() (*Index, error) {
	if ix := c.Current(); ix != nil {
		return ix, nil
	}
	v, err, _ := c.builds.Do("build", func() (any, error) {
		c.buildMu.Lock()
		defer c.buildMu.Unlock()
		if ix := c.Current(); ix != nil {
			return ix, nil
		}
		return c.build()
	})
	if err != nil {
		return nil, err
	}
	return v.(*Index), nil
}

// Rebuild loads the document set again and replaces the current index. The
// load starts after any build in progress finishes, so every call sees the
// documents as of its own invocation. On failure the previous index stays in
// place.
func (c *Cache) Rebuild() (*Index, error) {
	c.buildMu.Lock()
	defer c.buildMu.Unlock()
	return c.build()
}

// Current returns the cached index without building. It may be nil.
func (c *Cache) Current() *Index {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Invalidate drops the cached index so the next Get rebuilds it.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
}

func (c *Cache) build() (*Index, error) {
	logger.Section("Index build")
	start := time.Now()
	docs, err := c.source.Load()
	if err != nil {
		return nil, err
	}
	ix := Build(docs, c.chunker)
	logger.Info("built index: %d documents, %d chunks, %d terms in %s",
		len(docs), ix.Len(), len(ix.idf), time.Since(start).Round(time.Millisecond))

	c.mu.Lock()
	c.current = ix
	c.mu.Unlock()
	return ix, nil
}
