package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/jonathan/resume-matcher/internal/vectorstore"
	"go.uber.org/zap"
)

// CachedEmbedder stores every embedding it computes in a vector store keyed by model and text.
// Cached vectors are L2-normalized by the store, which leaves cosine similarity unchanged.
type CachedEmbedder struct {
	inner  Embedder
	model  string
	store  *vectorstore.Store
	logger *zap.Logger

	mu sync.Mutex
}

// NewCachedEmbedder opens (or creates) the cache store in dir.
func NewCachedEmbedder(inner Embedder, model, dir string, logger *zap.Logger) (*CachedEmbedder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	store, err := vectorstore.Open(dir, inner.Dimension(), vectorstore.WithIndex(false))
	if err != nil {
		return nil, fmt.Errorf("failed to open embedding cache: %w", err)
	}
	return &CachedEmbedder{
		inner:  inner,
		model:  model,
		store:  store,
		logger: logger,
	}, nil
}

// CacheKey returns the hex SHA-256 of model and text joined by a NUL byte.
func CacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

// Embed returns the cached vector for text, computing and storing it on a miss.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := CacheKey(c.model, text)

	c.mu.Lock()
	cached, ok := c.store.Get(key)
	c.mu.Unlock()
	if ok {
		c.logger.Debug("embedding cache hit", zap.String("key", key[:12]))
		return cached, nil
	}

	vec, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.Add(key, vec); err != nil {
		return nil, fmt.Errorf("failed to cache embedding: %w", err)
	}
	c.logger.Debug("embedding cache miss",
		zap.String("key", key[:12]),
		zap.Int("runes", len([]rune(text))),
		zap.Int("cached", c.store.Len()))

	stored, _ := c.store.Get(key)
	return stored, nil
}

// Dimension returns the dimension of the wrapped embedder.
func (c *CachedEmbedder) Dimension() int {
	return c.inner.Dimension()
}

// Len returns the number of cached vectors.
func (c *CachedEmbedder) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Len()
}
