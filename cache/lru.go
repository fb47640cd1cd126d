package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRUTokenCache is an in-process TokenCache. It is used when no Redis URL is
// configured; each instance only knows about the revocations it has seen.
type LRUTokenCache struct {
	entries *lru.Cache[string, time.Time]
	now     func() time.Time
}

func NewLRUTokenCache(size int) (*LRUTokenCache, error) {
	entries, err := lru.New[string, time.Time](size)
	if err != nil {
		return nil, err
	}
	return &LRUTokenCache{entries: entries, now: time.Now}, nil
}

func (c *LRUTokenCache) Contains(_ context.Context, token string) (bool, error) {
	expiresAt, ok := c.entries.Get(token)
	if !ok {
		return false, nil
	}
	if !c.now().Before(expiresAt) {
		c.entries.Remove(token)
		return false, nil
	}
	return true, nil
}

func (c *LRUTokenCache) Add(_ context.Context, token string, expiresAt time.Time) error {
	if !c.now().Before(expiresAt) {
		return nil
	}
	c.entries.Add(token, expiresAt)
	return nil
}

func (c *LRUTokenCache) Len() int {
	return c.entries.Len()
}
