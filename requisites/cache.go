package requisites

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CachedResolver remembers resolved names in a bounded LRU. Only found
// courses are cached, so a missing course is looked up again next time.
type CachedResolver struct {
	next  Resolver
	names *expirable.LRU[string, string]
}

// NewCachedResolver caches up to size names for ttl each. A ttl of zero
// keeps entries until they are evicted or purged.
func NewCachedResolver(next Resolver, size int, ttl time.Duration) *CachedResolver {
	return &CachedResolver{
		next:  next,
		names: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

func (c *CachedResolver) ResolveName(ctx context.Context, sigle string) (string, error) {
	if name, ok := c.names.Get(sigle); ok {
		return name, nil
	}

	name, err := c.next.ResolveName(ctx, sigle)
	if err != nil {
		return "", err
	}
	if name != "" {
		c.names.Add(sigle, name)
	}
	return name, nil
}

// Purge drops every cached name.
func (c *CachedResolver) Purge() {
	c.names.Purge()
}

func (c *CachedResolver) Len() int {
	return c.names.Len()
}
