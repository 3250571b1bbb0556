package smm

import (
	"context"
	"sync"
	"time"
)

// DefaultCatalogTTL keeps one conversation's platform/category/service
// steps on a single catalog fetch.
const DefaultCatalogTTL = 45 * time.Second

// CachedCatalog fronts Services with a single global cached copy. AddOrder
// and GetOrderStatus pass straight through.
type CachedCatalog struct {
	*Client

	ttl time.Duration

	mu        sync.Mutex
	services  []Service
	fetchedAt time.Time
}

func NewCachedCatalog(client *Client, ttl time.Duration) *CachedCatalog {
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	return &CachedCatalog{Client: client, ttl: ttl}
}

// Services returns the cached catalog, refetching once the TTL lapses.
// A failed refresh does not serve stale data: bounds and rates feed
// money math, so callers get the error instead.
func (c *CachedCatalog) Services(ctx context.Context) ([]Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.services != nil && time.Since(c.fetchedAt) < c.ttl {
		return c.services, nil
	}

	services, err := c.Client.Services(ctx)
	if err != nil {
		return nil, err
	}
	c.services = services
	c.fetchedAt = time.Now()
	return services, nil
}

// FindService looks a service up by id in the cached catalog.
func (c *CachedCatalog) FindService(ctx context.Context, serviceID string) (*Service, error) {
	services, err := c.Services(ctx)
	if err != nil {
		return nil, err
	}
	for i := range services {
		if string(services[i].ID) == serviceID {
			return &services[i], nil
		}
	}
	return nil, nil
}
