package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// PaymentDeduper tracks payment ids already delivered by a processor's
// status webhook. The store's pending->confirmed flip remains the
// authoritative guard; this just sheds duplicate deliveries at the edge.
type PaymentDeduper interface {
	Seen(ctx context.Context, paymentID string) (bool, error)
}

type redisPaymentDeduper struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func (d *redisPaymentDeduper) Seen(ctx context.Context, paymentID string) (bool, error) {
	key := d.prefix + ":" + paymentID
	ok, err := d.client.SetNX(ctx, key, "1", d.ttl).Result()
	if err != nil {
		return false, err
	}
	// false => already exists => duplicate
	return !ok, nil
}

type memoryPaymentDeduper struct {
	mu     sync.Mutex
	seen   map[string]time.Time
	ttl    time.Duration
	nextGC time.Time
}

func newMemoryPaymentDeduper(ttl time.Duration) *memoryPaymentDeduper {
	now := time.Now()
	return &memoryPaymentDeduper{
		seen:   make(map[string]time.Time),
		ttl:    ttl,
		nextGC: now.Add(ttl),
	}
}

func (d *memoryPaymentDeduper) Seen(_ context.Context, paymentID string) (bool, error) {
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if exp, ok := d.seen[paymentID]; ok && exp.After(now) {
		return true, nil
	}

	d.seen[paymentID] = now.Add(d.ttl)
	if now.After(d.nextGC) {
		for id, exp := range d.seen {
			if exp.Before(now) {
				delete(d.seen, id)
			}
		}
		d.nextGC = now.Add(d.ttl)
	}

	return false, nil
}

// NewPaymentDeduper builds a Redis deduper and falls back to in-memory on
// failure.
func NewPaymentDeduper(addr, pass string, db int, ttl time.Duration) (PaymentDeduper, error) {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if addr == "" {
		return newMemoryPaymentDeduper(ttl), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pass,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return newMemoryPaymentDeduper(ttl), err
	}

	return &redisPaymentDeduper{
		client: client,
		prefix: "pay:status",
		ttl:    ttl,
	}, nil
}

// PaymentStatusDedup drops duplicate webhook deliveries keyed by the
// payment id form field. Processors only need a 2xx to stop retrying.
func PaymentStatusDedup(deduper PaymentDeduper, idField func(echo.Context) string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if deduper == nil {
				return next(c)
			}

			id := idField(c)
			if id == "" {
				return next(c)
			}

			isDuplicate, err := deduper.Seen(c.Request().Context(), id)
			if err != nil {
				return next(c)
			}
			if isDuplicate {
				return c.String(http.StatusOK, "OK")
			}
			return next(c)
		}
	}
}
