package content

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/drganeshcs/clinic-booking-platform/pkg/logging"
)

var contentTracer = otel.Tracer("clinic.internal.content")

// Cache holds the last successfully fetched content list and refreshes it in
// the background. A failed refresh keeps the previous data; the failure is
// observable through Status.
type Cache struct {
	store    Store
	interval time.Duration
	logger   *logging.Logger

	mu          sync.RWMutex
	items       []Item
	lastSuccess time.Time
	lastErr     error
	lastErrAt   time.Time
}

// RefreshStatus reports the health of the background refresh loop.
type RefreshStatus struct {
	LastSuccess time.Time `json:"last_success"`
	LastError   string    `json:"last_error,omitempty"`
	LastErrorAt time.Time `json:"last_error_at,omitempty"`
}

// NewCache creates a content cache refreshing every interval.
func NewCache(store Store, interval time.Duration, logger *logging.Logger) *Cache {
	if store == nil {
		panic("content: store required")
	}
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Cache{store: store, interval: interval, logger: logger}
}

// Run refreshes immediately, then on every tick until ctx is cancelled.
func (c *Cache) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	c.Refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Refresh(ctx)
		}
	}
}

// Refresh fetches the content list once. Errors are recorded, never
// returned: the cache keeps serving the previous list.
func (c *Cache) Refresh(ctx context.Context) {
	ctx, span := contentTracer.Start(ctx, "content.refresh")
	defer span.End()

	items, err := c.store.ListContent(ctx)
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		span.RecordError(err)
		c.lastErr = err
		c.lastErrAt = now
		c.logger.Error("content refresh failed", "error", err)
		return
	}
	c.items = items
	c.lastSuccess = now
	c.lastErr = nil
}

// Items returns every cached item, published or not. The doctor portal uses
// this view.
func (c *Cache) Items() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Published returns only the items visible on the public site.
func (c *Cache) Published() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		if it.Published {
			out = append(out, it)
		}
	}
	return out
}

// Status reports the refresh loop's last success and last error.
func (c *Cache) Status() RefreshStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	st := RefreshStatus{LastSuccess: c.lastSuccess, LastErrorAt: c.lastErrAt}
	if c.lastErr != nil {
		st.LastError = c.lastErr.Error()
	}
	return st
}
