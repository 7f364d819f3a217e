package listing

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"tawdifak-listings/pkg/cache"
	"tawdifak-listings/pkg/logger"
	"tawdifak-listings/pkg/metrics"
)

// Coordinator owns a listing's collaborator. It is shared by every session
// showing the listing: identical requests in flight at the same time reach
// the data source once.
type Coordinator[T any] struct {
	desc  Descriptor[T]
	group singleflight.Group
}

func NewCoordinator[T any](desc Descriptor[T]) (*Coordinator[T], error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return &Coordinator[T]{desc: desc}, nil
}

func (c *Coordinator[T]) Descriptor() Descriptor[T] {
	return c.desc
}

// NewPage creates the per-session display state for this listing. store may
// be nil; it is ignored when the listing is not cached.
func (c *Coordinator[T]) NewPage(store cache.Store) *Page[T] {
	p := &Page[T]{coord: c}
	if c.desc.Cached && store != nil {
		p.cache = cache.NewGuarded(store)
	}
	return p
}

// Fetch calls the collaborator for page of q. The shared call outlives a
// cancelled caller so other waiters still get the result.
func (c *Coordinator[T]) Fetch(ctx context.Context, q Query, page int) (Result[T], error) {
	key := q.Key(c.desc.Name, false) + "#" + strconv.Itoa(page)

	ch := c.group.DoChan(key, func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.desc.timeout())
		defer cancel()

		start := time.Now()
		res, err := c.desc.Fetch(callCtx, q, page, c.desc.PageSize)
		outcome := "ok"
		if err != nil {
			outcome = "error"
			logger.GlobalLogger.Errorf("fetch %s page %d failed: %v", c.desc.Name, page, err)
		}
		metrics.FetchDuration.WithLabelValues(c.desc.Name, outcome).Observe(time.Since(start).Seconds())
		return res, err
	})

	select {
	case <-ctx.Done():
		return Result[T]{}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return Result[T]{}, r.Err
		}
		return r.Val.(Result[T]), nil
	}
}
