package listing

import (
	"context"
	"errors"
	"sync"

	"tawdifak-listings/pkg/cache"
	"tawdifak-listings/pkg/logger"
	"tawdifak-listings/pkg/metrics"
)

// DisplayState is what a listing page shows at one instant.
type DisplayState[T any] struct {
	Query       Query
	Items       []T
	Page        int
	TotalCount  int64
	HasMore     bool
	Loading     bool
	LoadingMore bool
	FromCache   bool
	// Err is the last fetch failure; the list above it is kept.
	Err error
}

// Page holds one session's view of one listing and drives its fetches.
//
// Every fetch takes a token from a counter. A response is applied only when
// its token is still the latest issued, so responses arriving out of order
// or after the query changed never overwrite newer state. Items slices are
// never mutated in place; State may hand them out without copying.
type Page[T any] struct {
	coord *Coordinator[T]
	cache *cache.Guarded

	mu      sync.Mutex
	state   DisplayState[T]
	mounted bool
	closed  bool
	seq     uint64
	failed  *ticket
}

type ticket struct {
	token uint64
	query Query
	page  int
	reset bool
}

// State returns a snapshot of the display state.
func (p *Page[T]) State() DisplayState[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Descriptor returns the listing this page displays.
func (p *Page[T]) Descriptor() Descriptor[T] {
	return p.coord.desc
}

// Close stops the page; results of fetches still in flight are dropped.
func (p *Page[T]) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
}

// Mount shows q. A changed filter set resets the display, then the cache is
// consulted and only a miss reaches the collaborator. Mounting the filters
// and page already on display does nothing.
func (p *Page[T]) Mount(ctx context.Context, q Query) error {
	desc := p.coord.desc
	if q.Page < 1 || desc.Mode == ModeCumulative {
		q.Page = 1
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	changed := !p.mounted || !p.state.Query.SameFilters(q)
	if changed {
		p.seq++
		p.mounted = true
		p.failed = nil
		p.state = DisplayState[T]{Query: q, Loading: true}
	} else if p.showing(q.Page) {
		p.mu.Unlock()
		return nil
	} else {
		// navigating within the same filters supersedes whatever is in flight
		p.seq++
		p.failed = nil
	}
	key := p.keyFor(q, q.Page)
	token := p.seq
	p.mu.Unlock()

	if p.restore(ctx, key, token) {
		return nil
	}
	return p.FetchPage(ctx, q.Page, true)
}

// showing reports whether the state already displays page without error or
// a fetch in flight.
func (p *Page[T]) showing(page int) bool {
	s := p.state
	if s.Loading || s.LoadingMore || s.Err != nil || s.Page == 0 {
		return false
	}
	if p.coord.desc.Mode == ModeCumulative {
		return true
	}
	return s.Page == page
}

// restore seeds the state from a cached entry. It reports false on a miss,
// when caching is off, or when a newer fetch was issued meanwhile.
func (p *Page[T]) restore(ctx context.Context, key string, token uint64) bool {
	if p.cache == nil {
		return false
	}
	name := p.coord.desc.Name
	entry, ok := p.cache.Get(ctx, key)
	if !ok {
		metrics.CacheMissesTotal.WithLabelValues(name).Inc()
		return false
	}
	var items []T
	if err := entry.DecodeItems(&items); err != nil {
		logger.GlobalLogger.Warnf("discarding unreadable cache entry %s: %v", key, err)
		metrics.CacheMissesTotal.WithLabelValues(name).Inc()
		return false
	}
	metrics.CacheHitsTotal.WithLabelValues(name).Inc()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || token != p.seq {
		return true
	}
	p.state.Items = items
	p.state.Page = entry.Page
	p.state.Query.Page = entry.Page
	p.state.TotalCount = entry.TotalCount
	p.state.HasMore = entry.HasMore
	p.state.Loading = false
	p.state.LoadingMore = false
	p.state.FromCache = true
	p.state.Err = nil
	return true
}

// LoadMore appends the next page. It is a no-op while a fetch is in flight
// or when nothing is left to load. Only cumulative listings support it.
func (p *Page[T]) LoadMore(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	if p.coord.desc.Mode != ModeCumulative {
		p.mu.Unlock()
		return ErrWrongMode
	}
	if !p.mounted {
		p.mu.Unlock()
		return ErrNotMounted
	}
	if p.state.Loading || p.state.LoadingMore || !p.state.HasMore {
		p.mu.Unlock()
		return nil
	}
	t := p.beginLocked(p.state.Page+1, false)
	p.mu.Unlock()

	return p.run(ctx, t)
}

// Retry repeats the last failed fetch, if any.
func (p *Page[T]) Retry(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	if p.failed == nil {
		p.mu.Unlock()
		return nil
	}
	t := p.beginLocked(p.failed.page, p.failed.reset)
	p.mu.Unlock()

	return p.run(ctx, t)
}

// FetchPage requests page from the collaborator. reset replaces the list,
// otherwise the results are appended to it.
func (p *Page[T]) FetchPage(ctx context.Context, page int, reset bool) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	if !p.mounted {
		p.mu.Unlock()
		return ErrNotMounted
	}
	t := p.beginLocked(page, reset)
	p.mu.Unlock()

	return p.run(ctx, t)
}

func (p *Page[T]) beginLocked(page int, reset bool) ticket {
	p.seq++
	p.state.Loading = reset
	p.state.LoadingMore = !reset
	p.state.Err = nil
	return ticket{token: p.seq, query: p.state.Query, page: page, reset: reset}
}

func (p *Page[T]) run(ctx context.Context, t ticket) error {
	desc := p.coord.desc
	res, err := p.coord.Fetch(ctx, t.query, t.page)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || t.token != p.seq {
		metrics.StaleResponsesTotal.WithLabelValues(desc.Name).Inc()
		return ErrStale
	}
	p.state.Loading = false
	p.state.LoadingMore = false

	if err != nil {
		failed := t
		p.failed = &failed
		p.state.Err = err
		return err
	}
	p.failed = nil

	var items []T
	if t.reset {
		items = append(make([]T, 0, len(res.Items)), res.Items...)
	} else {
		items = make([]T, 0, len(p.state.Items)+len(res.Items))
		items = append(items, p.state.Items...)
		items = append(items, res.Items...)
	}
	p.state.Items = items
	p.state.Page = t.page
	p.state.Query.Page = t.page
	p.state.TotalCount = res.TotalCount
	p.state.HasMore = HasMore(t.page, desc.PageSize, res.TotalCount)
	p.state.FromCache = false

	// written under the lock so writes for this key stay ordered
	p.store(ctx, p.keyFor(t.query, t.page))
	return nil
}

func (p *Page[T]) store(ctx context.Context, key string) {
	if p.cache == nil {
		return
	}
	s := p.state
	entry, err := cache.NewEntry(s.Items, s.Page, s.HasMore, s.TotalCount)
	if err != nil {
		logger.GlobalLogger.Errorf("failed to encode %s for cache: %v", p.coord.desc.Name, err)
		return
	}
	p.cache.Set(ctx, key, entry)
}

func (p *Page[T]) keyFor(q Query, page int) string {
	if p.coord.desc.Mode == ModeDiscrete {
		return q.WithPage(page).Key(p.coord.desc.Name, true)
	}
	return q.Key(p.coord.desc.Name, false)
}

// IsStale reports whether err only means a newer request took over.
func IsStale(err error) bool {
	return errors.Is(err, ErrStale)
}
