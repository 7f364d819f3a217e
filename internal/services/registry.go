package services

import (
	"context"
	"fmt"
	"time"

	"tawdifak-listings/internal/listing"
	"tawdifak-listings/pkg/cache"
	"tawdifak-listings/pkg/config"
)

// Listing type names, as they appear in /api/listings/:type.
const (
	ListingJobs         = "jobs"
	ListingWorkers      = "workers"
	ListingCompetitions = "competitions"
	ListingImmigration  = "immigration"
	ListingArticles     = "articles"
	ListingTestimonials = "testimonials"
)

type listingSettings struct {
	pageSize int
	mode     listing.Mode
	cached   bool
	empty    string
}

var defaultListings = map[string]listingSettings{
	ListingJobs:         {16, listing.ModeCumulative, true, "لا توجد عروض عمل تطابق بحثك."},
	ListingWorkers:      {16, listing.ModeDiscrete, true, "لا يوجد باحثون عن عمل يطابقون بحثك."},
	ListingCompetitions: {16, listing.ModeDiscrete, true, "لا توجد مباريات تطابق بحثك."},
	ListingImmigration:  {16, listing.ModeCumulative, false, "لا توجد فرص هجرة تطابق بحثك."},
	ListingArticles:     {8, listing.ModeCumulative, true, "لا توجد مقالات حالياً."},
	ListingTestimonials: {8, listing.ModeCumulative, true, "لا توجد آراء حالياً."},
}

// Listing is one registered listing type, independent of its item type.
type Listing interface {
	Name() string
	Mode() listing.Mode
	PageSize() int
	Cached() bool
	EmptyMessage() string
	NewPage(store cache.Store) ListingPage
}

// ListingPage is one session's page of a listing.
type ListingPage interface {
	Mount(ctx context.Context, q listing.Query) error
	LoadMore(ctx context.Context) error
	Retry(ctx context.Context) error
	Close()
	Snapshot() Snapshot
}

// Snapshot is a listing.DisplayState with the items type erased.
type Snapshot struct {
	Query       listing.Query
	Items       interface{}
	Count       int
	Page        int
	TotalCount  int64
	HasMore     bool
	Loading     bool
	LoadingMore bool
	FromCache   bool
	Err         error
}

type typedListing[T any] struct {
	coord *listing.Coordinator[T]
	empty string
}

func (l *typedListing[T]) Name() string         { return l.coord.Descriptor().Name }
func (l *typedListing[T]) Mode() listing.Mode   { return l.coord.Descriptor().Mode }
func (l *typedListing[T]) PageSize() int        { return l.coord.Descriptor().PageSize }
func (l *typedListing[T]) Cached() bool         { return l.coord.Descriptor().Cached }
func (l *typedListing[T]) EmptyMessage() string { return l.empty }

func (l *typedListing[T]) NewPage(store cache.Store) ListingPage {
	return &typedPage[T]{Page: l.coord.NewPage(store)}
}

type typedPage[T any] struct {
	*listing.Page[T]
}

func (p *typedPage[T]) Snapshot() Snapshot {
	s := p.State()
	items := s.Items
	if items == nil {
		items = []T{}
	}
	return Snapshot{
		Query:       s.Query,
		Items:       items,
		Count:       len(items),
		Page:        s.Page,
		TotalCount:  s.TotalCount,
		HasMore:     s.HasMore,
		Loading:     s.Loading,
		LoadingMore: s.LoadingMore,
		FromCache:   s.FromCache,
		Err:         s.Err,
	}
}

// Registry holds the listing types the service exposes.
type Registry struct {
	listings map[string]Listing
}

// NewRegistry builds the six listings over src, applying per-type
// overrides from configuration.
func NewRegistry(src Sources, overrides map[string]config.ListingOverride, fetchTimeout time.Duration) (*Registry, error) {
	settings := make(map[string]listingSettings, len(defaultListings))
	for name, s := range defaultListings {
		settings[name] = s
	}
	for name, o := range overrides {
		s, ok := settings[name]
		if !ok {
			return nil, fmt.Errorf("listings.%s: no such listing", name)
		}
		if o.PageSize > 0 {
			s.pageSize = o.PageSize
		}
		if o.Mode != "" {
			mode, err := listing.ParseMode(o.Mode)
			if err != nil {
				return nil, fmt.Errorf("listings.%s: %w", name, err)
			}
			s.mode = mode
		}
		if o.Cached != nil {
			s.cached = *o.Cached
		}
		settings[name] = s
	}

	r := &Registry{listings: make(map[string]Listing, len(settings))}
	regs := []error{
		register(r, ListingJobs, src.JobOffers, settings, fetchTimeout),
		register(r, ListingWorkers, src.JobSeekers, settings, fetchTimeout),
		register(r, ListingCompetitions, src.Competitions, settings, fetchTimeout),
		register(r, ListingImmigration, src.Immigration, settings, fetchTimeout),
		register(r, ListingArticles, src.Articles, settings, fetchTimeout),
		register(r, ListingTestimonials, src.Testimonials, settings, fetchTimeout),
	}
	for _, err := range regs {
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

func register[T any](r *Registry, name string, fetch listing.FetchFunc[T], settings map[string]listingSettings, timeout time.Duration) error {
	s := settings[name]
	coord, err := listing.NewCoordinator(listing.Descriptor[T]{
		Name:         name,
		Fetch:        fetch,
		PageSize:     s.pageSize,
		Mode:         s.mode,
		Cached:       s.cached,
		EmptyMessage: s.empty,
		FetchTimeout: timeout,
	})
	if err != nil {
		return err
	}
	r.listings[name] = &typedListing[T]{coord: coord, empty: s.empty}
	return nil
}

func (r *Registry) Get(name string) (Listing, bool) {
	l, ok := r.listings[name]
	return l, ok
}
