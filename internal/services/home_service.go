package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/sync/errgroup"

	"tawdifak-listings/internal/errors"
	"tawdifak-listings/internal/listing"
	"tawdifak-listings/internal/models"
	"tawdifak-listings/pkg/cache"
	"tawdifak-listings/pkg/logger"
)

var mobileUserAgent = regexp.MustCompile(`(?i)Mobi|Android|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

// IsMobileUserAgent reports whether ua looks like a phone or tablet browser.
func IsMobileUserAgent(ua string) bool {
	return mobileUserAgent.MatchString(ua)
}

// homeCounts is how many items each home section shows.
type homeCounts struct {
	jobOffers    int
	jobSeekers   int
	competitions int
	immigration  int
	testimonials int
}

var (
	mobileHome  = homeCounts{jobOffers: 4, jobSeekers: 2, competitions: 2, immigration: 4, testimonials: 1}
	desktopHome = homeCounts{jobOffers: 8, jobSeekers: 4, competitions: 4, immigration: 8, testimonials: 4}
)

// HomeService assembles the home page feed and keeps it in a process-wide
// TTL cache, one entry per device class.
type HomeService struct {
	src   Sources
	store *cache.MemoryStore
	cache *cache.Guarded
}

func NewHomeService(src Sources, ttl time.Duration, opts ...cache.MemoryOption) *HomeService {
	store := cache.NewMemoryStore(ttl, opts...)
	return &HomeService{
		src:   src,
		store: store,
		cache: cache.NewGuarded(store),
	}
}

// Feed returns the home feed for the device class, from cache when fresh.
func (h *HomeService) Feed(ctx context.Context, mobile bool) (*models.HomeFeed, error) {
	key := cache.HomeKey(mobile)
	if entry, ok := h.cache.Get(ctx, key); ok {
		var feed models.HomeFeed
		if err := entry.DecodeItems(&feed); err == nil {
			return &feed, nil
		}
		logger.GlobalLogger.Warnf("discarding unreadable home cache entry %s", key)
	}

	feed, err := h.build(ctx, mobile)
	if err != nil {
		return nil, err
	}

	entry, err := cache.NewEntry(feed, 1, false, 0)
	if err != nil {
		logger.GlobalLogger.Errorf("failed to encode home feed: %v", err)
		return feed, nil
	}
	h.cache.Set(ctx, key, entry)
	return feed, nil
}

// ClearHome drops both cached feeds.
func (h *HomeService) ClearHome(ctx context.Context) {
	h.cache.Clear(ctx)
}

// Sweep removes expired feeds from memory.
func (h *HomeService) Sweep() int {
	return h.store.Sweep()
}

func (h *HomeService) build(ctx context.Context, mobile bool) (*models.HomeFeed, error) {
	counts := desktopHome
	if mobile {
		counts = mobileHome
	}

	var (
		offers       listing.Result[models.Job]
		seekers      listing.Result[models.Job]
		competitions listing.Result[models.Competition]
		immigration  listing.Result[models.ImmigrationPost]
		testimonials listing.Result[models.Testimonial]
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		offers, err = section(ctx, "job offers", h.src.JobOffers, counts.jobOffers)
		return err
	})
	g.Go(func() (err error) {
		seekers, err = section(ctx, "job seekers", h.src.JobSeekers, counts.jobSeekers)
		return err
	})
	g.Go(func() (err error) {
		competitions, err = section(ctx, "competitions", h.src.Competitions, counts.competitions)
		return err
	})
	g.Go(func() (err error) {
		immigration, err = section(ctx, "immigration", h.src.Immigration, counts.immigration)
		return err
	})
	g.Go(func() (err error) {
		testimonials, err = section(ctx, "testimonials", h.src.Testimonials, counts.testimonials)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrUnavailable, err)
	}

	return &models.HomeFeed{
		Mobile:           mobile,
		JobOffers:        offers.Items,
		JobSeekers:       seekers.Items,
		Competitions:     competitions.Items,
		ImmigrationPosts: immigration.Items,
		Testimonials:     testimonials.Items,
		Stats: models.HomeStats{
			Jobs:         offers.TotalCount,
			Competitions: competitions.TotalCount,
			Immigration:  immigration.TotalCount,
			Seekers:      seekers.TotalCount,
		},
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// section fetches the first count items of one source.
func section[T any](ctx context.Context, name string, fetch listing.FetchFunc[T], count int) (listing.Result[T], error) {
	res, err := fetch(ctx, listing.Query{Page: 1}, 1, count)
	if err != nil {
		return res, fmt.Errorf("home %s: %w", name, err)
	}
	if len(res.Items) > count {
		res.Items = res.Items[:count]
	}
	if res.Items == nil {
		res.Items = []T{}
	}
	return res, nil
}
