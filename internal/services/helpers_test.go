package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"tawdifak-listings/internal/listing"
	"tawdifak-listings/internal/models"
)

var errBackend = errors.New("backend unavailable")

// fakeFetch serves total items built by mk. It fails while fail is set.
type fakeFetch[T any] struct {
	total int
	mk    func(q listing.Query, i int) T
	calls atomic.Int32
	fail  atomic.Bool
}

func (f *fakeFetch[T]) fetch(_ context.Context, q listing.Query, page, limit int) (listing.Result[T], error) {
	f.calls.Add(1)
	if f.fail.Load() {
		return listing.Result[T]{}, errBackend
	}
	var items []T
	for i := (page - 1) * limit; i < min(page*limit, f.total); i++ {
		items = append(items, f.mk(q, i))
	}
	return listing.Result[T]{Items: items, TotalCount: int64(f.total)}, nil
}

type fakeSources struct {
	offers       *fakeFetch[models.Job]
	seekers      *fakeFetch[models.Job]
	competitions *fakeFetch[models.Competition]
	immigration  *fakeFetch[models.ImmigrationPost]
	articles     *fakeFetch[models.Article]
	testimonials *fakeFetch[models.Testimonial]
}

func newFakeSources(total int) *fakeSources {
	job := func(q listing.Query, i int) models.Job {
		return models.Job{Title: fmt.Sprintf("%s %d", q.Search, i), PostType: models.PostSeekingWorker}
	}
	return &fakeSources{
		offers:  &fakeFetch[models.Job]{total: total, mk: job},
		seekers: &fakeFetch[models.Job]{total: total, mk: job},
		competitions: &fakeFetch[models.Competition]{total: total, mk: func(_ listing.Query, i int) models.Competition {
			return models.Competition{Title: fmt.Sprintf("competition %d", i)}
		}},
		immigration: &fakeFetch[models.ImmigrationPost]{total: total, mk: func(_ listing.Query, i int) models.ImmigrationPost {
			return models.ImmigrationPost{Title: fmt.Sprintf("program %d", i)}
		}},
		articles: &fakeFetch[models.Article]{total: total, mk: func(_ listing.Query, i int) models.Article {
			return models.Article{Title: fmt.Sprintf("article %d", i)}
		}},
		testimonials: &fakeFetch[models.Testimonial]{total: total, mk: func(_ listing.Query, i int) models.Testimonial {
			return models.Testimonial{Name: fmt.Sprintf("user %d", i)}
		}},
	}
}

func (f *fakeSources) sources() Sources {
	return Sources{
		JobOffers:    f.offers.fetch,
		JobSeekers:   f.seekers.fetch,
		Competitions: f.competitions.fetch,
		Immigration:  f.immigration.fetch,
		Articles:     f.articles.fetch,
		Testimonials: f.testimonials.fetch,
	}
}
