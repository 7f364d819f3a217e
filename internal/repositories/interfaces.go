package repositories

import (
	"context"

	"tawdifak-listings/internal/models"
)

// PageRepository serves one page of a listing source, newest first, and the
// total number of documents matching the filter.
type PageRepository[T any] interface {
	FindPage(ctx context.Context, filter ListingFilter, page, limit int) ([]T, int64, error)
	Count(ctx context.Context, filter ListingFilter) (int64, error)
}

type (
	JobRepository         = PageRepository[models.Job]
	CompetitionRepository = PageRepository[models.Competition]
	ImmigrationRepository = PageRepository[models.ImmigrationPost]
	ArticleRepository     = PageRepository[models.Article]
	TestimonialRepository = PageRepository[models.Testimonial]
)
