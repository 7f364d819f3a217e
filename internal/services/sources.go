package services

import (
	"context"

	"tawdifak-listings/internal/listing"
	"tawdifak-listings/internal/models"
	"tawdifak-listings/internal/repositories"
	"tawdifak-listings/internal/utils"
	"tawdifak-listings/pkg/database"
	"tawdifak-listings/pkg/dataapi"
)

// Sources are the data-access collaborators behind the listings and the home feed.
type Sources struct {
	JobOffers    listing.FetchFunc[models.Job]
	JobSeekers   listing.FetchFunc[models.Job]
	Competitions listing.FetchFunc[models.Competition]
	Immigration  listing.FetchFunc[models.ImmigrationPost]
	Articles     listing.FetchFunc[models.Article]
	Testimonials listing.FetchFunc[models.Testimonial]
}

// MongoSources reads the listing collections directly.
func MongoSources(db database.Database) Sources {
	return Sources{
		JobOffers:    fromRepository(repositories.NewJobRepository(db, models.PostSeekingWorker)),
		JobSeekers:   fromRepository(repositories.NewJobRepository(db, models.PostSeekingJob)),
		Competitions: fromRepository(repositories.NewCompetitionRepository(db)),
		Immigration:  fromRepository(repositories.NewImmigrationRepository(db)),
		Articles:     fromRepository(repositories.NewArticleRepository(db)),
		Testimonials: fromRepository(repositories.NewTestimonialRepository(db)),
	}
}

// APISources calls a remote data API.
func APISources(client *dataapi.Client) Sources {
	return Sources{
		JobOffers:    fromAPI[models.Job](client, "jobs", models.PostSeekingWorker),
		JobSeekers:   fromAPI[models.Job](client, "jobs", models.PostSeekingJob),
		Competitions: fromAPI[models.Competition](client, "competitions", ""),
		Immigration:  fromAPI[models.ImmigrationPost](client, "immigration", ""),
		Articles:     fromAPI[models.Article](client, "articles", ""),
		Testimonials: fromAPI[models.Testimonial](client, "testimonials", ""),
	}
}

func fromRepository[T any](repo repositories.PageRepository[T]) listing.FetchFunc[T] {
	return func(ctx context.Context, q listing.Query, page, limit int) (listing.Result[T], error) {
		items, total, err := repo.FindPage(ctx, repositories.ListingFilter{
			Search:   q.Search,
			Country:  q.Country,
			City:     q.City,
			Category: q.Category,
			WorkType: q.WorkType,
		}, page, limit)
		if err != nil {
			return listing.Result[T]{}, utils.WrapError(err, "find page %d", page)
		}
		return listing.Result[T]{Items: items, TotalCount: total}, nil
	}
}

func fromAPI[T any](client *dataapi.Client, resource string, postType models.PostType) listing.FetchFunc[T] {
	return func(ctx context.Context, q listing.Query, page, limit int) (listing.Result[T], error) {
		items, total, err := dataapi.FetchPage[T](ctx, client, resource, dataapi.PageParams{
			Search:   q.Search,
			Country:  q.Country,
			City:     q.City,
			Category: q.Category,
			WorkType: q.WorkType,
			PostType: string(postType),
			Page:     page,
			Limit:    limit,
		})
		if err != nil {
			return listing.Result[T]{}, utils.WrapError(err, "fetch %s page %d", resource, page)
		}
		return listing.Result[T]{Items: items, TotalCount: total}, nil
	}
}
