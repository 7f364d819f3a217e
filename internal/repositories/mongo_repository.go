package repositories

import (
	"context"
	"fmt"
	"time"

	"tawdifak-listings/internal/models"
	"tawdifak-listings/internal/utils"
	"tawdifak-listings/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepository[T any] struct {
	collection *mongo.Collection
	name       string
	fields     fieldMap
	base       bson.M
}

func newMongoRepository[T any](collection *mongo.Collection, fields fieldMap, base bson.M) *mongoRepository[T] {
	return &mongoRepository[T]{
		collection: collection,
		name:       collection.Name(),
		fields:     fields,
		base:       base,
	}
}

// NewJobRepository serves the jobs collection restricted to one post type:
// offers (seeking_worker) or seeker profiles (seeking_job).
func NewJobRepository(db database.Database, postType models.PostType) JobRepository {
	return newMongoRepository[models.Job](db.Collection(database.JobsCollection), jobFields, bson.M{"postType": postType})
}

func NewCompetitionRepository(db database.Database) CompetitionRepository {
	return newMongoRepository[models.Competition](db.Collection(database.CompetitionsCollection), competitionFields, nil)
}

func NewImmigrationRepository(db database.Database) ImmigrationRepository {
	return newMongoRepository[models.ImmigrationPost](db.Collection(database.ImmigrationCollection), immigrationFields, nil)
}

func NewArticleRepository(db database.Database) ArticleRepository {
	return newMongoRepository[models.Article](db.Collection(database.ArticlesCollection), articleFields, nil)
}

func NewTestimonialRepository(db database.Database) TestimonialRepository {
	return newMongoRepository[models.Testimonial](db.Collection(database.TestimonialsCollection), testimonialFields, nil)
}

func (r *mongoRepository[T]) Count(ctx context.Context, f ListingFilter) (int64, error) {
	start := time.Now()
	total, err := r.collection.CountDocuments(ctx, r.fields.build(f, r.base))
	utils.RecordMongoOperation("count_documents", r.name, start, err)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", r.name, err)
	}
	return total, nil
}

func (r *mongoRepository[T]) FindPage(ctx context.Context, f ListingFilter, page, limit int) ([]T, int64, error) {
	if page < 1 {
		page = 1
	}
	total, err := r.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	start := time.Now()
	cursor, err := r.collection.Find(ctx, r.fields.build(f, r.base), findOptions)
	utils.RecordMongoOperation("find", r.name, start, err)
	if err != nil {
		return nil, 0, fmt.Errorf("find %s: %w", r.name, err)
	}
	defer cursor.Close(ctx)

	items := []T{}
	start = time.Now()
	err = cursor.All(ctx, &items)
	utils.RecordMongoOperation("cursor_all", r.name, start, err)
	if err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", r.name, err)
	}
	return items, total, nil
}
