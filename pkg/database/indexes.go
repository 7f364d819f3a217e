package database

import (
	"context"
	"time"

	"tawdifak-listings/pkg/logger"
	"tawdifak-listings/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names of the listing sources.
const (
	JobsCollection         = "jobs"
	CompetitionsCollection = "competitions"
	ImmigrationCollection  = "immigration_posts"
	ArticlesCollection     = "articles"
	TestimonialsCollection = "testimonials"
)

// listingIndexes returns the indexes each collection needs for filtered,
// newest-first page queries.
func listingIndexes() map[string][]mongo.IndexModel {
	newest := bson.D{{Key: "createdAt", Value: -1}}
	return map[string][]mongo.IndexModel{
		JobsCollection: {
			{Keys: bson.D{{Key: "postType", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "postType", Value: 1}, {Key: "country", Value: 1}, {Key: "city", Value: 1}}},
			{Keys: bson.D{{Key: "categoryId", Value: 1}}},
			{Keys: bson.D{{Key: "workType", Value: 1}}},
		},
		CompetitionsCollection: {{Keys: newest}},
		ImmigrationCollection: {
			{Keys: newest},
			{Keys: bson.D{{Key: "targetCountry", Value: 1}}},
		},
		ArticlesCollection:     {{Keys: newest}},
		TestimonialsCollection: {{Keys: newest}},
	}
}

// CreateListingIndexes creates the listing indexes; existing ones are left alone.
func CreateListingIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for name, models := range listingIndexes() {
		start := time.Now()
		_, err := db.Collection(name).Indexes().CreateMany(ctx, models)
		metrics.MongoOperationDuration.WithLabelValues("create_indexes", name).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.MongoErrorsTotal.WithLabelValues("create_indexes", name).Inc()
			logger.GlobalLogger.Errorf("Failed to create indexes on %s: %v", name, err)
			return err
		}
	}

	logger.GlobalLogger.Println("MongoDB indexes created successfully.")
	return nil
}
