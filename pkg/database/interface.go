package database

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// Database is what the repositories and the health check need from MongoDB.
type Database interface {
	Collection(name string) *mongo.Collection
	CreateListingIndexes(ctx context.Context) error
	Ping(ctx context.Context) error
}

type MongoDatabase struct {
	db *mongo.Database
}

func NewMongoDatabase(db *mongo.Database) *MongoDatabase {
	return &MongoDatabase{db: db}
}

func (m *MongoDatabase) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

func (m *MongoDatabase) CreateListingIndexes(ctx context.Context) error {
	return CreateListingIndexes(ctx, m.db)
}

func (m *MongoDatabase) Ping(ctx context.Context) error {
	return m.db.Client().Ping(ctx, nil)
}
