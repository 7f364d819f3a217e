package database

import (
	"context"
	"fmt"
	"time"

	"tawdifak-listings/pkg/config"
	"tawdifak-listings/pkg/logger"
	"tawdifak-listings/pkg/metrics"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var MongoClient *mongo.Client
var DB *mongo.Database

// InitDB connects to MongoDB and selects the listings database.
func InitDB(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.Database.URI).
		SetConnectTimeout(10 * time.Second).
		SetMaxPoolSize(100).
		SetReadPreference(readpref.SecondaryPreferred())

	start := time.Now()
	client, err := mongo.Connect(ctx, clientOptions)
	metrics.MongoOperationDuration.WithLabelValues("connect", "").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("connect", "").Inc()
		logger.GlobalLogger.Errorf("failed to connect to MongoDB: %v", err)
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	start = time.Now()
	err = client.Ping(ctx, nil)
	metrics.MongoOperationDuration.WithLabelValues("ping", "").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("ping", "").Inc()
		client.Disconnect(ctx)
		logger.GlobalLogger.Errorf("failed to ping MongoDB: %v", err)
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoClient = client
	DB = client.Database(cfg.Database.DBName)

	logger.GlobalLogger.Printf("MongoDB connected, database %s", cfg.Database.DBName)
	return nil
}

// CloseDB disconnects the client, if any.
func CloseDB() {
	if MongoClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	start := time.Now()
	err := MongoClient.Disconnect(ctx)
	metrics.MongoOperationDuration.WithLabelValues("disconnect", "").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("disconnect", "").Inc()
		logger.GlobalLogger.Errorf("Error closing MongoDB: %v", err)
		return
	}
	logger.GlobalLogger.Println("MongoDB connection closed")
}
