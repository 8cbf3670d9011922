package client

import (
	"context"
	"time"

	"slotbook/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoClient struct {
	Client *mongo.Client
}

func NewMongoClient(log *logger.Logger, mongoURI string, connTimeout time.Duration) *MongoClient {
	ctx, cancel := context.WithTimeout(context.Background(), connTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB", "error", err)
	}

	log.Info("Successfully connected to MongoDB")
	return &MongoClient{Client: client}
}

func (c *MongoClient) Disconnect(ctx context.Context, log *logger.Logger) {
	if c == nil || c.Client == nil {
		return
	}
	if err := c.Client.Disconnect(ctx); err != nil {
		log.Error("Failed to disconnect from MongoDB", "error", err)
	}
}
