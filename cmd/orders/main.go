package main

import (
	"context"

	"slotbook/internal/orders/handler"
	"slotbook/internal/orders/repository"
	"slotbook/internal/orders/service"
	"slotbook/internal/orders/validator"
	"slotbook/pkg/app"
	"slotbook/pkg/client"
	"slotbook/pkg/config"
	"slotbook/pkg/kafka"
	kafka_config "slotbook/pkg/kafka/config"

	"go.mongodb.org/mongo-driver/mongo"
)

const ServiceName = "orders"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Orders service")

	var mongoClient *client.MongoClient
	var orderRepo repository.OrderRepository
	if cfg.MongoURI != "" {
		mongoClient = client.NewMongoClient(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
		defer mongoClient.Disconnect(context.Background(), cfg.Log)

		repo, err := repository.NewMongoOrderRepository(cfg, mongoClient.Client)
		if err != nil {
			cfg.Log.Fatal("Failed to initialize order repository", "error", err)
		}
		orderRepo = repo
	} else {
		cfg.Log.Info("MONGO_URI not set, using in-memory order repository")
		orderRepo = repository.NewMemoryOrderRepository()
	}

	var publisher service.EventPublisher
	kafkaCfg := kafka_config.Load()
	if kafkaCfg.Enabled() {
		producer, err := kafka.NewProducer(kafkaCfg, cfg.OrderEventsTopic)
		if err != nil {
			cfg.Log.Fatal("Failed to initialize Kafka producer", "error", err)
		}
		defer producer.Close()
		publisher = producer
		cfg.Log.Info("Order event publishing enabled", "topic", cfg.OrderEventsTopic)
	} else {
		cfg.Log.Info("KAFKA_BROKERS not set, order event publishing disabled")
	}

	orderValidator := validator.NewOrderValidator(cfg.Log)
	orderService := service.NewOrderService(orderRepo, orderValidator, cfg, publisher)
	cfg.Log.Info("Order service initialized", "roster_size", len(cfg.Roster))

	var rawMongo *mongo.Client
	if mongoClient != nil {
		rawMongo = mongoClient.Client
	}

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewOrderHandler(orderService, cfg.Log),
		handler.NewHealthHandler(rawMongo, cfg.Log),
	)
	serverApp.Run()
}
