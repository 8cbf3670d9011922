package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	orderserrors "slotbook/internal/orders/errors"
	"slotbook/pkg/config"
	"slotbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "orders"

type mongoOrderRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoOrderRepository(cfg *config.Config, mongoClient *mongo.Client) (OrderRepository, error) {
	collection := mongoClient.Database(cfg.MongoDatabaseName).Collection(CollectionName)

	// One order per slot instant.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "order_date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order_date index: %w", err)
	}

	return &mongoOrderRepository{
		cfg:        cfg,
		collection: collection,
	}, nil
}

func (r *mongoOrderRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoOrderRepository) FindByDate(ctx context.Context, instant time.Time) (*model.Order, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var order model.Order
	err := r.collection.FindOne(ctx, bson.M{"order_date": instant.UTC()}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, orderserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return &order, nil
}

func (r *mongoOrderRepository) FindAll(ctx context.Context) ([]*model.Order, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*model.Order
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

func (r *mongoOrderRepository) Insert(ctx context.Context, order *model.Order) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *mongoOrderRepository) Update(ctx context.Context, order *model.Order) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": order.ID}, order)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if result.MatchedCount == 0 {
		return orderserrors.ErrNotFound
	}
	return nil
}
