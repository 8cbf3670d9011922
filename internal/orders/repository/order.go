package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	orderserrors "slotbook/internal/orders/errors"
	"slotbook/pkg/model"
)

// OrderRepository stores slot orders keyed by their canonical instant.
type OrderRepository interface {
	// FindByDate returns the order occupying the given slot instant, or
	// ErrNotFound.
	FindByDate(ctx context.Context, instant time.Time) (*model.Order, error)

	// FindAll returns all orders, least recently updated first, so the most
	// recently affected record is always last.
	FindAll(ctx context.Context) ([]*model.Order, error)

	Insert(ctx context.Context, order *model.Order) error
	Update(ctx context.Context, order *model.Order) error
}

// memoryOrderRepository is the default store: good for the demo deployment
// and for tests. Set MONGO_URI to use the persistent repository instead.
type memoryOrderRepository struct {
	mu     sync.RWMutex
	byDate map[int64]*model.Order
}

func NewMemoryOrderRepository() OrderRepository {
	return &memoryOrderRepository{
		byDate: make(map[int64]*model.Order),
	}
}

func (r *memoryOrderRepository) FindByDate(_ context.Context, instant time.Time) (*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.byDate[instant.UTC().Unix()]
	if !ok {
		return nil, orderserrors.ErrNotFound
	}
	return order.Clone(), nil
}

func (r *memoryOrderRepository) FindAll(_ context.Context) ([]*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]*model.Order, 0, len(r.byDate))
	for _, order := range r.byDate {
		orders = append(orders, order.Clone())
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].UpdatedAt.Before(orders[j].UpdatedAt)
	})
	return orders, nil
}

func (r *memoryOrderRepository) Insert(_ context.Context, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byDate[order.OrderDate.UTC().Unix()] = order.Clone()
	return nil
}

func (r *memoryOrderRepository) Update(_ context.Context, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := order.OrderDate.UTC().Unix()
	if _, ok := r.byDate[key]; !ok {
		return orderserrors.ErrNotFound
	}
	r.byDate[key] = order.Clone()
	return nil
}
