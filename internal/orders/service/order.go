package service

import (
	"context"
	"errors"
	"time"

	orderserrors "slotbook/internal/orders/errors"
	"slotbook/internal/orders/repository"
	"slotbook/internal/orders/validator"
	"slotbook/pkg/config"
	apperrors "slotbook/pkg/errors"
	"slotbook/pkg/kafka"
	"slotbook/pkg/model"
	"slotbook/pkg/timeconv"

	"github.com/google/uuid"
)

const (
	// slotCapacity is the number of seats per slot. Two occupants close a
	// slot; there is no oversubscription.
	slotCapacity = 2

	EventOrderInitiated = "order.initiated"
	EventOrderClosed    = "order.closed"
)

// EventPublisher pushes order lifecycle events to the event stream. A nil
// publisher disables publishing.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type OrderService interface {
	// NextAvailable returns the earliest bookable slot instant. The timezone
	// is validated but only affects how callers render the result; the
	// instant itself is canonical.
	NextAvailable(ctx context.Context, timezone string) (time.Time, error)

	// Place books a seat for the user at the given instant (an RFC 3339
	// string straight from the request path) and returns all orders with the
	// affected record last.
	Place(ctx context.Context, userID string, rawDate string) ([]*model.Order, error)

	List(ctx context.Context) ([]*model.Order, error)
}

type orderService struct {
	repo      repository.OrderRepository
	validator *validator.OrderValidator
	cfg       *config.Config
	publisher EventPublisher
	now       func() time.Time
}

func NewOrderService(
	repo repository.OrderRepository,
	orderValidator *validator.OrderValidator,
	cfg *config.Config,
	publisher EventPublisher,
) OrderService {
	return &orderService{
		repo:      repo,
		validator: orderValidator,
		cfg:       cfg,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *orderService) NextAvailable(ctx context.Context, timezone string) (time.Time, error) {
	if err := s.validator.ValidateTimezone(timezone); err != nil {
		s.cfg.Log.Warn("Availability request with invalid timezone", "timezone", timezone)
		return time.Time{}, apperrors.InvalidInput("Invalid timezone identifier: " + timezone)
	}

	base := timeconv.TruncateToHour(s.now().UTC()).Add(time.Hour)

	for i := 0; i < s.cfg.SlotScanHorizonHours; i++ {
		slot := base.Add(time.Duration(i) * time.Hour)

		order, err := s.repo.FindByDate(ctx, slot)
		if err != nil {
			if errors.Is(err, orderserrors.ErrNotFound) {
				return slot, nil
			}
			return time.Time{}, apperrors.Internal("Failed to look up slot", err)
		}
		if !order.Closed() {
			return slot, nil
		}
	}

	s.cfg.Log.Error("No available slot within horizon", "horizon_hours", s.cfg.SlotScanHorizonHours)
	return time.Time{}, apperrors.Conflict("No available date within the booking horizon.")
}

func (s *orderService) Place(ctx context.Context, userID string, rawDate string) ([]*model.Order, error) {
	instant, err := s.validator.ValidateSubmission(userID, rawDate)
	if err != nil {
		s.cfg.Log.Warn("Order submission validation failed", "user_id", userID, "error", err)
		return nil, apperrors.Validation("Invalid order submission", map[string]any{
			"error": err.Error(),
		})
	}

	if _, ok := s.rosterUser(userID); !ok {
		return nil, apperrors.NotFoundWithID("User", userID)
	}

	slot := timeconv.TruncateToHour(instant.UTC())
	if slot.Before(timeconv.TruncateToHour(s.now().UTC()).Add(time.Hour)) {
		return nil, apperrors.Validation("The selected date is no longer available.", map[string]any{
			"date": slot.Format(time.RFC3339),
		})
	}

	now := s.now().UTC()
	order, err := s.repo.FindByDate(ctx, slot)
	switch {
	case errors.Is(err, orderserrors.ErrNotFound):
		order = &model.Order{
			ID:        uuid.NewString(),
			Users:     []string{userID},
			OrderDate: slot,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.Insert(ctx, order); err != nil {
			return nil, apperrors.Internal("Failed to create order", err)
		}
		s.publishEvent(ctx, EventOrderInitiated, order)

	case err != nil:
		return nil, apperrors.Internal("Failed to look up order", err)

	case len(order.Users) >= slotCapacity:
		return nil, apperrors.Conflict("This slot is already closed.")

	case order.HasUser(userID):
		return nil, apperrors.Conflict("You have already taken a seat in this order.")

	default:
		order.Users = append(order.Users, userID)
		order.UpdatedAt = now
		if err := s.repo.Update(ctx, order); err != nil {
			return nil, apperrors.Internal("Failed to update order", err)
		}
		s.publishEvent(ctx, EventOrderClosed, order)
	}

	s.cfg.Log.Info("Order placed",
		"user_id", userID,
		"order_date", slot,
		"occupants", len(order.Users),
	)

	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to list orders", err)
	}
	return orders, nil
}

func (s *orderService) List(ctx context.Context) ([]*model.Order, error) {
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to list orders", err)
	}
	return orders, nil
}

func (s *orderService) rosterUser(userID string) (model.User, bool) {
	for _, user := range s.cfg.Roster {
		if user.ID == userID {
			return user, true
		}
	}
	return model.User{}, false
}

type orderEvent struct {
	OrderID   string    `json:"orderId"`
	Users     []string  `json:"users"`
	OrderDate time.Time `json:"orderDate"`
	Event     string    `json:"event"`
}

// publishEvent is best effort: a broker outage must not fail the booking.
func (s *orderService) publishEvent(ctx context.Context, eventType string, order *model.Order) {
	if s.publisher == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(order.OrderDate.Format(time.RFC3339)).
		WithValue(orderEvent{
			OrderID:   order.ID,
			Users:     order.Users,
			OrderDate: order.OrderDate,
			Event:     eventType,
		}).
		WithEventType(eventType).
		WithSource("orders").
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish order event",
			"event_type", eventType,
			"order_id", order.ID,
			"error", err,
		)
	}
}
