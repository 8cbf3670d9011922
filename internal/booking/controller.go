package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	bookingerrors "slotbook/internal/booking/errors"
	"slotbook/pkg/client"
	"slotbook/pkg/logger"
	"slotbook/pkg/model"
	"slotbook/pkg/timeconv"
)

// AvailabilitySource fetches the next bookable instant for a timezone.
type AvailabilitySource interface {
	NextAvailable(ctx context.Context, timezone string) (time.Time, error)
}

// OrderSubmitter places an order and returns the authoritative record.
type OrderSubmitter interface {
	Submit(ctx context.Context, userID string, instant time.Time) (*model.Order, error)
}

// Controller is the booking state machine. It owns the current user, the
// selected and minimum-selectable instants, the current order, and the derived
// status/error messages. Every failure is recovered here and folded into the
// state; nothing escapes to the presentation layer as a raw error it has to
// interpret.
//
// Availability responses carry the generation captured at request time; a
// response whose generation is stale (a user switch or submission happened
// meanwhile) is discarded instead of overwriting fresher state.
type Controller struct {
	availability AvailabilitySource
	orders       OrderSubmitter
	roster       *Roster
	log          *logger.Logger

	mu       sync.Mutex
	gen      uint64
	current  model.User
	selected *time.Time
	min      *time.Time
	order    *model.Order
	status   string
	errMsg   string
}

func NewController(roster *Roster, availability AvailabilitySource, orders OrderSubmitter, log *logger.Logger) *Controller {
	return &Controller{
		availability: availability,
		orders:       orders,
		roster:       roster,
		log:          log,
		current:      roster.First(),
	}
}

// Start seeds the selection with the service's current minimum, like the
// initial fetch a fresh session performs. Failure is soft.
func (c *Controller) Start(ctx context.Context) error {
	return c.RefreshAvailability(ctx)
}

// SelectUser switches the acting user. The canonical selected instant is
// unchanged (display conversion happens at render time); the order, if any,
// is kept. A fresh availability fetch is triggered for the new timezone, and
// any in-flight fetch for the previous user is superseded.
func (c *Controller) SelectUser(ctx context.Context, userID string) error {
	c.mu.Lock()
	user, ok := c.roster.Lookup(userID)
	if !ok {
		c.mu.Unlock()
		return bookingerrors.ErrUnknownUser
	}

	c.current = user
	c.gen++
	c.recomputeStatusLocked()
	c.mu.Unlock()

	if err := c.RefreshAvailability(ctx); err != nil {
		return err
	}
	return nil
}

// RefreshAvailability fetches the next available instant for the current
// user's timezone and applies it unless a newer event superseded the request.
// Failures keep the prior selection untouched and surface no user-visible
// error; they are logged and returned for callers that care.
func (c *Controller) RefreshAvailability(ctx context.Context) error {
	c.mu.Lock()
	gen := c.gen
	timezone := c.current.Timezone
	c.mu.Unlock()

	instant, err := c.availability.NextAvailable(ctx, timezone)
	if err != nil {
		c.log.Warn("Availability refresh failed, keeping prior selection",
			"timezone", timezone,
			"error", err,
		)
		return err
	}

	c.applyAvailability(gen, instant)
	return nil
}

// applyAvailability installs a fetched minimum. The minimum always moves; the
// selected instant only follows it while no pending single-occupant order
// fixes the slot (the instant being confirmed must not shift underneath the
// second user).
func (c *Controller) applyAvailability(gen uint64, instant time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		c.log.Debug("Discarding stale availability response",
			"response_generation", gen,
			"current_generation", c.gen,
		)
		return
	}

	minInstant := instant
	c.min = &minInstant

	if stateOf(c.order) != SlotOpenWithOneOccupant {
		selected := instant
		c.selected = &selected
	}

	c.recomputeStatusLocked()
}

// SelectInstant is the manual date pick. It is only legal while no order
// fixes the slot, and never below the advertised minimum.
func (c *Controller) SelectInstant(instant time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if stateOf(c.order) != SlotEmpty {
		return bookingerrors.ErrSlotFixed
	}
	if c.min != nil && instant.Before(*c.min) {
		return bookingerrors.ErrBeforeMinimum
	}

	selected := timeconv.TruncateToHour(instant)
	c.selected = &selected
	return nil
}

// Submit places an order for the current user at the selected instant.
// Success installs the returned record, clears the error message and triggers
// an availability refresh (the submission may have closed the slot). Failure
// surfaces the service's reason verbatim and leaves the order unchanged.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.selected == nil {
		c.mu.Unlock()
		return bookingerrors.ErrNoInstantSelected
	}
	if c.order != nil && !c.order.Closed() && c.order.HasUser(c.current.ID) {
		// The action is disabled in the UI for this case; defend anyway.
		c.status = ""
		c.errMsg = "You have already taken a seat in this order."
		c.mu.Unlock()
		return bookingerrors.ErrDuplicateSubmission
	}
	userID := c.current.ID
	instant := *c.selected
	c.mu.Unlock()

	order, err := c.orders.Submit(ctx, userID, instant)

	c.mu.Lock()
	if err != nil {
		c.log.Error("Order submission failed", "user_id", userID, "error", err)
		c.status = ""
		var rejection *client.Rejection
		if errors.As(err, &rejection) {
			c.errMsg = rejection.Message
		} else {
			c.errMsg = "Order submission failed. Please try again."
		}
		c.mu.Unlock()
		return err
	}

	c.order = order
	c.errMsg = ""
	c.gen++
	c.recomputeStatusLocked()
	c.log.Info("Order submitted",
		"user_id", userID,
		"order_date", order.OrderDate,
		"occupants", len(order.Users),
	)
	c.mu.Unlock()

	// A second occupant may have just closed the slot; fetch the new minimum.
	// Soft failure: the submission itself succeeded.
	_ = c.RefreshAvailability(ctx)
	return nil
}

// DismissStatus clears the status line. Purely presentational.
func (c *Controller) DismissStatus() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = ""
}

// DismissError clears the error line and lets the status line reappear.
func (c *Controller) DismissError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errMsg = ""
	c.recomputeStatusLocked()
}

// Snapshot returns a copy of the current booking state for rendering.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return State{
		CurrentUser:          c.current,
		SelectedInstant:      copyInstant(c.selected),
		MinSelectableInstant: copyInstant(c.min),
		CurrentOrder:         c.order.Clone(),
		StatusMessage:        c.status,
		ErrorMessage:         c.errMsg,
		Slot:                 stateOf(c.order),
	}
}

// recomputeStatusLocked rerenders the status line. At most one of status and
// error is ever shown; while an error is displayed the status stays blank.
func (c *Controller) recomputeStatusLocked() {
	if c.errMsg != "" {
		c.status = ""
		return
	}
	status, err := composeStatus(c.order, c.current.Timezone, c.min)
	if err != nil {
		// Roster timezones are validated up front, so this only fires if the
		// tz database changes underneath us.
		c.log.Error("Failed to render status message", "timezone", c.current.Timezone, "error", err)
		return
	}
	c.status = status
}

func copyInstant(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}
