package booking

import (
	"fmt"
	"time"

	"slotbook/pkg/model"
	"slotbook/pkg/timeconv"
)

// SlotState is the derived state of the currently tracked slot. It is always
// computed from the order record, never stored.
type SlotState int

const (
	// SlotEmpty means no order exists yet for the selected instant.
	SlotEmpty SlotState = iota

	// SlotOpenWithOneOccupant means an order holds one of the two seats.
	SlotOpenWithOneOccupant

	// SlotClosed means both seats are taken.
	SlotClosed
)

func (s SlotState) String() string {
	switch s {
	case SlotOpenWithOneOccupant:
		return "open_with_one_occupant"
	case SlotClosed:
		return "closed"
	default:
		return "empty"
	}
}

func stateOf(order *model.Order) SlotState {
	switch {
	case order == nil:
		return SlotEmpty
	case order.Closed():
		return SlotClosed
	default:
		return SlotOpenWithOneOccupant
	}
}

// State is a point-in-time snapshot of the controller for rendering. All
// fields are copies; mutating a snapshot never touches the controller.
type State struct {
	CurrentUser          model.User
	SelectedInstant      *time.Time
	MinSelectableInstant *time.Time
	CurrentOrder         *model.Order
	StatusMessage        string
	ErrorMessage         string
	Slot                 SlotState
}

// composeStatus renders the status line for the given order as seen from the
// user's timezone. An empty slot has no status message.
func composeStatus(order *model.Order, zone string, min *time.Time) (string, error) {
	switch stateOf(order) {
	case SlotOpenWithOneOccupant:
		slot, err := timeconv.FormatSlot(order.OrderDate, zone)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Order has been initiated at %s, there is one empty seat left.", slot), nil

	case SlotClosed:
		slot, err := timeconv.FormatSlot(order.OrderDate, zone)
		if err != nil {
			return "", err
		}
		// The fresh minimum normally arrives right after closing; until it
		// does, the closed slot itself is the best date we can show.
		next := order.OrderDate
		if min != nil {
			next = *min
		}
		nextSlot, err := timeconv.FormatSlot(next, zone)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Order at %s is closed. The next available date is %s.", slot, nextSlot), nil

	default:
		return "", nil
	}
}
