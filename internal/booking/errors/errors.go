package errors

import "errors"

var (
	ErrUnknownUser = errors.New("user is not on the roster")

	ErrNoInstantSelected = errors.New("no slot instant selected")

	ErrBeforeMinimum = errors.New("selected instant is before the minimum available date")

	// ErrSlotFixed rejects manual date picks while a pending or closed order
	// already fixes the slot instant.
	ErrSlotFixed = errors.New("slot instant is fixed by an existing order")

	// ErrDuplicateSubmission guards against the same user re-submitting into
	// their own pending single-occupant order.
	ErrDuplicateSubmission = errors.New("user already occupies a seat in the pending order")
)
