package model

import (
	"slices"
	"time"
)

// Order is the authoritative record the order service returns for a slot.
// Users holds 1 or 2 occupant ids in submission order.
type Order struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	Users     []string  `json:"users" bson:"users" validate:"required,min=1,max=2,unique"`
	OrderDate time.Time `json:"orderDate" bson:"order_date" validate:"required"`
	CreatedAt time.Time `json:"createdAt,omitempty" bson:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" bson:"updated_at,omitempty"`
}

// HasUser reports whether the user already occupies a seat in this order.
func (o *Order) HasUser(userID string) bool {
	return slices.Contains(o.Users, userID)
}

// Closed reports whether both seats are taken.
func (o *Order) Closed() bool {
	return len(o.Users) >= 2
}

// Clone returns a deep copy so callers can hand out snapshots safely.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	cp := *o
	cp.Users = slices.Clone(o.Users)
	return &cp
}
