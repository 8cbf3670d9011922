package model

// User is a roster entry. The roster is fixed at startup; users are never
// created or removed at runtime.
type User struct {
	ID       string `json:"id" bson:"_id" validate:"required"`
	Name     string `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Timezone string `json:"timezone,omitempty" bson:"timezone,omitempty" validate:"omitempty,iana_tz"`
}
