package booking

import (
	"errors"
	"fmt"
	"time"

	"slotbook/pkg/logger"
	"slotbook/pkg/model"

	"github.com/go-playground/validator/v10"
)

// Roster is the fixed set of users a session can act as. It is injected at
// construction so tests can supply doubles.
type Roster struct {
	users []model.User
	byID  map[string]model.User
}

func NewRoster(users []model.User, log *logger.Logger) (*Roster, error) {
	if len(users) == 0 {
		return nil, errors.New("roster cannot be empty")
	}

	v := validator.New()
	if err := v.RegisterValidation("iana_tz", validateIANAZone); err != nil {
		return nil, fmt.Errorf("failed to register 'iana_tz' validator: %w", err)
	}

	byID := make(map[string]model.User, len(users))
	for i, user := range users {
		if err := v.Struct(user); err != nil {
			return nil, fmt.Errorf("roster entry %d is invalid: %w", i, err)
		}
		if _, exists := byID[user.ID]; exists {
			return nil, fmt.Errorf("roster contains duplicate user id %q", user.ID)
		}
		byID[user.ID] = user
	}

	log.Info("Roster loaded", "users", len(users))

	return &Roster{
		users: users,
		byID:  byID,
	}, nil
}

func validateIANAZone(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" {
		return true
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

// Lookup returns the roster entry for the given id.
func (r *Roster) Lookup(id string) (model.User, bool) {
	user, ok := r.byID[id]
	return user, ok
}

// First returns the default user a fresh session starts as.
func (r *Roster) First() model.User {
	return r.users[0]
}

// Users returns the roster in declaration order.
func (r *Roster) Users() []model.User {
	return r.users
}
