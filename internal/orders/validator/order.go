package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"slotbook/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Submission is the shape of a POST /order/{userId}/{instant} request once
// the path parameters are extracted.
type Submission struct {
	UserID string `validate:"required"`
	Date   string `validate:"required"`
}

// AvailabilityQuery validates the optional timezone of GET /available-date.
type AvailabilityQuery struct {
	Timezone string `validate:"omitempty,iana_tz"`
}

type OrderValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewOrderValidator(log *logger.Logger) *OrderValidator {
	v := validator.New()

	if err := v.RegisterValidation("iana_tz", validateIANAZone); err != nil {
		log.Fatal("Failed to register 'iana_tz' validator", "error", err)
	}

	return &OrderValidator{
		validate: v,
		logger:   log,
	}
}

func validateIANAZone(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" {
		return true
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

// ValidateSubmission checks the raw path parameters and parses the instant.
func (v *OrderValidator) ValidateSubmission(userID, rawDate string) (time.Time, error) {
	sub := Submission{UserID: userID, Date: rawDate}
	if err := v.validate.Struct(sub); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return time.Time{}, v.translateValidationErrors(validationErrs)
		}
		return time.Time{}, err
	}

	instant, err := time.Parse(time.RFC3339, rawDate)
	if err != nil {
		return time.Time{}, ValidationErrors{
			ValidationError{
				Field:   "Date",
				Message: fmt.Sprintf("date must be an RFC 3339 instant, got: %s", rawDate),
			},
		}
	}
	return instant, nil
}

// ValidateTimezone checks an optional IANA zone identifier.
func (v *OrderValidator) ValidateTimezone(timezone string) error {
	query := AvailabilityQuery{Timezone: timezone}
	if err := v.validate.Struct(query); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *OrderValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "iana_tz":
			message = fmt.Sprintf("%s must be a valid IANA timezone identifier", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
