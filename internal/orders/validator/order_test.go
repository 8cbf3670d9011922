package validator

import (
	"io"
	"testing"
	"time"

	"slotbook/pkg/logger"
)

func testValidator() *OrderValidator {
	return NewOrderValidator(logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard}))
}

func TestValidateSubmission(t *testing.T) {
	v := testValidator()

	instant, err := v.ValidateSubmission("jon", "2024-06-01T10:00:00+02:00")
	if err != nil {
		t.Fatalf("ValidateSubmission() error = %v", err)
	}
	want := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	if !instant.Equal(want) {
		t.Errorf("ValidateSubmission() instant = %v, want %v", instant, want)
	}
}

func TestValidateSubmissionFailures(t *testing.T) {
	v := testValidator()

	tests := []struct {
		name    string
		userID  string
		rawDate string
	}{
		{"missing user", "", "2024-06-01T10:00:00Z"},
		{"missing date", "jon", ""},
		{"not a timestamp", "jon", "next tuesday"},
		{"date only", "jon", "2024-06-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := v.ValidateSubmission(tt.userID, tt.rawDate); err == nil {
				t.Errorf("ValidateSubmission(%q, %q) error = nil, want failure", tt.userID, tt.rawDate)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	v := testValidator()

	for _, zone := range []string{"", "UTC", "Europe/Berlin", "America/Toronto"} {
		if err := v.ValidateTimezone(zone); err != nil {
			t.Errorf("ValidateTimezone(%q) error = %v", zone, err)
		}
	}

	for _, zone := range []string{"Mars/Olympus", "Berlin", "GMT+25"} {
		if err := v.ValidateTimezone(zone); err == nil {
			t.Errorf("ValidateTimezone(%q) error = nil, want failure", zone)
		}
	}
}
