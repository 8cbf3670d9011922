package booking

import (
	"testing"
	"time"

	"slotbook/pkg/model"
)

func TestStateOf(t *testing.T) {
	slot := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		order *model.Order
		want  SlotState
	}{
		{"no order", nil, SlotEmpty},
		{"one occupant", &model.Order{Users: []string{"jon"}, OrderDate: slot}, SlotOpenWithOneOccupant},
		{"two occupants", &model.Order{Users: []string{"jon", "tim"}, OrderDate: slot}, SlotClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stateOf(tt.order); got != tt.want {
				t.Errorf("stateOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComposeStatus(t *testing.T) {
	slot := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	next := slot.Add(time.Hour)

	tests := []struct {
		name  string
		order *model.Order
		zone  string
		min   *time.Time
		want  string
	}{
		{
			name: "empty slot has no status",
			zone: "Europe/Berlin",
			want: "",
		},
		{
			name:  "one occupant in Berlin",
			order: &model.Order{Users: []string{"jon"}, OrderDate: slot},
			zone:  "Europe/Berlin",
			want:  "Order has been initiated at 10-03-2024 10:00, there is one empty seat left.",
		},
		{
			name:  "one occupant in Moscow",
			order: &model.Order{Users: []string{"jon"}, OrderDate: slot},
			zone:  "Europe/Moscow",
			want:  "Order has been initiated at 10-03-2024 12:00, there is one empty seat left.",
		},
		{
			name:  "closed with fresh minimum",
			order: &model.Order{Users: []string{"jon", "tim"}, OrderDate: slot},
			zone:  "Europe/Berlin",
			min:   &next,
			want:  "Order at 10-03-2024 10:00 is closed. The next available date is 10-03-2024 11:00.",
		},
		{
			name:  "closed before the minimum arrives",
			order: &model.Order{Users: []string{"jon", "tim"}, OrderDate: slot},
			zone:  "Europe/Berlin",
			want:  "Order at 10-03-2024 10:00 is closed. The next available date is 10-03-2024 10:00.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := composeStatus(tt.order, tt.zone, tt.min)
			if err != nil {
				t.Fatalf("composeStatus() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("composeStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComposeStatusBadZone(t *testing.T) {
	order := &model.Order{Users: []string{"jon"}, OrderDate: time.Now()}
	if _, err := composeStatus(order, "Mars/Olympus", nil); err == nil {
		t.Fatal("composeStatus() error = nil, want failure for an unknown zone")
	}
}

func TestRosterValidation(t *testing.T) {
	log := testLogger()

	if _, err := NewRoster(nil, log); err == nil {
		t.Error("NewRoster(empty) error = nil, want failure")
	}

	_, err := NewRoster([]model.User{
		{ID: "jon", Name: "Jon Doe", Timezone: "Europe/Berlin"},
		{ID: "jon", Name: "Imposter", Timezone: "Europe/Berlin"},
	}, log)
	if err == nil {
		t.Error("NewRoster(duplicate ids) error = nil, want failure")
	}

	_, err = NewRoster([]model.User{
		{ID: "jon", Name: "Jon Doe", Timezone: "Not/AZone"},
	}, log)
	if err == nil {
		t.Error("NewRoster(bad timezone) error = nil, want failure")
	}

	roster, err := NewRoster([]model.User{
		{ID: "jon", Name: "Jon Doe"},
	}, log)
	if err != nil {
		t.Fatalf("NewRoster(no timezone) error = %v, empty zone means local time", err)
	}
	if roster.First().ID != "jon" {
		t.Errorf("First().ID = %q, want jon", roster.First().ID)
	}
}
