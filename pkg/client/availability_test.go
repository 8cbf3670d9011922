package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNextAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/available-date" {
			t.Errorf("path = %q, want /available-date", r.URL.Path)
		}
		if got := r.URL.Query().Get("timezone"); got != "Europe/Berlin" {
			t.Errorf("timezone = %q, want Europe/Berlin", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"availableDate":"2024-06-01T10:00:00+02:00"}`))
	}))
	defer server.Close()

	availabilityClient := NewAvailabilityClient(server.URL, time.Second)
	got, err := availabilityClient.NextAvailable(context.Background(), "Europe/Berlin")
	if err != nil {
		t.Fatalf("NextAvailable() error = %v", err)
	}

	want := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("NextAvailable() = %v, want instant %v", got, want)
	}
}

func TestNextAvailableOmitsEmptyTimezone(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("query = %q, want none", r.URL.RawQuery)
		}
		w.Write([]byte(`{"availableDate":"2024-06-01T08:00:00Z"}`))
	}))
	defer server.Close()

	availabilityClient := NewAvailabilityClient(server.URL, time.Second)
	if _, err := availabilityClient.NextAvailable(context.Background(), ""); err != nil {
		t.Fatalf("NextAvailable() error = %v", err)
	}
}

func TestNextAvailableFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"message":"Internal server error"}`))
			},
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(`not json`))
			},
		},
		{
			name: "bad instant",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(`{"availableDate":"tomorrow"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			availabilityClient := NewAvailabilityClient(server.URL, time.Second)
			_, err := availabilityClient.NextAvailable(context.Background(), "")
			if !errors.Is(err, ErrAvailabilityUnavailable) {
				t.Errorf("NextAvailable() error = %v, want ErrAvailabilityUnavailable", err)
			}
		})
	}
}

func TestNextAvailableConnectionRefused(t *testing.T) {
	availabilityClient := NewAvailabilityClient("http://127.0.0.1:1", time.Second)

	_, err := availabilityClient.NextAvailable(context.Background(), "")
	if !errors.Is(err, ErrAvailabilityUnavailable) {
		t.Errorf("NextAvailable() error = %v, want ErrAvailabilityUnavailable", err)
	}
}
