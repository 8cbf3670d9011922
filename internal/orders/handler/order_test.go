package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "slotbook/pkg/errors"
	"slotbook/pkg/logger"
	"slotbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockOrderService struct {
	nextAvailableFunc func(ctx context.Context, timezone string) (time.Time, error)
	placeFunc         func(ctx context.Context, userID, rawDate string) ([]*model.Order, error)
	listFunc          func(ctx context.Context) ([]*model.Order, error)
}

func (m *mockOrderService) NextAvailable(ctx context.Context, timezone string) (time.Time, error) {
	return m.nextAvailableFunc(ctx, timezone)
}

func (m *mockOrderService) Place(ctx context.Context, userID, rawDate string) ([]*model.Order, error) {
	return m.placeFunc(ctx, userID, rawDate)
}

func (m *mockOrderService) List(ctx context.Context) ([]*model.Order, error) {
	return m.listFunc(ctx)
}

func newTestRouter(service *mockOrderService) *httprouter.Router {
	log := logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})
	router := httprouter.New()
	NewOrderHandler(service, log).RegisterRoutes(router)
	return router
}

func TestAvailableDateRendersInZone(t *testing.T) {
	service := &mockOrderService{
		nextAvailableFunc: func(_ context.Context, timezone string) (time.Time, error) {
			if timezone != "Europe/Berlin" {
				t.Errorf("timezone = %q, want Europe/Berlin", timezone)
			}
			return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC), nil
		},
	}
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/available-date?timezone=Europe%2FBerlin", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		AvailableDate string `json:"availableDate"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.AvailableDate != "2024-06-01T10:00:00+02:00" {
		t.Errorf("availableDate = %q, want the Berlin rendering", body.AvailableDate)
	}
}

func TestAvailableDateInvalidTimezone(t *testing.T) {
	service := &mockOrderService{
		nextAvailableFunc: func(_ context.Context, timezone string) (time.Time, error) {
			return time.Time{}, apperrors.InvalidInput("Invalid timezone identifier: " + timezone)
		},
	}
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/available-date?timezone=Nowhere", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Message != "Invalid timezone identifier: Nowhere" {
		t.Errorf("message = %q", body.Message)
	}
}

func TestSubmitPassesPathParams(t *testing.T) {
	slot := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	service := &mockOrderService{
		placeFunc: func(_ context.Context, userID, rawDate string) ([]*model.Order, error) {
			if userID != "jon" {
				t.Errorf("userID = %q, want jon", userID)
			}
			if rawDate != "2024-06-01T10:00:00Z" {
				t.Errorf("rawDate = %q", rawDate)
			}
			return []*model.Order{
				{ID: "o1", Users: []string{"jon"}, OrderDate: slot},
			}, nil
		},
	}
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodPost, "/order/jon/2024-06-01T10:00:00Z", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}

	var body struct {
		Orders []*model.Order `json:"orders"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Orders) != 1 || body.Orders[0].ID != "o1" {
		t.Errorf("orders = %+v", body.Orders)
	}
}

func TestSubmitConflictBody(t *testing.T) {
	service := &mockOrderService{
		placeFunc: func(_ context.Context, _, _ string) ([]*model.Order, error) {
			return nil, apperrors.Conflict("This slot is already closed.")
		},
	}
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodPost, "/order/jon/2024-06-01T10:00:00Z", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Message != "This slot is already closed." {
		t.Errorf("message = %q", body.Message)
	}
}

func TestSubmitInternalErrorIsMasked(t *testing.T) {
	service := &mockOrderService{
		placeFunc: func(_ context.Context, _, _ string) ([]*model.Order, error) {
			return nil, apperrors.Internal("Failed to create order", context.DeadlineExceeded)
		},
	}
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodPost, "/order/jon/2024-06-01T10:00:00Z", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Message != "Internal server error" {
		t.Errorf("message = %q, internals must not leak", body.Message)
	}
}

func TestListOrders(t *testing.T) {
	service := &mockOrderService{
		listFunc: func(_ context.Context) ([]*model.Order, error) {
			return []*model.Order{
				{ID: "o1", Users: []string{"jon"}, OrderDate: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)},
				{ID: "o2", Users: []string{"tim", "tom"}, OrderDate: time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC)},
			}, nil
		},
	}
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		Orders []*model.Order `json:"orders"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Orders) != 2 {
		t.Errorf("orders = %d, want 2", len(body.Orders))
	}
}
