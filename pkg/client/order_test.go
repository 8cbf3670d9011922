package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSubmitReturnsAffectedOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		if r.URL.Path != "/order/jon/2024-06-01T10:00:00Z" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"orders":[
			{"id":"o1","users":["tim","tom"],"orderDate":"2024-06-01T09:00:00Z"},
			{"id":"o2","users":["jon"],"orderDate":"2024-06-01T10:00:00Z"}
		]}`))
	}))
	defer server.Close()

	orderClient := NewOrderClient(server.URL, time.Second)
	order, err := orderClient.Submit(context.Background(), "jon", time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if order.ID != "o2" {
		t.Errorf("order.ID = %q, want the last listed order", order.ID)
	}
	if len(order.Users) != 1 || order.Users[0] != "jon" {
		t.Errorf("order.Users = %v, want [jon]", order.Users)
	}
}

func TestSubmitRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"This slot is already closed."}`))
	}))
	defer server.Close()

	orderClient := NewOrderClient(server.URL, time.Second)
	_, err := orderClient.Submit(context.Background(), "jon", time.Now())

	if !errors.Is(err, ErrOrderRejected) {
		t.Fatalf("Submit() error = %v, want ErrOrderRejected", err)
	}
	var rejection *Rejection
	if !errors.As(err, &rejection) {
		t.Fatalf("Submit() error = %T, want *Rejection", err)
	}
	if rejection.Message != "This slot is already closed." {
		t.Errorf("rejection.Message = %q", rejection.Message)
	}
}

func TestSubmitRejectionWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	orderClient := NewOrderClient(server.URL, time.Second)
	_, err := orderClient.Submit(context.Background(), "jon", time.Now())

	var rejection *Rejection
	if !errors.As(err, &rejection) {
		t.Fatalf("Submit() error = %T, want *Rejection", err)
	}
	if rejection.Message != "502 Bad Gateway" {
		t.Errorf("rejection.Message = %q, want the status text fallback", rejection.Message)
	}
}

func TestSubmitEmptyOrderList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"orders":[]}`))
	}))
	defer server.Close()

	orderClient := NewOrderClient(server.URL, time.Second)
	if _, err := orderClient.Submit(context.Background(), "jon", time.Now()); err == nil {
		t.Fatal("Submit() error = nil, want failure for an empty order list")
	}
}

func TestSubmitNetworkError(t *testing.T) {
	orderClient := NewOrderClient("http://127.0.0.1:1", time.Second)

	_, err := orderClient.Submit(context.Background(), "jon", time.Now())
	if err == nil {
		t.Fatal("Submit() error = nil, want failure")
	}
	if errors.Is(err, ErrOrderRejected) {
		t.Error("a transport failure must not look like a service rejection")
	}
}

func TestSubmitEscapesPathSegments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/order/user with space/2024-06-01T10:00:00+02:00" {
			t.Errorf("unescaped path = %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"orders":[{"id":"o1","users":["user with space"],"orderDate":"2024-06-01T08:00:00Z"}]}`))
	}))
	defer server.Close()

	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("LoadLocation() error = %v", err)
	}

	orderClient := NewOrderClient(server.URL, time.Second)
	instant := time.Date(2024, 6, 1, 10, 0, 0, 0, berlin)
	if _, err := orderClient.Submit(context.Background(), "user with space", instant); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
}
