package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"slotbook/pkg/model"
)

// ErrOrderRejected marks a submission the service refused with a structured
// reason. The reason travels verbatim in Rejection.Message.
var ErrOrderRejected = errors.New("order submission rejected")

// Rejection carries the service's failure reason for display.
type Rejection struct {
	Message string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("order submission rejected: %s", r.Message)
}

func (r *Rejection) Unwrap() error {
	return ErrOrderRejected
}

// OrderClient submits orders against the order service. State mutation is the
// caller's responsibility; this client only returns the authoritative record.
type OrderClient struct {
	httpClient *HttpClient
}

func NewOrderClient(baseURL string, timeout time.Duration) *OrderClient {
	return &OrderClient{
		httpClient: NewHttpClient(baseURL, timeout),
	}
}

// Submit places an order for the user at the given instant and returns the
// resulting record: a fresh 1-occupant order or a completed 2-occupant one.
func (c *OrderClient) Submit(ctx context.Context, userID string, instant time.Time) (*model.Order, error) {
	path := "/order/" + url.PathEscape(userID) + "/" + url.PathEscape(instant.Format(time.RFC3339))

	resp, err := c.httpClient.POST(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to submit order: %w", err)
	}
	if !resp.OK() {
		return nil, &Rejection{Message: GetErrorMessage(resp)}
	}

	var body struct {
		Orders []*model.Order `json:"orders"`
	}
	if err := resp.DecodeJSON(&body); err != nil {
		return nil, fmt.Errorf("could not decode order response: %w", err)
	}
	if len(body.Orders) == 0 {
		return nil, fmt.Errorf("order service returned an empty order list")
	}

	// The service lists the affected order last.
	return body.Orders[len(body.Orders)-1], nil
}
