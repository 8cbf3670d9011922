package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"
)

// ErrAvailabilityUnavailable indicates the availability fetch failed for any
// reason (network, non-2xx status, unparseable body). Callers treat it as
// soft: log it and keep the previous selection.
var ErrAvailabilityUnavailable = errors.New("availability service unavailable")

// AvailabilityClient fetches the next bookable slot instant from the order
// service. It is a pure read with no local side effects.
type AvailabilityClient struct {
	httpClient *HttpClient
}

func NewAvailabilityClient(baseURL string, timeout time.Duration) *AvailabilityClient {
	return &AvailabilityClient{
		httpClient: NewHttpClient(baseURL, timeout),
	}
}

// NextAvailable returns the earliest instant the service currently considers
// bookable for the given IANA zone. An empty timezone lets the service fall
// back to its own local zone.
func (c *AvailabilityClient) NextAvailable(ctx context.Context, timezone string) (time.Time, error) {
	path := "/available-date"
	if timezone != "" {
		q := url.Values{}
		q.Set("timezone", timezone)
		path += "?" + q.Encode()
	}

	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrAvailabilityUnavailable, err)
	}
	if !resp.OK() {
		return time.Time{}, fmt.Errorf("%w: %s", ErrAvailabilityUnavailable, GetErrorMessage(resp))
	}

	var body struct {
		AvailableDate string `json:"availableDate"`
	}
	if err := resp.DecodeJSON(&body); err != nil {
		return time.Time{}, fmt.Errorf("%w: could not decode response: %v", ErrAvailabilityUnavailable, err)
	}

	instant, err := time.Parse(time.RFC3339, body.AvailableDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad availableDate %q: %v", ErrAvailabilityUnavailable, body.AvailableDate, err)
	}

	return instant, nil
}
