package htclient

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/open-control-systems/local-clock/components/sntp/sntpcore"
	"github.com/open-control-systems/local-clock/components/status"
)

// TimeQuerier fetches the UNIX time from an HTTP endpoint.
//
// The endpoint should respond with a decimal UNIX timestamp as plain text,
// e.g. "/api/v1/system/time/utc" of another local-clock instance.
type TimeQuerier struct {
	client  *HTTPClient
	timeout time.Duration
}

// NewTimeQuerier is an initialization of TimeQuerier.
//
// Parameters:
//   - client to perform HTTP requests.
//   - timeout - HTTP request timeout.
func NewTimeQuerier(client *HTTPClient, timeout time.Duration) *TimeQuerier {
	return &TimeQuerier{
		client:  client,
		timeout: timeout,
	}
}

// Query fetches the time, server is the endpoint URL.
func (q *TimeQuerier) Query(ctx context.Context, server string) (sntpcore.Sample, error) {
	sent := time.Now()

	buf, err := NewURLFetcher(q.client, server, q.timeout).Fetch(ctx)
	if err != nil {
		return sntpcore.Sample{}, err
	}

	received := time.Now()

	timestamp, err := strconv.ParseInt(strings.TrimSpace(string(buf)), 10, 64)
	if err != nil {
		return sntpcore.Sample{}, fmt.Errorf("http-time-querier: invalid timestamp: %w", err)
	}

	if timestamp < 0 {
		return sntpcore.Sample{}, fmt.Errorf("http-time-querier: time unknown: %w",
			status.StatusNoData)
	}

	rtt := received.Sub(sent)
	serverTime := time.Unix(timestamp, 0).Add(rtt / 2)

	return sntpcore.Sample{
		Time:   serverTime,
		Offset: serverTime.Sub(received),
		RTT:    rtt,
	}, nil
}
