package sntpclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/beevik/ntp"

	"github.com/open-control-systems/local-clock/components/sntp/sntpcore"
	"github.com/open-control-systems/local-clock/components/system/sysnet"
)

type queryFunc func(address string, opt ntp.QueryOptions) (*ntp.Response, error)

// NTPQuerier queries NTP servers.
//
// References:
//   - https://github.com/beevik/ntp
//   - https://datatracker.ietf.org/doc/html/rfc5905
type NTPQuerier struct {
	resolver sysnet.Resolver
	timeout  time.Duration
	query    queryFunc
}

// NewNTPQuerier is an initialization of NTPQuerier.
//
// Parameters:
//   - resolver to resolve mDNS ".local" hostnames, can be nil.
//   - timeout - how long to wait for the server response.
func NewNTPQuerier(resolver sysnet.Resolver, timeout time.Duration) *NTPQuerier {
	return &NTPQuerier{
		resolver: resolver,
		timeout:  timeout,
		query:    ntp.QueryWithOptions,
	}
}

// Query performs a single SNTP request and validates the response.
func (q *NTPQuerier) Query(ctx context.Context, server string) (sntpcore.Sample, error) {
	address, err := q.resolve(ctx, server)
	if err != nil {
		return sntpcore.Sample{}, err
	}

	resp, err := q.queryContext(ctx, address)
	if err != nil {
		return sntpcore.Sample{}, fmt.Errorf("ntp-querier: query failed: address=%s: %w",
			address, err)
	}

	if err := resp.Validate(); err != nil {
		return sntpcore.Sample{}, fmt.Errorf("ntp-querier: invalid response: address=%s: %w",
			address, err)
	}

	return sntpcore.Sample{
		Time:    time.Now().Add(resp.ClockOffset),
		Offset:  resp.ClockOffset,
		RTT:     resp.RTT,
		Stratum: resp.Stratum,
	}, nil
}

type queryResult struct {
	resp *ntp.Response
	err  error
}

// queryContext returns when ctx is done, the query itself is bounded by the timeout.
func (q *NTPQuerier) queryContext(ctx context.Context, address string) (*ntp.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resultCh := make(chan queryResult, 1)

	go func() {
		resp, err := q.query(address, ntp.QueryOptions{Timeout: q.timeout})
		resultCh <- queryResult{resp: resp, err: err}
	}()

	select {
	case result := <-resultCh:
		return result.resp, result.err

	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (q *NTPQuerier) resolve(ctx context.Context, server string) (string, error) {
	if q.resolver == nil || !strings.HasSuffix(server, ".local") {
		return server, nil
	}

	ctx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()

	addr, err := q.resolver.Resolve(ctx, server)
	if err != nil {
		return "", fmt.Errorf("ntp-querier: failed to resolve: host=%s: %w", server, err)
	}

	return addr.String(), nil
}
