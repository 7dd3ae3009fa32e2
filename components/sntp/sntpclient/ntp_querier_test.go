package sntpclient

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/beevik/ntp"
	"github.com/stretchr/testify/require"

	"github.com/open-control-systems/local-clock/components/status"
)

type testResolver struct {
	addr net.Addr
	err  error
	host string
}

func (r *testResolver) Resolve(_ context.Context, hostname string) (net.Addr, error) {
	r.host = hostname

	return r.addr, r.err
}

func newTestResponse(offset time.Duration) *ntp.Response {
	now := time.Now()

	return &ntp.Response{
		Time:          now,
		ReferenceTime: now.Add(-time.Minute),
		ClockOffset:   offset,
		RTT:           time.Millisecond * 3,
		Stratum:       2,
	}
}

func TestNTPQuerierQuery(t *testing.T) {
	querier := NewNTPQuerier(nil, time.Second)

	var gotAddress string
	var gotTimeout time.Duration

	querier.query = func(address string, opt ntp.QueryOptions) (*ntp.Response, error) {
		gotAddress = address
		gotTimeout = opt.Timeout

		return newTestResponse(time.Hour), nil
	}

	sample, err := querier.Query(context.Background(), "fritz.box")
	require.Nil(t, err)
	require.Equal(t, "fritz.box", gotAddress)
	require.Equal(t, time.Second, gotTimeout)
	require.Equal(t, time.Hour, sample.Offset)
	require.Equal(t, time.Millisecond*3, sample.RTT)
	require.Equal(t, uint8(2), sample.Stratum)
	require.WithinDuration(t, time.Now().Add(time.Hour), sample.Time, time.Second)
}

func TestNTPQuerierQueryError(t *testing.T) {
	errQuery := errors.New("i/o timeout")

	querier := NewNTPQuerier(nil, time.Second)
	querier.query = func(_ string, _ ntp.QueryOptions) (*ntp.Response, error) {
		return nil, errQuery
	}

	_, err := querier.Query(context.Background(), "fritz.box")
	require.ErrorIs(t, err, errQuery)
}

func TestNTPQuerierQueryKissOfDeath(t *testing.T) {
	querier := NewNTPQuerier(nil, time.Second)
	querier.query = func(_ string, _ ntp.QueryOptions) (*ntp.Response, error) {
		resp := newTestResponse(0)
		resp.Stratum = 0

		return resp, nil
	}

	_, err := querier.Query(context.Background(), "fritz.box")
	require.Error(t, err)
}

func TestNTPQuerierResolveLocal(t *testing.T) {
	resolver := &testResolver{addr: &net.IPAddr{IP: net.IPv4(192, 168, 178, 1)}}

	querier := NewNTPQuerier(resolver, time.Second)

	var gotAddress string
	querier.query = func(address string, _ ntp.QueryOptions) (*ntp.Response, error) {
		gotAddress = address

		return newTestResponse(0), nil
	}

	_, err := querier.Query(context.Background(), "router.local")
	require.Nil(t, err)
	require.Equal(t, "router.local", resolver.host)
	require.Equal(t, "192.168.178.1", gotAddress)

	_, err = querier.Query(context.Background(), "fritz.box")
	require.Nil(t, err)
	require.Equal(t, "fritz.box", gotAddress)
}

func TestNTPQuerierResolveError(t *testing.T) {
	resolver := &testResolver{err: status.StatusTimeout}

	querier := NewNTPQuerier(resolver, time.Second)
	querier.query = func(_ string, _ ntp.QueryOptions) (*ntp.Response, error) {
		require.FailNow(t, "query shouldn't be called")

		return nil, nil
	}

	_, err := querier.Query(context.Background(), "router.local")
	require.ErrorIs(t, err, status.StatusTimeout)
}

func TestNTPQuerierQueryCancelled(t *testing.T) {
	querier := NewNTPQuerier(nil, time.Minute)

	releaseCh := make(chan struct{})
	defer close(releaseCh)

	querier.query = func(_ string, _ ntp.QueryOptions) (*ntp.Response, error) {
		<-releaseCh

		return nil, errors.New("i/o timeout")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*50)
	defer cancel()

	start := time.Now()

	_, err := querier.Query(ctx, "fritz.box")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), time.Second*5)
}
