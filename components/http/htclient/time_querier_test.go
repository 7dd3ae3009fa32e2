package htclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/open-control-systems/local-clock/components/status"
)

func newTestTimeServer(t *testing.T, code int, body string) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

func TestTimeQuerierQuery(t *testing.T) {
	server := newTestTimeServer(t, http.StatusOK, "1700000000\n")

	querier := NewTimeQuerier(NewDefaultClient(), time.Second*5)

	sample, err := querier.Query(context.Background(), server.URL)
	require.Nil(t, err)
	require.Equal(t, int64(1700000000), sample.Time.Unix())
	require.Equal(t, uint8(0), sample.Stratum)
	require.GreaterOrEqual(t, sample.RTT, time.Duration(0))
}

func TestTimeQuerierQueryUnknownTime(t *testing.T) {
	server := newTestTimeServer(t, http.StatusOK, "-1")

	querier := NewTimeQuerier(NewDefaultClient(), time.Second*5)

	_, err := querier.Query(context.Background(), server.URL)
	require.ErrorIs(t, err, status.StatusNoData)
}

func TestTimeQuerierQueryInvalidBody(t *testing.T) {
	server := newTestTimeServer(t, http.StatusOK, "noon")

	querier := NewTimeQuerier(NewDefaultClient(), time.Second*5)

	_, err := querier.Query(context.Background(), server.URL)
	require.Error(t, err)
}

func TestTimeQuerierQueryBadStatus(t *testing.T) {
	server := newTestTimeServer(t, http.StatusServiceUnavailable, "sync timeout")

	querier := NewTimeQuerier(NewDefaultClient(), time.Second*5)

	_, err := querier.Query(context.Background(), server.URL)
	require.Error(t, err)
}
