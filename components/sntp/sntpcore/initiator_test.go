package sntpcore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testTimeSource struct {
	calls    []string
	server   string
	timezone int
	startErr error
	stopErr  error
}

func (s *testTimeSource) Stop() error {
	s.calls = append(s.calls, "stop")

	return s.stopErr
}

func (s *testTimeSource) SetServer(name string) {
	s.calls = append(s.calls, "set-server")
	s.server = name
}

func (s *testTimeSource) SetTimezone(hours int) {
	s.calls = append(s.calls, "set-timezone")
	s.timezone = hours
}

func (s *testTimeSource) Start() error {
	s.calls = append(s.calls, "start")

	return s.startErr
}

func (*testTimeSource) CurrentTimestamp() int64 {
	return 0
}

func TestInitiate(t *testing.T) {
	source := &testTimeSource{timezone: 5}

	params := DefaultParams()
	params.StartupDelay = time.Millisecond

	require.Nil(t, Initiate(context.Background(), source, params))
	require.Equal(t, []string{"stop", "set-server", "set-timezone", "start"}, source.calls)
	require.Equal(t, "fritz.box", source.server)
	require.Equal(t, 0, source.timezone)
}

func TestInitiateStartError(t *testing.T) {
	errStart := errors.New("start failed")

	source := &testTimeSource{startErr: errStart}

	require.ErrorIs(t, Initiate(context.Background(), source, DefaultParams()), errStart)
	require.Equal(t, []string{"stop", "set-server", "set-timezone", "start"}, source.calls)
}

func TestInitiateStopError(t *testing.T) {
	errStop := errors.New("stop failed")

	source := &testTimeSource{stopErr: errStop}

	require.ErrorIs(t, Initiate(context.Background(), source, DefaultParams()), errStop)
	require.Equal(t, []string{"stop"}, source.calls)
}

func TestInitiateContextCanceled(t *testing.T) {
	source := &testTimeSource{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	params := DefaultParams()
	params.StartupDelay = time.Hour

	require.Equal(t, context.Canceled, Initiate(ctx, source, params))
}
