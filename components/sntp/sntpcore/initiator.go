package sntpcore

import (
	"context"
	"fmt"
	"time"

	"github.com/open-control-systems/local-clock/components/core"
)

// Initiate (re)configures and restarts the time-sync client.
//
// The client is stopped, configured with the server and timezone, started
// again, then the call pauses for params.StartupDelay to let the client make
// the first contact with the server.
//
// Remarks:
//   - A server that can't be reached isn't reported here, it is observed
//     later as an implausible timestamp by the Poller.
func Initiate(ctx context.Context, source TimeSource, params Params) error {
	if err := source.Stop(); err != nil {
		return fmt.Errorf("sntp-initiator: failed to stop client: %w", err)
	}

	source.SetServer(params.Server)
	source.SetTimezone(params.Timezone)

	if err := source.Start(); err != nil {
		return fmt.Errorf("sntp-initiator: failed to start client: server=%s: %w",
			params.Server, err)
	}

	core.LogInf.Printf("sntp-initiator: client started: server=%s timezone=%d\n",
		params.Server, params.Timezone)

	if params.StartupDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(params.StartupDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil

	case <-ctx.Done():
		return ctx.Err()
	}
}
