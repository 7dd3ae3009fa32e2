package sntpclient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/open-control-systems/local-clock/components/core"
	"github.com/open-control-systems/local-clock/components/sntp/sntpcore"
	"github.com/open-control-systems/local-clock/components/status"
	"github.com/open-control-systems/local-clock/components/system/syscore"
	"github.com/open-control-systems/local-clock/components/system/syssched"
)

// ClientParams represents various options for Client.
type ClientParams struct {
	// SyncInterval - how often to query the server once the time is known.
	SyncInterval time.Duration

	// RetryInterval - how often to retry a failed query.
	RetryInterval time.Duration
}

// DefaultClientParams returns the default client options.
func DefaultClientParams() ClientParams {
	return ClientParams{
		SyncInterval:  time.Hour,
		RetryInterval: time.Second * 2,
	}
}

// Client keeps the UNIX time synchronized with a time server.
//
// The server is queried in the background, between the queries the time is
// extrapolated with the monotonic clock.
//
// Remarks:
//   - Can be used from multiple goroutines.
type Client struct {
	ctx     context.Context
	querier sntpcore.Querier
	clock   syscore.MonotonicClock
	params  ClientParams

	mu         sync.Mutex
	runner     *syssched.AsyncTaskRunner
	cancel     context.CancelFunc
	server     string
	timezone   int
	synced     bool
	sample     sntpcore.Sample
	sampledAt  time.Time
	sampleFrom string
}

// NewClient is an initialization of Client.
//
// Parameters:
//   - ctx - parent context, the synchronization stops when it's done.
//   - querier to obtain time samples from the server.
//   - clock to extrapolate the time between the queries.
//   - params - various client options.
func NewClient(
	ctx context.Context,
	querier sntpcore.Querier,
	clock syscore.MonotonicClock,
	params ClientParams,
) *Client {
	return &Client{
		ctx:     ctx,
		querier: querier,
		clock:   clock,
		params:  params,
	}
}

// SetServer configures the time server.
//
// Remarks:
//   - Changing the server discards the time obtained from the previous one.
func (c *Client) SetServer(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.server != name {
		c.synced = false
	}

	c.server = name
}

// SetTimezone configures the offset in hours added to the reported time.
func (c *Client) SetTimezone(hours int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.timezone = hours
}

// Start begins the background synchronization.
func (c *Client) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.runner != nil {
		return fmt.Errorf("sntp-client: already started: %w", status.StatusInvalidState)
	}

	if c.server == "" {
		return fmt.Errorf("sntp-client: server isn't configured: %w", status.StatusInvalidState)
	}

	ctx, cancel := context.WithCancel(c.ctx)

	runner := syssched.NewAsyncTaskRunner(
		ctx,
		syssched.FuncTask(func() error {
			return c.sync(ctx)
		}),
		c,
		syssched.AsyncTaskRunnerParams{
			UpdateInterval: c.params.RetryInterval,
		},
	)

	if err := runner.Start(); err != nil {
		cancel()

		return err
	}

	c.runner = runner
	c.cancel = cancel

	return nil
}

// Stop ends the background synchronization.
//
// Remarks:
//   - The time obtained so far is kept.
//   - A query in progress is cancelled.
func (c *Client) Stop() error {
	c.mu.Lock()
	runner := c.runner
	cancel := c.cancel
	c.runner = nil
	c.cancel = nil
	c.mu.Unlock()

	if runner == nil {
		return nil
	}

	cancel()

	return runner.Stop()
}

// Close stops the synchronization.
func (c *Client) Close() error {
	return c.Stop()
}

// CurrentTimestamp returns the current UNIX time plus the timezone offset.
//
// Remarks:
//   - Returns 0 until the first successful query.
func (c *Client) CurrentTimestamp() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.synced {
		return 0
	}

	elapsed := c.clock.Now().Sub(c.sampledAt)

	return c.sample.Time.Add(elapsed).Unix() + int64(c.timezone)*3600
}

// LastSample returns the most recent successful sample and the server it came from.
func (c *Client) LastSample() (sntpcore.Sample, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.synced {
		return sntpcore.Sample{}, "", status.StatusNoData
	}

	return c.sample, c.sampleFrom, nil
}

// HandleError logs synchronization failures.
func (c *Client) HandleError(err error) {
	core.LogErr.Printf("sntp-client: failed to synchronize: %v\n", err)
}

func (c *Client) sync(ctx context.Context) error {
	c.mu.Lock()
	server := c.server
	due := !c.synced || c.clock.Now().Sub(c.sampledAt) >= c.params.SyncInterval
	c.mu.Unlock()

	if !due {
		return nil
	}

	sample, err := c.querier.Query(ctx, server)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}

		return fmt.Errorf("server=%s: %w", server, err)
	}

	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.server != server {
		return nil
	}

	if !c.synced {
		core.LogInf.Printf("sntp-client: time synchronized: server=%s time=%s offset=%s rtt=%s\n",
			server, sample.Time.UTC().Format(time.RFC3339), sample.Offset, sample.RTT)
	}

	c.synced = true
	c.sample = sample
	c.sampledAt = now
	c.sampleFrom = server

	return nil
}
