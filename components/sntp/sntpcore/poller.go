package sntpcore

import (
	"context"
	"fmt"
	"time"

	"github.com/open-control-systems/local-clock/components/core"
	"github.com/open-control-systems/local-clock/components/status"
)

const (
	// DefaultThreshold is the smallest UNIX timestamp considered plausible.
	DefaultThreshold = int64(100000)

	// DefaultPollInterval is the delay between two reads of an implausible timestamp.
	DefaultPollInterval = time.Millisecond * 10

	// DefaultMaxAttempts bounds the reads to about 10 seconds with the default interval.
	DefaultMaxAttempts = 1000
)

// ErrSyncTimeout is returned when no plausible timestamp was read in time.
var ErrSyncTimeout = fmt.Errorf("sync timeout: %w", status.StatusTimeout)

// PollerParams represents various options for Poller.
type PollerParams struct {
	// Threshold is the smallest plausible UNIX timestamp.
	Threshold int64

	// Interval is the delay between reads.
	Interval time.Duration

	// MaxAttempts is the maximum number of reads.
	//
	// Remarks:
	//  - 0 means no limit: Poll blocks until a plausible timestamp is read
	//    or the context is done.
	MaxAttempts int
}

// DefaultPollerParams returns the default poller options.
func DefaultPollerParams() PollerParams {
	return PollerParams{
		Threshold:   DefaultThreshold,
		Interval:    DefaultPollInterval,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Poller waits until the time source reports a plausible timestamp.
type Poller struct {
	reader TimestampReader
	params PollerParams
}

// NewPoller is an initialization of Poller.
//
// Parameters:
//   - reader to read the current timestamp.
//   - params - various poller options.
func NewPoller(reader TimestampReader, params PollerParams) *Poller {
	return &Poller{
		reader: reader,
		params: params,
	}
}

// Poll returns the first timestamp that is greater than or equal to the threshold.
//
// Remarks:
//   - Returns ErrSyncTimeout when MaxAttempts reads didn't give a plausible value.
//   - Returns the context error when ctx is done before that.
func (p *Poller) Poll(ctx context.Context) (int64, error) {
	for attempt := 1; ; attempt++ {
		timestamp := p.reader.CurrentTimestamp()

		if timestamp >= p.params.Threshold {
			if attempt > 1 {
				core.LogInf.Printf("sntp-poller: timestamp became plausible: value=%d attempts=%d\n",
					timestamp, attempt)
			}

			return timestamp, nil
		}

		if attempt == 1 {
			core.LogWrn.Printf("sntp-poller: implausible timestamp, waiting: value=%d threshold=%d\n",
				timestamp, p.params.Threshold)
		}

		if p.params.MaxAttempts > 0 && attempt >= p.params.MaxAttempts {
			return -1, fmt.Errorf("sntp-poller: attempts=%d last=%d: %w",
				attempt, timestamp, ErrSyncTimeout)
		}

		if err := p.wait(ctx); err != nil {
			return -1, err
		}
	}
}

func (p *Poller) wait(ctx context.Context) error {
	timer := time.NewTimer(p.params.Interval)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil

	case <-ctx.Done():
		return ctx.Err()
	}
}
