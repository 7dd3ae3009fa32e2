package sntpcore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/open-control-systems/local-clock/components/core"
	"github.com/open-control-systems/local-clock/components/dst"
)

// TimestampPoller returns a plausible UTC timestamp.
type TimestampPoller interface {
	// Poll blocks until a plausible UNIX timestamp is available.
	Poll(ctx context.Context) (int64, error)
}

// LocalClock converts the synchronized UTC time to local time.
type LocalClock struct {
	poller  TimestampPoller
	policy  dst.Policy
	handler SyncHandler
	server  string
}

// NewLocalClock is an initialization of LocalClock.
//
// Parameters:
//   - poller to obtain a plausible UTC timestamp.
//   - policy to decide the DST offset.
//   - handler to be notified about every conversion, can be nil.
//   - server - time server name, reported in the sync records.
func NewLocalClock(
	poller TimestampPoller,
	policy dst.Policy,
	handler SyncHandler,
	server string,
) *LocalClock {
	return &LocalClock{
		poller:  poller,
		policy:  policy,
		handler: handler,
		server:  server,
	}
}

// Compose polls the UTC time and converts it to local time.
func (c *LocalClock) Compose(ctx context.Context) (SyncRecord, error) {
	utc, err := c.poller.Poll(ctx)
	if err != nil {
		return SyncRecord{}, err
	}

	t := time.Unix(utc, 0).UTC()
	summer := c.policy.IsSummerTime(t.Year(), int(t.Month()), t.Day(), t.Hour())
	offset := c.policy.Offset(summer)

	record := SyncRecord{
		ID:     uuid.NewString(),
		UTC:    utc,
		Local:  utc + offset,
		Offset: offset,
		Summer: summer,
		Zone:   c.policy.ZoneName(summer),
		Policy: c.policy.Name(),
		Server: c.server,
	}

	if c.handler != nil {
		if err := c.handler.HandleSync(record); err != nil {
			core.LogErr.Printf("local-clock: failed to handle sync record: utc=%d err=%v\n",
				utc, err)
		}
	}

	return record, nil
}

// LocalTimestamp returns the local time as UNIX seconds shifted by the zone offset.
func (c *LocalClock) LocalTimestamp(ctx context.Context) (int64, error) {
	record, err := c.Compose(ctx)
	if err != nil {
		return -1, err
	}

	return record.Local, nil
}

// UTCTimestamp returns the plausible UTC timestamp without conversion.
func (c *LocalClock) UTCTimestamp(ctx context.Context) (int64, error) {
	return c.poller.Poll(ctx)
}

// Now returns the current instant in the local zone.
func (c *LocalClock) Now(ctx context.Context) (time.Time, error) {
	record, err := c.Compose(ctx)
	if err != nil {
		return time.Time{}, err
	}

	return RecordTime(record), nil
}

// RecordTime returns the record instant in the zone the record was converted to.
func RecordTime(record SyncRecord) time.Time {
	return time.Unix(record.UTC, 0).In(time.FixedZone(record.Zone, int(record.Offset)))
}
