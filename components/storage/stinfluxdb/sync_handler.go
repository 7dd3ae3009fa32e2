package stinfluxdb

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/open-control-systems/local-clock/components/sntp/sntpcore"
)

const syncMeasurement = "local_clock"

// PointWriter writes points to influxDB.
type PointWriter interface {
	// WritePoint writes the points synchronously.
	WritePoint(ctx context.Context, point ...*write.Point) error
}

// SyncHandler stores the UTC to local time conversions in influxDB.
//
// References:
//   - https://docs.influxdata.com/influxdb/cloud/api-guide/client-libraries/go/
type SyncHandler struct {
	ctx    context.Context
	writer PointWriter
}

// NewSyncHandler is an initialization of SyncHandler.
//
// Parameters:
//   - ctx - parent context.
//   - writer to write the points.
func NewSyncHandler(ctx context.Context, writer PointWriter) *SyncHandler {
	return &SyncHandler{
		ctx:    ctx,
		writer: writer,
	}
}

// HandleSync writes the record as the "local_clock" measurement.
func (h *SyncHandler) HandleSync(record sntpcore.SyncRecord) error {
	point := influxdb2.NewPoint(syncMeasurement,
		map[string]string{
			"server": record.Server,
			"policy": record.Policy,
		},
		map[string]any{
			"id":     record.ID,
			"utc":    record.UTC,
			"local":  record.Local,
			"offset": record.Offset,
			"summer": record.Summer,
		},
		time.Unix(record.UTC, 0))

	if err := h.writer.WritePoint(h.ctx, point); err != nil {
		return fmt.Errorf("influxdb-sync-handler: failed to write to DB: %w", err)
	}

	return nil
}
