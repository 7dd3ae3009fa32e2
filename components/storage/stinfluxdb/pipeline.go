package stinfluxdb

import (
	"context"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"

	"github.com/open-control-systems/local-clock/components/core"
)

// Pipeline contains various building blocks for persisting data in influxdb.
type Pipeline struct {
	dbClient influxdb2.Client
	handler  *SyncHandler
}

// NewPipeline initializes all components associated with the influxdb subsystem.
//
// Parameters:
//   - ctx - parent context.
//   - params - various influxDB configuration parameters.
func NewPipeline(ctx context.Context, params DBParams) *Pipeline {
	dbClient := influxdb2.NewClient(params.URL, params.Token)
	writeClient := dbClient.WriteAPIBlocking(params.Org, params.Bucket)

	core.LogInf.Printf("influxdb-pipeline: exporting sync records: url=%s org=%s bucket=%s\n",
		params.URL, params.Org, params.Bucket)

	return &Pipeline{
		dbClient: dbClient,
		handler:  NewSyncHandler(ctx, writeClient),
	}
}

// GetSyncHandler returns the handler to store the sync records.
func (p *Pipeline) GetSyncHandler() *SyncHandler {
	return p.handler
}

// Close stops writing data to the DB.
func (p *Pipeline) Close() error {
	p.dbClient.Close()

	return nil
}
