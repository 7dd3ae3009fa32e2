package pipclock

import (
	"context"
	"time"

	"go.etcd.io/bbolt"

	"github.com/open-control-systems/local-clock/components/config"
	"github.com/open-control-systems/local-clock/components/core"
	"github.com/open-control-systems/local-clock/components/sntp/sntpcore"
	"github.com/open-control-systems/local-clock/components/storage/stcore"
	"github.com/open-control-systems/local-clock/components/storage/stinfluxdb"
)

const (
	journalBucket = "local_clock"

	// bbolt holds an exclusive file lock, another running instance blocks the open.
	dbOpenTimeout = time.Second * 5
)

// JournalPipeline contains various building blocks to store the conversions.
type JournalPipeline struct {
	journal *stcore.SyncJournal
	handler *sntpcore.FanoutSyncHandler
}

// NewJournalPipeline initializes the storage of the sync records.
//
// Parameters:
//   - ctx - parent context.
//   - closer to register all resources that should be closed.
//   - cfg - application configuration.
//
// Remarks:
//   - Records aren't persisted if the DB path isn't configured.
//   - Records are exported to influxDB if its URL is configured.
func NewJournalPipeline(
	ctx context.Context,
	closer *core.FanoutCloser,
	cfg config.Config,
) (*JournalPipeline, error) {
	var db stcore.DB = &stcore.NoopDB{}

	if cfg.DBPath != "" {
		bboltDB, err := stcore.NewBboltDB(cfg.DBPath, &bbolt.Options{
			Timeout: dbOpenTimeout,
		})
		if err != nil {
			return nil, err
		}
		closer.Add("bbolt-db", bboltDB)

		db = stcore.NewBboltDBBucket(bboltDB, journalBucket)
	}

	journal := stcore.NewSyncJournal(db)

	handler := &sntpcore.FanoutSyncHandler{}
	handler.Add(journal)

	influxParams := stinfluxdb.DBParams{
		URL:    cfg.InfluxDB.URL,
		Org:    cfg.InfluxDB.Org,
		Token:  cfg.InfluxDB.Token,
		Bucket: cfg.InfluxDB.Bucket,
	}
	if influxParams.Enabled() {
		influxPipeline := stinfluxdb.NewPipeline(ctx, influxParams)
		closer.Add("influxdb-pipeline", influxPipeline)

		handler.Add(influxPipeline.GetSyncHandler())
	}

	return &JournalPipeline{
		journal: journal,
		handler: handler,
	}, nil
}

// GetJournal returns the component to read the last conversion.
func (p *JournalPipeline) GetJournal() *stcore.SyncJournal {
	return p.journal
}

// GetSyncHandler returns the handler to be notified about every conversion.
func (p *JournalPipeline) GetSyncHandler() sntpcore.SyncHandler {
	return p.handler
}
