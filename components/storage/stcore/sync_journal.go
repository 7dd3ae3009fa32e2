package stcore

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/open-control-systems/local-clock/components/sntp/sntpcore"
)

const syncJournalLastKey = "last"

// SyncJournal persists the most recent UTC to local time conversion.
type SyncJournal struct {
	mu sync.Mutex
	db DB
}

// NewSyncJournal is an initialization of SyncJournal.
//
// Parameters:
//   - db to store the records.
func NewSyncJournal(db DB) *SyncJournal {
	return &SyncJournal{db: db}
}

// HandleSync stores the record.
//
// Remarks:
//   - Records older than the stored one are ignored.
func (j *SyncJournal) HandleSync(record sntpcore.SyncRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	last, err := j.Last()
	if err == nil && last.UTC > record.UTC {
		return nil
	}

	buf, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("sync-journal: failed to encode record: %w", err)
	}

	if err := j.db.Write(syncJournalLastKey, Blob{Data: buf}); err != nil {
		return fmt.Errorf("sync-journal: failed to write record: %w", err)
	}

	return nil
}

// Last returns the most recent record.
//
// Remarks:
//   - Returns status.StatusNoData if nothing was stored yet.
func (j *SyncJournal) Last() (sntpcore.SyncRecord, error) {
	blob, err := j.db.Read(syncJournalLastKey)
	if err != nil {
		return sntpcore.SyncRecord{}, err
	}

	var record sntpcore.SyncRecord
	if err := json.Unmarshal(blob.Data, &record); err != nil {
		return sntpcore.SyncRecord{}, fmt.Errorf("sync-journal: failed to decode record: %w", err)
	}

	return record, nil
}
