package stcore

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/open-control-systems/local-clock/components/sntp/sntpcore"
	"github.com/open-control-systems/local-clock/components/status"
)

func newTestBboltBucket(t *testing.T) *BboltDBBucket {
	db, err := NewBboltDB(filepath.Join(t.TempDir(), "local-clock.db"), nil)
	require.Nil(t, err)

	t.Cleanup(func() {
		require.Nil(t, db.Close())
	})

	return NewBboltDBBucket(db, "sync")
}

func TestSyncJournalEmpty(t *testing.T) {
	journal := NewSyncJournal(newTestBboltBucket(t))

	_, err := journal.Last()
	require.Equal(t, status.StatusNoData, err)
}

func TestSyncJournalHandleSync(t *testing.T) {
	journal := NewSyncJournal(newTestBboltBucket(t))

	record := sntpcore.SyncRecord{
		UTC:    1688212800,
		Local:  1688212800 + 7200,
		Offset: 7200,
		Summer: true,
		Zone:   "CEST",
		Policy: "cet",
		Server: "fritz.box",
	}

	require.Nil(t, journal.HandleSync(record))

	last, err := journal.Last()
	require.Nil(t, err)
	require.Equal(t, record, last)
}

func TestSyncJournalIgnoresOlderRecord(t *testing.T) {
	journal := NewSyncJournal(newTestBboltBucket(t))

	newer := sntpcore.SyncRecord{UTC: 1688212800, Local: 1688212800 + 7200}
	older := sntpcore.SyncRecord{UTC: 1673784000, Local: 1673784000 + 3600}

	require.Nil(t, journal.HandleSync(newer))
	require.Nil(t, journal.HandleSync(older))

	last, err := journal.Last()
	require.Nil(t, err)
	require.Equal(t, newer, last)
}

func TestSyncJournalNoopDB(t *testing.T) {
	journal := NewSyncJournal(&NoopDB{})

	require.Nil(t, journal.HandleSync(sntpcore.SyncRecord{UTC: 1688212800}))

	_, err := journal.Last()
	require.Equal(t, status.StatusNoData, err)
}

func TestSyncJournalConcurrentHandleSync(t *testing.T) {
	journal := NewSyncJournal(newTestBboltBucket(t))

	const count = 20
	base := int64(1688212800)

	errCh := make(chan error, count)

	var wg sync.WaitGroup
	for i := count - 1; i >= 0; i-- {
		wg.Add(1)

		go func(utc int64) {
			defer wg.Done()

			errCh <- journal.HandleSync(sntpcore.SyncRecord{UTC: utc, Local: utc + 7200})
		}(base + int64(i))
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.Nil(t, err)
	}

	last, err := journal.Last()
	require.Nil(t, err)
	require.Equal(t, base+count-1, last.UTC)
}

func TestBboltDBBucketOperations(t *testing.T) {
	bucket := newTestBboltBucket(t)

	_, err := bucket.Read("foo")
	require.Equal(t, status.StatusNoData, err)

	require.Nil(t, bucket.Write("foo", Blob{Data: []byte("bar")}))
	require.Nil(t, bucket.Write("foo", Blob{Data: []byte("baz")}))

	blob, err := bucket.Read("foo")
	require.Nil(t, err)
	require.Equal(t, []byte("baz"), blob.Data)

	_, err = bucket.Read("bar")
	require.Equal(t, status.StatusNoData, err)

	require.Nil(t, bucket.Close())
}
