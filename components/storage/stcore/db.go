package stcore

// DB is a key-value database to store blobs of data, e.g. the sync journal.
//
// Remarks:
//   - Implementation should be thread-safe.
//   - Blobs returned by Read are owned by the caller.
type DB interface {
	// Read reads a blob from the database.
	//
	// Remarks:
	//  - Implementation should return status.StatusNoData if blob doesn't exist.
	Read(key string) (Blob, error)

	// Write writes a blob to the database, replacing the existing one.
	Write(key string, blob Blob) error

	// Close releases all resources for the database.
	Close() error
}
