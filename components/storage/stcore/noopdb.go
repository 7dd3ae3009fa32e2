package stcore

import "github.com/open-control-systems/local-clock/components/status"

// NoopDB is a non-operational database, used when persistence is disabled.
type NoopDB struct{}

// Read is non-operational.
func (*NoopDB) Read(_ string) (Blob, error) {
	return Blob{}, status.StatusNoData
}

// Write is non-operational.
func (*NoopDB) Write(_ string, _ Blob) error {
	return nil
}

// Close is non-operational.
func (*NoopDB) Close() error {
	return nil
}
