package stcore

// Blob is an opaque piece of data stored in the database.
type Blob struct {
	Data []byte
}
