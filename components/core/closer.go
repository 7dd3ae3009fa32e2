package core

// Closer releases the resources of a long-living component: databases,
// sockets, background goroutines.
type Closer interface {
	// Close the resource.
	Close() error
}
