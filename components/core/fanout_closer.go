package core

// FanoutCloser closes the registered closers in the reverse order of registration.
type FanoutCloser struct {
	closers []node
}

// Add registers closer with id to be closed on Close() call.
func (c *FanoutCloser) Add(id string, closer Closer) {
	c.closers = append(c.closers, node{id: id, c: closer})
}

// Close closes all registered closers.
//
// Remarks:
//   - Errors are logged, the first one is returned.
func (c *FanoutCloser) Close() error {
	var first error

	for i := len(c.closers) - 1; i >= 0; i-- {
		n := c.closers[i]

		if err := n.c.Close(); err != nil {
			LogErr.Printf("fanout-closer: failed to close: id=%s err=%v\n", n.id, err)

			if first == nil {
				first = err
			}
		}
	}

	c.closers = nil

	return first
}

type node struct {
	id string
	c  Closer
}
