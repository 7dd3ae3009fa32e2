package sntpcore

import "github.com/open-control-systems/local-clock/components/core"

// SyncRecord describes a single UTC to local time conversion.
type SyncRecord struct {
	// ID uniquely identifies the conversion.
	ID string `json:"id"`

	// UTC is the plausible UNIX timestamp obtained from the time source.
	UTC int64 `json:"utc"`

	// Local is UTC plus Offset.
	Local int64 `json:"local"`

	// Offset is the number of seconds added to UTC.
	Offset int64 `json:"offset"`

	// Summer is true when DST applied.
	Summer bool `json:"summer"`

	// Zone is the abbreviated zone name, e.g. "CEST".
	Zone string `json:"zone"`

	// Policy is the DST policy name, e.g. "cet".
	Policy string `json:"policy"`

	// Server is the time server the UTC time was synchronized with.
	Server string `json:"server"`
}

// SyncHandler handles the conversion results.
type SyncHandler interface {
	// HandleSync handles the conversion result.
	HandleSync(record SyncRecord) error
}

// FanoutSyncHandler propagates the conversion results to the underlying handlers.
type FanoutSyncHandler struct {
	handlers []SyncHandler
}

// HandleSync notifies all handlers, failures are logged.
func (h *FanoutSyncHandler) HandleSync(record SyncRecord) error {
	for _, handler := range h.handlers {
		if err := handler.HandleSync(record); err != nil {
			core.LogErr.Printf("fanout-sync-handler: failed to handle sync record: %v\n", err)
		}
	}

	return nil
}

// Add adds handler to be notified about the conversion results.
func (h *FanoutSyncHandler) Add(handler SyncHandler) {
	h.handlers = append(h.handlers, handler)
}
