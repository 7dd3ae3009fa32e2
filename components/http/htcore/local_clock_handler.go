package htcore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/open-control-systems/local-clock/components/sntp/sntpcore"
	"github.com/open-control-systems/local-clock/components/status"
)

// LocalClock converts the synchronized UTC time to local time.
type LocalClock interface {
	// Compose returns the current UTC to local time conversion.
	Compose(ctx context.Context) (sntpcore.SyncRecord, error)

	// UTCTimestamp returns the plausible UTC timestamp.
	UTCTimestamp(ctx context.Context) (int64, error)
}

// SyncRecordReader reads the last persisted conversion.
type SyncRecordReader interface {
	// Last returns the last persisted conversion.
	Last() (sntpcore.SyncRecord, error)
}

// LocalClockHandler serves the local time over HTTP.
//
// Endpoints, relative to the base path:
//   - GET /time - local timestamp, e.g. "1688220000".
//   - GET /time/utc - UTC timestamp.
//   - GET /time/last - last persisted conversion as JSON.
type LocalClockHandler struct {
	clock   LocalClock
	reader  SyncRecordReader
	timeout time.Duration
}

// NewLocalClockHandler is an initialization of LocalClockHandler.
//
// Parameters:
//   - clock to get the local time.
//   - reader to read the last persisted conversion.
//   - timeout - how long to wait for a plausible timestamp.
func NewLocalClockHandler(
	clock LocalClock,
	reader SyncRecordReader,
	timeout time.Duration,
) *LocalClockHandler {
	return &LocalClockHandler{
		clock:   clock,
		reader:  reader,
		timeout: timeout,
	}
}

// Register registers the endpoints under basePath, e.g. "/api/v1/system".
func (h *LocalClockHandler) Register(mux *http.ServeMux, basePath string) {
	mux.HandleFunc(basePath+"/time", h.handleLocal)
	mux.HandleFunc(basePath+"/time/utc", h.handleUTC)
	mux.HandleFunc(basePath+"/time/last", h.handleLast)
}

func (h *LocalClockHandler) handleLocal(w http.ResponseWriter, r *http.Request) {
	if !checkMethod(w, r) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	record, err := h.clock.Compose(ctx)
	if err != nil {
		writeError(w, fmt.Errorf("failed to get local time: %w", err))

		return
	}

	WriteText(w, strconv.FormatInt(record.Local, 10))
}

func (h *LocalClockHandler) handleUTC(w http.ResponseWriter, r *http.Request) {
	if !checkMethod(w, r) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	timestamp, err := h.clock.UTCTimestamp(ctx)
	if err != nil {
		writeError(w, fmt.Errorf("failed to get UTC time: %w", err))

		return
	}

	WriteText(w, strconv.FormatInt(timestamp, 10))
}

func (h *LocalClockHandler) handleLast(w http.ResponseWriter, r *http.Request) {
	if !checkMethod(w, r) {
		return
	}

	record, err := h.reader.Last()
	if err != nil {
		writeError(w, fmt.Errorf("failed to read last sync: %w", err))

		return
	}

	WriteJSON(w, record)
}

func checkMethod(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		http.Error(w, "error: unsupported method", http.StatusMethodNotAllowed)

		return false
	}

	return true
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, status.StatusTimeout), errors.Is(err, context.DeadlineExceeded):
		code = http.StatusServiceUnavailable

	case errors.Is(err, status.StatusNoData):
		code = http.StatusNotFound
	}

	http.Error(w, err.Error(), code)
}
