package piphttp

import (
	"net/http"
	"time"

	"github.com/open-control-systems/local-clock/components/core"
	"github.com/open-control-systems/local-clock/components/http/htcore"
)

// ServerPipelineParams represents various options for ServerPipeline.
type ServerPipelineParams struct {
	// Server - HTTP server address.
	Server htcore.ServerParams

	// BasePath - prefix of the registered endpoints, e.g. "/api/v1/system".
	BasePath string

	// Timeout - how long to wait for a plausible timestamp.
	Timeout time.Duration
}

// ServerPipeline contains various building blocks for HTTP API.
type ServerPipeline struct {
	server *htcore.Server
	mux    *http.ServeMux
}

// NewServerPipeline initializes all components associated with the HTTP server.
//
// Parameters:
//   - closer - to register handlers for the underlying resource deallocation.
//   - clock to serve the local time.
//   - reader to serve the last persisted conversion.
//   - params - various HTTP server configuration parameters.
func NewServerPipeline(
	closer *core.FanoutCloser,
	clock htcore.LocalClock,
	reader htcore.SyncRecordReader,
	params ServerPipelineParams,
) (*ServerPipeline, error) {
	mux := http.NewServeMux()

	htcore.NewLocalClockHandler(clock, reader, params.Timeout).Register(mux, params.BasePath)

	server, err := htcore.NewServer(mux, params.Server)
	if err != nil {
		return nil, err
	}
	closer.Add("http-server", server)

	core.LogInf.Printf("http-server-pipeline: starting HTTP server: URL=%s\n",
		server.URL())

	return &ServerPipeline{
		server: server,
		mux:    mux,
	}, nil
}

// GetServeMux returns the component to register HTTP endpoints.
func (p *ServerPipeline) GetServeMux() *http.ServeMux {
	return p.mux
}

// URL returns the server base URL.
func (p *ServerPipeline) URL() string {
	return p.server.URL()
}

// Start starts serving HTTP requests.
func (p *ServerPipeline) Start() {
	p.server.Start()
}
