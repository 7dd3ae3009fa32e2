package htcore

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/open-control-systems/local-clock/components/core"
)

const readHeaderTimeout = time.Second * 10

// Server is a wrapper for http.Server.
type Server struct {
	server http.Server
	ln     net.Listener
	doneCh chan struct{}
	url    string
}

// ServerParams contains server parameters.
type ServerParams struct {
	// Host to listen on, e.g. "127.0.0.1".
	Host string

	// Port to listen on, e.g. 8123.
	Port int
}

// NewServer creates a new server.
//
// Notes:
//   - The server is not started.
//   - If host is empty, "0.0.0.0" is used.
//   - If port is zero, a random free port is chosen.
//
// References:
//   - The implementation is based on the httptest.Server.
func NewServer(handler http.Handler, params ServerParams) (*Server, error) {
	if params.Host == "" {
		params.Host = "0.0.0.0"
	}

	addr, err := net.ResolveTCPAddr("tcp", params.Host+":"+strconv.Itoa(params.Port))
	if err != nil {
		return nil, err
	}
	ln, err := net.ListenTCP(addr.Network(), addr)
	if err != nil {
		return nil, err
	}

	if params.Port == 0 {
		params.Port = ln.Addr().(*net.TCPAddr).Port
	}

	return &Server{
		server: http.Server{
			Addr:              addr.String(),
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		ln:     ln,
		doneCh: make(chan struct{}),
		url:    "http://" + ln.Addr().String(),
	}, nil
}

// Start runs the server.
func (s *Server) Start() {
	go s.run()
}

// Close stops the server and waits until it finishes.
func (s *Server) Close() error {
	err := s.server.Close()

	_ = s.ln.Close()

	<-s.doneCh

	return err
}

// URL returns base URL of form http://ipaddr:port with no trailing slash.
func (s *Server) URL() string {
	return s.url
}

func (s *Server) run() {
	defer close(s.doneCh)

	if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		core.LogErr.Printf("http-server: failed to serve connection: %v\n", err)
	}
}
