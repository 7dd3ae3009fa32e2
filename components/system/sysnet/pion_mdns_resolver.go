package sysnet

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/pion/mdns"
	"golang.org/x/net/ipv4"

	"github.com/open-control-systems/local-clock/components/status"
)

// PionMdnsResolver resolves ".local" hostnames with mDNS A-record queries.
//
// The Go resolver resolves ".local" names on the host machine, but fails to do
// so inside a container unless CGO is forced with GODEBUG=netdns=cgo. The pure
// Go mDNS client behaves the same way in both environments.
//
// Remarks:
//   - Works for any host answering mDNS queries, the host doesn't need to
//     advertise a service.
//   - Can be used from multiple goroutines.
//
// References:
//   - https://github.com/pion/mdns
type PionMdnsResolver struct {
	mu     sync.Mutex
	conn   *mdns.Conn
	closed bool
}

// Resolve sends mDNS queries until the host answers or ctx is done.
func (r *PionMdnsResolver) Resolve(ctx context.Context, hostname string) (net.Addr, error) {
	if !strings.HasSuffix(hostname, ".local") {
		return nil, fmt.Errorf("pion-mdns-resolver: unsupported hostname: %s: %w",
			hostname, status.StatusNotSupported)
	}

	conn, err := r.getConn()
	if err != nil {
		return nil, err
	}

	_, addr, err := conn.Query(ctx, hostname)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("pion-mdns-resolver: host=%s: %w",
				hostname, status.StatusTimeout)
		}

		return nil, fmt.Errorf("pion-mdns-resolver: query failed: host=%s: %w", hostname, err)
	}

	return addr, nil
}

// Close the underlying mDNS connection.
func (r *PionMdnsResolver) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true

	if r.conn != nil {
		return r.conn.Close()
	}

	return nil
}

func (r *PionMdnsResolver) getConn() (*mdns.Conn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, fmt.Errorf("pion-mdns-resolver: closed: %w", status.StatusInvalidState)
	}

	if r.conn != nil {
		return r.conn, nil
	}

	// UDP Connection is closed when the mDNS connection is closed.
	udpConn, err := net.ListenUDP("udp4", nil)
	if err != nil {
		return nil, fmt.Errorf("pion-mdns-resolver: failed to create UDP connection: %w", err)
	}

	mdnsConn, err := mdns.Server(ipv4.NewPacketConn(udpConn), &mdns.Config{})
	if err != nil {
		_ = udpConn.Close()

		return nil, fmt.Errorf("pion-mdns-resolver: failed to create mDNS connection: %w", err)
	}

	r.conn = mdnsConn

	return mdnsConn, nil
}
