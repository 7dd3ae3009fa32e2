package httransport

import (
	"fmt"
	"net"
	"net/http"

	"github.com/open-control-systems/local-clock/components/system/sysnet"
)

// ResolveRoundTripper resolves the request hostname before the HTTP transaction.
type ResolveRoundTripper struct {
	rs sysnet.Resolver
	rt http.RoundTripper
}

// NewResolveRoundTripper is an initialization of ResolveRoundTripper.
//
// Parameters:
//   - rs to resolve HTTP addresses.
//   - rt to perform an actual HTTP transaction.
func NewResolveRoundTripper(rs sysnet.Resolver, rt http.RoundTripper) *ResolveRoundTripper {
	return &ResolveRoundTripper{
		rs: rs,
		rt: rt,
	}
}

// RoundTrip resolves HTTP address and performs HTTP transaction.
//
// Remarks:
//   - The URL port is preserved, the Host header keeps the original hostname.
func (r *ResolveRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	addr, err := r.rs.Resolve(req.Context(), req.URL.Hostname())
	if err != nil {
		return nil, fmt.Errorf(
			"resolve-round-tripper: failed to resolve HTTP address: hostname=%s err=%w",
			req.URL.Hostname(), err)
	}

	host := addr.String()
	if port := req.URL.Port(); port != "" {
		host = net.JoinHostPort(host, port)
	}

	resolved := req.Clone(req.Context())
	resolved.URL.Host = host

	if resolved.Host == "" {
		resolved.Host = req.URL.Host
	}

	return r.rt.RoundTrip(resolved)
}
