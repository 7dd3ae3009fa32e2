package sysmdns

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"

	"github.com/open-control-systems/local-clock/components/core"
	"github.com/open-control-systems/local-clock/components/system/sysnet"
)

// ZeroconfBrowserParams represents various options for zeroconf mDNS browser.
type ZeroconfBrowserParams struct {
	// Service is a mDNS service to lookup for.
	//
	// Examples:
	//  - Lookup for all NTP services over UDP protocol: "_ntp._udp".
	Service string

	// Domain is a mDNS domain.
	//
	// Examples:
	//  - Local domain: "local".
	Domain string

	// Timeout is a mDNS browsing timeout.
	Timeout time.Duration
}

type browseResolver interface {
	Browse(ctx context.Context, service, domain string, entries chan<- *zeroconf.ServiceEntry) error
}

// ZeroconfBrowser browses the local network for the mDNS services and
// reports the addresses of the hosts providing them.
//
// Remarks:
//   - zeroconf.Resolver closes its connections once the browsing context is
//     done, so every Run() creates a new one.
//
// References:
//   - https://github.com/grandcat/zeroconf
type ZeroconfBrowser struct {
	params      ZeroconfBrowserParams
	ctx         context.Context
	handler     sysnet.ResolveHandler
	newResolver func() (browseResolver, error)
}

// NewZeroconfBrowser is an initialization of ZeroconfBrowser.
func NewZeroconfBrowser(
	ctx context.Context,
	handler sysnet.ResolveHandler,
	params ZeroconfBrowserParams,
) *ZeroconfBrowser {
	return &ZeroconfBrowser{
		params:  params,
		ctx:     ctx,
		handler: handler,
		newResolver: func() (browseResolver, error) {
			return zeroconf.NewResolver(nil)
		},
	}
}

// Run executes a single mDNS lookup operation.
func (b *ZeroconfBrowser) Run() error {
	resolver, err := b.newResolver()
	if err != nil {
		return fmt.Errorf("mdns-zeroconf-browser: failed to create resolver: %w", err)
	}

	ctx, cancel := context.WithTimeout(b.ctx, b.params.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)

	if err := resolver.Browse(ctx, b.params.Service, b.params.Domain, entries); err != nil {
		return err
	}

	for {
		select {
		case entry, ok := <-entries:
			if !ok {
				return nil
			}

			b.handleEntry(entry)

		case <-ctx.Done():
			return nil
		}
	}
}

// HandleError handles browsing errors.
func (b *ZeroconfBrowser) HandleError(err error) {
	core.LogErr.Printf("mdns-zeroconf-browser: browsing failed: service=%s domain=%s: %v\n",
		b.params.Service, b.params.Domain, err)
}

func (b *ZeroconfBrowser) handleEntry(entry *zeroconf.ServiceEntry) {
	if entry == nil {
		return
	}

	if len(entry.AddrIPv4) < 1 {
		core.LogWrn.Printf("mdns-zeroconf-browser: ignore entry: service=%s host=%s:"+
			" IPv4 address not found\n", b.params.Service, entry.HostName)

		return
	}

	b.handler.HandleResolve(
		strings.TrimSuffix(entry.HostName, "."),
		&net.IPAddr{IP: entry.AddrIPv4[0]},
	)
}
