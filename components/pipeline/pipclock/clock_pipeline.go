package pipclock

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/open-control-systems/local-clock/components/config"
	"github.com/open-control-systems/local-clock/components/core"
	"github.com/open-control-systems/local-clock/components/dst"
	"github.com/open-control-systems/local-clock/components/http/htclient"
	"github.com/open-control-systems/local-clock/components/sntp/sntpclient"
	"github.com/open-control-systems/local-clock/components/sntp/sntpcore"
	"github.com/open-control-systems/local-clock/components/status"
	"github.com/open-control-systems/local-clock/components/system/syscore"
	"github.com/open-control-systems/local-clock/components/system/sysmdns"
	"github.com/open-control-systems/local-clock/components/system/sysnet"
	"github.com/open-control-systems/local-clock/components/system/syssched"
)

// ClockPipeline contains various building blocks to get the local time.
type ClockPipeline struct {
	client *sntpclient.Client
	clock  *sntpcore.LocalClock
	params sntpcore.Params
}

// NewClockPipeline initializes all components associated with the local clock.
//
// Parameters:
//   - ctx - parent context.
//   - closer to register all resources that should be closed.
//   - handler to be notified about every conversion, can be nil.
//   - cfg - application configuration.
//
// Remarks:
//   - ".local" servers are resolved with mDNS queries, the addresses of the
//     hosts advertising the time service are used when the queries fail.
func NewClockPipeline(
	ctx context.Context,
	closer *core.FanoutCloser,
	handler sntpcore.SyncHandler,
	cfg config.Config,
) (*ClockPipeline, error) {
	policy, err := dst.Lookup(cfg.Policy)
	if err != nil {
		return nil, err
	}

	resolver, err := newResolver(ctx, closer, cfg)
	if err != nil {
		return nil, err
	}

	querier, err := newQuerier(resolver, cfg)
	if err != nil {
		return nil, err
	}

	client := sntpclient.NewClient(ctx, querier, &syscore.LocalMonotonicClock{},
		cfg.ClientParams())
	closer.Add("sntp-client", client)

	clock := sntpcore.NewLocalClock(
		sntpcore.NewPoller(client, cfg.PollerParams()),
		policy,
		handler,
		cfg.Server,
	)

	core.LogInf.Printf("clock-pipeline: initialized: server=%s querier=%s policy=%s\n",
		cfg.Server, cfg.Querier, policy.Name())

	return &ClockPipeline{
		client: client,
		clock:  clock,
		params: cfg.InitParams(),
	}, nil
}

// Start configures and starts the time synchronization.
func (p *ClockPipeline) Start(ctx context.Context) error {
	return sntpcore.Initiate(ctx, p.client, p.params)
}

// GetLocalClock returns the component to get the local time.
func (p *ClockPipeline) GetLocalClock() *sntpcore.LocalClock {
	return p.clock
}

// GetClient returns the time-sync client.
func (p *ClockPipeline) GetClient() *sntpclient.Client {
	return p.client
}

func newQuerier(resolver sysnet.Resolver, cfg config.Config) (sntpcore.Querier, error) {
	switch cfg.Querier {
	case config.QuerierNTP:
		return sntpclient.NewNTPQuerier(resolver, cfg.Sync.QueryTimeout), nil

	case config.QuerierHTTP:
		client := htclient.NewDefaultClient()
		if resolver != nil {
			client = htclient.NewResolveClient(resolver)
		}

		return htclient.NewTimeQuerier(client, cfg.Sync.QueryTimeout), nil
	}

	return nil, fmt.Errorf("clock-pipeline: unknown querier: %s: %w",
		cfg.Querier, status.StatusNotSupported)
}

func newResolver(
	ctx context.Context,
	closer *core.FanoutCloser,
	cfg config.Config,
) (sysnet.Resolver, error) {
	host, err := serverHost(cfg)
	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(host, ".local") {
		return nil, nil
	}

	mdnsResolver := &sysnet.PionMdnsResolver{}
	closer.Add("pion-mdns-resolver", mdnsResolver)

	if !cfg.Mdns.Browse {
		return mdnsResolver, nil
	}

	store := sysnet.NewResolveStore()
	store.Add(host)

	browser := sysmdns.NewZeroconfBrowser(ctx, store, sysmdns.ZeroconfBrowserParams{
		Service: mdnsService(cfg),
		Domain:  cfg.Mdns.Domain,
		Timeout: cfg.Mdns.BrowseTimeout,
	})

	runner := syssched.NewAsyncTaskRunner(ctx, browser, browser,
		syssched.AsyncTaskRunnerParams{
			UpdateInterval: cfg.Mdns.BrowseInterval,
		})
	if err := runner.Start(); err != nil {
		return nil, err
	}
	closer.Add("mdns-zeroconf-browser", core.FuncCloser(runner.Stop))

	return sysnet.NewFallbackResolver(mdnsResolver, store), nil
}

func serverHost(cfg config.Config) (string, error) {
	if cfg.Querier != config.QuerierHTTP {
		return cfg.Server, nil
	}

	u, err := url.Parse(cfg.Server)
	if err != nil {
		return "", fmt.Errorf("clock-pipeline: invalid server URL: %w", err)
	}

	return u.Hostname(), nil
}

func mdnsService(cfg config.Config) string {
	if cfg.Mdns.Service != "" {
		return cfg.Mdns.Service
	}

	if cfg.Querier == config.QuerierHTTP {
		return sysnet.MdnsServiceName(sysnet.MdnsServiceTypeHTTP, sysnet.MdnsProtoTCP)
	}

	return sysnet.MdnsServiceName(sysnet.MdnsServiceTypeNTP, sysnet.MdnsProtoUDP)
}
