package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/open-control-systems/local-clock/components/sntp/sntpclient"
	"github.com/open-control-systems/local-clock/components/sntp/sntpcore"
	"github.com/open-control-systems/local-clock/components/status"
)

const (
	// QuerierNTP queries the server with SNTP.
	QuerierNTP = "ntp"

	// QuerierHTTP fetches the UNIX time from an HTTP endpoint.
	QuerierHTTP = "http"
)

// PollConfig configures waiting for a plausible timestamp.
type PollConfig struct {
	Threshold   int64         `yaml:"threshold"`
	Interval    time.Duration `yaml:"interval"`
	MaxAttempts int           `yaml:"max_attempts"`
}

// SyncConfig configures the background synchronization.
type SyncConfig struct {
	Interval      time.Duration `yaml:"interval"`
	RetryInterval time.Duration `yaml:"retry_interval"`
	QueryTimeout  time.Duration `yaml:"query_timeout"`
}

// MdnsConfig configures the discovery of ".local" time servers.
type MdnsConfig struct {
	// Browse enables browsing for the time service, the advertised addresses
	// are used when the mDNS queries fail.
	Browse bool `yaml:"browse"`

	// Service is the browsed mDNS service, empty derives it from the querier,
	// e.g. "_ntp._udp" for the NTP querier.
	Service        string        `yaml:"service"`
	Domain         string        `yaml:"domain"`
	BrowseInterval time.Duration `yaml:"browse_interval"`
	BrowseTimeout  time.Duration `yaml:"browse_timeout"`
}

// HTTPConfig configures the HTTP API.
type HTTPConfig struct {
	Host    string        `yaml:"host"`
	Port    int           `yaml:"port"`
	Timeout time.Duration `yaml:"timeout"`
}

// InfluxDBConfig configures the export of the sync records.
type InfluxDBConfig struct {
	URL    string `yaml:"url"`
	Org    string `yaml:"org"`
	Bucket string `yaml:"bucket"`
	Token  string `yaml:"token"`
}

// Config is the application configuration.
type Config struct {
	// Server is the time server hostname, or the endpoint URL for the HTTP querier.
	Server string `yaml:"server"`

	// Querier is either "ntp" or "http".
	Querier string `yaml:"querier"`

	// Timezone is the base timezone offset in hours applied by the time-sync client.
	//
	// Remarks:
	//  - Must be zero, the timestamps are treated as UTC and the DST policy
	//    applies the regional offset.
	Timezone int `yaml:"timezone"`

	// Policy is the DST policy name, e.g. "cet".
	Policy string `yaml:"policy"`

	// StartupDelay is the pause after the time-sync client is started.
	StartupDelay time.Duration `yaml:"startup_delay"`

	// DBPath is the path of the sync journal, empty disables persistence.
	DBPath string `yaml:"db_path"`

	// LogPath is the path of the log file, empty logs to stderr.
	LogPath string `yaml:"log_path"`

	Poll     PollConfig     `yaml:"poll"`
	Sync     SyncConfig     `yaml:"sync"`
	Mdns     MdnsConfig     `yaml:"mdns"`
	HTTP     HTTPConfig     `yaml:"http"`
	InfluxDB InfluxDBConfig `yaml:"influxdb"`
}

// Default returns the default configuration.
func Default() Config {
	pollParams := sntpcore.DefaultPollerParams()
	clientParams := sntpclient.DefaultClientParams()

	return Config{
		Server:       sntpcore.DefaultServer,
		Querier:      QuerierNTP,
		Policy:       "cet",
		StartupDelay: sntpcore.DefaultStartupDelay,
		Poll: PollConfig{
			Threshold:   pollParams.Threshold,
			Interval:    pollParams.Interval,
			MaxAttempts: pollParams.MaxAttempts,
		},
		Sync: SyncConfig{
			Interval:      clientParams.SyncInterval,
			RetryInterval: clientParams.RetryInterval,
			QueryTimeout:  time.Second * 5,
		},
		Mdns: MdnsConfig{
			Browse:         true,
			Domain:         "local",
			BrowseInterval: time.Second * 30,
			BrowseTimeout:  time.Second * 5,
		},
		HTTP: HTTPConfig{
			Port:    8123,
			Timeout: time.Second * 10,
		},
	}
}

// Load reads the configuration.
//
// Parameters:
//   - path - YAML file path, empty path uses the defaults.
//   - lookupEnv to read the environment overrides, e.g. os.LookupEnv.
func Load(path string, lookupEnv func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if path != "" {
		buf, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to read file: %w", err)
		}

		if err := yaml.Unmarshal(buf, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: failed to parse file: path=%s: %w", path, err)
		}
	}

	if lookupEnv != nil {
		cfg.applyEnv(lookupEnv)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the configuration consistency.
func (c *Config) Validate() error {
	if c.Server == "" {
		return fmt.Errorf("config: server is empty: %w", status.StatusInvalidState)
	}

	if c.Timezone != 0 {
		return fmt.Errorf("config: timezone must be zero, use the policy instead: timezone=%d: %w",
			c.Timezone, status.StatusInvalidState)
	}

	if c.Querier != QuerierNTP && c.Querier != QuerierHTTP {
		return fmt.Errorf("config: unknown querier: %s: %w", c.Querier, status.StatusNotSupported)
	}

	if c.Poll.Interval <= 0 || c.Poll.MaxAttempts < 0 {
		return fmt.Errorf("config: invalid poll options: interval=%s max_attempts=%d: %w",
			c.Poll.Interval, c.Poll.MaxAttempts, status.StatusInvalidState)
	}

	if c.Sync.Interval <= 0 || c.Sync.RetryInterval <= 0 || c.Sync.QueryTimeout <= 0 {
		return fmt.Errorf("config: invalid sync intervals: %w", status.StatusInvalidState)
	}

	return nil
}

// PollerParams returns the poller options.
func (c *Config) PollerParams() sntpcore.PollerParams {
	return sntpcore.PollerParams{
		Threshold:   c.Poll.Threshold,
		Interval:    c.Poll.Interval,
		MaxAttempts: c.Poll.MaxAttempts,
	}
}

// ClientParams returns the time-sync client options.
func (c *Config) ClientParams() sntpclient.ClientParams {
	return sntpclient.ClientParams{
		SyncInterval:  c.Sync.Interval,
		RetryInterval: c.Sync.RetryInterval,
	}
}

// InitParams returns the time-sync initiator configuration.
func (c *Config) InitParams() sntpcore.Params {
	return sntpcore.Params{
		Server:       c.Server,
		Timezone:     c.Timezone,
		StartupDelay: c.StartupDelay,
	}
}

func (c *Config) applyEnv(lookupEnv func(string) (string, bool)) {
	for name, dst := range map[string]*string{
		"LOCAL_CLOCK_SERVER":   &c.Server,
		"LOCAL_CLOCK_QUERIER":  &c.Querier,
		"LOCAL_CLOCK_POLICY":   &c.Policy,
		"LOCAL_CLOCK_DB_PATH":  &c.DBPath,
		"LOCAL_CLOCK_LOG_PATH": &c.LogPath,
		"INFLUXDB_URL":         &c.InfluxDB.URL,
		"INFLUXDB_ORG":         &c.InfluxDB.Org,
		"INFLUXDB_BUCKET":      &c.InfluxDB.Bucket,
		"INFLUXDB_API_TOKEN":   &c.InfluxDB.Token,
	} {
		if value, ok := lookupEnv(name); ok && value != "" {
			*dst = value
		}
	}
}
