package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/open-control-systems/local-clock/components/config"
	"github.com/open-control-systems/local-clock/components/core"
)

type options struct {
	configPath   string
	server       string
	policy       string
	maxAttempts  int
	pollInterval time.Duration
	dbPath       string
	logPath      string
}

func main() {
	appContext, cancelFunc := signal.NotifyContext(context.Background(),
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	defer cancelFunc()

	if err := newRootCommand().ExecuteContext(appContext); err != nil {
		cancelFunc()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "local-clock",
		Short:        "Synchronize with a time server and convert UTC to local time",
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	flags.StringVar(&opts.server, "server", "", "Time server hostname or HTTP endpoint URL")
	flags.StringVar(&opts.policy, "policy", "", "DST policy: cet, cet-calendar, utc, tz:<zone>")
	flags.IntVar(&opts.maxAttempts, "max-attempts", 0, "Maximum number of time reads, 0 is unlimited")
	flags.DurationVar(&opts.pollInterval, "poll-interval", 0, "Delay between time reads")
	flags.StringVar(&opts.dbPath, "db", "", "Sync journal database path")
	flags.StringVar(&opts.logPath, "log-path", "", "Log file path")

	rootCmd.AddCommand(
		newNowCommand(opts),
		newDstCommand(opts),
		newSyncCommand(opts),
		newServeCommand(opts),
		newLastCommand(opts),
	)

	return rootCmd
}

// load reads the configuration file and the environment, then applies the
// explicitly set command line flags.
func (o *options) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.configPath, os.LookupEnv)
	if err != nil {
		return config.Config{}, err
	}

	o.apply(cmd, &cfg)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	if err := core.SetLogFile(cfg.LogPath); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to setup log file: ", err)
	}

	return cfg, nil
}

func (o *options) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("server") {
		cfg.Server = o.server
	}
	if flags.Changed("policy") {
		cfg.Policy = o.policy
	}
	if flags.Changed("max-attempts") {
		cfg.Poll.MaxAttempts = o.maxAttempts
	}
	if flags.Changed("poll-interval") {
		cfg.Poll.Interval = o.pollInterval
	}
	if flags.Changed("db") {
		cfg.DBPath = o.dbPath
	}
	if flags.Changed("log-path") {
		cfg.LogPath = o.logPath
	}
}
