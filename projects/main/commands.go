package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/open-control-systems/local-clock/components/config"
	"github.com/open-control-systems/local-clock/components/core"
	"github.com/open-control-systems/local-clock/components/dst"
	"github.com/open-control-systems/local-clock/components/http/htcore"
	"github.com/open-control-systems/local-clock/components/pipeline/pipclock"
	"github.com/open-control-systems/local-clock/components/pipeline/piphttp"
	"github.com/open-control-systems/local-clock/components/sntp/sntpcore"
	"github.com/open-control-systems/local-clock/components/status"
	"github.com/open-control-systems/local-clock/components/system/syscore"
)

const apiBasePath = "/api/v1/system"

func newNowCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Print the local time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}

			closer := &core.FanoutCloser{}
			defer closer.Close()

			record, err := compose(cmd, closer, cfg)
			if err != nil {
				return err
			}

			printRecord(cmd, record)

			return nil
		},
	}
}

func newDstCommand(opts *options) *cobra.Command {
	now := time.Now().UTC()

	var year, month, day, hour int

	cmd := &cobra.Command{
		Use:   "dst",
		Short: "Evaluate the DST policy for the UTC date and hour",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}

			policy, err := dst.Lookup(cfg.Policy)
			if err != nil {
				return err
			}

			summer := policy.IsSummerTime(year, month, day, hour)

			fmt.Fprintf(cmd.OutOrStdout(), "policy=%s summer=%t offset=%d zone=%s\n",
				policy.Name(), summer, policy.Offset(summer), policy.ZoneName(summer))

			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", now.Year(), "UTC year")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "UTC month, 1..12")
	cmd.Flags().IntVar(&day, "day", now.Day(), "UTC day of month")
	cmd.Flags().IntVar(&hour, "hour", now.Hour(), "UTC hour, 0..23")

	return cmd
}

func newSyncCommand(opts *options) *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize once and optionally set the host clock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}

			closer := &core.FanoutCloser{}
			defer closer.Close()

			record, err := compose(cmd, closer, cfg)
			if err != nil {
				return err
			}

			printRecord(cmd, record)

			if !apply {
				return nil
			}

			if err := (&syscore.UnixSystemClock{}).SetTimestamp(record.UTC); err != nil {
				return fmt.Errorf("failed to set system time: %w", err)
			}

			core.LogInf.Printf("local-clock: system time updated: utc=%d\n", record.UTC)

			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Set the host clock to the obtained UTC time")

	return cmd
}

func newServeCommand(opts *options) *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local time over HTTP until a signal arrives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("host") {
				cfg.HTTP.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.HTTP.Port = port
			}

			ctx := cmd.Context()

			closer := &core.FanoutCloser{}
			defer closer.Close()

			journalPipeline, err := pipclock.NewJournalPipeline(ctx, closer, cfg)
			if err != nil {
				return err
			}

			clockPipeline, err := pipclock.NewClockPipeline(
				ctx, closer, journalPipeline.GetSyncHandler(), cfg)
			if err != nil {
				return err
			}

			if err := clockPipeline.Start(ctx); err != nil {
				return err
			}

			serverPipeline, err := piphttp.NewServerPipeline(
				closer,
				clockPipeline.GetLocalClock(),
				journalPipeline.GetJournal(),
				piphttp.ServerPipelineParams{
					Server: htcore.ServerParams{
						Host: cfg.HTTP.Host,
						Port: cfg.HTTP.Port,
					},
					BasePath: apiBasePath,
					Timeout:  cfg.HTTP.Timeout,
				},
			)
			if err != nil {
				return err
			}

			serverPipeline.Start()

			<-ctx.Done()

			core.LogInf.Println("local-clock: shutting down")

			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "HTTP server host")
	cmd.Flags().IntVar(&port, "port", 0, "HTTP server port")

	return cmd
}

func newLastCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "last",
		Short: "Print the last persisted conversion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}

			closer := &core.FanoutCloser{}
			defer closer.Close()

			journalPipeline, err := pipclock.NewJournalPipeline(cmd.Context(), closer, cfg)
			if err != nil {
				return err
			}

			record, err := journalPipeline.GetJournal().Last()
			if err != nil {
				if errors.Is(err, status.StatusNoData) {
					return fmt.Errorf("no sync record: db=%s: %w", cfg.DBPath, err)
				}

				return err
			}

			buf, err := json.MarshalIndent(record, "", "  ")
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(buf))

			return nil
		},
	}
}

func compose(
	cmd *cobra.Command,
	closer *core.FanoutCloser,
	cfg config.Config,
) (sntpcore.SyncRecord, error) {
	ctx := cmd.Context()

	journalPipeline, err := pipclock.NewJournalPipeline(ctx, closer, cfg)
	if err != nil {
		return sntpcore.SyncRecord{}, err
	}

	clockPipeline, err := pipclock.NewClockPipeline(
		ctx, closer, journalPipeline.GetSyncHandler(), cfg)
	if err != nil {
		return sntpcore.SyncRecord{}, err
	}

	if err := clockPipeline.Start(ctx); err != nil {
		return sntpcore.SyncRecord{}, err
	}

	return clockPipeline.GetLocalClock().Compose(ctx)
}

func printRecord(cmd *cobra.Command, record sntpcore.SyncRecord) {
	fmt.Fprintf(cmd.OutOrStdout(), "local:  %s %s\nutc:    %s\nsummer: %t\nserver: %s\n",
		sntpcore.RecordTime(record).Format(time.DateTime),
		record.Zone,
		time.Unix(record.UTC, 0).UTC().Format(time.DateTime),
		record.Summer,
		record.Server)
}
