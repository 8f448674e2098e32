package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cosmos-newsdesk/internal/media"
	"cosmos-newsdesk/internal/scheduler"
	"cosmos-newsdesk/internal/server"
	"cosmos-newsdesk/internal/trusted"
	"cosmos-newsdesk/internal/verify"
	"cosmos-newsdesk/worker"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and background workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		mediaStore, err := media.NewStore(cfg.Media.UploadDir)
		if err != nil {
			return err
		}

		policy, err := buildPolicy(cfg, store, mediaStore)
		if err != nil {
			return err
		}

		var checker *verify.CrossChecker
		if cfg.OpenAI.APIKey != "" {
			checker = verify.New(verify.Config{
				APIKey:  cfg.OpenAI.APIKey,
				Model:   cfg.OpenAI.Model,
				BaseURL: cfg.OpenAI.BaseURL,
			})
		}

		ws := []worker.Worker{
			server.New(cfg.Server.Addr, store, mediaStore, policy, checker),
		}

		if cfg.Trusted.URL != "" {
			interval, err := time.ParseDuration(cfg.Trusted.FetchInterval)
			if err != nil {
				return fmt.Errorf("invalid trusted.fetch_interval: %w", err)
			}
			ttl, err := time.ParseDuration(cfg.Trusted.CacheTTL)
			if err != nil {
				return fmt.Errorf("invalid trusted.cache_ttl: %w", err)
			}
			slog.Info("starting headline collector", "url", cfg.Trusted.URL, "interval", interval)
			ws = append(ws, &worker.HeadlineCollector{
				Client:   trusted.NewClient(cfg.Trusted.URL, cfg.Trusted.Limit, 10*time.Second),
				Store:    store,
				Interval: interval,
				TTL:      ttl,
			})
		}

		sched := scheduler.New()
		if err := sched.Add("purge-sweep", cfg.Sweep.Schedule, func(ctx context.Context) error {
			rep, err := policy.SweepAndPurge(ctx)
			if err != nil {
				return err
			}
			slog.Info("sweep: completed", "purged", rep.Purged(), "failed", len(rep.Failures))
			return nil
		}); err != nil {
			return err
		}
		ws = append(ws, sched)

		// One-time sweep at startup so restarts catch anything the last
		// run missed.
		startupCtx, cancelStartup := context.WithTimeout(context.Background(), time.Minute)
		rep, err := policy.SweepAndPurge(startupCtx)
		cancelStartup()
		if err != nil {
			slog.Error("sweep: startup run failed", "error", err)
		} else if rep.Purged() > 0 {
			slog.Info("sweep: startup run purged items", "purged", rep.Purged())
		}

		mgr := worker.NewManager(ws...)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			slog.Info("received signal, shutting down", "signal", s.String())
			cancel()
		}()

		slog.Info("serving",
			"addr", cfg.Server.Addr,
			"backend", cfg.Storage.Backend,
			"threshold", cfg.Moderation.Threshold,
			"sweep_schedule", cfg.Sweep.Schedule)
		return mgr.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
