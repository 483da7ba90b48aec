package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lysyi3m/post-comb/app/api"
	"github.com/lysyi3m/post-comb/app/cfg"
	"github.com/lysyi3m/post-comb/app/database"
	"github.com/lysyi3m/post-comb/app/feed"
	"github.com/lysyi3m/post-comb/app/notify"
	"github.com/lysyi3m/post-comb/app/tasks"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Post Comb stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	appCfg, err := cfg.Load(os.Args[1:])
	if err != nil {
		return err
	}
	if appCfg == nil {
		return nil
	}

	setupLogger(appCfg.Debug)

	slog.Info("Starting Post Comb", "version", appCfg.Version)

	matcher := feed.NewMatcher(appCfg.Keywords)
	slog.Info("Keywords parsed", "desired", matcher.Keywords().Desired, "undesired", matcher.Keywords().Undesired)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
	defer stop()

	store, err := database.Open(ctx, appCfg.Store)
	if err != nil {
		return fmt.Errorf("failed to open seen store: %w", err)
	}
	defer store.Close()
	slog.Info("Seen store ready", "location", appCfg.Store)

	httpClient := &http.Client{Timeout: appCfg.HTTPTimeout}

	poller := feed.NewPoller(appCfg.FeedURL, appCfg.PollInterval, httpClient, feed.NewParser(), appCfg.UserAgent)

	var notifier tasks.Notifier
	if appCfg.DryRun {
		notifier = notify.NewLog()
	} else {
		notifier = notify.NewTelegram(appCfg.TelegramAPI, appCfg.BotToken, httpClient)
	}

	ingest := tasks.NewIngestTask(poller, store, matcher, notifier, appCfg.ChatID)
	heartbeat := tasks.NewHeartbeatTask(appCfg.HeartbeatInterval)

	g, gctx := errgroup.WithContext(ctx)

	for _, task := range []tasks.TaskInterface{ingest, heartbeat} {
		g.Go(func() error {
			return tasks.Run(gctx, task)
		})
	}

	if appCfg.Port != "" {
		httpServer := &http.Server{
			Addr:         ":" + appCfg.Port,
			Handler:      api.NewServer(api.NewHandler(ingest, store, matcher.Keywords(), appCfg.Version)),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		}

		g.Go(func() error {
			slog.Info("Starting status server", "port", appCfg.Port)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("HTTP server error: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		})
	}

	slog.Info("Listening for new posts", "feed_url", appCfg.FeedURL)

	err = g.Wait()
	if ctx.Err() != nil {
		slog.Info("Shutdown signal received", "stats", ingest.Stats())
		return nil
	}

	return err
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
