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

	"github.com/DhavalSuthar-24/crease/config"
	_ "github.com/DhavalSuthar-24/crease/docs"
	"github.com/DhavalSuthar-24/crease/internal/live"
	"github.com/DhavalSuthar-24/crease/internal/match"
	"github.com/DhavalSuthar-24/crease/routes"
)

// @title Crease Live Scoring API
// @version 1.0
// @description Ball-by-ball cricket scoring with live updates 🏏.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := config.Initialize(); err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}
	cfg := config.GetConfig()

	var repo match.MatchRepository
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		if err := config.DB.AutoMigrate(match.Models()...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		logger.Info("AutoMigrate successful")
		repo = match.NewGormMatchRepository(config.DB)
	default:
		logger.Warn("using in-memory storage, matches are lost on restart")
		repo = match.NewMemoryMatchRepository()
	}

	fanout, hub, err := buildSinks(cfg, logger)
	if err != nil {
		return err
	}
	defer fanout.Close()

	dispatcher := match.NewDispatcher(fanout, cfg.Scoring.DispatchBuffer, logger)
	go dispatcher.Run(ctx)

	service := match.NewService(repo, dispatcher, logger)

	r := routes.SetupRoutes(routes.Options{
		Service:      service,
		Hub:          hub,
		DefaultOvers: cfg.Scoring.DefaultOvers,
		FrontendURL:  cfg.App.FrontendURL,
		ScorerSecret: cfg.Auth.ScorerJWTSecret,
		ScorerRoles:  cfg.Auth.ScorerRoles,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "port", cfg.App.Port, "env", cfg.App.Env, "sinks", fanout.Names())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildSinks always registers the websocket hub and adds the brokers that are configured.
func buildSinks(cfg *config.Config, logger *slog.Logger) (*live.Fanout, *live.Hub, error) {
	fanout := live.NewFanout(logger)

	hub := live.NewHub(logger, cfg.App.FrontendURL)
	fanout.Add("websocket", hub)

	if cfg.Live.RedisURL != "" {
		rp, err := live.NewRedisPublisher(cfg.Live.RedisURL, cfg.Live.RedisStream, time.Duration(cfg.Live.ScoreCacheTTL)*time.Second)
		if err != nil {
			fanout.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		fanout.Add("redis", rp)
	}

	if cfg.Live.KafkaEnabled {
		fanout.Add("kafka", live.NewKafkaPublisher(cfg.Live.KafkaBrokers, cfg.Live.KafkaTopic, logger))
	}

	if cfg.Live.AMQPURL != "" {
		ap, err := live.NewAMQPPublisher(cfg.Live.AMQPURL, cfg.Live.AMQPExchange, logger)
		if err != nil {
			fanout.Close()
			return nil, nil, fmt.Errorf("connect amqp: %w", err)
		}
		fanout.Add("amqp", ap)
	}

	return fanout, hub, nil
}
