package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"topicbot/api"
	"topicbot/common"
	"topicbot/config"
	"topicbot/orchestrator"
	"topicbot/scheduler"
	"topicbot/shared/kafka"
	"topicbot/types"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	var opts serverOptions
	ok, err := config.Parse(&opts, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if !ok {
		return
	}

	logger := common.NewLogger(opts.LogLevel, opts.Pretty)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := orchestrator.Build(ctx, opts.Options, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize pipeline")
	}
	defer app.Close()

	registry := app.Pipeline.Registry()
	logger.Info().Int("feeds", len(registry.Feeds)).Str("history", opts.HistoryBackend).Msg("Pipeline ready")

	server := api.NewServer(ctx, app.Manager, app.Pipeline.History().Store(), app.Index, logger)
	httpServer := &http.Server{
		Addr:    ":" + opts.Port,
		Handler: api.NewRouter(server),
	}

	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("Starting API server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	var sched *scheduler.Scheduler
	if !opts.NoCron {
		sched = scheduler.New(app.Manager, opts.Count, logger)
		if err := sched.Start(ctx, opts.Schedule); err != nil {
			logger.Fatal().Err(err).Msg("Failed to start cron")
		}
		logger.Info().Time("next", sched.Next()).Msg("Scheduled discovery")
	}

	var consumer *kafka.Consumer
	if opts.Consume && opts.KafkaEnabled() {
		consumer, err = kafka.NewConsumer(kafka.ConsumerConfig{
			Brokers: opts.KafkaBrokers,
			Topic:   opts.RequestsTopic,
			GroupID: opts.GroupID,
			Handler: &kafka.TypedMessageHandler[types.DiscoverRequest]{
				Process:    app.Manager.HandleRequest,
				AlwaysMark: true,
			},
			Logger: logger,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to create Kafka consumer")
		} else if err := consumer.Start(ctx); err != nil {
			logger.Warn().Err(err).Msg("Failed to start Kafka consumer")
		}
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("Shutting down")
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Shutdown error")
	}
	if sched != nil {
		sched.Stop()
	}
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Error().Err(err).Msg("Kafka consumer close error")
		}
	}
	logger.Info().Msg("Server stopped")
}
