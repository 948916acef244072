package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fintrack/internal/amqp"
	"fintrack/internal/backend"
	"fintrack/internal/cli"
	"fintrack/internal/config"
	"fintrack/internal/log"
	"fintrack/internal/worker"

	"golang.org/x/sync/errgroup"
)

func main() {
	cli.LoadEnvFile()

	cfg := cli.LoadAndValidateConfig(log.New(log.DefaultConfig()))
	if cfg.AMQPURL == "" || cfg.MirrorBackend == "" {
		fmt.Fprintln(os.Stderr, "fintrack-worker needs AMQP_URL and MIRROR_BACKEND")
		os.Exit(1)
	}

	logger, closeLog, err := cli.SetupLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, logger)
	stop()
	if err != nil {
		logger.LogError(context.Background(), "Worker stopped with error", err, log.OpShutdown, nil)
		closeLog()
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
	closeLog()
}

func run(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	logger.Info("Starting fintrack-worker", "mirror_backend", cfg.MirrorBackend)

	mirrorConfig, err := backend.MirrorFromAppConfig(cfg)
	if err != nil {
		return err
	}
	result, err := backend.NewFactory(logger).CreateBackend(ctx, mirrorConfig)
	if err != nil {
		return fmt.Errorf("create mirror backend: %w", err)
	}
	if err := result.Ledger.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize mirror backend: %w", err)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		return fmt.Errorf("initialize AMQP client: %w", err)
	}
	defer client.Close()

	mirror := worker.NewMirrorWorker(result.Ledger, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return client.ConsumeTransactionRecorded(gctx, mirror.HandleTransactionRecorded)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down worker", "reason", context.Cause(gctx))
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
