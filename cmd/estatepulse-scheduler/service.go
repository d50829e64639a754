// Package main provides the scheduler service that sweeps due campaigns and
// time based workflows.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/josh9381/estatepulse/pkg/automation"
	"github.com/josh9381/estatepulse/pkg/cache"
	"github.com/josh9381/estatepulse/pkg/campaign"
	"github.com/josh9381/estatepulse/pkg/cmd"
	"github.com/josh9381/estatepulse/pkg/eventbus"
	"github.com/josh9381/estatepulse/pkg/persistence"
	"github.com/josh9381/estatepulse/pkg/protocol"
)

type Service struct {
	id        string
	scheduler *campaign.Scheduler
	logger    *slog.Logger
}

func NewService(
	id string,
	store persistence.Persistence,
	deps protocol.Dependencies,
	eventBus eventbus.EventBus,
	redisURL string,
	interval time.Duration,
	logger *slog.Logger,
) *Service {
	registry := cmd.NewRegistry(logger, deps)
	engine := automation.NewEngine(store, registry, eventBus, logger)
	executor := campaign.NewExecutor(store, deps.Email, deps.SMS, eventBus, logger)

	var statsCache cache.Cache

	if redisURL != "" {
		redisCache, err := cache.NewRedisCache(redisURL, logger)
		if err != nil {
			logger.Warn("Stats cache disabled, redis unavailable", "error", err)
		} else {
			statsCache = redisCache
		}
	}

	scheduler := campaign.NewScheduler(store, executor, engine, statsCache, eventBus, logger).
		WithInterval(interval)

	return &Service{
		id:        id,
		scheduler: scheduler,
		logger:    logger.With("module", "scheduler_service"),
	}
}

// Start runs the sweep loop until the process receives SIGINT or SIGTERM.
func (s *Service) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.handleSignals(cancel)

	s.logger.Info("Starting scheduler service")

	if err := s.scheduler.Run(ctx); err != nil && ctx.Err() == nil {
		s.logger.Error("Scheduler stopped unexpectedly", "error", err)
	}
}

func (s *Service) handleSignals(cancel context.CancelFunc) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-signals
		s.logger.Info("Received signal, shutting down gracefully", "signal", sig)
		cancel()
	}()
}
