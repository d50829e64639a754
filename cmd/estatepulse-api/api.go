// Package main provides the EstatePulse API server.
package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/josh9381/estatepulse/pkg/automation"
	"github.com/josh9381/estatepulse/pkg/cache"
	"github.com/josh9381/estatepulse/pkg/campaign"
	"github.com/josh9381/estatepulse/pkg/cmd"
	"github.com/josh9381/estatepulse/pkg/eventbus"
	"github.com/josh9381/estatepulse/pkg/persistence"
	"github.com/josh9381/estatepulse/pkg/protocol"
	"github.com/josh9381/estatepulse/pkg/web"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	deps        protocol.Dependencies
	eventBus    eventbus.EventBus
	validate    *validator.Validate
	redisURL    string
}

func NewAPI(
	logger *slog.Logger,
	store persistence.Persistence,
	deps protocol.Dependencies,
	eventBus eventbus.EventBus,
	redisURL string,
) *API {
	return &API{
		logger:      logger,
		persistence: store,
		deps:        deps,
		eventBus:    eventBus,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		redisURL:    redisURL,
	}
}

func (a *API) App() *fiber.App {
	registry := cmd.NewRegistry(a.logger, a.deps)
	engine := automation.NewEngine(a.persistence, registry, a.eventBus, a.logger)
	dispatcher := automation.NewDispatcher(a.persistence, engine, a.eventBus, a.logger)
	executor := campaign.NewExecutor(a.persistence, a.deps.Email, a.deps.SMS, a.eventBus, a.logger)

	var statsCache cache.Cache

	if a.redisURL != "" {
		redisCache, err := cache.NewRedisCache(a.redisURL, a.logger)
		if err != nil {
			a.logger.Warn("Stats cache disabled, redis unavailable", "error", err)
		} else {
			statsCache = redisCache
		}
	}

	scheduler := campaign.NewScheduler(a.persistence, executor, engine, statsCache, a.eventBus, a.logger)

	handlers := web.NewAPIHandlers(a.persistence, dispatcher, engine, scheduler, a.validate, a.logger)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("EstatePulse API")
	})

	app.Post("/triggers", handlers.ProcessTrigger)

	w := app.Group("/workflows")
	w.Get("/", handlers.GetWorkflows)
	w.Post("/", handlers.CreateWorkflow)
	w.Get("/:id", handlers.GetWorkflow)
	w.Delete("/:id", handlers.DeleteWorkflow)
	w.Post("/:id/execute", handlers.ExecuteWorkflow)
	w.Get("/:id/executions", handlers.GetWorkflowExecutions)

	app.Get("/campaigns/stats", handlers.GetCampaignStats)
	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	return app.Listen(":" + strconv.Itoa(port))
}
