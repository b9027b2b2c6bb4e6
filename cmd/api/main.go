package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"recruitment-hub/internal/access"
	"recruitment-hub/internal/config"
	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/eventbus"
	"recruitment-hub/internal/handler"
	"recruitment-hub/internal/middleware"
	"recruitment-hub/internal/pkg/logger"
	"recruitment-hub/internal/pkg/ratelimit"
	"recruitment-hub/internal/repository"
	"recruitment-hub/internal/service"
	"recruitment-hub/internal/service/audit"
	"recruitment-hub/internal/service/auth"
)

const shutdownTimeout = 10 * time.Second

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.Environment, cfg.LogLevel)
	if envErr != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	rdb, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to Redis, caching, distributed rate limiting and event relay are disabled")
		rdb = nil
	} else {
		defer rdb.Close()
	}

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MinIO")
	}

	gate, err := access.NewGate()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build access gate")
	}

	bus := eventbus.New(eventbus.WithBufferSize(cfg.EventBufferSize))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var relay *eventbus.Relay
	if cfg.EventRelayEnabled && rdb != nil {
		relay = eventbus.NewRelay(bus, rdb, cfg.EventRelayChannel)
		if err := relay.Run(ctx); err != nil {
			log.Error().Err(err).Msg("event relay not started")
			relay = nil
		}
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, bus, gate, rdb, minioClient, cfg)
	handlers := handler.NewHandlers(services, cfg.SSEHeartbeat)

	recorder := audit.NewRecorder(bus, repos.AuditLog, bus.ID())
	recorderDone := make(chan struct{})
	go func() {
		defer close(recorderDone)
		if err := recorder.Run(ctx); err != nil {
			log.Error().Err(err).Msg("audit recorder stopped")
		}
	}()

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    int(cfg.ResumeMaxSize) + 1<<20,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	authLimiter := ratelimit.New(rdb, cfg.AuthRateLimit, cfg.AuthRateWindow, "ratelimit:auth:")
	setupRoutes(app, handlers, services.Auth, gate, authLimiter, db, rdb)

	go func() {
		log.Info().Str("port", cfg.Port).Str("environment", cfg.Environment).Msg("server starting")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	// Closing the bus first ends every open event stream so the server can drain.
	bus.Close()
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	<-recorderDone
	if relay != nil {
		relay.Wait()
	}
}

func setupRoutes(
	app *fiber.App,
	h *handler.Handlers,
	authService auth.Service,
	gate access.Gate,
	authLimiter ratelimit.Limiter,
	db *sqlx.DB,
	rdb *redis.Client,
) {
	app.Get("/health", healthCheck(db, rdb))

	v1 := app.Group("/api/v1")
	v1.Get("/health", healthCheck(db, rdb))

	authRoutes := v1.Group("/auth", middleware.RateLimit(authLimiter))
	authRoutes.Post("/register", h.Auth.Register)
	authRoutes.Post("/login", h.Auth.Login)

	v1.Get("/vacancies", h.Vacancy.List)
	v1.Get("/vacancies/:id", h.Vacancy.GetByID)

	subs := v1.Group("/subscriptions", middleware.StreamAuth(authService))
	subs.Get("/applications/created", h.Subscription.ApplicationCreated)
	subs.Get("/applications/status", h.Subscription.ApplicationStatusUpdated)
	subs.Get("/interviews/scheduled", h.Subscription.InterviewScheduled)
	subs.Get("/notifications", h.Subscription.NotificationReceived)

	protected := v1.Group("", middleware.AuthRequired(authService))
	hrOnly := middleware.RequireRole(gate, domain.RoleHR)
	candidateOnly := middleware.RequireRole(gate, domain.RoleCandidate)

	users := protected.Group("/users")
	users.Get("/me", h.Account.Me)
	users.Put("/me", h.Account.Update)
	users.Delete("/me", h.Account.Delete)
	users.Get("/", h.Account.List)
	users.Get("/:id", h.Account.GetByID)

	protected.Get("/my/vacancies", hrOnly, h.Vacancy.ListMine)
	vacancies := protected.Group("/vacancies", hrOnly)
	vacancies.Post("/", h.Vacancy.Create)
	vacancies.Put("/:id", h.Vacancy.Update)
	vacancies.Delete("/:id", h.Vacancy.Delete)

	applications := protected.Group("/applications")
	applications.Get("/", hrOnly, h.Application.List)
	applications.Get("/mine", candidateOnly, h.Application.ListMine)
	applications.Post("/resume", candidateOnly, h.Application.UploadResume)
	applications.Get("/:id", h.Application.GetByID)
	applications.Post("/", candidateOnly, h.Application.Apply)
	applications.Patch("/:id", hrOnly, h.Application.Update)
	applications.Delete("/:id", candidateOnly, h.Application.Withdraw)

	interviews := protected.Group("/interviews")
	interviews.Get("/", h.Interview.List)
	interviews.Get("/mine", h.Interview.ListMine)
	interviews.Get("/:id", h.Interview.GetByID)
	interviews.Get("/:id/rating", h.Interview.Rating)
	interviews.Post("/", hrOnly, h.Interview.Schedule)
	interviews.Patch("/:id", hrOnly, h.Interview.Update)
	interviews.Post("/:id/cancel", hrOnly, h.Interview.Cancel)

	feedback := protected.Group("/feedback")
	feedback.Get("/", h.Feedback.List)
	feedback.Get("/:id", h.Feedback.GetByID)
	feedback.Post("/", hrOnly, h.Feedback.Submit)
	feedback.Put("/:id", hrOnly, h.Feedback.Update)
	feedback.Delete("/:id", hrOnly, h.Feedback.Delete)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/count", h.Notification.Count)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)
	notifications.Delete("/:id", h.Notification.Delete)

	protected.Get("/dashboard/stats", h.Dashboard.GetStats)
	protected.Get("/audit/recent", hrOnly, h.Audit.Recent)
}

func healthCheck(db *sqlx.DB, rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		status := fiber.Map{"status": "ok", "database": "ok", "redis": "disabled"}
		code := fiber.StatusOK
		if err := db.PingContext(ctx); err != nil {
			status["status"], status["database"] = "degraded", "unreachable"
			code = fiber.StatusServiceUnavailable
		}
		if rdb != nil {
			status["redis"] = "ok"
			if err := rdb.Ping(ctx).Err(); err != nil {
				status["redis"] = "unreachable"
			}
		}
		return c.Status(code).JSON(status)
	}
}
