package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventenrollment/config"
	_ "eventenrollment/docs"
	"eventenrollment/internal/adapters/auth"
	"eventenrollment/internal/adapters/tickets"
	"eventenrollment/internal/adapters/users"
	deliveryhttp "eventenrollment/internal/delivery/http"
	"eventenrollment/internal/delivery/http/controllers"
	"eventenrollment/internal/delivery/http/middleware"
	"eventenrollment/internal/domain"
	"eventenrollment/internal/metrics"
	"eventenrollment/internal/repository/postgres"
	"eventenrollment/internal/services"

	_ "github.com/lib/pq"
)

// @title Event Enrollment API
// @version 1.0
// @description Event listing and capacity-bounded enrollment.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = db.PingContext(pingCtx)
	cancel()
	if err != nil {
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}

	m := metrics.New()

	var directory domain.UserDirectory = users.NewHTTPDirectory(cfg.UsersBaseURL, cfg.UsersPath, cfg.IdentityTimeout)
	if cfg.RedisAddr != "" {
		rdb := users.NewRedisClient(cfg.RedisAddr)
		defer rdb.Close()
		directory = users.NewCachedDirectory(directory, rdb, cfg.IdentityCacheTTL, logger)
		logger.Info("user profile cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.IdentityCacheTTL)
	}
	reserver := tickets.NewHTTPReserver(cfg.TicketsBaseURL, cfg.TicketingTimeout)

	eventRepo := postgres.NewEventRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)

	eventService := services.NewEventService(eventRepo, categoryRepo, directory, m, logger, cfg.ContextTimeout)
	enrollmentService := services.NewEnrollmentService(eventRepo, directory, reserver, m, logger,
		domain.PaymentMethod(cfg.DefaultPaymentMethod), cfg.ContextTimeout)
	categoryService := services.NewCategoryService(categoryRepo, cfg.ContextTimeout)

	mux := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Events:      controllers.NewEventController(logger, eventService),
		Enrollments: controllers.NewEnrollmentController(logger, enrollmentService),
		Categories:  controllers.NewCategoryController(logger, categoryService),
	}, auth.NewJWTVerifier(cfg.JWTSecret), m.Handler(), logger)

	handler := middleware.LoggingMiddleware(logger,
		middleware.CORS(cfg.CORSAllowedOrigins,
			middleware.Instrument(m, mux)))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	sig := <-stop
	logger.Info("shutting down", "signal", sig.String())

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
	logger.Info("server stopped")
}
