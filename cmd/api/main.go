package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mydaylogs/mydaylogs-api/internal/config"
	"github.com/mydaylogs/mydaylogs-api/internal/domain/assignment"
	"github.com/mydaylogs/mydaylogs-api/internal/domain/masteradmin"
	"github.com/mydaylogs/mydaylogs-api/internal/domain/organization"
	"github.com/mydaylogs/mydaylogs-api/internal/domain/profile"
	"github.com/mydaylogs/mydaylogs-api/internal/domain/subscription"
	"github.com/mydaylogs/mydaylogs-api/internal/middleware"
	"github.com/mydaylogs/mydaylogs-api/internal/pkg/billing"
	"github.com/mydaylogs/mydaylogs-api/internal/pkg/database"
	"github.com/mydaylogs/mydaylogs-api/internal/pkg/email"
	"github.com/mydaylogs/mydaylogs-api/internal/pkg/jwt"
	pkgresponse "github.com/mydaylogs/mydaylogs-api/internal/pkg/response"
	"github.com/mydaylogs/mydaylogs-api/internal/pkg/session"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting MyDayLogs API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	sessionCodec := session.NewCodec(cfg.MasterSessionSecret, cfg.MasterSessionTTL)

	mailer := email.NewService(email.ClientConfig{
		APIKey:    cfg.EmailAPIKey,
		Endpoint:  cfg.EmailEndpoint,
		FromEmail: cfg.EmailFromAddr,
		FromName:  cfg.EmailFromName,
	})
	defer mailer.Close()

	billingClient := billing.NewClient(billing.Config{
		BaseURL:   cfg.BillingAPIURL,
		SecretKey: cfg.BillingSecretKey,
	})

	// ---------- Repositories ----------
	masterRepo := masteradmin.NewRepository(db)
	orgRepo := organization.NewRepository(db)
	profileRepo := profile.NewRepository(db)
	assignmentRepo := assignment.NewRepository(db)
	subscriptionRepo := subscription.NewRepository(db)

	// ---------- Services ----------
	masterService := masteradmin.NewService(masterRepo, masteradmin.MasterCredentials{
		Email:    cfg.MasterAdminEmail,
		Password: cfg.MasterAdminPassword,
	})
	gate := masteradmin.NewGate(sessionCodec, masterRepo)

	profileService := profile.NewService(profileRepo, redisClient, jwtService, mailer, cfg.SiteURL)
	orgService := organization.NewService(orgRepo, profileService)
	assignmentService := assignment.NewService(assignmentRepo)
	subscriptionService := subscription.NewService(subscriptionRepo, billingClient)

	// ---------- Handlers ----------
	masterHandler := masteradmin.NewHandler(masterService, gate, sessionCodec, mailer, cfg.IsProduction())
	orgHandler := organization.NewHandler(orgService, masterService)
	profileHandler := profile.NewHandler(profileService, masterService)
	assignmentHandler := assignment.NewHandler(assignmentService)
	subscriptionHandler := subscription.NewHandler(subscriptionService, gate, masterService)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.ClientIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", healthHandler(db, redisClient, cfg.HealthCheckSecret))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			pkgresponse.OK(w, map[string]string{"message": "pong"})
		})

		r.Mount("/auth", profileHandler.AuthRoutes())
		r.Mount("/profiles", profileHandler.Routes(authMiddleware))
		r.Mount("/assignments", assignmentHandler.Routes(authMiddleware))
		r.Mount("/reports", assignmentHandler.ReportRoutes(authMiddleware))
	})

	r.Route("/api/master", func(r chi.Router) {
		r.Mount("/", masterHandler.Routes())
		r.Mount("/organizations", orgHandler.Routes(gate.RequireMaster))
		r.Mount("/users", profileHandler.MasterRoutes(gate.RequireMaster))
		r.Mount("/subscriptions", subscriptionHandler.Routes(gate.RequireMaster))
		r.Mount("/payments", subscriptionHandler.PaymentRoutes(gate.RequireMaster))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
