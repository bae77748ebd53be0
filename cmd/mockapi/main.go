// Command mockapi runs the development backend for the event form client.
//
// @title Event Creator API
// @version 1.0
// @description Development backend for the event creation form.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventcreator/config"
	_ "eventcreator/docs"
	"eventcreator/internal/adapters/auth"
	"eventcreator/internal/adapters/broker"
	"eventcreator/internal/adapters/email"
	"eventcreator/internal/adapters/uploads"
	deliveryhttp "eventcreator/internal/delivery/http"
	"eventcreator/internal/delivery/http/controllers"
	"eventcreator/internal/delivery/http/middleware"
	"eventcreator/internal/domain"
	"eventcreator/internal/registry"
	"eventcreator/internal/repository/memory"
	"eventcreator/internal/repository/postgres"
	"eventcreator/internal/services"

	"github.com/redis/go-redis/v9"
)

func main() {
	issueToken := flag.String("issue-token", "", "print a bearer token for the given subject and exit")
	tokenTTL := flag.Duration("token-ttl", 30*24*time.Hour, "lifetime of a token printed by -issue-token")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(os.Stdout)

	if *issueToken != "" {
		if cfg.AuthSecret == "" {
			fmt.Fprintln(os.Stderr, "AUTH_SECRET must be set to issue tokens")
			os.Exit(1)
		}
		token, err := auth.NewJWTIssuer(cfg.AuthSecret).Issue(*issueToken, *tokenTTL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "issue token: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("mockapi stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		drafts  domain.DraftRepository
		events  domain.EventRepository
		modules domain.ModuleDataRepository
	)
	if cfg.DBUrl != "" {
		db, err := postgres.Open(ctx, cfg.DBUrl)
		if err != nil {
			return err
		}
		defer db.Close()
		drafts = postgres.NewDraftRepository(db)
		events = postgres.NewEventRepository(db)
		modules = postgres.NewModuleDataRepository(db)
		logger.Info("using postgres repositories")
	} else {
		drafts = memory.NewDraftRepository()
		events = memory.NewEventRepository()
		modules = memory.NewModuleDataRepository()
		logger.Info("using in-memory repositories")
	}

	stream := broker.NewNoopStream(logger)
	if len(cfg.KafkaBrokers) > 0 {
		ks := broker.NewKafkaStream(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		defer ks.Close()
		stream = ks
	}

	mailer := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		},
	}, logger)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	blobs, err := uploads.NewDiskStore(cfg.UploadDir)
	if err != nil {
		return err
	}

	eventController := controllers.NewEventController(logger,
		services.NewDraftService(drafts, services.DefaultTimeout),
		services.NewEventService(events, drafts, stream, emailService, services.EventServiceConfig{
			EventBaseURL: cfg.PublicEventBaseURL,
			NotifyEmail:  cfg.PublishNotifyEmail,
		}, logger))
	uploadController := controllers.NewUploadController(logger, services.NewUploadService(blobs, cfg.PublicBaseURL, logger))
	moduleController := controllers.NewModuleController(logger,
		services.NewModuleService(modules, registry.DefaultConfigs(), services.DefaultTimeout))

	var verifier domain.TokenVerifier
	if cfg.AuthSecret != "" {
		verifier = auth.NewJWTVerifier(cfg.AuthSecret)
	} else {
		logger.Warn("AUTH_SECRET not set, API routes are unauthenticated")
	}

	router := deliveryhttp.NewRouter(eventController, uploadController, moduleController, deliveryhttp.RouterConfig{
		Verifier: verifier,
		Latency:  cfg.Latency,
		Logger:   logger,
	})

	var redisClient redis.UniversalClient
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer client.Close()
		redisClient = client
	}
	limiterStore, err := middleware.NewLimiterStore(redisClient)
	if err != nil {
		return err
	}
	rateLimit, err := middleware.RateLimit(cfg.RateLimit, limiterStore, logger)
	if err != nil {
		return err
	}

	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSAllowedOrigins, rateLimit(router)))
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("mockapi listening", "addr", srv.Addr, "env", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
