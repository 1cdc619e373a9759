package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"survey-assessment-service/internal/app"
	"survey-assessment-service/internal/config"
	"survey-assessment-service/internal/domain"
	"survey-assessment-service/internal/infra/memory"
	pggateway "survey-assessment-service/internal/infra/postgres"
	redisinfra "survey-assessment-service/internal/infra/redis"
	transport "survey-assessment-service/internal/transport/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the survey server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

// surveyGateway is the full data access surface a store implementation provides.
type surveyGateway interface {
	app.ParticipantStore
	app.ResponseStore
	ListResponses(ctx context.Context) ([]domain.SurveyResponse, error)
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	sessionTTL := config.TTLDuration(cfg.Session.TTL, 30*time.Minute)
	statsTTL := config.TTLDuration(cfg.Stats.TTL, 30*time.Second)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var gateway surveyGateway = memory.NewGateway()
	if pool != nil {
		gateway = pggateway.NewGateway(pool)
	}

	var sessions app.SessionStore = memory.NewSessionStore()
	if redisClient != nil {
		sessions = redisinfra.NewSessionStore(redisClient, sessionTTL)
	}

	var responseSource app.ResponseSource
	if redisClient != nil {
		responseSource = redisinfra.NewResponseCache(redisClient, gateway, statsTTL)
	} else {
		responseSource = memory.NewResponseCache(gateway, statsTTL)
	}

	bank := domain.DefaultQuestionBank()
	registration := app.NewRegistrationService(gateway)
	survey := app.NewSurveyService(bank, sessions, gateway, gateway)
	admin := app.NewAdminService(bank, responseSource)

	handler, err := transport.NewHandler(registration, survey, admin)
	if err != nil {
		return err
	}

	router := mux.NewRouter()
	handler.Register(router, cfg.Assets.Dir)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting survey service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if pool != nil {
		defer pool.Close()
	}
	return server.Shutdown(shutdownCtx)
}
