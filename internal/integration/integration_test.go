package integration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"survey-assessment-service/internal/app"
	"survey-assessment-service/internal/domain"
	pggateway "survey-assessment-service/internal/infra/postgres"
	"survey-assessment-service/internal/infra/postgres/migrations"
	infraredis "survey-assessment-service/internal/infra/redis"
	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

func TestSurveyFlowEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	runMigrations(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	gateway := pggateway.NewGateway(pool)

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	sessionStore := infraredis.NewSessionStore(redisClient, 5*time.Minute)
	responseCache := infraredis.NewResponseCache(redisClient, gateway, 5*time.Second)

	bank := domain.DefaultQuestionBank()
	registration := app.NewRegistrationService(gateway)
	survey := app.NewSurveyService(bank, sessionStore, gateway, gateway)
	admin := app.NewAdminService(bank, responseCache)

	participant, err := registration.Register(ctx, "tester1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if participant.Username != "tester1" {
		t.Fatalf("unexpected participant %+v", participant)
	}
	if _, err := registration.Register(ctx, "TESTER1"); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	for _, question := range bank {
		for _, option := range question.Options {
			if option.Correct {
				if _, err := survey.SelectAnswer(ctx, "tester1", question.ID, option.ID); err != nil {
					t.Fatalf("answer %s: %v", question.ID, err)
				}
			}
		}
		if _, err := survey.Next(ctx, "tester1"); err != nil {
			t.Fatalf("next after %s: %v", question.ID, err)
		}
	}

	result, err := survey.Submit(ctx, "tester1")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 10 || result.Percentage != 100 || result.ResultCategory != domain.CategoryExcellent {
		t.Fatalf("unexpected result %+v", result)
	}

	if _, err := survey.Submit(ctx, "tester1"); err == nil {
		t.Fatalf("expected second submit to fail")
	}

	stored, err := gateway.GetResponseByParticipantID(ctx, participant.ID)
	if err != nil {
		t.Fatalf("lookup response: %v", err)
	}
	if stored == nil || stored.PercentageScore != 100 || len(stored.Answers) != 10 {
		t.Fatalf("unexpected stored response %+v", stored)
	}

	dashboard, err := admin.Refresh(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(dashboard.Responses) != 1 {
		t.Fatalf("expected one response, got %d", len(dashboard.Responses))
	}
	stats := dashboard.Statistics
	if stats == nil {
		t.Fatalf("expected statistics")
	}
	if stats.TotalParticipants != 1 || stats.AverageScore != 100.00 || stats.PassRate != 100.00 {
		t.Fatalf("unexpected statistics %+v", stats)
	}
	if stats.TopCategory != domain.CategoryExcellent {
		t.Fatalf("expected top category Excellent, got %q", stats.TopCategory)
	}
}

func runMigrations(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, migrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "survey", "POSTGRES_PASSWORD": "surveypass", "POSTGRES_DB": "surveydb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://survey:surveypass@%s:%s/surveydb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
