//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"testing"
	"time"

	"booking-checkout/cmd/bootstrap"
	"booking-checkout/cmd/bootstrap/components"
	"booking-checkout/internal/infra/db"
	"booking-checkout/internal/pkg/config"
	"booking-checkout/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "checkout"
	pgPassword = "checkout"
	pgDatabase = "checkout_e2e"
	pgPort     = nat.Port("5432/tcp")
)

// startPostgres runs a throwaway postgres tuned for speed over durability and returns
// the settings the application needs to reach it.
func startPostgres(t *testing.T) config.DBConfig {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{string(pgPort)},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       pgDatabase,
			},
			Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=128m"},
			Cmd:   []string{"postgres", "-c", "fsync=off", "-c", "synchronous_commit=off"},
			WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
					pgUser, pgPassword, host, port.Port(), pgDatabase)
			}).WithStartupTimeout(time.Minute),
			Labels: map[string]string{"purpose": "checkout-e2e"},
		},
		Started: true,
	})
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err, "failed to start postgres container")

	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	port, err := ctr.MappedPort(ctx, pgPort)
	require.NoError(t, err)

	return config.DBConfig{
		Host:     host,
		Port:     port.Port(),
		User:     pgUser,
		Password: pgPassword,
		DBName:   pgDatabase,
		SSLMode:  "disable",
		TimeZone: "UTC",
	}
}

// e2eConfig keeps drafts in postgres and sends marketplace calls to the fake server.
func e2eConfig(dbCfg config.DBConfig, marketplaceURL string) config.Config {
	cfg := config.NewTestConfig()
	cfg.DB = dbCfg
	cfg.Draft.Backend = config.DraftBackendPostgres
	cfg.Backend.BaseURL = marketplaceURL
	cfg.Backend.Timeout = 2 * time.Second
	return cfg
}

// startApp wires the same fx graph as main, minus config loading and the listener.
func startApp(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()

	var router *gin.Engine
	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		bootstrap.MetricsModule,
		bootstrap.StorageModule,
		components.GatewayModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(startCtx), "failed to start application")

	t.Cleanup(func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(stopCtx); err != nil {
			t.Logf("stopping application: %v", err)
		}
	})
	return router
}

// SharedSuite boots postgres, the fake marketplace and the application once per suite.
// Every subtest starts from empty tables and a clean fake.
type SharedSuite struct {
	suite.Suite
	Router      *gin.Engine
	DB          *pgxpool.Pool
	Config      config.Config
	Marketplace *FakeMarketplace
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	s.Marketplace = NewFakeMarketplace(t)
	s.Config = e2eConfig(startPostgres(t), s.Marketplace.URL())
	s.Router = startApp(t, s.Config)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, closePool, err := db.Connect(ctx, s.Config.DB)
	require.NoError(t, err, "database connection failed")
	t.Cleanup(closePool)
	s.DB = pool
}

func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "failed to reset database state")
	s.Marketplace.Reset()
}
