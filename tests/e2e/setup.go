//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"save-serve/cmd/bootstrap"
	"save-serve/cmd/bootstrap/components"
	"save-serve/internal/infra/db"
	"save-serve/internal/infra/uow"
	"save-serve/internal/pkg/config"
	"save-serve/internal/usecase/shared"
	"save-serve/tests/common/dbtest"

	"github.com/cenkalti/backoff/v4"
	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "test"
	pgPassword = "testpass"
	pgPort     = nat.Port("5432/tcp")
)

var (
	pgOnce      sync.Once
	pgContainer testcontainers.Container
	pgErr       error
)

func postgresDSN(host string, port nat.Port, dbName string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", pgUser, pgPassword, host, port.Port(), dbName)
}

// sharedPostgres starts one throwaway server for the whole test binary.
// Data lives on tmpfs with durability switched off.
func sharedPostgres(t *testing.T) (string, nat.Port) {
	pgOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()
		pgContainer, pgErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			Started: true,
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "postgres:17",
				ExposedPorts: []string{string(pgPort)},
				Env: map[string]string{
					"POSTGRES_USER":     pgUser,
					"POSTGRES_PASSWORD": pgPassword,
				},
				Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
				Cmd:   []string{"postgres", "-c", "fsync=off", "-c", "synchronous_commit=off", "-c", "max_connections=200"},
				WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
					return postgresDSN(host, port, "postgres")
				}).WithStartupTimeout(time.Minute),
				Labels: map[string]string{"purpose": "save-serve-e2e"},
			},
		})
	})
	require.NoError(t, pgErr, "postgres container")

	ctx := context.Background()
	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, pgPort)
	require.NoError(t, err)
	return host, port
}

// freshDatabase creates a migrated, seeded database private to this suite.
func freshDatabase(t *testing.T) (*pgxpool.Pool, config.DBConfig) {
	host, port := sharedPostgres(t)
	name := "e2e_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	adminDSN := postgresDSN(host, port, "postgres")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err)
	defer admin.Close()
	// the server may still be replaying its init scripts
	err = backoff.Retry(func() error {
		_, err := admin.Exec(ctx, "CREATE DATABASE "+name)
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(500*time.Millisecond), 5), ctx))
	require.NoError(t, err, "create database %s", name)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		admin, err := pgxpool.New(ctx, adminDSN)
		if err != nil {
			return
		}
		defer admin.Close()
		_, _ = admin.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)")
	})

	dbCfg := config.NewTestConfig().DB
	dbCfg.Host, dbCfg.Port = host, port.Port()
	dbCfg.User, dbCfg.Password, dbCfg.DBName = pgUser, pgPassword, name

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	pool, closePool, err := db.Connect(ctx, dbCfg, quiet)
	require.NoError(t, err)
	t.Cleanup(closePool)

	_, err = db.Migrate(ctx, pool, quiet)
	require.NoError(t, err, "migrate")
	require.NoError(t, dbtest.SeedReferenceData(pool))
	return pool, dbCfg
}

// startApp wires the production modules around pool. The store is always
// postgres here; the scheduler stays off so tests drive jobs directly.
func startApp(t *testing.T, pool *pgxpool.Pool, dbCfg config.DBConfig) (*gin.Engine, config.Config) {
	cfg := config.NewTestConfig()
	cfg.DB = dbCfg

	var router *gin.Engine
	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(
			func() *gin.Engine { return gin.New() },
			func(logger *slog.Logger) shared.UnitOfWork { return uow.NewPostgresUoW(pool, logger) },
		),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		components.InfraModule,
		components.UseCaseModule,
		components.JobsModule,
		components.HandlerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "start fx app")
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = app.Stop(ctx)
	})
	return router, cfg
}

// SharedSuite gives each e2e suite a router wired to its own database.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	pool, dbCfg := freshDatabase(s.T())
	s.DB = pool
	s.Router, s.Config = startApp(s.T(), pool, dbCfg)
}

func (s *SharedSuite) SetupTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "reset database")
}
