package testhelpers

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DanielPopoola/groupgate/internal/config"
	"github.com/DanielPopoola/groupgate/internal/infrastructure/persistence/postgres"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	pgImage    = "postgres:16-alpine"
	pgUser     = "groupgate"
	pgPassword = "groupgate"
	pgDatabase = "groupgate_test"
)

// Tables in dependency order, children first.
var resetTables = "access_windows, transactions, contacts, payment_plans, payment_cycles, bots"

type TestDatabase struct {
	Container testcontainers.Container
	DB        *postgres.DB
	Config    *config.DatabaseConfig
}

// SetupTestDatabase starts Postgres in a container and applies the embedded migrations.
// It skips the calling test under -short.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        pgImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       pgDatabase,
			},
			// Postgres logs readiness once for the init server and once for the real one.
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := &config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            pgUser,
		Password:        pgPassword,
		Name:            pgDatabase,
		SSLMode:         "disable",
		MaxOpenConns:    8,
		MaxIdleConns:    2,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
	}

	db, err := postgres.Connect(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(ctx, db))

	return &TestDatabase{Container: container, DB: db, Config: cfg}
}

func (td *TestDatabase) Cleanup(t *testing.T) {
	td.DB.Close()
	require.NoError(t, td.Container.Terminate(context.Background()))
}

// Reset empties every table and restarts identity sequences.
func (td *TestDatabase) Reset(t *testing.T) {
	_, err := td.DB.Pool.Exec(context.Background(),
		"TRUNCATE TABLE "+resetTables+" RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}
