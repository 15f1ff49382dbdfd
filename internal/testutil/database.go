package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/XrOne/jenia-portfolio/internal/database"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
)

type TestDB struct {
	DB        *database.DB
	Container testcontainers.Container
}

// SetupTestDB starts a throwaway Postgres, connects through database.New and
// applies the schema. Skipped under -short.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "jenia",
				"POSTGRES_PASSWORD": "jenia",
				"POSTGRES_DB":       "portfolio",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start postgres: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate postgres: %v", err)
		}
	})

	endpoint, err := container.PortEndpoint(ctx, "5432/tcp", "")
	if err != nil {
		t.Fatalf("failed to resolve postgres endpoint: %v", err)
	}

	// The port opens before initdb finishes; database.New keeps pinging.
	db, err := database.New(ctx, fmt.Sprintf("postgres://jenia:jenia@%s/portfolio?sslmode=disable", endpoint),
		time.Minute, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("failed to connect to postgres: %v", err)
	}
	t.Cleanup(db.Close)

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return &TestDB{DB: db, Container: container}
}

// Count returns the number of rows in table.
func (tdb *TestDB) Count(t *testing.T, table string) int {
	t.Helper()
	var n int
	if err := tdb.DB.Pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}
