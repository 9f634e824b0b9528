package testutil

import (
	"context"
	"testing"

	postgresmodule "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// SetupPostgresContainer starts a disposable database and returns its DSN.
func SetupPostgresContainer(ctx context.Context, t *testing.T) (string, func()) {
	t.Helper()

	defer func() {
		if r := recover(); r != nil {
			t.Skipf("failed to start postgres container: %v", r)
		}
	}()

	container, err := postgresmodule.Run(ctx, "postgres:17-alpine",
		postgresmodule.WithDatabase("alerts"),
		postgresmodule.WithUsername("alerts"),
		postgresmodule.WithPassword("alerts"),
		postgresmodule.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Skipf("failed to get postgres connection string: %v", err)
	}

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	}

	return dsn, cleanup
}
