package store_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/complyd/complyd/internal/db"
	"github.com/complyd/complyd/internal/db/migrations"
	"github.com/complyd/complyd/internal/dbpool"
	"github.com/complyd/complyd/internal/store"
)

// testEnv holds shared test infrastructure (single pool across all tests).
type testEnv struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

var sharedEnv *testEnv

func getTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if sharedEnv != nil {
		return sharedEnv
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	pool, err := dbpool.NewPool(ctx, dbURL)
	if err != nil {
		t.Fatalf("connecting to test DB: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	sharedEnv = &testEnv{
		pool: pool,
		log:  log,
	}

	return sharedEnv
}

// setupTestStore creates an AuditLogStore and a per-test tenant ID used to
// scope inserted rows. Rows are removed when the test finishes.
func setupTestStore(t *testing.T) (*store.AuditLogStore, string) {
	t.Helper()

	env := getTestEnv(t)
	tenantID := "test-" + uuid.New().String()

	s := store.NewAuditLogStore(store.Base{
		Pool: env.pool,
		Log:  env.log,
	})

	t.Cleanup(func() {
		_, err := env.pool.Exec(context.Background(),
			"DELETE FROM audit_logs WHERE tenant_id = $1", tenantID)
		if err != nil {
			t.Logf("cleanup failed for tenant %s: %v", tenantID, err)
		}
	})

	return s, tenantID
}
