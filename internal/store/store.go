// Package store provides the PostgreSQL-backed audit-log store adapter.
//
// The compliance service only depends on the query interface (QueryLogs,
// GetStatistics); how records are persisted and indexed is the store's
// concern, not the service's. Record is the write path used by the logging
// pipeline and by tests to populate the table.
package store

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/complyd/complyd/internal/dbpool"
)

const defaultQueryTimeout = 30 * time.Second

// Base contains shared dependencies for the store.
type Base struct {
	Pool *dbpool.Pool
	Log  *logrus.Logger
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}
