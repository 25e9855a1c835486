package store

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/complyd/complyd/internal/metrics"
	"github.com/complyd/complyd/internal/models"
)

// GetStatistics returns aggregate statistics about the audit log in a single
// consolidated query.
func (s *AuditLogStore) GetStatistics(ctx context.Context) (models.StatisticsSummary, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	timer := prometheus.NewTimer(metrics.StoreQueryDuration.WithLabelValues("get_statistics"))
	defer timer.ObserveDuration()

	var (
		total, successCount, errorCount           int64
		uniqueTenants, uniqueUsers, uniqueSources int64
		duplicateHashes                           int64
		earliest, latest                          *time.Time
	)

	err := s.Pool.QueryRow(ctx,
		`SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'success'),
			COUNT(*) FILTER (WHERE status = 'error'),
			COUNT(DISTINCT tenant_id) FILTER (WHERE tenant_id <> ''),
			COUNT(DISTINCT user_id) FILTER (WHERE user_id <> ''),
			COUNT(DISTINCT source) FILTER (WHERE source <> ''),
			(SELECT COUNT(*) FROM (
				SELECT input_hash FROM audit_logs
				WHERE input_hash <> ''
				GROUP BY input_hash HAVING COUNT(*) > 1
			) dup),
			MIN(ts),
			MAX(ts)
		 FROM audit_logs`,
	).Scan(
		&total, &successCount, &errorCount,
		&uniqueTenants, &uniqueUsers, &uniqueSources,
		&duplicateHashes, &earliest, &latest,
	)
	if err != nil {
		return nil, fmt.Errorf("querying audit statistics: %w", err)
	}

	summary := models.StatisticsSummary{
		"total_records":          total,
		"success_count":          successCount,
		"error_count":            errorCount,
		"unique_tenants":         uniqueTenants,
		"unique_users":           uniqueUsers,
		"unique_sources":         uniqueSources,
		"duplicate_input_hashes": duplicateHashes,
	}

	if earliest != nil {
		summary["earliest_record"] = earliest.UTC().Format(time.RFC3339)
	}
	if latest != nil {
		summary["latest_record"] = latest.UTC().Format(time.RFC3339)
	}

	return summary, nil
}
