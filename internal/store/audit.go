package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/complyd/complyd/internal/metrics"
	"github.com/complyd/complyd/internal/models"
)

// AuditLogStore provides data access for the audit_logs table.
type AuditLogStore struct {
	Base
}

// NewAuditLogStore creates an AuditLogStore.
func NewAuditLogStore(base Base) *AuditLogStore {
	return &AuditLogStore{Base: base}
}

// buildLogFilter builds the WHERE clause and args from an AuditFilter.
// Only non-nil fields contribute a condition; an empty filter matches all rows.
func buildLogFilter(f models.AuditFilter) (where string, args []any, nextArg int) {
	var conditions []string
	argIdx := 1

	addEq := func(column string, v *string) {
		if v == nil {
			return
		}
		conditions = append(conditions, column+" = $"+strconv.Itoa(argIdx))
		args = append(args, *v)
		argIdx++
	}

	addEq("request_id", f.RequestID)
	addEq("input_hash", f.InputHash)
	addEq("tenant_id", f.TenantID)
	addEq("user_id", f.UserID)
	addEq("source", f.Source)
	addEq("status", f.Status)

	if f.StartTime != nil {
		conditions = append(conditions, "ts >= $"+strconv.Itoa(argIdx))
		args = append(args, *f.StartTime)
		argIdx++
	}
	if f.EndTime != nil {
		conditions = append(conditions, "ts <= $"+strconv.Itoa(argIdx))
		args = append(args, *f.EndTime)
		argIdx++
	}

	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	return where, args, argIdx
}

// QueryLogs returns audit records matching the given filter, newest first.
// Records carry the key set declared by models.ExportColumns.
func (s *AuditLogStore) QueryLogs(ctx context.Context, f models.AuditFilter) ([]models.AuditRecord, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	timer := prometheus.NewTimer(metrics.StoreQueryDuration.WithLabelValues("query_logs"))
	defer timer.ObserveDuration()

	where, args, argIdx := buildLogFilter(f)

	limit := f.Limit
	if limit <= 0 {
		limit = models.DefaultQueryLimit
	}

	query := fmt.Sprintf(
		`SELECT request_id, input_hash, tenant_id, user_id, source, status, ts,
		        model, latency_ms, prompt_tokens, completion_tokens, error_message, metadata
		 FROM audit_logs %s ORDER BY ts DESC LIMIT $%d`,
		where, argIdx,
	)
	args = append(args, limit)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying audit logs: %w", err)
	}
	defer rows.Close()

	var records []models.AuditRecord

	for rows.Next() {
		var (
			requestID, inputHash, tenantID, userID, source, status string
			ts                                                     time.Time
			model, errorMessage                                    string
			latencyMS, promptTokens, completionTokens              int64
			metadataJSON                                           []byte
		)

		if err := rows.Scan(
			&requestID, &inputHash, &tenantID, &userID, &source, &status, &ts,
			&model, &latencyMS, &promptTokens, &completionTokens, &errorMessage, &metadataJSON,
		); err != nil {
			return nil, fmt.Errorf("scanning audit record: %w", err)
		}

		var metadata map[string]any
		if metadataJSON != nil {
			if err := json.Unmarshal(metadataJSON, &metadata); err != nil {
				s.Log.WithError(err).Warn("failed to unmarshal audit metadata")
			}
		}

		records = append(records, models.AuditRecord{
			"request_id":        requestID,
			"input_hash":        inputHash,
			"tenant_id":         tenantID,
			"user_id":           userID,
			"source":            source,
			"status":            status,
			"timestamp":         ts.UTC().Format(time.RFC3339),
			"model":             model,
			"latency_ms":        latencyMS,
			"prompt_tokens":     promptTokens,
			"completion_tokens": completionTokens,
			"error_message":     errorMessage,
			"metadata":          metadata,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading audit records: %w", err)
	}

	return records, nil
}

// Record inserts an audit log entry. This is the write path of the logging
// pipeline; the compliance API itself never calls it.
func (s *AuditLogStore) Record(ctx context.Context, e models.LogEntry) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	timer := prometheus.NewTimer(metrics.StoreQueryDuration.WithLabelValues("record"))
	defer timer.ObserveDuration()

	if e.RequestID == "" {
		return fmt.Errorf("recording audit entry: request_id is required")
	}
	if !models.ValidStatus(e.Status) {
		return fmt.Errorf("recording audit entry: invalid status %q", e.Status)
	}

	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	var metadataJSON []byte
	if e.Metadata != nil {
		var err error
		metadataJSON, err = json.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("marshaling audit metadata: %w", err)
		}
	}

	_, err := s.Pool.Exec(ctx, `
		INSERT INTO audit_logs (request_id, input_hash, tenant_id, user_id, source, status, ts,
		                        model, latency_ms, prompt_tokens, completion_tokens, error_message, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		e.RequestID, e.InputHash, e.TenantID, e.UserID, e.Source, e.Status, ts,
		e.Model, e.LatencyMS, e.PromptTokens, e.CompletionTokens, e.ErrorMessage, metadataJSON,
	)
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}

	return nil
}
