// Package service implements the compliance query operations on top of the
// audit-log store's query interface.
package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/complyd/complyd/internal/models"
)

// AuditLogger is the audit-log store query interface the service depends on.
// The store is treated as a black box: no latency, durability, or ordering
// guarantee is assumed beyond "returns records matching the filter".
type AuditLogger interface {
	QueryLogs(ctx context.Context, f models.AuditFilter) ([]models.AuditRecord, error)
	GetStatistics(ctx context.Context) (models.StatisticsSummary, error)
}

// ComplianceService shapes audit-store query results for the compliance API.
type ComplianceService struct {
	store AuditLogger
	log   *logrus.Logger
}

// NewComplianceService creates a ComplianceService.
func NewComplianceService(store AuditLogger, log *logrus.Logger) *ComplianceService {
	return &ComplianceService{store: store, log: log}
}

// QueryLogs returns records matching the filter. A zero or negative limit
// falls back to the service default.
func (s *ComplianceService) QueryLogs(ctx context.Context, f models.AuditFilter) ([]models.AuditRecord, error) {
	if f.Limit <= 0 {
		f.Limit = models.DefaultQueryLimit
	}

	return s.store.QueryLogs(ctx, f)
}

// GetByRequestID returns the single record for the given request ID, or
// models.ErrRecordNotFound when the store returns no match.
func (s *ComplianceService) GetByRequestID(ctx context.Context, requestID string) (models.AuditRecord, error) {
	records, err := s.store.QueryLogs(ctx, models.AuditFilter{
		RequestID: &requestID,
		Limit:     1,
	})
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, models.ErrRecordNotFound
	}

	return records[0], nil
}

// GetDuplicates returns all records sharing the given input hash, subject to
// the service default limit. Used to detect repeated submissions of identical
// input content.
func (s *ComplianceService) GetDuplicates(ctx context.Context, inputHash string) ([]models.AuditRecord, error) {
	return s.store.QueryLogs(ctx, models.AuditFilter{
		InputHash: &inputHash,
		Limit:     models.DefaultQueryLimit,
	})
}

// GetStatistics returns the store's aggregate statistics unmodified.
func (s *ComplianceService) GetStatistics(ctx context.Context) (models.StatisticsSummary, error) {
	return s.store.GetStatistics(ctx)
}

// ExportCSV queries records in the given time range and serializes them as
// CSV. Only the time range is accepted as a predicate; the limit is forced to
// the export maximum.
func (s *ComplianceService) ExportCSV(ctx context.Context, startTime, endTime *time.Time) ([]byte, error) {
	records, err := s.store.QueryLogs(ctx, models.AuditFilter{
		StartTime: startTime,
		EndTime:   endTime,
		Limit:     models.ExportQueryLimit,
	})
	if err != nil {
		return nil, err
	}

	data, err := writeCSV(records)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"action": "export",
		"count":  len(records),
	}).Info("audit logs exported")

	return data, nil
}
