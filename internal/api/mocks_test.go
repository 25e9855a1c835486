package api_test

import (
	"context"
	"time"

	"github.com/complyd/complyd/internal/models"
)

// mockComplianceService implements api.ComplianceService for testing.
type mockComplianceService struct {
	queryFn      func(ctx context.Context, f models.AuditFilter) ([]models.AuditRecord, error)
	getFn        func(ctx context.Context, requestID string) (models.AuditRecord, error)
	duplicatesFn func(ctx context.Context, inputHash string) ([]models.AuditRecord, error)
	statsFn      func(ctx context.Context) (models.StatisticsSummary, error)
	exportFn     func(ctx context.Context, startTime, endTime *time.Time) ([]byte, error)
}

func (m *mockComplianceService) QueryLogs(ctx context.Context, f models.AuditFilter) ([]models.AuditRecord, error) {
	return m.queryFn(ctx, f)
}

func (m *mockComplianceService) GetByRequestID(ctx context.Context, requestID string) (models.AuditRecord, error) {
	return m.getFn(ctx, requestID)
}

func (m *mockComplianceService) GetDuplicates(ctx context.Context, inputHash string) ([]models.AuditRecord, error) {
	return m.duplicatesFn(ctx, inputHash)
}

func (m *mockComplianceService) GetStatistics(ctx context.Context) (models.StatisticsSummary, error) {
	return m.statsFn(ctx)
}

func (m *mockComplianceService) ExportCSV(ctx context.Context, startTime, endTime *time.Time) ([]byte, error) {
	return m.exportFn(ctx, startTime, endTime)
}
