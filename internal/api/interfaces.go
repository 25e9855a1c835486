package api

import (
	"context"
	"time"

	"github.com/complyd/complyd/internal/models"
)

// ComplianceService defines the operations used by ComplianceHandler.
type ComplianceService interface {
	QueryLogs(ctx context.Context, f models.AuditFilter) ([]models.AuditRecord, error)
	GetByRequestID(ctx context.Context, requestID string) (models.AuditRecord, error)
	GetDuplicates(ctx context.Context, inputHash string) ([]models.AuditRecord, error)
	GetStatistics(ctx context.Context) (models.StatisticsSummary, error)
	ExportCSV(ctx context.Context, startTime, endTime *time.Time) ([]byte, error)
}
