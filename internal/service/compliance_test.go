package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/complyd/complyd/internal/models"
)

// mockAuditLogger implements AuditLogger for testing.
type mockAuditLogger struct {
	queryFn func(ctx context.Context, f models.AuditFilter) ([]models.AuditRecord, error)
	statsFn func(ctx context.Context) (models.StatisticsSummary, error)
}

func (m *mockAuditLogger) QueryLogs(ctx context.Context, f models.AuditFilter) ([]models.AuditRecord, error) {
	return m.queryFn(ctx, f)
}

func (m *mockAuditLogger) GetStatistics(ctx context.Context) (models.StatisticsSummary, error) {
	return m.statsFn(ctx)
}

func testService(store AuditLogger) *ComplianceService {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	return NewComplianceService(store, log)
}

func TestQueryLogsDefaultsLimit(t *testing.T) {
	t.Parallel()

	var got models.AuditFilter
	store := &mockAuditLogger{
		queryFn: func(ctx context.Context, f models.AuditFilter) ([]models.AuditRecord, error) {
			got = f
			return nil, nil
		},
	}
	svc := testService(store)

	if _, err := svc.QueryLogs(context.Background(), models.AuditFilter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Limit != models.DefaultQueryLimit {
		t.Errorf("limit: got %d, want %d", got.Limit, models.DefaultQueryLimit)
	}
}

func TestQueryLogsKeepsExplicitLimit(t *testing.T) {
	t.Parallel()

	var got models.AuditFilter
	store := &mockAuditLogger{
		queryFn: func(ctx context.Context, f models.AuditFilter) ([]models.AuditRecord, error) {
			got = f
			return nil, nil
		},
	}
	svc := testService(store)

	if _, err := svc.QueryLogs(context.Background(), models.AuditFilter{Limit: 7}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Limit != 7 {
		t.Errorf("limit: got %d, want 7", got.Limit)
	}
}

func TestGetByRequestID(t *testing.T) {
	t.Parallel()

	store := &mockAuditLogger{
		queryFn: func(ctx context.Context, f models.AuditFilter) ([]models.AuditRecord, error) {
			if f.RequestID == nil || *f.RequestID != "req-1" {
				t.Errorf("request_id filter: got %v", f.RequestID)
			}
			if f.Limit != 1 {
				t.Errorf("limit: got %d, want 1", f.Limit)
			}
			return []models.AuditRecord{{"request_id": "req-1"}}, nil
		},
	}
	svc := testService(store)

	rec, err := svc.GetByRequestID(context.Background(), "req-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec["request_id"] != "req-1" {
		t.Errorf("record: got %v", rec)
	}
}

func TestGetByRequestIDNotFound(t *testing.T) {
	t.Parallel()

	store := &mockAuditLogger{
		queryFn: func(ctx context.Context, f models.AuditFilter) ([]models.AuditRecord, error) {
			return nil, nil
		},
	}
	svc := testService(store)

	_, err := svc.GetByRequestID(context.Background(), "missing")
	if !errors.Is(err, models.ErrRecordNotFound) {
		t.Errorf("error: got %v, want ErrRecordNotFound", err)
	}
}

func TestGetByRequestIDStoreError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	store := &mockAuditLogger{
		queryFn: func(ctx context.Context, f models.AuditFilter) ([]models.AuditRecord, error) {
			return nil, boom
		},
	}
	svc := testService(store)

	_, err := svc.GetByRequestID(context.Background(), "req-1")
	if !errors.Is(err, boom) {
		t.Errorf("error: got %v, want wrapped store error", err)
	}
}

func TestGetDuplicatesFilter(t *testing.T) {
	t.Parallel()

	store := &mockAuditLogger{
		queryFn: func(ctx context.Context, f models.AuditFilter) ([]models.AuditRecord, error) {
			if f.InputHash == nil || *f.InputHash != "hash-a" {
				t.Errorf("input_hash filter: got %v", f.InputHash)
			}
			if f.Limit != models.DefaultQueryLimit {
				t.Errorf("limit: got %d, want %d", f.Limit, models.DefaultQueryLimit)
			}
			return []models.AuditRecord{{"request_id": "r1"}, {"request_id": "r2"}}, nil
		},
	}
	svc := testService(store)

	recs, err := svc.GetDuplicates(context.Background(), "hash-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("records: got %d, want 2", len(recs))
	}
}

func TestExportCSVForcesLimit(t *testing.T) {
	t.Parallel()

	var got models.AuditFilter
	store := &mockAuditLogger{
		queryFn: func(ctx context.Context, f models.AuditFilter) ([]models.AuditRecord, error) {
			got = f
			return nil, nil
		},
	}
	svc := testService(store)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := svc.ExportCSV(context.Background(), &start, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Limit != models.ExportQueryLimit {
		t.Errorf("limit: got %d, want %d", got.Limit, models.ExportQueryLimit)
	}
	if got.StartTime == nil || !got.StartTime.Equal(start) {
		t.Errorf("start_time: got %v, want %v", got.StartTime, start)
	}
	if got.EndTime != nil {
		t.Errorf("end_time should be nil, got %v", got.EndTime)
	}
	// No predicate fields other than the time range may be set.
	if got.RequestID != nil || got.InputHash != nil || got.Status != nil {
		t.Error("export filter must carry only the time range")
	}
}

func TestExportCSVEmptyResult(t *testing.T) {
	t.Parallel()

	store := &mockAuditLogger{
		queryFn: func(ctx context.Context, f models.AuditFilter) ([]models.AuditRecord, error) {
			return nil, nil
		},
	}
	svc := testService(store)

	data, err := svc.ExportCSV(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty body, got %q", data)
	}
}

func TestExportCSVStoreError(t *testing.T) {
	t.Parallel()

	store := &mockAuditLogger{
		queryFn: func(ctx context.Context, f models.AuditFilter) ([]models.AuditRecord, error) {
			return nil, errors.New("query failed")
		},
	}
	svc := testService(store)

	if _, err := svc.ExportCSV(context.Background(), nil, nil); err == nil {
		t.Error("expected error from failing store")
	}
}
