package api

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/complyd/complyd/internal/models"
)

// ComplianceHandler serves the compliance query endpoints.
type ComplianceHandler struct {
	svc ComplianceService
	log *logrus.Logger
}

// NewComplianceHandler creates a ComplianceHandler.
func NewComplianceHandler(svc ComplianceService, log *logrus.Logger) *ComplianceHandler {
	return &ComplianceHandler{svc: svc, log: log}
}

// queryRequest is the JSON body of POST /api/compliance/query. Pointer fields
// distinguish an absent key (no constraint) from an empty string (exact match
// on ""). Limit is typed `any` because callers send it both as a JSON number
// and as a numeric string.
type queryRequest struct {
	RequestID *string `json:"request_id"`
	InputHash *string `json:"input_hash"`
	TenantID  *string `json:"tenant_id"`
	UserID    *string `json:"user_id"`
	Source    *string `json:"source"`
	Status    *string `json:"status"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Limit     any     `json:"limit"`
}

// exportRequest is the JSON body of POST /api/compliance/export. Only the
// time range is accepted; all other predicates are ignored by design.
type exportRequest struct {
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

// parseLimit normalizes the limit value from a decoded JSON body. Absence
// falls back to the service default; anything that is not a positive integer
// is rejected.
func parseLimit(v any) (int, error) {
	switch n := v.(type) {
	case nil:
		return models.DefaultQueryLimit, nil
	case float64:
		if n != math.Trunc(n) || n <= 0 || n > math.MaxInt32 {
			return 0, fmt.Errorf("limit must be a positive integer")
		}
		return int(n), nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil || i <= 0 {
			return 0, fmt.Errorf("limit must be a positive integer")
		}
		return i, nil
	default:
		return 0, fmt.Errorf("limit must be a positive integer")
	}
}

// parseTimestamp parses an RFC3339 timestamp filter bound.
func parseTimestamp(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s format, use RFC3339 (e.g. 2025-01-15T00:00:00Z)", field)
	}

	return t, nil
}

// filterFromRequest validates the query request and builds the typed filter.
// Only keys explicitly present in the body become filter fields.
func filterFromRequest(req queryRequest) (models.AuditFilter, error) {
	f := models.AuditFilter{
		RequestID: req.RequestID,
		InputHash: req.InputHash,
		TenantID:  req.TenantID,
		UserID:    req.UserID,
		Source:    req.Source,
	}

	if req.Status != nil {
		if !models.ValidStatus(*req.Status) {
			return f, fmt.Errorf("status must be 'success' or 'error'")
		}
		f.Status = req.Status
	}

	if req.StartTime != nil {
		t, err := parseTimestamp("start_time", *req.StartTime)
		if err != nil {
			return f, err
		}
		f.StartTime = &t
	}

	if req.EndTime != nil {
		t, err := parseTimestamp("end_time", *req.EndTime)
		if err != nil {
			return f, err
		}
		f.EndTime = &t
	}

	limit, err := parseLimit(req.Limit)
	if err != nil {
		return f, err
	}
	f.Limit = limit

	return f, nil
}

// bindOptionalJSON decodes the request body into dst, treating a missing or
// empty body as an empty object.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid JSON body")
	}

	return nil
}

// Query handles POST /api/compliance/query.
func (h *ComplianceHandler) Query(c *gin.Context) {
	var req queryRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	filter, err := filterFromRequest(req)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	results, err := h.svc.QueryLogs(c.Request.Context(), filter)
	if err != nil {
		h.log.WithError(err).Error("compliance query failed")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, err.Error())
		return
	}

	if results == nil {
		results = []models.AuditRecord{}
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(results),
		"results": results,
	})
}

// GetRequest handles GET /api/compliance/request/:id.
func (h *ComplianceHandler) GetRequest(c *gin.Context) {
	requestID := c.Param("id")

	record, err := h.svc.GetByRequestID(c.Request.Context(), requestID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "Request not found")
			return
		}

		h.log.WithError(err).Error("request lookup failed")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, err.Error())
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetDuplicates handles GET /api/compliance/duplicates/:hash.
func (h *ComplianceHandler) GetDuplicates(c *gin.Context) {
	inputHash := c.Param("hash")

	results, err := h.svc.GetDuplicates(c.Request.Context(), inputHash)
	if err != nil {
		h.log.WithError(err).Error("duplicate lookup failed")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, err.Error())
		return
	}

	if results == nil {
		results = []models.AuditRecord{}
	}

	c.JSON(http.StatusOK, gin.H{
		"count":      len(results),
		"input_hash": inputHash,
		"results":    results,
	})
}

// GetStatistics handles GET /api/compliance/statistics. The summary shape is
// defined by the store and passed through unmodified.
func (h *ComplianceHandler) GetStatistics(c *gin.Context) {
	summary, err := h.svc.GetStatistics(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("statistics query failed")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, err.Error())
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Export handles POST /api/compliance/export. Returns matching records as a
// CSV file attachment named after the current UTC date.
func (h *ComplianceHandler) Export(c *gin.Context) {
	var req exportRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	var startTime, endTime *time.Time

	if req.StartTime != nil {
		t, err := parseTimestamp("start_time", *req.StartTime)
		if err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
			return
		}
		startTime = &t
	}

	if req.EndTime != nil {
		t, err := parseTimestamp("end_time", *req.EndTime)
		if err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
			return
		}
		endTime = &t
	}

	data, err := h.svc.ExportCSV(c.Request.Context(), startTime, endTime)
	if err != nil {
		h.log.WithError(err).Error("compliance export failed")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, err.Error())
		return
	}

	filename := fmt.Sprintf("audit_logs_%s.csv", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", data)
}
