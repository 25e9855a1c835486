package client

import (
	"context"
	"net/http"
	"regexp"
)

// ComplianceService handles compliance query operations.
type ComplianceService struct {
	c *Client
}

// Query returns audit records matching the given options. Only fields
// explicitly set in opts are sent; the server treats absent keys as "no
// constraint".
func (s *ComplianceService) Query(ctx context.Context, opts *QueryOptions) (*QueryResponse, error) {
	body := map[string]any{}
	if opts != nil {
		setIf := func(key string, v *string) {
			if v != nil {
				body[key] = *v
			}
		}
		setIf("request_id", opts.RequestID)
		setIf("input_hash", opts.InputHash)
		setIf("tenant_id", opts.TenantID)
		setIf("user_id", opts.UserID)
		setIf("source", opts.Source)
		setIf("status", opts.Status)
		setIf("start_time", opts.StartTime)
		setIf("end_time", opts.EndTime)
		if opts.Limit > 0 {
			body["limit"] = opts.Limit
		}
	}

	var resp QueryResponse
	if err := s.c.do(ctx, http.MethodPost, "/api/compliance/query", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetRequest returns the audit record for the given request ID.
// IsNotFound reports whether the returned error is a missing record.
func (s *ComplianceService) GetRequest(ctx context.Context, requestID string) (AuditRecord, error) {
	var rec AuditRecord
	if err := s.c.do(ctx, http.MethodGet, "/api/compliance/request/"+requestID, nil, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Duplicates returns all audit records sharing the given input hash.
func (s *ComplianceService) Duplicates(ctx context.Context, inputHash string) (*DuplicatesResponse, error) {
	var resp DuplicatesResponse
	if err := s.c.do(ctx, http.MethodGet, "/api/compliance/duplicates/"+inputHash, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Statistics returns aggregate audit log statistics.
func (s *ComplianceService) Statistics(ctx context.Context) (Statistics, error) {
	var resp Statistics
	if err := s.c.do(ctx, http.MethodGet, "/api/compliance/statistics", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

var filenameRe = regexp.MustCompile(`filename=([^\s;]+)`)

// Export downloads a CSV export of the given time range (RFC3339 bounds, both
// optional). It returns the CSV bytes and the server-suggested filename.
func (s *ComplianceService) Export(ctx context.Context, startTime, endTime *string) ([]byte, string, error) {
	body := map[string]any{}
	if startTime != nil {
		body["start_time"] = *startTime
	}
	if endTime != nil {
		body["end_time"] = *endTime
	}

	resp, respBody, err := s.c.raw(ctx, http.MethodPost, "/api/compliance/export", body)
	if err != nil {
		return nil, "", err
	}

	if resp.StatusCode >= 400 {
		return nil, "", parseAPIError(resp.StatusCode, respBody)
	}

	filename := ""
	if m := filenameRe.FindStringSubmatch(resp.Header.Get("Content-Disposition")); m != nil {
		filename = m[1]
	}

	return respBody, filename, nil
}
