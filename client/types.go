package client

// AuditRecord is one audit log entry. The schema is owned by the audit-log
// store; records are opaque key/value mappings.
type AuditRecord map[string]any

// QueryOptions holds the optional predicates of a compliance query. Nil
// fields place no constraint. Limit 0 means "use the server default".
type QueryOptions struct {
	RequestID *string
	InputHash *string
	TenantID  *string
	UserID    *string
	Source    *string
	Status    *string
	StartTime *string // RFC3339
	EndTime   *string // RFC3339
	Limit     int
}

// QueryResponse is the payload of POST /api/compliance/query.
type QueryResponse struct {
	Count   int           `json:"count"`
	Results []AuditRecord `json:"results"`
}

// DuplicatesResponse is the payload of GET /api/compliance/duplicates/{hash}.
type DuplicatesResponse struct {
	Count     int           `json:"count"`
	InputHash string        `json:"input_hash"`
	Results   []AuditRecord `json:"results"`
}

// Statistics is the aggregate-statistics payload, passed through from the
// store unmodified.
type Statistics map[string]any

// HealthResponse is the payload of GET /health.
type HealthResponse struct {
	Status        string  `json:"status"`
	Service       string  `json:"service"`
	Version       string  `json:"version"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// ReadyResponse is the payload of GET /ready.
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
