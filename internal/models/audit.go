package models

import "time"

// Audit record status values. A filter carrying any other status value is
// rejected before it reaches the store.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Query limits. DefaultQueryLimit applies when a filter carries no limit;
// ExportQueryLimit is forced on the CSV export path.
const (
	DefaultQueryLimit = 100
	ExportQueryLimit  = 10000
)

// ValidStatus reports whether s is one of the two allowed status values.
func ValidStatus(s string) bool {
	return s == StatusSuccess || s == StatusError
}

// AuditFilter holds the optional predicates of a compliance query, combined
// with AND semantics. Pointer fields distinguish "absent" from "empty string":
// a nil field places no constraint on the store.
type AuditFilter struct {
	RequestID *string
	InputHash *string
	TenantID  *string
	UserID    *string
	Source    *string
	Status    *string
	StartTime *time.Time // inclusive lower bound on record time
	EndTime   *time.Time // inclusive upper bound on record time
	Limit     int        // always positive after normalization
}

// AuditRecord is one logged request/response event. The schema is owned by
// the audit-log store; this service treats records as opaque key/value
// mappings whose key set is uniform across all records returned by one query.
type AuditRecord map[string]any

// ExportColumns is the canonical key order of records returned by the store,
// and therefore the CSV column order. The export contract is
// "the first record's keys define the columns"; because the store returns a
// uniform key set in this declared order, the two are equivalent. Keys of a
// record that are not listed here are appended in sorted order.
var ExportColumns = []string{
	"request_id",
	"input_hash",
	"tenant_id",
	"user_id",
	"source",
	"status",
	"timestamp",
	"model",
	"latency_ms",
	"prompt_tokens",
	"completion_tokens",
	"error_message",
	"metadata",
}

// StatisticsSummary is the aggregate-statistics payload. Its shape is defined
// by the store and passed through unmodified.
type StatisticsSummary map[string]any

// LogEntry is the typed write-path form of an audit record, used by the
// store's Record method and by the logging pipeline. The compliance API only
// ever reads records.
type LogEntry struct {
	RequestID        string
	InputHash        string
	TenantID         string
	UserID           string
	Source           string
	Status           string
	Timestamp        time.Time
	Model            string
	LatencyMS        int64
	PromptTokens     int64
	CompletionTokens int64
	ErrorMessage     string
	Metadata         map[string]any
}
