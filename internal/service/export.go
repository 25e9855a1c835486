package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/complyd/complyd/internal/metrics"
	"github.com/complyd/complyd/internal/models"
)

// columnsFor returns the CSV header for a result set: the declared export
// columns present in the first record, in declared order, followed by any
// remaining keys of that record in sorted order. Because the store returns a
// uniform key set per query, this realizes the documented "first record
// defines the columns" contract deterministically.
func columnsFor(rec models.AuditRecord) []string {
	columns := make([]string, 0, len(rec))
	seen := make(map[string]bool, len(rec))

	for _, col := range models.ExportColumns {
		if _, ok := rec[col]; ok {
			columns = append(columns, col)
			seen[col] = true
		}
	}

	var extra []string
	for k := range rec {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)

	return append(columns, extra...)
}

// formatCell renders a record value as a CSV cell. Structured values are
// JSON-encoded; nil renders empty.
func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case map[string]any, []any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	default:
		return fmt.Sprint(val)
	}
}

// writeCSV serializes records with dictionary-writer semantics: the header
// comes from the first record, fields absent in a later record render empty,
// and extra fields are dropped. An empty result set yields an empty body with
// no header row.
func writeCSV(records []models.AuditRecord) ([]byte, error) {
	if len(records) == 0 {
		return nil, nil
	}

	columns := columnsFor(records[0])

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}

	row := make([]string, len(columns))
	for _, rec := range records {
		for i, col := range columns {
			row[i] = formatCell(rec[col])
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}

	metrics.ExportedRecordsTotal.Add(float64(len(records)))

	return buf.Bytes(), nil
}
