package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/complyd/complyd/client"
)

func newQueryCmd() *cobra.Command {
	var (
		requestID, inputHash, tenantID, userID string
		source, status, startTime, endTime     string
		limit                                  int
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query audit logs with optional filters",
		Run: func(cmd *cobra.Command, args []string) {
			opts := &client.QueryOptions{Limit: limit}

			// Only flags the user actually set become filter fields:
			// an empty-string constraint is different from no constraint.
			setIf := func(name string, dst **string, v *string) {
				if cmd.Flags().Changed(name) {
					*dst = v
				}
			}
			setIf("request-id", &opts.RequestID, &requestID)
			setIf("input-hash", &opts.InputHash, &inputHash)
			setIf("tenant-id", &opts.TenantID, &tenantID)
			setIf("user-id", &opts.UserID, &userID)
			setIf("source", &opts.Source, &source)
			setIf("status", &opts.Status, &status)
			setIf("start-time", &opts.StartTime, &startTime)
			setIf("end-time", &opts.EndTime, &endTime)

			resp, err := apiClient.Compliance.Query(context.Background(), opts)
			if err != nil {
				fatal("query", err)
			}

			if flagFmt == "table" {
				printRecordTable(resp.Results)
				fmt.Printf("\n%d record(s)\n", resp.Count)
				return
			}
			output(resp)
		},
	}

	cmd.Flags().StringVar(&requestID, "request-id", "", "Exact request ID")
	cmd.Flags().StringVar(&inputHash, "input-hash", "", "Exact input hash")
	cmd.Flags().StringVar(&tenantID, "tenant-id", "", "Filter by tenant")
	cmd.Flags().StringVar(&userID, "user-id", "", "Filter by user")
	cmd.Flags().StringVar(&source, "source", "", "Filter by source")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status: success|error")
	cmd.Flags().StringVar(&startTime, "start-time", "", "Start of time range (RFC3339)")
	cmd.Flags().StringVar(&endTime, "end-time", "", "End of time range (RFC3339)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results (server default: 100)")

	return cmd
}

func printRecordTable(records []client.AuditRecord) {
	headers := []string{"REQUEST_ID", "TENANT", "USER", "SOURCE", "STATUS", "TIMESTAMP"}
	var rows [][]string
	for _, r := range records {
		rows = append(rows, []string{
			str(r["request_id"]), str(r["tenant_id"]), str(r["user_id"]),
			str(r["source"]), str(r["status"]), str(r["timestamp"]),
		})
	}
	formatTable(headers, rows)
}

func str(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
