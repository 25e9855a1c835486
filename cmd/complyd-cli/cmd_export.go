package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var startTime, endTime, outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export audit logs as CSV for compliance reporting",
		Run: func(cmd *cobra.Command, args []string) {
			var st, et *string
			if cmd.Flags().Changed("start-time") {
				st = &startTime
			}
			if cmd.Flags().Changed("end-time") {
				et = &endTime
			}

			data, filename, err := apiClient.Compliance.Export(context.Background(), st, et)
			if err != nil {
				fatal("export", err)
			}

			path := outPath
			if path == "" {
				path = filename
			}
			if path == "" {
				path = "audit_logs.csv"
			}

			if err := os.WriteFile(path, data, 0o600); err != nil {
				fatal("export", err)
			}

			fmt.Printf("wrote %d bytes to %s\n", len(data), path)
		},
	}

	cmd.Flags().StringVar(&startTime, "start-time", "", "Start of time range (RFC3339)")
	cmd.Flags().StringVar(&endTime, "end-time", "", "End of time range (RFC3339)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default: server-suggested name)")

	return cmd
}
