package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newRequestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "request <request-id>",
		Short: "Get a single audit record by request ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			rec, err := apiClient.Compliance.GetRequest(context.Background(), args[0])
			if err != nil {
				fatal("request", err)
			}
			output(rec)
		},
	}
}
