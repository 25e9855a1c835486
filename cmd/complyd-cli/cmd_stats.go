package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate audit log statistics",
		Run: func(cmd *cobra.Command, args []string) {
			stats, err := apiClient.Compliance.Statistics(context.Background())
			if err != nil {
				fatal("stats", err)
			}
			output(stats)
		},
	}
}
