package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newDuplicatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "duplicates <input-hash>",
		Short: "Find all records sharing an input hash",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := apiClient.Compliance.Duplicates(context.Background(), args[0])
			if err != nil {
				fatal("duplicates", err)
			}

			if flagFmt == "table" {
				printRecordTable(resp.Results)
				fmt.Printf("\n%d record(s) with input hash %s\n", resp.Count, resp.InputHash)
				return
			}
			output(resp)
		},
	}
}
