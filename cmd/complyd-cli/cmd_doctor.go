package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/complyd/complyd/client"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose server connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor()
		},
	}
}

func runDoctor() error {
	fmt.Println("\ncomplyd Doctor")
	fmt.Println("==============")
	fmt.Printf("Server: %s\n\n", flagURL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := client.New(flagURL)
	failed := false

	if health, err := c.Health(ctx); err != nil {
		fmt.Printf("  ✗ Health: %v\n", err)
		failed = true
	} else {
		fmt.Printf("  ✓ Health: %s (version %s, up %.0fs)\n", health.Status, health.Version, health.UptimeSeconds)
	}

	if ready, err := c.Ready(ctx); err != nil {
		fmt.Printf("  ✗ Ready:  %v\n", err)
		failed = true
	} else {
		fmt.Printf("  ✓ Ready:  %s (checks: %v)\n", ready.Status, ready.Checks)
	}

	if failed {
		return fmt.Errorf("one or more checks failed")
	}

	return nil
}
