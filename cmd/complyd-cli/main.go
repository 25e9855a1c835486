// complyd-cli is a manual smoke-test client for the compliance query API.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/complyd/complyd/client"
)

// Build-time variables set via ldflags.
var (
	version   = "0.1.0"
	commit    = ""
	buildDate = ""
)

var (
	apiClient *client.Client
	flagURL   string
	flagFmt   string
)

const defaultURL = "http://localhost:5000"

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("complyd-cli version %s (commit: %s, built: %s)", version, commit, buildDate)
	}
	return fmt.Sprintf("complyd-cli version %s-dev", version)
}

type configFile struct {
	URL string `yaml:"url"`
}

func main() {
	rootCmd := &cobra.Command{
		Use:     "complyd-cli",
		Short:   "complyd CLI: query audit logs for compliance",
		Version: versionString(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			resolveConfig()
			apiClient = client.New(flagURL)
		},
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagURL, "url", defaultURL, "complyd server URL (env: COMPLYD_URL)")
	rootCmd.PersistentFlags().StringVar(&flagFmt, "format", "json", "Output format: json|table")

	doctorCmd := newDoctorCmd()
	doctorCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) { resolveConfig() } // no client setup

	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newRequestCmd())
	rootCmd.AddCommand(newDuplicatesCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(doctorCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig fills the URL flag from env, then the config file.
// Flag takes precedence, then env, then ~/.complyd/config.yaml.
func resolveConfig() {
	if flagURL == defaultURL {
		if v := os.Getenv("COMPLYD_URL"); v != "" {
			flagURL = v
			return
		}
	}

	if flagURL != defaultURL {
		return
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	data, err := os.ReadFile(filepath.Join(home, ".complyd", "config.yaml"))
	if err != nil {
		return
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return
	}
	if cfg.URL != "" {
		flagURL = cfg.URL
	}
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	os.Exit(1)
}
