package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// executeArgs runs the given root command with args and returns any error.
// It suppresses cobra's usage/error output so test output stays clean.
func executeArgs(t *testing.T, root *cobra.Command, args ...string) error {
	t.Helper()
	root.SetOut(&strings.Builder{})
	root.SetErr(&strings.Builder{})
	root.SetArgs(args)
	_, err := root.ExecuteC()
	return err
}

// newTestRoot builds a root command tree identical to main() but with
// PersistentPreRun stubbed out so the API client is never initialised.
func newTestRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "complyd-cli",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Skip client initialisation in tests.
		},
	}
	root.PersistentFlags().StringVar(&flagURL, "url", defaultURL, "")
	root.PersistentFlags().StringVar(&flagFmt, "format", "json", "")

	root.AddCommand(newQueryCmd())
	root.AddCommand(newRequestCmd())
	root.AddCommand(newDuplicatesCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newExportCmd())
	return root
}

// --- request ---

func TestRequestArgValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"no request id", []string{"request"}, true},
		{"two request ids", []string{"request", "req-1", "req-2"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := newTestRoot()
			err := executeArgs(t, root, tc.args...)
			if tc.wantErr && err == nil {
				t.Errorf("expected error, got nil")
			}
		})
	}
}

// TestRequestArgCountOnly verifies ExactArgs(1) directly without invoking Run.
func TestRequestArgCountOnly(t *testing.T) {
	argsValidator := cobra.ExactArgs(1)

	if err := argsValidator(nil, []string{"req-abc"}); err != nil {
		t.Errorf("one arg should be valid, got: %v", err)
	}
	if err := argsValidator(nil, []string{}); err == nil {
		t.Error("zero args should fail ExactArgs(1)")
	}
	if err := argsValidator(nil, []string{"a", "b"}); err == nil {
		t.Error("two args should fail ExactArgs(1)")
	}
}

// --- duplicates ---

func TestDuplicatesArgValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"no hash", []string{"duplicates"}, true},
		{"two hashes", []string{"duplicates", "h1", "h2"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := newTestRoot()
			err := executeArgs(t, root, tc.args...)
			if tc.wantErr && err == nil {
				t.Errorf("expected error, got nil")
			}
		})
	}
}

// --- query filter flags ---

func TestQueryFlagRegistration(t *testing.T) {
	cmd := newQueryCmd()
	flags := []string{
		"request-id", "input-hash", "tenant-id", "user-id",
		"source", "status", "start-time", "end-time", "limit",
	}
	for _, name := range flags {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("--%s flag not found on query", name)
		}
	}
}

func TestQueryLimitFlagDefault(t *testing.T) {
	cmd := newQueryCmd()
	f := cmd.Flags().Lookup("limit")
	if f == nil {
		t.Fatal("--limit flag not found on query command")
	}
	if f.DefValue != "0" {
		t.Errorf("default limit: got %q, want %q", f.DefValue, "0")
	}
}

// --- export flags ---

func TestExportFlagRegistration(t *testing.T) {
	cmd := newExportCmd()
	for _, name := range []string{"start-time", "end-time", "out"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("--%s flag not found on export", name)
		}
	}
}

func TestExportOutShorthand(t *testing.T) {
	cmd := newExportCmd()
	f := cmd.Flags().ShorthandLookup("o")
	if f == nil {
		t.Fatal("-o shorthand not registered on export")
	}
	if f.Name != "out" {
		t.Errorf("-o resolves to --%s, want --out", f.Name)
	}
}

// --- global format flag ---

func TestFormatFlagDefault(t *testing.T) {
	root := newTestRoot()
	f := root.PersistentFlags().Lookup("format")
	if f == nil {
		t.Fatal("--format flag not found")
	}
	if f.DefValue != "json" {
		t.Errorf("default format: got %q, want %q", f.DefValue, "json")
	}
}

// --- url resolution ---

func TestResolveConfigEnvOverride(t *testing.T) {
	t.Setenv("COMPLYD_URL", "http://example.test:5000")
	orig := flagURL
	defer func() { flagURL = orig }()

	flagURL = defaultURL
	resolveConfig()
	if flagURL != "http://example.test:5000" {
		t.Errorf("env should override default url, got %q", flagURL)
	}
}

func TestResolveConfigFlagWins(t *testing.T) {
	t.Setenv("COMPLYD_URL", "http://env.test:5000")
	orig := flagURL
	defer func() { flagURL = orig }()

	flagURL = "http://flag.test:5000"
	resolveConfig()
	if flagURL != "http://flag.test:5000" {
		t.Errorf("explicit flag should win over env, got %q", flagURL)
	}
}
