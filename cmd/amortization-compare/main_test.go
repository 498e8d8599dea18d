package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/amortization-compare/internal/config"
)

var exampleConfig = filepath.Join("..", "..", "config.yaml.example")

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSimulateReport(t *testing.T) {
	out, err := runCommand(t, "simulate", "--config", exampleConfig, "--output-format", "report", "--log-level", "error")
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	if !strings.Contains(out, "AMORTIZATION REPORT - SAC vs PRICE") {
		t.Errorf("expected report header, got:\n%s", out)
	}
	if !strings.Contains(out, "RECOMMENDED:") {
		t.Errorf("expected a recommendation, got:\n%s", out)
	}
}

func TestSimulateCSV(t *testing.T) {
	out, err := runCommand(t, "simulate", "--config", exampleConfig, "--output-format", "csv", "--log-level", "error")
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1+360+360 {
		t.Errorf("expected header plus 720 ledger rows, got %d lines", len(lines))
	}
}

func TestSimulateRejectsInvalidConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := []byte("loan:\n  principal: 0\n  termMonths: 12\n  ratePercent: 1\n")
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	if _, err := runCommand(t, "simulate", "--config", path, "--log-level", "error"); err == nil {
		t.Fatal("expected an error for a zero principal")
	}
}

func TestSimulateRejectsOutputFormat(t *testing.T) {
	if _, err := runCommand(t, "simulate", "--config", exampleConfig, "--output-format", "xml", "--log-level", "error"); err == nil {
		t.Fatal("expected an error for an unsupported output format")
	}
}

func TestSimulateMissingConfiguration(t *testing.T) {
	if _, err := runCommand(t, "simulate", "--config", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing configuration file")
	}
}

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name      string
		config    config.LoggingConfig
		override  string
		wantError bool
	}{
		{name: "Defaults"},
		{name: "Console debug", config: config.LoggingConfig{Level: "debug", Format: "console"}},
		{name: "Override", config: config.LoggingConfig{Level: "bogus"}, override: "warn"},
		{name: "Invalid level", config: config.LoggingConfig{Level: "bogus"}, wantError: true},
		{name: "Invalid format", config: config.LoggingConfig{Format: "xml"}, wantError: true},
		{name: "Log file", config: config.LoggingConfig{OutputFile: filepath.Join(t.TempDir(), "logs", "app.log")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.config, tt.override)
			if tt.wantError {
				if err == nil {
					t.Error("initializeLogger() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("initializeLogger() error = %v", err)
			}
			if logger == nil {
				t.Fatal("initializeLogger() returned nil logger")
			}
		})
	}
}
