package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vovakirdan/engine-cycle/internal/engine"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("enginecycle %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestModelsCommand(t *testing.T) {
	out := execute(t, "models")
	for _, id := range []string{"theoretical", "actual", "wiebe"} {
		if !strings.Contains(out, id) {
			t.Errorf("models output missing %q:\n%s", id, out)
		}
	}
}

func TestSampleCommandCSV(t *testing.T) {
	out := execute(t, "sample", "--step", "90", "--format", "csv", "--rpm", "3000")

	var rows []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if !strings.HasPrefix(line, "#") {
			rows = append(rows, line)
		}
	}
	if rows[0] != "Crank_Angle,Volume_cm3,Pressure_bar,Phase" {
		t.Errorf("header = %q", rows[0])
	}
	if len(rows) != 1+9 {
		t.Errorf("got %d data rows, expected 9 for a 90° step", len(rows)-1)
	}
	if !strings.Contains(out, "rpm: 3000") {
		t.Error("flag override not reflected in the config comment")
	}
}

func TestMetricsCommandJSON(t *testing.T) {
	out := execute(t, "metrics", "--json", "--model", "theoretical")

	var m engine.Metrics
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if m.IMEP <= 0 || m.DisplacementCC <= 0 {
		t.Errorf("metrics = %+v", m)
	}
}

func TestWriteSampleUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := writeSample(&buf, "xml", nil, engine.Default(), engine.Theoretical)
	if err == nil {
		t.Error("expected an error for an unknown format")
	}
}
