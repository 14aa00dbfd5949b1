package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/pipeline"
	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/transformer"
)

func sampleReport() pipeline.Report {
	return pipeline.Report{
		Job:      "labclean",
		Manifest: "cleaned_csv/manifest.json",
		Results: []pipeline.Result{
			{Table: "Patient.csv", Outcome: pipeline.OutcomeSuccess, Output: "cleaned_csv/Patient.csv",
				Stats: transformer.Stats{Read: 2, Written: 1, Dropped: 1}},
			{Table: "CMAS.csv", Outcome: pipeline.OutcomeSkipped, Reason: "input file not found"},
			{Table: "LabResult.csv", Outcome: pipeline.OutcomeFailed, Reason: "row has more fields than header"},
		},
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rep    pipeline.Report
		strict bool
		want   int
	}{
		{"failure tolerated by default", sampleReport(), false, 0},
		{"failure fails strict run", sampleReport(), true, 1},
		{"clean strict run", pipeline.Report{Results: []pipeline.Result{{Outcome: pipeline.OutcomeSkipped}}}, true, 0},
	}
	for _, tt := range tests {
		if got := exitCode(tt.rep, tt.strict); got != tt.want {
			t.Errorf("%s: exitCode() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printSummary(&buf, sampleReport())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("summary has %d lines, want 4:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "rows=1 dropped=1 -> cleaned_csv/Patient.csv") {
		t.Errorf("success line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "input file not found") {
		t.Errorf("skip line = %q", lines[1])
	}
	if want := "cleaned=1 skipped=1 failed=1 manifest=cleaned_csv/manifest.json"; lines[3] != want {
		t.Errorf("totals = %q, want %q", lines[3], want)
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	if got := describe(""); got != "<defaults>" {
		t.Errorf("describe(\"\") = %q", got)
	}
	if got := describe("labclean.json"); got != "labclean.json" {
		t.Errorf("describe() = %q", got)
	}
}

func TestRun_CleansDirectory(t *testing.T) {
	t.Parallel()

	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "cleaned")
	files := map[string]string{
		"Patient.csv": "PatientID,Name\r\n1,Anna\r\n",
		"CMAS.csv":    "Category,2021-03-14\r\n\r\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(in, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-input", in, "-output", out}, &stdout, &stderr); code != 0 {
		t.Fatalf("run() = %d, stderr:\n%s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "cleaned=2 skipped=4 failed=0") {
		t.Errorf("summary = %q", stdout.String())
	}

	got, err := os.ReadFile(filepath.Join(out, "CMAS.csv"))
	if err != nil {
		t.Fatalf("read CMAS.csv: %v", err)
	}
	if want := "Date,Category,Value\r\n"; string(got) != want {
		t.Errorf("CMAS.csv = %q, want %q", got, want)
	}
}

func TestRun_ExitCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"unknown flag", []string{"-nope"}, 2},
		{"missing config file", []string{"-config", filepath.Join(t.TempDir(), "absent.json")}, 1},
		{"validate defaults", []string{"-validate"}, 0},
	}
	for _, tt := range tests {
		var stdout, stderr bytes.Buffer
		if got := run(tt.args, &stdout, &stderr); got != tt.want {
			t.Errorf("%s: run() = %d, want %d (stderr %q)", tt.name, got, tt.want, stderr.String())
		}
	}
}
