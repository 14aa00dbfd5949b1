package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun_LoadsIntoSQLite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	patient := "PatientID,Name\r\nP1,Jane Doe\r\n"
	if err := os.WriteFile(filepath.Join(dir, "Patient.csv"), []byte(patient), 0o644); err != nil {
		t.Fatal(err)
	}
	dsn := filepath.Join(t.TempDir(), "jdm.db")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-dir", dir, "-storage", "sqlite", "-dsn", dsn}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, stderr:\n%s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "inserted=1 rejected=0") {
		t.Errorf("output = %q, want a patient line with inserted=1", stdout.String())
	}
	if _, err := os.Stat(dsn); err != nil {
		t.Errorf("database not created: %v", err)
	}
}

func TestRun_ExitCodes(t *testing.T) {
	t.Parallel()

	empty := t.TempDir()
	dsn := filepath.Join(t.TempDir(), "jdm.db")
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"unknown flag", []string{"-nope"}, 2},
		{"unknown storage", []string{"-dir", empty, "-storage", "oracle", "-dsn", "x"}, 1},
		{"missing patient file", []string{"-dir", empty, "-storage", "sqlite", "-dsn", dsn}, 1},
	}
	for _, tt := range tests {
		var stdout, stderr bytes.Buffer
		if got := run(tt.args, &stdout, &stderr); got != tt.want {
			t.Errorf("%s: run() = %d, want %d (stderr %q)", tt.name, got, tt.want, stderr.String())
		}
	}
}
