// This file adds a lightweight linter for Config values. It performs static
// checks over a decoded Config and returns a list of issues (errors and
// warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/table"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation/lint finding for a Config.
//
// Path is a dotted path into the config (e.g. "csv.encoding",
// "tables[5].kind"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// Validate performs static validation of a Config. It does not touch the
// filesystem: a configured table that is absent on disk is a runtime skip,
// not a configuration error.
func Validate(c Config) []Issue {
	var issues []Issue

	if strings.TrimSpace(c.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "job",
			Message:  "job is empty; logs and metrics will not identify the run",
		})
	}
	issues = append(issues, validateDirs(c)...)
	issues = append(issues, validateCSV(c.CSV)...)
	issues = append(issues, validateTables(c.Tables)...)
	issues = append(issues, validateMetrics(c.Metrics)...)

	return issues
}

// HasErrors reports whether any issue has SeverityError.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

func validateDirs(c Config) []Issue {
	var issues []Issue

	if strings.TrimSpace(c.InputDir) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "input_dir",
			Message:  "input_dir must not be empty",
		})
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "output_dir",
			Message:  "output_dir must not be empty",
		})
		return issues
	}
	if filepath.Clean(c.InputDir) == filepath.Clean(c.OutputDir) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "output_dir",
			Message:  "output_dir must differ from input_dir; cleaned files would overwrite the exports",
		})
	}
	if strings.ContainsAny(c.Manifest, `/\`) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "manifest",
			Message:  "manifest must be a plain file name inside output_dir",
		})
	}

	return issues
}

func validateCSV(c CSV) []Issue {
	var issues []Issue

	if c.Comma != "" {
		r, size := utf8.DecodeRuneInString(c.Comma)
		switch {
		case size != len(c.Comma):
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "csv.comma",
				Message:  fmt.Sprintf("comma must be a single character, got %q", c.Comma),
			})
		case r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError:
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "csv.comma",
				Message:  fmt.Sprintf("comma %q is not a valid delimiter", c.Comma),
			})
		}
	}

	if _, err := table.LookupEncoding(c.Encoding); err != nil {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "csv.encoding",
			Message:  err.Error(),
		})
	}

	return issues
}

// validateTables checks the table list. The known kinds mirror
// transformer.Kinds; they are listed here so config stays free of the
// transformer package.
func validateTables(ts []Table) []Issue {
	var issues []Issue

	if len(ts) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "tables",
			Message:  "no tables configured; nothing would be cleaned",
		})
		return issues
	}

	knownKinds := map[string]struct{}{
		"fields":     {},
		"generic":    {},
		"single_row": {},
		"pivot":      {},
	}
	seen := make(map[string]int, len(ts))

	for i, t := range ts {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     fmt.Sprintf("tables[%d].name", i),
				Message:  "table name must not be empty",
			})
		} else {
			if name != filepath.Base(name) {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     fmt.Sprintf("tables[%d].name", i),
					Message:  fmt.Sprintf("table name %q must be a plain file name", name),
				})
			}
			if j, dup := seen[name]; dup {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     fmt.Sprintf("tables[%d].name", i),
					Message:  fmt.Sprintf("table %q already configured at tables[%d]", name, j),
				})
			} else {
				seen[name] = i
			}
		}

		if _, ok := knownKinds[t.Kind]; !ok {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     fmt.Sprintf("tables[%d].kind", i),
				Message:  fmt.Sprintf("unknown table kind %q; want one of fields, generic, single_row, pivot", t.Kind),
			})
		}

		if t.Kind == "fields" {
			for _, key := range []string{"datetime_column", "value_column"} {
				if v, ok := t.Options[key]; ok {
					if s, isStr := v.(string); !isStr || strings.TrimSpace(s) == "" {
						issues = append(issues, Issue{
							Severity: SeverityError,
							Path:     fmt.Sprintf("tables[%d].options.%s", i, key),
							Message:  key + " must be a non-empty string",
						})
					}
				}
			}
		}
	}

	return issues
}

func validateMetrics(m Metrics) []Issue {
	var issues []Issue

	switch m.Backend {
	case "", "none":
	case "pushgateway":
		if strings.TrimSpace(m.PushgatewayURL) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "metrics.pushgateway_url",
				Message:  "pushgateway backend requires a URL",
			})
		}
	default:
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "metrics.backend",
			Message:  fmt.Sprintf("unknown metrics backend %q; metrics will be disabled", m.Backend),
		})
	}

	return issues
}

// ValidateStorage checks the settings used by the importer.
func ValidateStorage(s Storage) []Issue {
	var issues []Issue

	if strings.TrimSpace(s.Kind) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  "storage.kind must not be empty",
		})
	} else {
		known := map[string]struct{}{
			"postgres": {},
			"mssql":    {},
			"sqlite":   {},
		}
		if _, ok := known[s.Kind]; !ok {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     "storage.kind",
				Message:  fmt.Sprintf("unknown storage kind %q; ensure a matching backend is registered", s.Kind),
			})
		}
	}
	if strings.TrimSpace(s.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.dsn",
			Message:  "storage.dsn must not be empty",
		})
	}
	if s.BatchSize <= 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.batch_size",
			Message:  fmt.Sprintf("batch_size=%d; non-positive batch sizes fall back to the default", s.BatchSize),
		})
	}

	return issues
}
