// Package config defines the JSON-serializable configuration of the lab
// export cleaner: where the raw exports live, where cleaned copies go, which
// cleaning policy applies to which table, and the CSV dialect shared by all of
// them.
//
// Values come from three layers, later ones winning:
//
//  1. Default(), the six-table layout of the lab export.
//  2. An optional JSON file passed to Load.
//  3. LABCLEAN_* environment variables applied by ApplyEnv.
//
// Example (trimmed):
//
//	{
//	  "job": "labclean",
//	  "input_dir": "exports",
//	  "output_dir": "cleaned_csv",
//	  "csv": { "comma": ",", "crlf": true, "encoding": "utf-8" },
//	  "tables": [
//	    { "name": "Measurement.csv", "kind": "fields",
//	      "options": { "datetime_column": "DateTime", "value_column": "Value" } },
//	    { "name": "CMAS.csv", "kind": "pivot" }
//	  ]
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/kelseyhightower/envconfig"

	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/table"
)

// EnvPrefix prefixes every environment override, e.g. LABCLEAN_OUTPUT_DIR.
const EnvPrefix = "LABCLEAN"

// Config is the top-level object decoded from a config file.
type Config struct {
	// Job names the run in logs and metrics.
	Job string `json:"job" split_words:"true"`

	// InputDir holds the raw export files.
	InputDir string `json:"input_dir" split_words:"true"`

	// OutputDir receives one cleaned file per processed table. It is created
	// when absent.
	OutputDir string `json:"output_dir" split_words:"true"`

	// Manifest is the file name, inside OutputDir, of the JSON run report.
	// Empty disables it.
	Manifest string `json:"manifest" split_words:"true"`

	// CSV is the dialect used to read inputs and write outputs.
	CSV CSV `json:"csv" split_words:"true"`

	// Tables is the ordered list of expected exports. Order is processing
	// order.
	Tables []Table `json:"tables" ignored:"true"`

	Metrics Metrics `json:"metrics" split_words:"true"`

	// Storage is only read by the importer (cmd/labload).
	Storage Storage `json:"storage" split_words:"true"`
}

// CSV describes the tabular dialect.
type CSV struct {
	// Comma is the single-character field delimiter.
	Comma string `json:"comma" split_words:"true"`

	// LazyQuotes tolerates bare quotes inside fields on input.
	LazyQuotes bool `json:"lazy_quotes" split_words:"true"`

	// CRLF terminates output lines with \r\n.
	CRLF bool `json:"crlf" split_words:"true"`

	// Encoding is the input charset label; output is always UTF-8.
	Encoding string `json:"encoding" split_words:"true"`
}

// Dialect converts c for the table reader and writer. An empty Comma means ','.
func (c CSV) Dialect() table.Dialect {
	comma := ','
	if r, _ := utf8.DecodeRuneInString(c.Comma); r != utf8.RuneError {
		comma = r
	}
	return table.Dialect{
		Comma:      comma,
		LazyQuotes: c.LazyQuotes,
		CRLF:       c.CRLF,
		Encoding:   c.Encoding,
	}
}

// Table binds one expected export file to a cleaning policy.
type Table struct {
	// Name is the file name relative to InputDir; the output keeps it.
	Name string `json:"name"`

	// Kind selects the transformer: "fields", "generic", "single_row" or
	// "pivot".
	Kind string `json:"kind"`

	// Options is interpreted by the selected transformer.
	Options Options `json:"options"`
}

// Metrics selects the optional metrics backend.
type Metrics struct {
	// Backend is "pushgateway" or "none".
	Backend        string `json:"backend" split_words:"true"`
	PushgatewayURL string `json:"pushgateway_url" split_words:"true"`
}

// Storage configures the database the importer loads cleaned tables into.
type Storage struct {
	// Kind is a registered storage backend: "sqlite", "postgres", "mssql".
	Kind      string `json:"kind" split_words:"true"`
	DSN       string `json:"dsn" split_words:"true"`
	BatchSize int    `json:"batch_size" split_words:"true"`
}

// Default returns the layout of the lab export: six tables read from the
// working directory and written to cleaned_csv.
func Default() Config {
	return Config{
		Job:       "labclean",
		InputDir:  ".",
		OutputDir: "cleaned_csv",
		Manifest:  "manifest.json",
		CSV: CSV{
			Comma:      ",",
			LazyQuotes: true,
			CRLF:       true,
			Encoding:   "utf-8",
		},
		Tables: []Table{
			{Name: "LabResultGroup.csv", Kind: "generic"},
			{Name: "LabResult.csv", Kind: "generic"},
			{Name: "LabResultsEN.csv", Kind: "generic"},
			{Name: "Measurement.csv", Kind: "fields"},
			{Name: "Patient.csv", Kind: "single_row"},
			{Name: "CMAS.csv", Kind: "pivot"},
		},
		Metrics: Metrics{Backend: "none"},
		Storage: Storage{
			Kind:      "sqlite",
			DSN:       "jdm_dashboard.db",
			BatchSize: 500,
		},
	}
}

// Load returns Default() overlaid with the JSON file at path. An empty path
// returns the defaults. A "tables" array in the file replaces the default
// table list as a whole.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return c, fmt.Errorf("decode config %s: %w", path, err)
	}
	return c, nil
}

// ApplyEnv overrides c from LABCLEAN_* environment variables. Only variables
// that are set are applied, e.g. LABCLEAN_OUTPUT_DIR, LABCLEAN_CSV_ENCODING,
// LABCLEAN_METRICS_PUSHGATEWAY_URL, LABCLEAN_STORAGE_DSN.
func ApplyEnv(c *Config) error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("env overrides: %w", err)
	}
	return nil
}

// Options is a small helper to fetch typed values from arbitrary JSON maps.
// It performs no type coercion and returns provided defaults when a key is
// absent or of an unexpected type.
//
// Options carries per-table transformer settings, whose shape varies by kind.
type Options map[string]any

// String returns the string value for key or def if key is missing or not a string.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// UnmarshalJSON implements json.Unmarshaler so that a null "options" object
// decodes to a non-nil, empty Options map.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
