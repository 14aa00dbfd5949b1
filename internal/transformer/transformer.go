// Package transformer holds the row-level cleaning policies applied to each
// lab export. A Transformer consumes a table from a table.Reader and writes
// the cleaned table to a table.Writer:
//
//   - Fields     ("fields")     repairs the DateTime and Value columns.
//   - Generic    ("generic")    drops blank rows and trims every field.
//   - SingleRow  ("single_row") drops blank rows and keeps values verbatim.
//   - Pivot      ("pivot")      reshapes the wide CMAS table into
//     (Date, Category, Value) records.
//
// Transformers hold no state between tables and are safe to reuse
// sequentially.
package transformer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/config"
	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/table"
)

// Transformer kinds as they appear in configuration.
const (
	KindFields    = "fields"
	KindGeneric   = "generic"
	KindSingleRow = "single_row"
	KindPivot     = "pivot"
)

var (
	// ErrInsufficientData means the wide table has no body row to pivot. No
	// output should be produced for it.
	ErrInsufficientData = errors.New("table is empty or has insufficient data")

	// ErrEmptyTable means a flat table has no header row.
	ErrEmptyTable = errors.New("table has no header")
)

// Stats summarizes one Transform call. Dropped counts input rows (or, for
// Pivot, cells) that produced no output.
type Stats struct {
	Read    int `json:"read"`
	Written int `json:"written"`
	Dropped int `json:"dropped"`
}

// Transformer cleans one table.
type Transformer interface {
	Kind() string
	Transform(ctx context.Context, in *table.Reader, out *table.Writer) (Stats, error)
}

// New builds the transformer for kind. Options are interpreted per kind; see
// the individual types.
func New(kind string, opt config.Options) (Transformer, error) {
	if opt == nil {
		opt = config.Options{}
	}
	switch strings.TrimSpace(kind) {
	case KindFields:
		return Fields{
			DateTimeColumn: opt.String("datetime_column", DefaultDateTimeColumn),
			ValueColumn:    opt.String("value_column", DefaultValueColumn),
		}, nil
	case KindGeneric:
		return Generic{}, nil
	case KindSingleRow:
		return SingleRow{}, nil
	case KindPivot:
		return Pivot{}, nil
	}
	return nil, fmt.Errorf("unknown transformer kind %q", kind)
}

// Kinds lists every kind accepted by New.
func Kinds() []string {
	return []string{KindFields, KindGeneric, KindSingleRow, KindPivot}
}

// copyRows streams the flat table from in to out. The header is written
// verbatim; fn decides per row whether to keep it and may rewrite its values
// in place.
func copyRows(ctx context.Context, in *table.Reader, out *table.Writer, fn func(table.Row) bool) (Stats, error) {
	var st Stats

	h, err := in.ReadHeader()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return st, ErrEmptyTable
		}
		return st, err
	}
	if err := out.Write(h.Names()); err != nil {
		return st, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		row, err := in.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return st, err
		}
		st.Read++

		if !fn(row) {
			st.Dropped++
			continue
		}
		if err := out.Write(row.Values); err != nil {
			return st, err
		}
		st.Written++
	}
	return st, out.Flush()
}
