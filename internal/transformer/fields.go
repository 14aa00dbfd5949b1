package transformer

import (
	"context"

	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/normalize"
	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/table"
)

// Default column names repaired by Fields.
const (
	DefaultDateTimeColumn = "DateTime"
	DefaultValueColumn    = "Value"
)

// Fields repairs the date-time and value columns of the measurement table
// and passes every other column through. It never drops a row.
//
// Options (via New): datetime_column, value_column.
type Fields struct {
	DateTimeColumn string
	ValueColumn    string
}

// Kind implements Transformer.
func (Fields) Kind() string { return KindFields }

// Transform implements Transformer.
func (f Fields) Transform(ctx context.Context, in *table.Reader, out *table.Writer) (Stats, error) {
	dtCol, valCol := f.DateTimeColumn, f.ValueColumn
	if dtCol == "" {
		dtCol = DefaultDateTimeColumn
	}
	if valCol == "" {
		valCol = DefaultValueColumn
	}

	return copyRows(ctx, in, out, func(r table.Row) bool {
		if v, ok := r.Get(dtCol); ok {
			r.Set(dtCol, normalize.DateTime(v))
		}
		if v, ok := r.Get(valCol); ok {
			r.Set(valCol, normalize.Value(v))
		}
		return true
	})
}
