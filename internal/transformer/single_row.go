package transformer

import (
	"context"

	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/table"
)

// SingleRow is the narrow pass used for the patient table, which is expected
// to hold exactly one data row. Blank rows are dropped; every other value is
// written verbatim.
//
// No check is made that the patient referenced here exists in the related lab
// tables.
type SingleRow struct{}

// Kind implements Transformer.
func (SingleRow) Kind() string { return KindSingleRow }

// Transform implements Transformer.
func (SingleRow) Transform(ctx context.Context, in *table.Reader, out *table.Writer) (Stats, error) {
	return copyRows(ctx, in, out, func(r table.Row) bool {
		return !r.AllBlank()
	})
}
