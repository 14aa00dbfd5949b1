package transformer

import (
	"context"
	"strings"

	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/normalize"
	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/table"
)

// PivotHeader is the fixed header of the long table written by Pivot.
var PivotHeader = []string{"Date", "Category", "Value"}

// Pivot reshapes the wide CMAS export, one row per category and one column
// per date, into one (Date, Category, Value) record per non-blank cell.
//
// The whole input is read before anything is written, since the dates are
// only known from the header. Records are emitted row by row, and within a
// row in header column order. Column headers are canonicalized with
// normalize.HeaderDate; categories and values are copied verbatim.
type Pivot struct{}

// Kind implements Transformer.
func (Pivot) Kind() string { return KindPivot }

// Transform implements Transformer. It returns ErrInsufficientData, having
// written nothing, when the input has fewer than two rows. A blank line counts
// as a row with no cells and contributes nothing to the output.
func (Pivot) Transform(ctx context.Context, in *table.Reader, out *table.Writer) (Stats, error) {
	var st Stats

	rows, err := in.ReadAll()
	if err != nil {
		return st, err
	}
	if len(rows) < 2 {
		return st, ErrInsufficientData
	}

	header := rows[0]
	dates := make([]string, len(header))
	for k := 1; k < len(header); k++ {
		dates[k] = normalize.HeaderDate(header[k])
	}

	if err := out.Write(PivotHeader); err != nil {
		return st, err
	}

	for _, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		if len(row) == 0 {
			continue
		}
		st.Read++

		category := row[0]
		for k := 1; k < len(header); k++ {
			if k >= len(row) {
				break
			}
			value := row[k]
			if strings.TrimSpace(value) == "" {
				st.Dropped++
				continue
			}
			if err := out.Write([]string{dates[k], category, value}); err != nil {
				return st, err
			}
			st.Written++
		}
	}
	return st, out.Flush()
}
