package transformer

import (
	"context"
	"strings"

	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/table"
)

// Generic drops rows whose fields are all blank and trims surrounding
// whitespace from every field of the rows it keeps.
type Generic struct{}

// Kind implements Transformer.
func (Generic) Kind() string { return KindGeneric }

// Transform implements Transformer.
func (Generic) Transform(ctx context.Context, in *table.Reader, out *table.Writer) (Stats, error) {
	return copyRows(ctx, in, out, func(r table.Row) bool {
		if r.AllBlank() {
			return false
		}
		for i, v := range r.Values {
			r.Values[i] = strings.TrimSpace(v)
		}
		return true
	})
}
