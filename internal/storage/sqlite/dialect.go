package sqlite

import (
	"fmt"
	"strings"

	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/ddl"
)

// Dialect renders the importer schema for SQLite.
//
// SQLite supports dynamic typing, so the mapping prefers canonical
// affinities: integers are INTEGER, every string type is TEXT.
type Dialect struct{}

var _ ddl.Dialect = Dialect{}

// QuoteIdent implements ddl.Dialect using double quotes.
func (Dialect) QuoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

// ColumnType implements ddl.Dialect.
func (Dialect) ColumnType(c ddl.ColumnDef) (string, error) {
	if c.AutoIncrement {
		return "INTEGER PRIMARY KEY AUTOINCREMENT", nil
	}
	switch strings.ToLower(strings.TrimSpace(c.Type)) {
	case ddl.TypeInt:
		return "INTEGER", nil
	case ddl.TypeText, ddl.TypeString:
		return "TEXT", nil
	}
	return "", ddl.UnknownTypeError(c.Type)
}

// CreateTable implements ddl.Dialect.
func (Dialect) CreateTable(table, body string) string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n  %s\n);", table, body)
}

// CreateIndex implements ddl.Dialect.
func (d Dialect) CreateIndex(name, table string, columns []string) string {
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s);",
		d.QuoteIdent(name), table, strings.Join(columns, ", "))
}
