package postgres

import (
	"fmt"
	"strings"

	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/ddl"
)

// Dialect renders the importer schema for Postgres.
//
//	int              -> BIGINT
//	text, string     -> TEXT
//	auto-increment   -> BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY
type Dialect struct{}

var _ ddl.Dialect = Dialect{}

// QuoteIdent safely quotes a single identifier segment for Postgres.
func (Dialect) QuoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

// ColumnType implements ddl.Dialect.
func (Dialect) ColumnType(c ddl.ColumnDef) (string, error) {
	if c.AutoIncrement {
		return "BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY", nil
	}
	switch strings.ToLower(strings.TrimSpace(c.Type)) {
	case ddl.TypeInt:
		return "BIGINT", nil
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
