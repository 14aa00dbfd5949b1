package mssql

import (
	"fmt"
	"strings"

	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/ddl"
)

// Dialect renders the importer schema for SQL Server. NVARCHAR(MAX) cannot be
// indexed or used as a key, so bounded "string" columns map to NVARCHAR(255).
type Dialect struct{}

var _ ddl.Dialect = Dialect{}

// QuoteIdent implements ddl.Dialect.
func (Dialect) QuoteIdent(id string) string { return msIdent(id) }

// ColumnType implements ddl.Dialect.
func (Dialect) ColumnType(c ddl.ColumnDef) (string, error) {
	if c.AutoIncrement {
		return "BIGINT IDENTITY(1,1) PRIMARY KEY", nil
	}
	switch strings.ToLower(strings.TrimSpace(c.Type)) {
	case ddl.TypeInt:
		return "BIGINT", nil
	case ddl.TypeText:
		return "NVARCHAR(MAX)", nil
	case ddl.TypeString:
		return "NVARCHAR(255)", nil
	}
	return "", ddl.UnknownTypeError(c.Type)
}

// CreateTable implements ddl.Dialect. SQL Server has no IF NOT EXISTS for
// tables, so the statement is guarded with OBJECT_ID.
func (Dialect) CreateTable(table, body string) string {
	return fmt.Sprintf(
		"IF OBJECT_ID(N'%s', N'U') IS NULL\nCREATE TABLE %s (\n  %s\n);",
		strings.ReplaceAll(table, "'", "''"), table, body,
	)
}

// CreateIndex implements ddl.Dialect.
func (Dialect) CreateIndex(name, table string, columns []string) string {
	return fmt.Sprintf(
		"IF NOT EXISTS (SELECT 1 FROM sys.indexes WHERE name = N'%s' AND object_id = OBJECT_ID(N'%s'))\nCREATE INDEX %s ON %s (%s);",
		strings.ReplaceAll(name, "'", "''"), strings.ReplaceAll(table, "'", "''"),
		msIdent(name), table, strings.Join(columns, ", "),
	)
}
