// Package ddl defines a small, backend-agnostic model for the importer's
// schema and renders it to CREATE TABLE / CREATE INDEX statements through a
// Dialect supplied by each storage backend.
package ddl

import (
	"fmt"
	"strings"
)

// Dialect adapts rendering to one SQL flavour.
type Dialect interface {
	// QuoteIdent quotes a single identifier.
	QuoteIdent(id string) string
	// ColumnType returns the SQL type of c. For AutoIncrement columns it
	// returns the full inline definition, including PRIMARY KEY.
	ColumnType(c ColumnDef) (string, error)
	// CreateTable wraps a rendered column list into an idempotent statement.
	CreateTable(table, body string) string
	// CreateIndex returns an idempotent CREATE INDEX statement. table and
	// columns are already quoted.
	CreateIndex(name, table string, columns []string) string
}

// Build renders t with d. The first statement creates the table; one
// statement per index follows.
//
// Rules:
//   - t.Name must be non-empty and t must have at least one column.
//   - Each column must have a non-empty Name.
//   - NOT NULL is added when Nullable == false, except for AutoIncrement
//     columns, whose definition is owned by the dialect.
//   - Columns with PrimaryKey == true (and not AutoIncrement) are rendered as
//     a separate PRIMARY KEY (...) clause.
//   - Index columns must exist in t.
func Build(d Dialect, t TableDef) ([]string, error) {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return nil, fmt.Errorf("ddl: table name must not be empty")
	}
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("ddl: table %s: at least one column is required", name)
	}

	known := make(map[string]bool, len(t.Columns))
	cols := make([]string, 0, len(t.Columns)+1)
	var pks []string

	for _, c := range t.Columns {
		cname := strings.TrimSpace(c.Name)
		if cname == "" {
			return nil, fmt.Errorf("ddl: column with empty name in table %s", name)
		}
		known[cname] = true

		typ, err := d.ColumnType(c)
		if err != nil {
			return nil, fmt.Errorf("ddl: %s.%s: %w", name, cname, err)
		}

		var sb strings.Builder
		sb.WriteString(d.QuoteIdent(cname))
		sb.WriteByte(' ')
		sb.WriteString(typ)
		if !c.Nullable && !c.AutoIncrement {
			sb.WriteString(" NOT NULL")
		}
		cols = append(cols, sb.String())

		if c.PrimaryKey && !c.AutoIncrement {
			pks = append(pks, d.QuoteIdent(cname))
		}
	}
	if len(pks) > 0 {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}

	table := d.QuoteIdent(name)
	stmts := []string{d.CreateTable(table, strings.Join(cols, ",\n  "))}

	for _, ix := range t.Indexes {
		if strings.TrimSpace(ix.Name) == "" || len(ix.Columns) == 0 {
			return nil, fmt.Errorf("ddl: table %s: index needs a name and columns", name)
		}
		quoted := make([]string, len(ix.Columns))
		for i, c := range ix.Columns {
			if !known[c] {
				return nil, fmt.Errorf("ddl: index %s references unknown column %s.%s", ix.Name, name, c)
			}
			quoted[i] = d.QuoteIdent(c)
		}
		stmts = append(stmts, d.CreateIndex(ix.Name, table, quoted))
	}
	return stmts, nil
}

// UnknownTypeError reports a logical type a dialect cannot map.
func UnknownTypeError(typ string) error {
	return fmt.Errorf("unknown logical type %q", typ)
}
