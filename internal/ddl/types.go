package ddl

// Logical column types. Dialects map them to concrete SQL types.
const (
	// TypeText is unbounded text.
	TypeText = "text"
	// TypeString is short, indexable text such as identifiers and dates.
	TypeString = "string"
	// TypeInt is a 64-bit integer.
	TypeInt = "int"
)

// ColumnDef describes a single column in a table definition.
//
// Fields:
//   - Name: column name (unquoted; quoting happens at render time)
//   - Type: logical type, one of the Type* constants
//   - Nullable: whether NULL is allowed
//   - PrimaryKey: whether the column is part of the primary key
//   - AutoIncrement: a surrogate integer key generated by the database; the
//     dialect renders it with its own inline PRIMARY KEY
type ColumnDef struct {
	Name          string
	Type          string
	Nullable      bool
	PrimaryKey    bool
	AutoIncrement bool
}

// IndexDef is a secondary, non-unique index.
type IndexDef struct {
	Name    string
	Columns []string
}

// TableDef holds the table name, its ordered columns and its indexes.
type TableDef struct {
	Name    string
	Columns []ColumnDef
	Indexes []IndexDef
}

// ColumnNames returns the names of the columns that callers insert into,
// i.e. every column except auto-increment keys, in order.
func (t TableDef) ColumnNames() []string {
	out := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c.AutoIncrement {
			continue
		}
		out = append(out, c.Name)
	}
	return out
}
