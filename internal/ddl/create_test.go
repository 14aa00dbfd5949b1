package ddl

import (
	"fmt"
	"strings"
	"testing"
)

// testDialect renders in a neutral, easy to read flavour.
type testDialect struct{}

func (testDialect) QuoteIdent(id string) string { return `"` + id + `"` }

func (testDialect) ColumnType(c ColumnDef) (string, error) {
	if c.AutoIncrement {
		return "SERIAL PRIMARY KEY", nil
	}
	switch c.Type {
	case TypeInt:
		return "INT", nil
	case TypeText, TypeString:
		return "TEXT", nil
	}
	return "", UnknownTypeError(c.Type)
}

func (testDialect) CreateTable(table, body string) string {
	return fmt.Sprintf("CREATE TABLE %s (\n  %s\n);", table, body)
}

func (testDialect) CreateIndex(name, table string, columns []string) string {
	return fmt.Sprintf("CREATE INDEX %s ON %s (%s);", name, table, strings.Join(columns, ", "))
}

func TestBuild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		def     TableDef
		want    []string
		wantErr string
	}{
		{
			name: "primary key and nullable column",
			def: TableDef{
				Name: "lab_result",
				Columns: []ColumnDef{
					{Name: "lab_result_id", Type: TypeString, PrimaryKey: true},
					{Name: "result_name", Type: TypeText},
					{Name: "unit", Type: TypeText, Nullable: true},
				},
			},
			want: []string{
				"CREATE TABLE \"lab_result\" (\n" +
					"  \"lab_result_id\" TEXT NOT NULL,\n" +
					"  \"result_name\" TEXT NOT NULL,\n" +
					"  \"unit\" TEXT,\n" +
					"  PRIMARY KEY (\"lab_result_id\")\n);",
			},
		},
		{
			name: "auto increment owns its key",
			def: TableDef{
				Name: "cmas",
				Columns: []ColumnDef{
					{Name: "id", Type: TypeInt, PrimaryKey: true, AutoIncrement: true},
					{Name: "value", Type: TypeInt},
				},
				Indexes: []IndexDef{{Name: "idx_cmas_value", Columns: []string{"value"}}},
			},
			want: []string{
				"CREATE TABLE \"cmas\" (\n" +
					"  \"id\" SERIAL PRIMARY KEY,\n" +
					"  \"value\" INT NOT NULL\n);",
				`CREATE INDEX idx_cmas_value ON "cmas" ("value");`,
			},
		},
		{
			name:    "empty table name",
			def:     TableDef{Name: "  ", Columns: []ColumnDef{{Name: "a", Type: TypeText}}},
			wantErr: "table name must not be empty",
		},
		{
			name:    "no columns",
			def:     TableDef{Name: "patient"},
			wantErr: "at least one column",
		},
		{
			name:    "empty column name",
			def:     TableDef{Name: "patient", Columns: []ColumnDef{{Name: "", Type: TypeText}}},
			wantErr: "column with empty name",
		},
		{
			name:    "unknown type",
			def:     TableDef{Name: "patient", Columns: []ColumnDef{{Name: "name", Type: "blob"}}},
			wantErr: `patient.name: unknown logical type "blob"`,
		},
		{
			name: "index on unknown column",
			def: TableDef{
				Name:    "patient",
				Columns: []ColumnDef{{Name: "name", Type: TypeText}},
				Indexes: []IndexDef{{Name: "idx", Columns: []string{"missing"}}},
			},
			wantErr: "unknown column patient.missing",
		},
		{
			name: "index without columns",
			def: TableDef{
				Name:    "patient",
				Columns: []ColumnDef{{Name: "name", Type: TypeText}},
				Indexes: []IndexDef{{Name: "idx"}},
			},
			wantErr: "index needs a name and columns",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Build(testDialect{}, tt.def)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Build() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Build() = %d statements, want %d: %q", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("stmt[%d] =\n%s\nwant\n%s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestColumnNames(t *testing.T) {
	t.Parallel()

	def := TableDef{Columns: []ColumnDef{
		{Name: "id", AutoIncrement: true},
		{Name: "date"},
		{Name: "value"},
	}}
	got := def.ColumnNames()
	if strings.Join(got, ",") != "date,value" {
		t.Fatalf("ColumnNames() = %v, want [date value]", got)
	}
}
