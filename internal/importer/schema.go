package importer

import "github.com/SnakeyRoad/jdm-doctor-dashboard/internal/ddl"

// Database tables, in load order.
const (
	TablePatient        = "patient"
	TableCMAS           = "cmas"
	TableLabResultGroup = "lab_result_group"
	TableLabResult      = "lab_result"
	TableMeasurement    = "measurement"
)

// Schema returns the dashboard schema in load order. Relations between
// tables are by id only; no foreign keys are declared.
func Schema() []ddl.TableDef {
	return []ddl.TableDef{
		{
			Name: TablePatient,
			Columns: []ddl.ColumnDef{
				{Name: "patient_id", Type: ddl.TypeString, PrimaryKey: true},
				{Name: "name", Type: ddl.TypeText},
			},
		},
		{
			Name: TableCMAS,
			Columns: []ddl.ColumnDef{
				{Name: "id", Type: ddl.TypeInt, PrimaryKey: true, AutoIncrement: true},
				{Name: "date", Type: ddl.TypeString},
				{Name: "category", Type: ddl.TypeText},
				{Name: "value", Type: ddl.TypeInt},
				{Name: "patient_id", Type: ddl.TypeString},
			},
			Indexes: []ddl.IndexDef{
				{Name: "idx_cmas_patient_id", Columns: []string{"patient_id"}},
				{Name: "idx_cmas_date", Columns: []string{"date"}},
			},
		},
		{
			Name: TableLabResultGroup,
			Columns: []ddl.ColumnDef{
				{Name: "lab_result_group_id", Type: ddl.TypeString, PrimaryKey: true},
				{Name: "group_name", Type: ddl.TypeText},
			},
		},
		{
			Name: TableLabResult,
			Columns: []ddl.ColumnDef{
				{Name: "lab_result_id", Type: ddl.TypeString, PrimaryKey: true},
				{Name: "lab_result_group_id", Type: ddl.TypeString},
				{Name: "patient_id", Type: ddl.TypeString},
				{Name: "result_name", Type: ddl.TypeText},
				{Name: "unit", Type: ddl.TypeText, Nullable: true},
				{Name: "result_name_english", Type: ddl.TypeText, Nullable: true},
			},
			Indexes: []ddl.IndexDef{
				{Name: "idx_lab_result_patient_id", Columns: []string{"patient_id"}},
				{Name: "idx_lab_result_group_id", Columns: []string{"lab_result_group_id"}},
			},
		},
		{
			Name: TableMeasurement,
			Columns: []ddl.ColumnDef{
				{Name: "measurement_id", Type: ddl.TypeString, PrimaryKey: true},
				{Name: "lab_result_id", Type: ddl.TypeString},
				{Name: "date_time", Type: ddl.TypeString},
				{Name: "value", Type: ddl.TypeText},
			},
			Indexes: []ddl.IndexDef{
				{Name: "idx_measurement_lab_result_id", Columns: []string{"lab_result_id"}},
				{Name: "idx_measurement_date_time", Columns: []string{"date_time"}},
			},
		},
	}
}

func tableDef(name string) ddl.TableDef {
	for _, t := range Schema() {
		if t.Name == name {
			return t
		}
	}
	panic("importer: unknown table " + name)
}
