package importer

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/datasource/file"
	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/table"
)

// get returns the named cell, or "" when the column is absent.
func get(r table.Row, col string) string {
	v, _ := r.Get(col)
	return v
}

// requireCols rejects rows from files missing any of cols.
func requireCols(r table.Row, cols ...string) (string, bool) {
	for _, c := range cols {
		if !r.Header.Has(c) {
			return "missing column " + c, false
		}
	}
	return "", true
}

func (im *Importer) loadPatients(ctx context.Context) (string, TableSummary, error) {
	var first string
	ts, err := im.load(ctx, PatientFile, tableDef(TablePatient), true, func(r table.Row) ([]any, bool, string) {
		if reason, ok := requireCols(r, "PatientID", "Name"); !ok {
			return nil, false, reason
		}
		id := strings.TrimSpace(get(r, "PatientID"))
		if id == "" {
			return nil, false, "empty PatientID"
		}
		if first == "" {
			first = id
		}
		return []any{id, get(r, "Name")}, true, ""
	})
	if err != nil {
		return "", ts, err
	}
	if first == "" {
		return "", ts, fmt.Errorf("%s: %w", PatientFile, ErrNoPatient)
	}
	return first, ts, nil
}

func (im *Importer) loadCMAS(ctx context.Context, patientID string) (TableSummary, error) {
	return im.load(ctx, CMASFile, tableDef(TableCMAS), false, func(r table.Row) ([]any, bool, string) {
		if reason, ok := requireCols(r, "Date", "Category", "Value"); !ok {
			return nil, false, reason
		}
		date, err := ParseCMASDate(CleanCMASDate(get(r, "Date")))
		if err != nil {
			return nil, false, err.Error()
		}
		v, err := ParseCMASValue(get(r, "Value"))
		if err != nil {
			return nil, false, err.Error()
		}
		return []any{date, CleanCMASCategory(get(r, "Category")), v, patientID}, true, ""
	})
}

func (im *Importer) loadLabResultGroups(ctx context.Context, _ string) (TableSummary, error) {
	return im.load(ctx, LabResultGroupFile, tableDef(TableLabResultGroup), false, func(r table.Row) ([]any, bool, string) {
		if reason, ok := requireCols(r, "LabResultGroupID", "GroupName"); !ok {
			return nil, false, reason
		}
		return []any{get(r, "LabResultGroupID"), strings.TrimSpace(get(r, "GroupName"))}, true, ""
	})
}

func (im *Importer) loadLabResults(ctx context.Context, patientID string) (TableSummary, error) {
	english, err := im.englishNames(ctx)
	if err != nil {
		return TableSummary{Table: TableLabResult, File: LabResultFile}, err
	}
	return im.load(ctx, LabResultFile, tableDef(TableLabResult), false, func(r table.Row) ([]any, bool, string) {
		if reason, ok := requireCols(r, "LabResultID", "LabResultGroupID", "ResultName"); !ok {
			return nil, false, reason
		}
		id := get(r, "LabResultID")
		var en any
		if name, ok := english[id]; ok {
			en = name
		}
		return []any{id, get(r, "LabResultGroupID"), patientID, get(r, "ResultName"), get(r, "Unit"), en}, true, ""
	})
}

func (im *Importer) loadMeasurements(ctx context.Context, _ string) (TableSummary, error) {
	return im.load(ctx, MeasurementFile, tableDef(TableMeasurement), false, func(r table.Row) ([]any, bool, string) {
		if reason, ok := requireCols(r, "MeasurementID", "LabResultID", "DateTime", "Value"); !ok {
			return nil, false, reason
		}
		ts, err := ParseMeasurementTime(get(r, "DateTime"))
		if err != nil {
			return nil, false, err.Error()
		}
		return []any{get(r, "MeasurementID"), get(r, "LabResultID"), ts, strings.TrimSpace(get(r, "Value"))}, true, ""
	})
}

// englishNames maps LabResultID to ResultName_English. A missing
// LabResultsEN.csv yields an empty map.
func (im *Importer) englishNames(ctx context.Context) (map[string]string, error) {
	out := map[string]string{}
	rc, err := file.NewLocal(filepath.Join(im.opts.Dir, LabResultsENFile)).Open(ctx)
	if err != nil {
		if isNotExist(err) {
			return out, nil
		}
		return nil, err
	}
	defer rc.Close()

	rd, err := table.NewReader(rc, im.opts.CSV)
	if err != nil {
		return nil, err
	}
	for {
		r, err := rd.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", LabResultsENFile, err)
		}
		if id := get(r, "LabResultID"); id != "" {
			out[id] = get(r, "ResultName_English")
		}
	}
}
