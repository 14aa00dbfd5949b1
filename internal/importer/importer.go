// Package importer loads a directory of cleaned lab exports into the
// dashboard database.
//
// Tables are loaded in dependency order (patients first) through the storage
// registry, so any registered backend can be the target. Rows that cannot be
// converted are rejected and logged; the rest of the table still loads.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/datasource/file"
	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/ddl"
	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/metrics"
	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/storage"
	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/table"
)

// Cleaned export file names.
const (
	PatientFile        = "Patient.csv"
	CMASFile           = "CMAS.csv"
	LabResultGroupFile = "LabResultGroup.csv"
	LabResultFile      = "LabResult.csv"
	LabResultsENFile   = "LabResultsEN.csv"
	MeasurementFile    = "Measurement.csv"
)

// ErrNoPatient is returned when Patient.csv holds no patient. Every CMAS
// score and lab result is attributed to the first patient.
var ErrNoPatient = errors.New("no patient found")

// Options configures a load.
type Options struct {
	// Dir holds the cleaned exports (the cleaner's output directory).
	Dir string
	// Kind is the storage kind of repo; it selects the DDL dialect.
	Kind string
	// BatchSize is the number of rows per CopyFrom call.
	BatchSize int
	// Job labels metrics.
	Job string
	// Replace empties every table before loading.
	Replace bool
	// Manifest is the manifest file name inside Dir. When the file exists,
	// checksums are verified before anything is loaded.
	Manifest string
	// CSV is the dialect of the cleaned files.
	CSV table.Dialect
}

// TableSummary reports the load of one database table.
type TableSummary struct {
	Table    string
	File     string
	Inserted int64
	Rejected int64
	Skipped  bool
}

// Summary lists the tables in load order.
type Summary struct {
	Tables []TableSummary
}

// Inserted returns the total number of inserted rows.
func (s Summary) Inserted() int64 {
	var n int64
	for _, t := range s.Tables {
		n += t.Inserted
	}
	return n
}

// Importer loads cleaned exports into a storage.Repository.
type Importer struct {
	repo storage.Repository
	opts Options
}

// New returns an Importer writing to repo.
func New(repo storage.Repository, opts Options) *Importer {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 500
	}
	if opts.Job == "" {
		opts.Job = "labload"
	}
	if opts.CSV.Comma == 0 {
		opts.CSV.Comma = ','
	}
	return &Importer{repo: repo, opts: opts}
}

// Run verifies the manifest, ensures the schema and loads every table. It
// stops at the first error; rows committed by earlier batches stay.
func (im *Importer) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	if err := im.verifyManifest(); err != nil {
		return sum, err
	}
	if err := storage.EnsureSchema(ctx, im.opts.Kind, im.repo, Schema()); err != nil {
		return sum, fmt.Errorf("ensure schema: %w", err)
	}
	if im.opts.Replace {
		if err := im.truncate(ctx); err != nil {
			return sum, err
		}
	}

	patientID, ts, err := im.loadPatients(ctx)
	sum.Tables = append(sum.Tables, ts)
	if err != nil {
		return sum, err
	}
	log.Printf("importer: patient_id=%s used for cmas and lab results", patientID)

	steps := []func(context.Context, string) (TableSummary, error){
		im.loadCMAS,
		im.loadLabResultGroups,
		im.loadLabResults,
		im.loadMeasurements,
	}
	for _, step := range steps {
		ts, err := step(ctx, patientID)
		sum.Tables = append(sum.Tables, ts)
		if err != nil {
			return sum, err
		}
	}
	return sum, nil
}

// truncate deletes rows child tables first.
func (im *Importer) truncate(ctx context.Context) error {
	d, ok := storage.DialectFor(im.opts.Kind)
	if !ok {
		return fmt.Errorf("no DDL dialect registered for storage.kind=%q", im.opts.Kind)
	}
	tables := Schema()
	for i := len(tables) - 1; i >= 0; i-- {
		name := tables[i].Name
		if err := im.repo.Exec(ctx, "DELETE FROM "+d.QuoteIdent(name)); err != nil {
			return fmt.Errorf("replace %s: %w", name, err)
		}
		log.Printf("importer: table=%s emptied", name)
	}
	return nil
}

// rowFunc converts one cleaned row to database values. ok=false rejects the
// row; reason is logged.
type rowFunc func(r table.Row) (vals []any, ok bool, reason string)

// load streams name through convert into def. A missing file is reported as
// skipped unless required.
func (im *Importer) load(ctx context.Context, name string, def ddl.TableDef, required bool, convert rowFunc) (TableSummary, error) {
	ts := TableSummary{Table: def.Name, File: name}

	rc, err := file.NewLocal(filepath.Join(im.opts.Dir, name)).Open(ctx)
	if err != nil {
		if isNotExist(err) && !required {
			log.Printf("importer: warning file=%s missing, table=%s not loaded", name, def.Name)
			ts.Skipped = true
			return ts, nil
		}
		return ts, err
	}
	defer rc.Close()

	rd, err := table.NewReader(rc, im.opts.CSV)
	if err != nil {
		return ts, err
	}

	rows := make(chan []any, im.opts.BatchSize)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(rows)
		for {
			r, err := rd.Read()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			if r.AllBlank() {
				continue
			}
			vals, ok, reason := convert(r)
			if !ok {
				ts.Rejected++
				log.Printf("importer: table=%s rejected row=%d reason=%s", def.Name, rd.Rows()-1, reason)
				continue
			}
			select {
			case rows <- vals:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	g.Go(func() error {
		n, err := storage.LoadBatches(gctx, def.Name, def.ColumnNames(), rows, im.opts.BatchSize,
			func(ctx context.Context, columns []string, batch [][]any) (int64, error) {
				return im.repo.CopyFrom(ctx, def.Name, columns, batch)
			})
		ts.Inserted = n
		return err
	})

	err = g.Wait()
	metrics.RecordRows(im.opts.Job, "inserted", ts.Inserted)
	metrics.RecordRows(im.opts.Job, "rejected", ts.Rejected)
	if err != nil {
		return ts, fmt.Errorf("load %s: %w", def.Name, err)
	}
	log.Printf("importer: table=%s file=%s inserted=%d rejected=%d", def.Name, name, ts.Inserted, ts.Rejected)
	return ts, nil
}
