// Package pipeline runs the configured cleaning policy over each expected
// lab export, one file at a time, and reports a per-file outcome.
//
// A run never aborts: a missing export, an empty table or a failing file is
// recorded in the Report and processing moves on to the next table. Output
// files are written through an atomic sink, so only successful tables leave
// a file in the output directory.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/xxh3"

	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/config"
	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/datasource"
	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/datasource/file"
	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/metrics"
	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/table"
	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/transformer"
)

// Outcome is the result class of one table.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// Result describes what happened to one table.
type Result struct {
	Table    string            `json:"table"`
	Kind     string            `json:"kind"`
	Input    string            `json:"input"`
	Output   string            `json:"output,omitempty"`
	Outcome  Outcome           `json:"outcome"`
	Reason   string            `json:"reason,omitempty"`
	Stats    transformer.Stats `json:"stats"`
	Checksum string            `json:"xxh3,omitempty"`
	Duration time.Duration     `json:"duration_ns"`
}

// Report collects the results of a run in processing order.
type Report struct {
	Job      string    `json:"job"`
	Started  time.Time `json:"started"`
	Results  []Result  `json:"results"`
	Manifest string    `json:"-"`
}

// Counts returns how many tables ended in each outcome.
func (r Report) Counts() (success, skipped, failed int) {
	for _, res := range r.Results {
		switch res.Outcome {
		case OutcomeSuccess:
			success++
		case OutcomeSkipped:
			skipped++
		case OutcomeFailed:
			failed++
		}
	}
	return success, skipped, failed
}

// Failed reports whether any table failed.
func (r Report) Failed() bool {
	_, _, failed := r.Counts()
	return failed > 0
}

// Pipeline cleans the tables of one Config.
type Pipeline struct {
	cfg config.Config

	// Seams for tests.
	openSource func(path string) datasource.Source
	createSink func(dest string) (datasource.Sink, error)
	now        func() time.Time
}

// New returns a Pipeline for cfg. cfg is expected to have passed
// config.Validate.
func New(cfg config.Config) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		openSource: func(path string) datasource.Source { return file.NewLocal(path) },
		createSink: func(dest string) (datasource.Sink, error) { return file.CreateAtomic(dest) },
		now:        time.Now,
	}
}

// Run processes every configured table in order and returns their results.
// If the output directory cannot be created every table is reported failed.
// When a manifest is configured it is written after the last table.
func (p *Pipeline) Run(ctx context.Context) Report {
	rep := Report{Job: p.cfg.Job, Started: p.now()}

	log.Printf("pipeline: start job=%s input=%s output=%s tables=%d",
		p.cfg.Job, p.cfg.InputDir, p.cfg.OutputDir, len(p.cfg.Tables))

	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		log.Printf("pipeline: error output_dir=%s err=%v", p.cfg.OutputDir, err)
		for _, t := range p.cfg.Tables {
			rep.Results = append(rep.Results, Result{
				Table:   t.Name,
				Kind:    t.Kind,
				Input:   filepath.Join(p.cfg.InputDir, t.Name),
				Outcome: OutcomeFailed,
				Reason:  fmt.Sprintf("create output dir: %v", err),
			})
		}
		return rep
	}

	for _, t := range p.cfg.Tables {
		rep.Results = append(rep.Results, p.runTable(ctx, t))
	}

	if p.cfg.Manifest != "" {
		path := filepath.Join(p.cfg.OutputDir, p.cfg.Manifest)
		if err := p.writeManifest(path, rep); err != nil {
			log.Printf("pipeline: error manifest=%s err=%v", path, err)
		} else {
			rep.Manifest = path
		}
	}

	ok, skipped, failed := rep.Counts()
	log.Printf("pipeline: done job=%s success=%d skipped=%d failed=%d elapsed=%s",
		p.cfg.Job, ok, skipped, failed, p.now().Sub(rep.Started).Truncate(time.Millisecond))
	return rep
}

func (p *Pipeline) runTable(ctx context.Context, t config.Table) (res Result) {
	start := p.now()
	res = Result{
		Table: t.Name,
		Kind:  t.Kind,
		Input: filepath.Join(p.cfg.InputDir, t.Name),
	}
	defer func() {
		res.Duration = p.now().Sub(start)
		metrics.RecordFile(p.cfg.Job, t.Name, string(res.Outcome), res.Duration)
		switch res.Outcome {
		case OutcomeSuccess:
			log.Printf("pipeline: success table=%s read=%d written=%d dropped=%d",
				t.Name, res.Stats.Read, res.Stats.Written, res.Stats.Dropped)
		case OutcomeSkipped:
			log.Printf("pipeline: warning table=%s skipped: %s", t.Name, res.Reason)
		default:
			log.Printf("pipeline: error table=%s: %s", t.Name, res.Reason)
		}
	}()

	log.Printf("pipeline: processing table=%s kind=%s", t.Name, t.Kind)

	tr, err := transformer.New(t.Kind, t.Options)
	if err != nil {
		return fail(res, err)
	}

	rc, err := p.openSource(res.Input).Open(ctx)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return skip(res, "input file not found")
		}
		return fail(res, err)
	}
	defer rc.Close()

	dialect := p.cfg.CSV.Dialect()
	in, err := table.NewReader(rc, dialect)
	if err != nil {
		return fail(res, err)
	}

	dest := filepath.Join(p.cfg.OutputDir, t.Name)
	sink, err := p.createSink(dest)
	if err != nil {
		return fail(res, err)
	}
	defer sink.Abort()

	h := xxh3.New()
	out := table.NewWriter(io.MultiWriter(sink, h), dialect)

	st, err := tr.Transform(ctx, in, out)
	res.Stats = st
	metrics.RecordRows(p.cfg.Job, "read", int64(st.Read))
	metrics.RecordRows(p.cfg.Job, "dropped", int64(st.Dropped))
	switch {
	case errors.Is(err, transformer.ErrInsufficientData), errors.Is(err, transformer.ErrEmptyTable):
		return skip(res, err.Error())
	case err != nil:
		return fail(res, err)
	}

	if err := sink.Commit(); err != nil {
		return fail(res, err)
	}
	metrics.RecordRows(p.cfg.Job, "written", int64(st.Written))

	res.Output = dest
	res.Checksum = fmt.Sprintf("%016x", h.Sum64())
	res.Outcome = OutcomeSuccess
	return res
}

func skip(res Result, reason string) Result {
	res.Outcome = OutcomeSkipped
	res.Reason = reason
	return res
}

func fail(res Result, err error) Result {
	res.Outcome = OutcomeFailed
	res.Reason = err.Error()
	return res
}
