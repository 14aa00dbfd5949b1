// Command labload loads a directory of cleaned lab exports into the dashboard
// database (SQLite, Postgres or SQL Server).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/config"
	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/importer"
	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/metrics/prompush"
	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/storage"

	// register all backends with the storage factory.
	_ "github.com/SnakeyRoad/jdm-doctor-dashboard/internal/storage/all"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run loads the cleaned exports into the configured database and returns the
// process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	var (
		cfgPath   string
		dir       string
		kind      string
		dsn       string
		batchSize int
		replace   bool
		verbose   bool
	)

	flags := flag.NewFlagSet("labload", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&cfgPath, "config", "", "config JSON path (storage, csv and metrics sections are used)")
	flags.StringVar(&dir, "dir", "", "directory of cleaned exports (default: config output_dir)")
	flags.StringVar(&kind, "storage", "", fmt.Sprintf("storage kind %v (overrides config)", storage.ListKinds()))
	flags.StringVar(&dsn, "dsn", "", "database DSN or SQLite file path (overrides config)")
	flags.IntVar(&batchSize, "batch-size", 0, "rows per bulk insert (overrides config)")
	flags.BoolVar(&replace, "replace", false, "empty every table before loading")
	flags.BoolVar(&verbose, "v", false, "enable verbose logs")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("env: load .env: %v", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fail(stderr, "%v", err)
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return fail(stderr, "%v", err)
	}
	if dir == "" {
		dir = cfg.OutputDir
	}
	if kind != "" {
		cfg.Storage.Kind = kind
	}
	if dsn != "" {
		cfg.Storage.DSN = dsn
	}
	if batchSize > 0 {
		cfg.Storage.BatchSize = batchSize
	}

	issues := config.ValidateStorage(cfg.Storage)
	for _, iss := range issues {
		fmt.Fprintf(stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		return 1
	}

	flush := prompush.Install(cfg.Metrics.Backend, cfg.Metrics.PushgatewayURL, "labload")
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	repo, err := storage.New(ctx, storage.Config{Kind: cfg.Storage.Kind, DSN: cfg.Storage.DSN})
	if err != nil {
		return fail(stderr, "storage: %v", err)
	}
	defer repo.Close()

	if verbose {
		log.Printf("labload: dir=%s storage=%s batch_size=%d replace=%t",
			dir, cfg.Storage.Kind, cfg.Storage.BatchSize, replace)
	}

	// Cleaned files are always UTF-8 whatever the raw export charset was.
	dialect := cfg.CSV.Dialect()
	dialect.Encoding = ""

	sum, err := importer.New(repo, importer.Options{
		Dir:       dir,
		Kind:      cfg.Storage.Kind,
		BatchSize: cfg.Storage.BatchSize,
		Job:       "labload",
		Replace:   replace,
		Manifest:  cfg.Manifest,
		CSV:       dialect,
	}).Run(ctx)

	for _, t := range sum.Tables {
		if t.Skipped {
			fmt.Fprintf(stdout, "%-18s skipped (%s missing)\n", t.Table, t.File)
			continue
		}
		fmt.Fprintf(stdout, "%-18s inserted=%d rejected=%d\n", t.Table, t.Inserted, t.Rejected)
	}
	if err != nil {
		return fail(stderr, "import: %v", err)
	}
	log.Printf("labload: done inserted=%d elapsed=%s", sum.Inserted(), time.Since(start).Truncate(time.Millisecond))
	return 0
}

func fail(w io.Writer, format string, a ...any) int {
	fmt.Fprintf(w, format+"\n", a...)
	return 1
}
