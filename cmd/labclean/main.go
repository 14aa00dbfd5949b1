// Command labclean cleans a directory of raw lab exports into normalized CSV
// copies, one file per expected table.
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
	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/metrics/prompush"
	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/pipeline"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run loads the configuration, optionally initializes a metrics backend, and
// runs the cleaning pipeline. It returns 0 once every table has been
// attempted; with -strict it returns 1 when any table failed.
func run(args []string, stdout, stderr io.Writer) int {
	var (
		cfgPath           string
		inputDir          string
		outputDir         string
		metricsBackendFlg string
		pushGatewayURLFlg string
		strict            bool
		validate          bool
		verbose           bool
	)

	flags := flag.NewFlagSet("labclean", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&cfgPath, "config", "", "config JSON path (default: built-in six-table layout)")
	flags.StringVar(&inputDir, "input", "", "directory holding the raw exports (overrides config)")
	flags.StringVar(&outputDir, "output", "", "directory receiving cleaned files (overrides config)")
	flags.StringVar(&metricsBackendFlg, "metrics-backend", "", "metrics backend to use (pushgateway, none)")
	flags.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL (overrides config)")
	flags.BoolVar(&strict, "strict", false, "exit 1 when any table failed")
	flags.BoolVar(&validate, "validate", false, "validate the configuration and exit")
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
	if inputDir != "" {
		cfg.InputDir = inputDir
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if metricsBackendFlg != "" {
		cfg.Metrics.Backend = metricsBackendFlg
	}
	if pushGatewayURLFlg != "" {
		cfg.Metrics.PushgatewayURL = pushGatewayURLFlg
	}

	issues := config.Validate(cfg)
	for _, iss := range issues {
		fmt.Fprintf(stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		log.Printf("Configuration is invalid: %v", describe(cfgPath))
		return 1
	}
	if validate {
		log.Printf("Configuration is valid: %v", describe(cfgPath))
		return 0
	}

	flush := prompush.Install(cfg.Metrics.Backend, cfg.Metrics.PushgatewayURL, cfg.Job)
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	if verbose {
		log.Printf("labclean: config=%s input=%s output=%s tables=%d",
			describe(cfgPath), cfg.InputDir, cfg.OutputDir, len(cfg.Tables))
	}

	rep := pipeline.New(cfg).Run(ctx)

	printSummary(stdout, rep)
	if verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}

	return exitCode(rep, strict)
}

// exitCode is 0 unless strict is set and a table failed.
func exitCode(rep pipeline.Report, strict bool) int {
	if strict && rep.Failed() {
		return 1
	}
	return 0
}

func describe(cfgPath string) string {
	if cfgPath == "" {
		return "<defaults>"
	}
	return cfgPath
}

func fail(w io.Writer, format string, a ...any) int {
	fmt.Fprintf(w, format+"\n", a...)
	return 1
}
