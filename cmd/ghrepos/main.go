// Command ghrepos reads GitHub repository snapshot files, aggregates them
// into the programming_lang, organizations_stars and search_terms_relevance
// tables, and replaces those tables in the configured database.
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
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/config"
	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/metrics"
	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/metrics/datadog"
	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/metrics/prompush"

	// Register every storage backend with the factory.
	_ "github.com/nahlarmash/GitHub-Repos-Pipeline/internal/storage/all"
)

// Exit codes.
const (
	exitOK     = 0
	exitError  = 1
	exitNoData = 2
)

// newRunID is a test hook for deterministic run ids.
var newRunID = uuid.NewString

func main() {
	// .env is applied before flags so GHREPOS_* values from it seed the
	// flag defaults like real environment variables do.
	if err := loadDotEnv(os.Getenv(config.EnvPrefix + "ENV_FILE")); err != nil {
		fmt.Fprintf(os.Stderr, "env: %v\n", err)
		os.Exit(exitError)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Getenv, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// loadDotEnv loads KEY=VALUE pairs from path (".env" when empty) into the
// process environment without overriding variables already set. A missing
// default file is not an error; a missing explicit one is.
func loadDotEnv(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// run is main without the process globals.
func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	// Parse errors come back as values; run maps them to exit codes.
	fset := flag.NewFlagSet("ghrepos", flag.ContinueOnError)
	fset.SetOutput(stderr)
	flags, err := config.LoadFromArgs(fset, getenv, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitError
	}

	// Precedence: flag, then GHREPOS_* env (seeded into the flags), then
	// the config file, then built-in defaults.
	p := config.Default()
	if flags.ConfigPath != "" {
		if p, err = config.LoadFile(flags.ConfigPath); err != nil {
			fmt.Fprintln(stderr, err)
			return exitError
		}
	}
	flags.Apply(&p)

	// Warnings are printed but never block a run.
	issues := config.ValidatePipeline(p)
	for _, iss := range issues {
		fmt.Fprintf(stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		log.Printf("Configuration is invalid")
		return exitError
	}
	if flags.Validate {
		log.Printf("Configuration is valid")
		return exitOK
	}

	closeMetrics := setupMetrics(flags, p.Job)
	defer closeMetrics()

	if flags.Verbose {
		log.Printf("pipeline: dir=%s suffix=%s storage=%s workers=%d batch_size=%d",
			p.Source.Dir, p.Source.Suffix, p.Storage.Kind, p.Runtime.LoaderWorkers, p.Runtime.BatchSize)
	}

	if flags.Schedule != "" {
		return runScheduled(ctx, flags.Schedule, func() {
			execute(ctx, p, stdout, stderr)
			flushMetrics()
		})
	}
	code := execute(ctx, p, stdout, stderr)
	flushMetrics()
	return code
}

// execute performs one run and maps its outcome to an exit code and the
// user-facing message. Log lines of the run carry its run id.
func execute(ctx context.Context, p config.Pipeline, stdout, stderr io.Writer) int {
	// The prefix is process-wide. Scheduled runs never overlap
	// (SkipIfStillRunning), so only one run owns it at a time.
	runID := newRunID()
	prefix := log.Prefix()
	log.SetPrefix(fmt.Sprintf("run_id=%s ", runID))
	defer log.SetPrefix(prefix)

	_, err := runOnce(ctx, p, runID)
	switch {
	case err == nil:
		fmt.Fprintf(stdout, "Data successfully written to %s!\n", p.Storage.Kind)
		return exitOK
	case errors.Is(err, ErrNoData):
		fmt.Fprintln(stderr, "No data loaded, exiting.")
		return exitNoData
	default:
		fmt.Fprintf(stderr, "ghrepos: %v\n", err)
		return exitError
	}
}

func flushMetrics() {
	if err := metrics.Flush(); err != nil {
		log.Printf("metrics: flush error: %v", err)
	}
}

// setupMetrics installs the backend named by flags and returns the function
// that releases it at exit. Runs flush the backend themselves.
//
// Backends:
//   - "prompush" / "pushgateway": Prometheus Pushgateway at -pushgateway-url;
//     every flush replaces the job's group.
//   - "datadog": DogStatsD at -statsd-addr, tagged service:ghrepos.
//   - "none" or empty: metrics are discarded.
//
// A backend that fails to initialize is logged and the run continues with
// metrics discarded; metrics never decide the exit code.
func setupMetrics(flags *config.Flags, job string) (closeFn func()) {
	closeFn = func() {}
	switch flags.MetricsBackend {
	case "prompush", "pushgateway":
		b, err := prompush.NewBackend(job, flags.PushgatewayURL)
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
			return closeFn
		}
		log.Printf("metrics: url=%v, backend=prompush, job_name=%v", flags.PushgatewayURL, job)
		metrics.SetBackend(b)

	case "datadog":
		b, err := datadog.NewBackend(datadog.Config{
			Addr:       flags.StatsdAddr,
			GlobalTags: []string{"service:ghrepos", "job:" + job},
		})
		if err != nil {
			log.Printf("metrics: failed to init datadog backend: %v; using nop", err)
			return closeFn
		}
		log.Printf("metrics: addr=%v, backend=datadog", flags.StatsdAddr)
		metrics.SetBackend(b)
		closeFn = func() {
			if err := b.Close(); err != nil {
				log.Printf("metrics: datadog close: %v", err)
			}
		}

	case "", "none":
		if flags.Verbose {
			log.Printf("metrics: disabled")
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", flags.MetricsBackend)
	}
	return closeFn
}
