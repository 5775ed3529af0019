// Package config provides the pipeline configuration model and helpers.
//
// This file defines the command-line surface. Every flag is seeded from a
// GHREPOS_* environment variable, so flag > env > file > default.
package config

import (
	"flag"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "GHREPOS_"

// Flags holds command-line settings. Empty strings and zero ints mean
// "not set" and leave the pipeline value alone in Apply.
type Flags struct {
	ConfigPath string

	Job        string
	Dir        string
	Suffix     string
	Kind       string
	DSN        string
	DBUser     string
	DBPassword string

	LoaderWorkers int
	BatchSize     int

	MetricsBackend string
	PushgatewayURL string
	StatsdAddr     string

	// Schedule is a cron expression; empty runs once.
	Schedule string
	Validate bool
	Verbose  bool
}

// LoadFromArgs defines the CLI flags on fs, seeds each default from getenv
// (GHREPOS_<NAME>), and parses args. Explicit flags beat the environment.
func LoadFromArgs(fs *flag.FlagSet, getenv func(string) string, args []string) (*Flags, error) {
	f := &Flags{}

	env := func(k, d string) string {
		if v := getenv(EnvPrefix + k); v != "" {
			return v
		}
		return d
	}
	intEnv := func(k string, d int) int {
		if v := getenv(EnvPrefix + k); v != "" {
			if i, err := strconv.Atoi(v); err == nil {
				return i
			}
		}
		return d
	}
	boolEnv := func(k string, d bool) bool {
		switch strings.ToLower(getenv(EnvPrefix + k)) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
		return d
	}

	fs.StringVar(&f.ConfigPath, "config", env("CONFIG", ""), "pipeline config file (.json, .yaml or .yml)")

	fs.StringVar(&f.Job, "job", env("JOB", ""), "job name used in metrics and logs")
	fs.StringVar(&f.Dir, "data-dir", env("DATA_DIR", ""), "directory holding the input files (default "+DefaultDir+")")
	fs.StringVar(&f.Suffix, "suffix", env("SUFFIX", ""), "input file suffix (default "+DefaultSuffix+")")
	fs.StringVar(&f.Kind, "storage", env("STORAGE", ""), "storage kind: postgres, mysql, mssql or sqlite")
	fs.StringVar(&f.DSN, "dsn", env("DSN", ""), "database DSN")
	fs.StringVar(&f.DBUser, "db-user", env("DB_USER", ""), "database user (overrides the DSN)")
	fs.StringVar(&f.DBPassword, "db-password", env("DB_PASSWORD", ""), "database password (overrides the DSN)")

	fs.IntVar(&f.LoaderWorkers, "workers", intEnv("WORKERS", 0), "concurrent file loads (0 = one per CPU)")
	fs.IntVar(&f.BatchSize, "batch-size", intEnv("BATCH_SIZE", 0), "rows per insert batch")

	fs.StringVar(&f.MetricsBackend, "metrics-backend", env("METRICS_BACKEND", "none"), "metrics backend: none, prompush or datadog")
	fs.StringVar(&f.PushgatewayURL, "pushgateway-url", env("PUSHGATEWAY_URL", "http://localhost:9091"), "Pushgateway base URL")
	fs.StringVar(&f.StatsdAddr, "statsd-addr", env("STATSD_ADDR", "127.0.0.1:8125"), "DogStatsD address")

	fs.StringVar(&f.Schedule, "schedule", env("SCHEDULE", ""), "cron expression; run repeatedly instead of once")
	fs.BoolVar(&f.Validate, "validate", boolEnv("VALIDATE", false), "validate the configuration and exit")
	fs.BoolVar(&f.Verbose, "v", boolEnv("VERBOSE", false), "enable verbose logs")

	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// Apply copies every set flag onto p.
func (f *Flags) Apply(p *Pipeline) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.Job, f.Job)
	set(&p.Source.Dir, f.Dir)
	set(&p.Source.Suffix, f.Suffix)
	set(&p.Storage.Kind, f.Kind)
	set(&p.Storage.DB.DSN, f.DSN)
	set(&p.Storage.DB.User, f.DBUser)
	set(&p.Storage.DB.Password, f.DBPassword)
	if f.LoaderWorkers != 0 {
		p.Runtime.LoaderWorkers = f.LoaderWorkers
	}
	if f.BatchSize != 0 {
		p.Runtime.BatchSize = f.BatchSize
	}
}
