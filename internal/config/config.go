// Package config defines the pipeline configuration model and the ways to
// obtain it: a JSON or YAML pipeline file, command-line flags seeded from
// GHREPOS_* environment variables, and built-in defaults.
//
// Precedence, lowest first: Default(), the pipeline file, environment, flags.
//
// Example (YAML):
//
//	job: github_repos_analysis
//	source:  { dir: /opt/spark/data, suffix: .json }
//	storage:
//	  kind: postgres
//	  db: { dsn: "postgres://postgres:5432/github_repos", user: postgres }
//	runtime: { loader_workers: 8, batch_size: 5000 }
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults used when neither a file, the environment nor a flag sets a value.
const (
	DefaultJob       = "github_repos_analysis"
	DefaultDir       = "/opt/spark/data"
	DefaultSuffix    = ".json"
	DefaultKind      = "postgres"
	DefaultDSN       = "postgres://postgres:5432/github_repos"
	DefaultBatchSize = 5000
)

// Pipeline is the top-level configuration object.
type Pipeline struct {
	// Job names the run in metrics and logs.
	Job     string        `json:"job" yaml:"job"`
	Source  Source        `json:"source" yaml:"source"`
	Storage Storage       `json:"storage" yaml:"storage"`
	Runtime RuntimeConfig `json:"runtime" yaml:"runtime"`
}

// Source locates the input files.
type Source struct {
	// Dir is scanned non-recursively.
	Dir string `json:"dir" yaml:"dir"`
	// Suffix selects which entries of Dir are inputs, e.g. ".json".
	Suffix string `json:"suffix" yaml:"suffix"`
}

// Storage selects the backend the aggregates are written to.
type Storage struct {
	// Kind is a registered storage kind: postgres, mysql, mssql or sqlite.
	Kind string   `json:"kind" yaml:"kind"`
	DB   DBConfig `json:"db" yaml:"db"`
}

// DBConfig carries connection settings. User and Password, when set,
// override any credentials embedded in DSN.
type DBConfig struct {
	DSN      string `json:"dsn" yaml:"dsn"`
	User     string `json:"user" yaml:"user"`
	Password string `json:"password" yaml:"password"`
}

// RuntimeConfig controls concurrency and batching.
type RuntimeConfig struct {
	// LoaderWorkers bounds concurrent file loads; 0 means one per CPU.
	LoaderWorkers int `json:"loader_workers" yaml:"loader_workers"`
	// BatchSize is the number of rows per insert batch.
	BatchSize int `json:"batch_size" yaml:"batch_size"`
}

// Default returns the configuration used when nothing else is supplied.
func Default() Pipeline {
	return Pipeline{
		Job:     DefaultJob,
		Source:  Source{Dir: DefaultDir, Suffix: DefaultSuffix},
		Storage: Storage{Kind: DefaultKind, DB: DBConfig{DSN: DefaultDSN}},
		Runtime: RuntimeConfig{BatchSize: DefaultBatchSize},
	}
}

// LoadFile decodes the pipeline file at path on top of Default(). Files
// ending in .yaml or .yml are YAML; anything else is JSON. Unknown fields
// are rejected in both formats.
func LoadFile(path string) (Pipeline, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Pipeline{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	p, err := Decode(b, isYAML(path))
	if err != nil {
		return Pipeline{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return p, nil
}

// Decode parses b as YAML or JSON on top of Default().
func Decode(b []byte, asYAML bool) (Pipeline, error) {
	p := Default()
	if len(bytes.TrimSpace(b)) == 0 {
		return p, nil
	}
	if asYAML {
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil {
			return Pipeline{}, fmt.Errorf("decode yaml: %w", err)
		}
		return p, nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Pipeline{}, fmt.Errorf("decode json: %w", err)
	}
	return p, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
