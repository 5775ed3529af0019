// Package datadog sends pipeline metrics to a DogStatsD agent. Labels are
// sent as sorted "key:value" tags.
package datadog

import (
	"fmt"
	"sort"

	"github.com/nahlarmash/GitHub-Repos-Pipeline/internal/metrics"

	"github.com/DataDog/datadog-go/v5/statsd"
)

// Config configures the DogStatsD client.
type Config struct {
	Addr       string   // "127.0.0.1:8125" or "unix:///var/run/datadog/dsd.socket"
	Namespace  string   // optional metric name prefix, e.g. "ghrepos."
	GlobalTags []string // added to every metric, e.g. "env:prod"
}

// Backend implements metrics.Backend. A zero Backend drops everything.
type Backend struct {
	client statsd.ClientInterface
}

// NewBackend creates a DogStatsD client for cfg.Addr. UDP addresses need no
// listening agent; datagrams to a missing agent are dropped.
func NewBackend(cfg Config) (*Backend, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("datadog: Addr is required")
	}
	// The client buffers datagrams and sends from a background goroutine;
	// Flush forces the buffer out.
	opts := []statsd.Option{}
	if cfg.Namespace != "" {
		opts = append(opts, statsd.WithNamespace(cfg.Namespace))
	}
	if len(cfg.GlobalTags) > 0 {
		opts = append(opts, statsd.WithTags(cfg.GlobalTags))
	}
	c, err := statsd.New(cfg.Addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("datadog: new client %s: %w", cfg.Addr, err)
	}
	return &Backend{client: c}, nil
}

// IncCounter truncates delta; DogStatsD counts are integers.
func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	if b.client != nil {
		_ = b.client.Count(name, int64(delta), labelsToTags(labels), 1)
	}
}

func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	if b.client != nil {
		_ = b.client.Histogram(name, value, labelsToTags(labels), 1)
	}
}

// Flush sends buffered datagrams. The client stays usable.
func (b *Backend) Flush() error {
	if b.client == nil {
		return nil
	}
	if err := b.client.Flush(); err != nil {
		return fmt.Errorf("datadog: flush: %w", err)
	}
	return nil
}

// Close flushes and releases the client.
func (b *Backend) Close() error {
	if b.client == nil {
		return nil
	}
	return b.client.Close()
}

// labelsToTags renders labels as "key:value" tags, sorted so the same label
// set always yields the same tag string.
func labelsToTags(lbls metrics.Labels) []string {
	if len(lbls) == 0 {
		return nil
	}
	tags := make([]string, 0, len(lbls))
	for k, v := range lbls {
		tags = append(tags, k+":"+v)
	}
	sort.Strings(tags)
	return tags
}
