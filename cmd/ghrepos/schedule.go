package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// newScheduler returns a cron scheduler running job on expr (standard
// five-field syntax or descriptors such as "@hourly"). A run that is still
// going when the next one is due causes that next one to be skipped.
func newScheduler(expr string, job func()) (*cron.Cron, error) {
	// cron's own messages (skips, panics) go through the standard logger so
	// they carry the same prefix and flags as the rest of the output.
	logger := cron.PrintfLogger(log.Default())
	c := cron.New(cron.WithLogger(logger), cron.WithChain(cron.SkipIfStillRunning(logger)))
	if _, err := c.AddFunc(expr, job); err != nil {
		return nil, fmt.Errorf("schedule %q: %w", expr, err)
	}
	return c, nil
}

// runScheduled runs job on expr until ctx is done, then waits for an
// in-flight run to finish.
func runScheduled(ctx context.Context, expr string, job func()) int {
	c, err := newScheduler(expr, job)
	if err != nil {
		log.Printf("pipeline: %v", err)
		return exitError
	}

	log.Printf("pipeline: scheduled expr=%q next=%s", expr, c.Entries()[0].Schedule.Next(time.Now()).Format(time.RFC3339))
	c.Start()
	// Runs share ctx, so a signal also cancels the run in flight; Stop then
	// waits for it to return.
	<-ctx.Done()
	log.Printf("pipeline: shutting down scheduler")
	<-c.Stop().Done()
	return exitOK
}
