// Package watch periodically re-scores a set of seller profiles and records
// the results in the local history database, streaming score-change events
// to the caller as they happen.
package watch

import (
	"context"
	"sync"
	"time"

	"github.com/verible/verible-cli/pkg/api"
	"github.com/verible/verible-cli/pkg/history"
	"github.com/verible/verible-cli/pkg/trustview"
)

// Logger abstracts logging so callers can use logrus, stdlib log, or any
// other logger that satisfies this interface.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// nopLogger silently discards all messages.
type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Debugf(string, ...interface{}) {}

// Fetcher is the slice of the backend client the watcher needs.
type Fetcher interface {
	ScoreByURL(ctx context.Context, profileURL string) (*api.Result, error)
}

// Config holds everything Run needs for a watch loop.
type Config struct {
	Client      Fetcher
	DB          *history.DB
	Sellers     []string      // profile URLs to track
	Interval    time.Duration // 0 = single pass, no loop
	Concurrency int           // defaults to 3 if <= 0
	Log         Logger        // optional; nil = no logging

	// OnSellerDone is called per seller after the snapshot is recorded
	// (from worker goroutines). Change is nil when the score didn't move.
	OnSellerDone func(profileURL string, view *trustview.SellerTrustView, change *history.Change)
}

// Result summarizes one watch pass.
type Result struct {
	Scored  int
	Changes []history.Change
	Errors  []error
}

// Run executes watch passes until the context is cancelled. With a zero
// interval it performs a single pass and returns.
func Run(ctx context.Context, cfg Config) error {
	log := cfg.Log
	if log == nil {
		log = nopLogger{}
	}

	for {
		res := runOnce(ctx, cfg, log)
		log.Infof("watch pass done: %d sellers scored, %d score changes, %d errors",
			res.Scored, len(res.Changes), len(res.Errors))

		if cfg.Interval <= 0 {
			return ctx.Err()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(cfg.Interval):
		}
	}
}

func runOnce(ctx context.Context, cfg Config, log Logger) *Result {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 3
	}

	res := &Result{}
	var mu sync.Mutex
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for _, profileURL := range cfg.Sellers {
		wg.Add(1)
		go func(profileURL string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			raw, err := cfg.Client.ScoreByURL(ctx, profileURL)
			if err != nil {
				log.Warnf("scoring %s failed: %v", profileURL, err)
				mu.Lock()
				res.Errors = append(res.Errors, err)
				mu.Unlock()
				return
			}

			view := trustview.Normalize(raw.Body, trustview.Context{})
			change, err := cfg.DB.RecordView(ctx, profileURL, view)
			if err != nil {
				log.Errorf("recording %s failed: %v", profileURL, err)
				mu.Lock()
				res.Errors = append(res.Errors, err)
				mu.Unlock()
				return
			}

			mu.Lock()
			res.Scored++
			if change != nil {
				res.Changes = append(res.Changes, *change)
			}
			mu.Unlock()

			if cfg.OnSellerDone != nil {
				cfg.OnSellerDone(profileURL, view, change)
			}
		}(profileURL)
	}

	wg.Wait()
	return res
}
