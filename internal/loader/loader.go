package loader

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"github.com/bnema/request-inspector/internal/logging"
	"github.com/bnema/request-inspector/internal/models"
	"github.com/bnema/request-inspector/internal/parser"
)

// Fetcher reads the raw bytes of a source location
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// Result contains the outcome of loading a single source
type Result struct {
	Name     string
	Location string
	Requests []models.NetworkRequest
	Stats    parser.Stats
	Err      error
}

// Loader loads and parses sources concurrently
type Loader struct {
	fetcher       Fetcher
	logger        *slog.Logger
	maxGoroutines int
}

// New creates a loader. A nil logger discards output.
func New(f Fetcher, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Loader{
		fetcher:       f,
		logger:        logger,
		maxGoroutines: runtime.GOMAXPROCS(0),
	}
}

// Load fetches and parses every source. Results are returned in source
// order; a failing source is reported in its Result and does not stop the others.
func (l *Loader) Load(ctx context.Context, sources []models.Source) []Result {
	results := make([]Result, len(sources))

	p := pool.New().WithMaxGoroutines(l.maxGoroutines)
	for i, src := range sources {
		p.Go(func() {
			results[i] = l.loadOne(ctx, src)
		})
	}
	p.Wait()

	return results
}

func (l *Loader) loadOne(ctx context.Context, src models.Source) Result {
	res := Result{Name: src.Name, Location: src.Location}
	log := l.logger.With("source", src.Name, "location", src.Location)

	data, err := l.fetcher.Fetch(ctx, src.Location)
	if err != nil {
		log.Warn("fetch failed", "error", err)
		res.Err = fmt.Errorf("fetching %s: %w", src.Name, err)
		return res
	}
	log.Debug("downloaded", "bytes", len(data))

	// Fresh parser per source for accurate stats
	p := parser.New()
	requests, err := p.Parse(bytes.NewReader(data))
	if err != nil {
		log.Warn("parse failed", "error", err)
		res.Err = fmt.Errorf("parsing %s: %w", src.Name, err)
		return res
	}

	res.Requests = requests
	res.Stats = p.Stats()
	for reason, count := range res.Stats.SkipReasons {
		log.Debug("skipped records", "reason", reason, "count", count)
	}
	log.Info("loaded", "format", res.Stats.Format, "requests", len(requests))

	return res
}

// Requests concatenates the requests of every successful result, in order
func Requests(results []Result) []models.NetworkRequest {
	var all []models.NetworkRequest
	for _, r := range results {
		if r.Err == nil {
			all = append(all, r.Requests...)
		}
	}
	return all
}

// Errors returns the errors of failed results
func Errors(results []Result) []error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errs
}

// SourcesFromPaths turns command-line locations into sources named after themselves
func SourcesFromPaths(paths []string) []models.Source {
	sources := make([]models.Source, len(paths))
	for i, p := range paths {
		sources[i] = models.Source{Name: p, Location: p, Enabled: true}
	}
	return sources
}
