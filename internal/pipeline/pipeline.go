// ABOUTME: Sync driver that gathers films from the feed and diary and enriches them via TMDB
// ABOUTME: Enrichment fans out over a bounded errgroup with a shared rate limiter, preserving input order

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/harper/letterboxd2notion/internal/fetch"
	"github.com/harper/letterboxd2notion/internal/logger"
	"github.com/harper/letterboxd2notion/internal/models"
	"github.com/harper/letterboxd2notion/internal/parse"
	"github.com/harper/letterboxd2notion/internal/reconcile"
)

// DefaultConcurrency bounds in-flight TMDB calls.
const DefaultConcurrency = 4

// Enricher resolves artwork for one film. *tmdb.Client implements it.
type Enricher interface {
	Enrich(ctx context.Context, film models.Film, apiKey string) (models.Film, error)
}

// DiarySource walks a full diary. *diary.Scraper implements it.
type DiarySource interface {
	ParseAllPages(ctx context.Context, onPage func(page int)) ([]models.Film, error)
}

// Report summarizes one run.
type Report struct {
	RunID     string `json:"run_id"`
	Feed      int    `json:"feed"`
	Diary     int    `json:"diary"`
	Enriched  int    `json:"enriched"`
	Unchanged int    `json:"unchanged"`
	Failed    int    `json:"failed"`
}

// Runner wires the sources to the enricher.
type Runner struct {
	fetcher     fetch.Fetcher
	rssURL      string
	diary       DiarySource
	enricher    Enricher
	apiKey      string
	delay       time.Duration
	concurrency int
	log         logrus.FieldLogger
}

// Option configures a Runner.
type Option func(*Runner)

// WithDiary sets the diary source used by Full.
func WithDiary(d DiarySource) Option {
	return func(r *Runner) { r.diary = d }
}

// WithEnricher enables TMDB enrichment with the given API key.
func WithEnricher(e Enricher, apiKey string) Option {
	return func(r *Runner) {
		r.enricher = e
		r.apiKey = apiKey
	}
}

// WithRateLimit sets the minimum spacing between enrichment calls.
func WithRateLimit(d time.Duration) Option {
	return func(r *Runner) { r.delay = d }
}

// WithConcurrency bounds in-flight enrichment calls.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithLogger sets the run logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// New creates a Runner reading the feed at rssURL through f.
func New(f fetch.Fetcher, rssURL string, opts ...Option) *Runner {
	r := &Runner{
		fetcher:     f,
		rssURL:      rssURL,
		concurrency: DefaultConcurrency,
		log:         logger.Get(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recent enriches the films currently in the RSS feed.
func (r *Runner) Recent(ctx context.Context) ([]models.Film, Report, error) {
	report := Report{RunID: uuid.NewString()}
	log := r.log.WithField("run_id", report.RunID)

	films, err := parse.FetchFeed(ctx, r.fetcher, r.rssURL)
	if err != nil {
		return nil, report, err
	}
	report.Feed = len(films)
	log.WithField("films", len(films)).Info("fetched rss feed")

	return r.enrich(ctx, log, films, report)
}

// Full merges the RSS feed with the whole diary history, then enriches.
// onPage is forwarded to the diary source.
func (r *Runner) Full(ctx context.Context, onPage func(page int)) ([]models.Film, Report, error) {
	report := Report{RunID: uuid.NewString()}
	log := r.log.WithField("run_id", report.RunID)

	if r.diary == nil {
		return nil, report, errors.New("full sync requires a diary source")
	}

	feed, err := parse.FetchFeed(ctx, r.fetcher, r.rssURL)
	if err != nil {
		return nil, report, err
	}
	report.Feed = len(feed)
	log.WithField("films", len(feed)).Info("fetched rss feed")

	history, err := r.diary.ParseAllPages(ctx, onPage)
	if err != nil {
		return nil, report, fmt.Errorf("diary (%d films collected): %w", len(history), err)
	}
	report.Diary = len(history)
	log.WithField("films", len(history)).Info("fetched diary")

	merged := reconcile.Merge(feed, history)
	log.WithFields(logrus.Fields{
		"merged":     len(merged),
		"duplicates": len(feed) + len(history) - len(merged),
	}).Info("reconciled sources")

	return r.enrich(ctx, log, merged, report)
}

// EnrichAll enriches films without fetching any source.
func (r *Runner) EnrichAll(ctx context.Context, films []models.Film) ([]models.Film, Report, error) {
	report := Report{RunID: uuid.NewString()}
	return r.enrich(ctx, r.log.WithField("run_id", report.RunID), films, report)
}

func (r *Runner) enrich(ctx context.Context, log logrus.FieldLogger, films []models.Film, report Report) ([]models.Film, Report, error) {
	if r.enricher == nil {
		report.Unchanged = len(films)
		return films, report, nil
	}

	limit := rate.Inf
	if r.delay > 0 {
		limit = rate.Every(r.delay)
	}
	limiter := rate.NewLimiter(limit, 1)

	out := make([]models.Film, len(films))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, film := range films {
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				return err
			}

			enriched, err := r.enricher.Enrich(gctx, film, r.apiKey)
			entry := log.WithField("letterboxd_id", film.LetterboxdID)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case errors.Is(err, fetch.ErrRateLimited):
				return err
			case err != nil:
				if gctx.Err() != nil {
					return gctx.Err()
				}
				entry.WithError(err).Warn("enrichment failed, keeping film unenriched")
				out[i] = film
				report.Failed++
			case enriched.Equal(film):
				out[i] = film
				report.Unchanged++
			default:
				if enriched.TMDBID != nil {
					entry = entry.WithField("tmdb_id", *enriched.TMDBID)
				}
				entry.Debug("enriched film")
				out[i] = enriched
				report.Enriched++
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, report, err
	}

	log.WithFields(logrus.Fields{
		"enriched":  report.Enriched,
		"unchanged": report.Unchanged,
		"failed":    report.Failed,
	}).Info("enrichment complete")
	return out, report, nil
}
