// ABOUTME: Root Cobra command and global flags
// ABOUTME: Loads configuration, sets up logging and builds the fetch/diary/TMDB collaborators

package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/harper/letterboxd2notion/internal/config"
	"github.com/harper/letterboxd2notion/internal/diary"
	"github.com/harper/letterboxd2notion/internal/fetch"
	"github.com/harper/letterboxd2notion/internal/logger"
	"github.com/harper/letterboxd2notion/internal/pipeline"
	"github.com/harper/letterboxd2notion/internal/tmdb"
)

var (
	cfgPath string
	envFile string
	verbose bool
	logJSON bool
	cfg     *config.Config
	log     *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "letterboxd2notion",
	Short: "Letterboxd film history to Notion, enriched with TMDB artwork",
	Long: `
letterboxd2notion reads a Letterboxd member's RSS feed and diary,
resolves poster and backdrop artwork from TMDB, and produces Notion
page payloads for a film history database.

Configuration comes from ~/.config/letterboxd2notion/config.json,
a .env file and the environment (TMDB_API_KEY, TOKEN_V3, DATABASE_ID,
LETTERBOXD_USERNAME, ...).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log = logger.Init(logger.Options{Verbose: verbose, JSON: logJSON})

		var err error
		cfg, err = config.Load(config.LoadOptions{ConfigPath: cfgPath, EnvFile: envFile})
		if err != nil {
			return err
		}
		log.WithField("username", cfg.LetterboxdUsername).Debug("configuration loaded")
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path (default: ~/.config/letterboxd2notion/config.json)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file path (default: .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit logs as JSON")
}

func newFetcher() *fetch.Client {
	return fetch.New()
}

func newScraper(f fetch.Fetcher) *diary.Scraper {
	return diary.NewScraper(f, cfg.DiaryURL,
		diary.WithPageDelay(cfg.PageDelay.Std()),
		diary.WithBaseURL(cfg.LetterboxdBaseURL),
		diary.WithLogger(log),
	)
}

// newEnricher returns nil when no TMDB key is configured.
func newEnricher() *tmdb.Client {
	if cfg.TMDBAPIKey == "" {
		return nil
	}
	return tmdb.New(cfg.TMDBBaseURL,
		tmdb.WithImageBase(cfg.TMDBImageBase),
		tmdb.WithLogger(log),
	)
}

func newRunner(f fetch.Fetcher, enrich bool) (*pipeline.Runner, error) {
	if err := cfg.Validate(enrich); err != nil {
		return nil, err
	}
	opts := []pipeline.Option{
		pipeline.WithDiary(newScraper(f)),
		pipeline.WithRateLimit(cfg.RateLimitDelay.Std()),
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithLogger(log),
	}
	if enrich {
		opts = append(opts, pipeline.WithEnricher(newEnricher(), cfg.TMDBAPIKey))
	}
	return pipeline.New(f, cfg.RSSURL, opts...), nil
}
