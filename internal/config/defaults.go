// ABOUTME: Centralized configuration defaults for letterboxd2notion
// ABOUTME: Letterboxd and TMDB endpoints, pacing delays and concurrency limits

package config

import "time"

// Letterboxd settings
const (
	DefaultUsername          = "michaelfromyeg"
	DefaultLetterboxdBaseURL = "https://letterboxd.com"
	DefaultPageDelay         = 2 * time.Second
)

// TMDB settings
const (
	DefaultTMDBBaseURL    = "https://api.themoviedb.org/3"
	DefaultTMDBImageBase  = "https://image.tmdb.org/t/p"
	DefaultRateLimitDelay = 350 * time.Millisecond
	DefaultConcurrency    = 4
)

// HTTP settings
const (
	DefaultHTTPTimeout = 30 * time.Second
)

// Environment variable names
const (
	EnvNotionToken       = "TOKEN_V3"
	EnvNotionDatabaseID  = "DATABASE_ID"
	EnvTMDBAPIKey        = "TMDB_API_KEY"
	EnvUsername          = "LETTERBOXD_USERNAME"
	EnvRSSURL            = "LETTERBOXD_RSS_URL"
	EnvDiaryURL          = "LETTERBOXD_DIARY_URL"
	EnvFilmsURL          = "LETTERBOXD_FILMS_URL"
	EnvRateLimitDelay    = "RATE_LIMIT_DELAY"
	DefaultEnvFile       = ".env"
	DefaultConfigDirName = "letterboxd2notion"
)
