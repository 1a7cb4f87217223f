// ABOUTME: Configuration loading from defaults, a JSON file, a .env file and the process environment
// ABOUTME: Later sources override earlier ones; core packages receive values explicitly, never via env

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the CLI and MCP server need.
type Config struct {
	LetterboxdUsername string   `json:"letterboxd_username,omitempty"`
	TMDBAPIKey         string   `json:"tmdb_api_key,omitempty"`
	NotionToken        string   `json:"notion_token,omitempty"`
	NotionDatabaseID   string   `json:"notion_database_id,omitempty"`
	RSSURL             string   `json:"rss_url,omitempty"`
	DiaryURL           string   `json:"diary_url,omitempty"`
	FilmsURL           string   `json:"films_url,omitempty"`
	RateLimitDelay     Duration `json:"rate_limit_delay,omitempty"`
	PageDelay          Duration `json:"page_delay,omitempty"`
	Concurrency        int      `json:"concurrency,omitempty"`
	TMDBBaseURL        string   `json:"tmdb_base_url,omitempty"`
	TMDBImageBase      string   `json:"tmdb_image_base,omitempty"`
	LetterboxdBaseURL  string   `json:"letterboxd_base_url,omitempty"`
}

// Duration is a time.Duration that reads "350ms" style strings or a bare
// number of seconds from JSON.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}
	var secs float64
	if err := json.Unmarshal(data, &secs); err != nil {
		return fmt.Errorf("invalid duration %s", data)
	}
	*d = Duration(secondsToDuration(secs))
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LetterboxdUsername: DefaultUsername,
		RateLimitDelay:     Duration(DefaultRateLimitDelay),
		PageDelay:          Duration(DefaultPageDelay),
		Concurrency:        DefaultConcurrency,
		TMDBBaseURL:        DefaultTMDBBaseURL,
		TMDBImageBase:      DefaultTMDBImageBase,
		LetterboxdBaseURL:  DefaultLetterboxdBaseURL,
	}
}

// LoadOptions selects the files Load reads. Empty paths use the defaults;
// missing files are not an error.
type LoadOptions struct {
	ConfigPath string
	EnvFile    string
}

// GetConfigPath returns the default config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, DefaultConfigDirName, "config.json")
}

// Load builds the configuration: defaults, then the JSON file, then the
// .env file, then the process environment.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	path := opts.ConfigPath
	if path == "" {
		path = GetConfigPath()
	}
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", envFile, err)
	}

	if err := cfg.mergeEnv(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok && v != ""
	}); err != nil {
		return nil, err
	}

	cfg.deriveURLs()
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv(lookup func(string) (string, bool)) error {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	set(&c.NotionToken, EnvNotionToken)
	set(&c.NotionDatabaseID, EnvNotionDatabaseID)
	set(&c.TMDBAPIKey, EnvTMDBAPIKey)
	set(&c.LetterboxdUsername, EnvUsername)
	set(&c.RSSURL, EnvRSSURL)
	set(&c.DiaryURL, EnvDiaryURL)
	set(&c.FilmsURL, EnvFilmsURL)

	if v, ok := lookup(EnvRateLimitDelay); ok {
		secs, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || secs < 0 {
			return fmt.Errorf("%s must be a non-negative number of seconds, got %q", EnvRateLimitDelay, v)
		}
		c.RateLimitDelay = Duration(secondsToDuration(secs))
	}
	return nil
}

// deriveURLs fills per-user Letterboxd URLs that were not set explicitly.
func (c *Config) deriveURLs() {
	base := strings.TrimRight(c.LetterboxdBaseURL, "/")
	if base == "" {
		base = DefaultLetterboxdBaseURL
	}
	user := c.LetterboxdUsername
	if c.RSSURL == "" {
		c.RSSURL = fmt.Sprintf("%s/%s/rss/", base, user)
	}
	if c.DiaryURL == "" {
		c.DiaryURL = fmt.Sprintf("%s/%s/diary/", base, user)
	}
	if c.FilmsURL == "" {
		c.FilmsURL = fmt.Sprintf("%s/%s/films/", base, user)
	}
}

// Validate reports missing settings. TMDB is only required when enriching.
func (c *Config) Validate(requireTMDB bool) error {
	var missing []string
	if strings.TrimSpace(c.LetterboxdUsername) == "" && (c.RSSURL == "" || c.DiaryURL == "") {
		missing = append(missing, EnvUsername)
	}
	if requireTMDB && strings.TrimSpace(c.TMDBAPIKey) == "" {
		missing = append(missing, EnvTMDBAPIKey)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Save writes the config as JSON to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func secondsToDuration(secs float64) time.Duration {
	return time.Duration(secs * float64(time.Second))
}
