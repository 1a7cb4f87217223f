// ABOUTME: Tests for configuration loading and validation
// ABOUTME: Uses temp dirs and t.Setenv to exercise source precedence

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv blanks every variable Load reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvNotionToken, EnvNotionDatabaseID, EnvTMDBAPIKey, EnvUsername,
		EnvRSSURL, EnvDiaryURL, EnvFilmsURL, EnvRateLimitDelay} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Load(LoadOptions{
		ConfigPath: filepath.Join(dir, "missing.json"),
		EnvFile:    filepath.Join(dir, "missing.env"),
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LetterboxdUsername != DefaultUsername {
		t.Errorf("username = %q", cfg.LetterboxdUsername)
	}
	if cfg.RSSURL != "https://letterboxd.com/michaelfromyeg/rss/" {
		t.Errorf("RSSURL = %q", cfg.RSSURL)
	}
	if cfg.DiaryURL != "https://letterboxd.com/michaelfromyeg/diary/" {
		t.Errorf("DiaryURL = %q", cfg.DiaryURL)
	}
	if cfg.FilmsURL != "https://letterboxd.com/michaelfromyeg/films/" {
		t.Errorf("FilmsURL = %q", cfg.FilmsURL)
	}
	if cfg.RateLimitDelay.Std() != 350*time.Millisecond {
		t.Errorf("RateLimitDelay = %v", cfg.RateLimitDelay.Std())
	}
	if cfg.PageDelay.Std() != 2*time.Second {
		t.Errorf("PageDelay = %v", cfg.PageDelay.Std())
	}
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	envPath := filepath.Join(dir, ".env")

	writeFile(t, configPath, `{
  "letterboxd_username": "fromfile",
  "tmdb_api_key": "file-key",
  "notion_database_id": "file-db",
  "page_delay": "3s",
  "concurrency": 2
}`)
	writeFile(t, envPath, "TMDB_API_KEY=dotenv-key\nDATABASE_ID=dotenv-db\nRATE_LIMIT_DELAY=0.5\n")
	t.Setenv(EnvNotionDatabaseID, "env-db")

	cfg, err := Load(LoadOptions{ConfigPath: configPath, EnvFile: envPath})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LetterboxdUsername != "fromfile" {
		t.Errorf("username = %q, want fromfile", cfg.LetterboxdUsername)
	}
	if cfg.TMDBAPIKey != "dotenv-key" {
		t.Errorf("TMDBAPIKey = %q, want dotenv-key", cfg.TMDBAPIKey)
	}
	if cfg.NotionDatabaseID != "env-db" {
		t.Errorf("NotionDatabaseID = %q, want env-db", cfg.NotionDatabaseID)
	}
	if cfg.RateLimitDelay.Std() != 500*time.Millisecond {
		t.Errorf("RateLimitDelay = %v, want 500ms", cfg.RateLimitDelay.Std())
	}
	if cfg.PageDelay.Std() != 3*time.Second {
		t.Errorf("PageDelay = %v, want 3s", cfg.PageDelay.Std())
	}
	if cfg.Concurrency != 2 {
		t.Errorf("Concurrency = %d, want 2", cfg.Concurrency)
	}
	if cfg.RSSURL != "https://letterboxd.com/fromfile/rss/" {
		t.Errorf("RSSURL = %q", cfg.RSSURL)
	}
}

func TestLoad_ExplicitURLsWin(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv(EnvRSSURL, "http://localhost:8080/rss/")

	cfg, err := Load(LoadOptions{ConfigPath: filepath.Join(dir, "none.json"), EnvFile: filepath.Join(dir, "none.env")})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RSSURL != "http://localhost:8080/rss/" {
		t.Errorf("RSSURL = %q", cfg.RSSURL)
	}
	if !strings.HasSuffix(cfg.DiaryURL, "/michaelfromyeg/diary/") {
		t.Errorf("DiaryURL = %q", cfg.DiaryURL)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name   string
		config string
		env    string
	}{
		{"bad json", `{not json`, ""},
		{"bad duration", `{"page_delay": "soon"}`, ""},
		{"bad rate limit env", `{}`, "RATE_LIMIT_DELAY=fast\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			configPath := filepath.Join(dir, "config.json")
			envPath := filepath.Join(dir, ".env")
			writeFile(t, configPath, tt.config)
			writeFile(t, envPath, tt.env)

			if _, err := Load(LoadOptions{ConfigPath: configPath, EnvFile: envPath}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDuration_JSONSeconds(t *testing.T) {
	var d Duration
	if err := d.UnmarshalJSON([]byte(`1.5`)); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}
	if d.Std() != 1500*time.Millisecond {
		t.Errorf("Duration = %v", d.Std())
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.deriveURLs()

	if err := cfg.Validate(false); err != nil {
		t.Errorf("Validate(false) error = %v", err)
	}

	err := cfg.Validate(true)
	if err == nil || !strings.Contains(err.Error(), EnvTMDBAPIKey) {
		t.Errorf("Validate(true) error = %v, want missing %s", err, EnvTMDBAPIKey)
	}

	cfg.TMDBAPIKey = "key"
	if err := cfg.Validate(true); err != nil {
		t.Errorf("Validate(true) with key error = %v", err)
	}

	cfg.Concurrency = 0
	if err := cfg.Validate(false); err == nil {
		t.Error("expected error for zero concurrency")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	cfg := Default()
	cfg.LetterboxdUsername = "saved"
	cfg.PageDelay = Duration(5 * time.Second)
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(LoadOptions{ConfigPath: path, EnvFile: filepath.Join(dir, "none.env")})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.LetterboxdUsername != "saved" || loaded.PageDelay.Std() != 5*time.Second {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := GetConfigPath(); got != filepath.Join("/tmp/xdg", "letterboxd2notion", "config.json") {
		t.Errorf("GetConfigPath() = %q", got)
	}
}
