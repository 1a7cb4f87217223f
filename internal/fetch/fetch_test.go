// ABOUTME: Tests for the HTTP fetcher and its error conditions
// ABOUTME: Uses httptest to simulate Letterboxd responses including 429 with and without Retry-After

package fetch_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harper/letterboxd2notion/internal/fetch"
)

func TestFetch_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != fetch.DefaultUserAgent {
			t.Errorf("expected User-Agent %q, got %q", fetch.DefaultUserAgent, ua)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<rss>test content</rss>"))
	}))
	defer server.Close()

	result, err := fetch.New().Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(result.Body) != "<rss>test content</rss>" {
		t.Errorf("expected body '<rss>test content</rss>', got %q", string(result.Body))
	}
	if result.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", result.StatusCode)
	}
}

func TestFetch_FollowsRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new/", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("moved"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	result, err := fetch.New().Fetch(context.Background(), server.URL+"/old/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.URL != server.URL+"/new/" {
		t.Errorf("URL = %q, want %q", result.URL, server.URL+"/new/")
	}
}

func TestFetch_RateLimited(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantRetry int
	}{
		{"retry-after seconds", "120", 120},
		{"missing header", "", fetch.DefaultRetryAfter},
		{"http-date form", "Wed, 21 Oct 2015 07:28:00 GMT", fetch.DefaultRetryAfter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.header != "" {
					w.Header().Set("Retry-After", tt.header)
				}
				w.WriteHeader(http.StatusTooManyRequests)
			}))
			defer server.Close()

			_, err := fetch.New().Fetch(context.Background(), server.URL)
			if !errors.Is(err, fetch.ErrRateLimited) {
				t.Fatalf("expected ErrRateLimited, got %v", err)
			}
			var rl *fetch.RateLimitError
			if !errors.As(err, &rl) {
				t.Fatalf("expected *RateLimitError, got %T", err)
			}
			if rl.RetryAfter != tt.wantRetry {
				t.Errorf("RetryAfter = %d, want %d", rl.RetryAfter, tt.wantRetry)
			}
		})
	}
}

func TestFetch_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("Not Found"))
	}))
	defer server.Close()

	result, err := fetch.New().Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error for 404 response, got nil")
	}
	if result != nil {
		t.Errorf("expected nil result for error case, got %+v", result)
	}
	var se *fetch.StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusNotFound {
		t.Errorf("expected StatusError 404, got %v", err)
	}
	if errors.Is(err, fetch.ErrRateLimited) {
		t.Error("404 must not match ErrRateLimited")
	}
}

func TestRateLimitError_Host(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://letterboxd.com/testuser/rss/", "rate limited by letterboxd.com (retry after 30s)"},
		{"http://127.0.0.1:8080/films/diary/page/2/", "rate limited by 127.0.0.1:8080 (retry after 30s)"},
		{"", "rate limited by server (retry after 30s)"},
		{"://bad", "rate limited by server (retry after 30s)"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := &fetch.RateLimitError{URL: tt.url, RetryAfter: 30}
			if got := err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
