package refcat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ppiankov/exorank/internal/cache"
	"github.com/ppiankov/exorank/internal/model"
)

func testHTTPConfig() model.HTTPConfig {
	return model.HTTPConfig{
		Timeout:      5 * time.Second,
		UserAgent:    "exorank-test",
		MaxBodyBytes: 1 << 20,
		RatePerHost:  100,
	}
}

func TestFetcher_Fetch(t *testing.T) {
	const payload = "pl_name,confidence\nKepler-442 b,conservative\n"

	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig(), nil)
	data, err := f.Fetch(context.Background(), server.URL+"/catalog.csv")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != payload {
		t.Errorf("payload = %q, want %q", data, payload)
	}
	if gotUA != "exorank-test" {
		t.Errorf("user agent = %q, want %q", gotUA, "exorank-test")
	}
}

func TestFetcher_Fetch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig(), nil)
	if _, err := f.Fetch(context.Background(), server.URL+"/catalog.csv"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestFetcher_Fetch_RobotsDisallow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /\n"))
			return
		}
		t.Error("fetcher hit a disallowed path")
	}))
	defer server.Close()

	f := NewFetcher(testHTTPConfig(), nil)
	if _, err := f.Fetch(context.Background(), server.URL+"/catalog.csv"); err == nil {
		t.Fatal("expected error when robots.txt disallows the path")
	}
}

func TestFetcher_Fetch_UsesCache(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		hits++
		_, _ = w.Write([]byte("pl_name\nX b\n"))
	}))
	defer server.Close()

	store := cache.NewMemoryCache(time.Minute, time.Minute)
	f := NewFetcher(testHTTPConfig(), store)
	url := server.URL + "/catalog.csv"

	for i := 0; i < 3; i++ {
		if _, err := f.Fetch(context.Background(), url); err != nil {
			t.Fatalf("Fetch #%d: %v", i+1, err)
		}
	}
	if hits != 1 {
		t.Errorf("origin hits = %d, want 1 (later fetches served from cache)", hits)
	}
}

func TestFetcher_Fetch_BodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(make([]byte, 4096))
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.MaxBodyBytes = 128
	f := NewFetcher(cfg, nil)

	data, err := f.Fetch(context.Background(), server.URL+"/catalog.csv")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(data) != 128 {
		t.Errorf("body length = %d, want truncated to 128", len(data))
	}
}
