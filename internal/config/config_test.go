package config

import (
	"strings"
	"testing"
)

func setRequiredKeys(t *testing.T) {
	t.Helper()
	t.Setenv("YOUTUBE_API_KEY", "yt-key")
	t.Setenv("GEMINI_API_KEY", "gm-key")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredKeys(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.YouTube.MaxResults != 50 {
		t.Errorf("maxResults = %d, want 50", cfg.YouTube.MaxResults)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("gemini model = %q", cfg.Gemini.Model)
	}
	if cfg.Trends.TopKeywords != 10 {
		t.Errorf("topKeywords = %d, want 10", cfg.Trends.TopKeywords)
	}
	if cfg.Redis.EnableCache || cfg.Postgres.EnableSnapshots {
		t.Error("optional backends enabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredKeys(t)
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("YOUTUBE_MAX_RESULTS", "25")
	t.Setenv("REDIS_ENABLE_TREND_CACHE", "true")
	t.Setenv("TRENDS_TOP_KEYWORDS", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.YouTube.MaxResults != 25 {
		t.Errorf("maxResults = %d, want 25", cfg.YouTube.MaxResults)
	}
	if !cfg.Redis.EnableCache {
		t.Error("cache flag not applied")
	}
	if cfg.Trends.TopKeywords != 5 {
		t.Errorf("topKeywords = %d, want 5", cfg.Trends.TopKeywords)
	}
}

func TestValidateRequiresKeys(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "gm-key")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "YOUTUBE_API_KEY") {
		t.Errorf("Load without YouTube key: err = %v", err)
	}

	t.Setenv("YOUTUBE_API_KEY", "yt-key")
	t.Setenv("GEMINI_API_KEY", "")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Errorf("Load without Gemini key: err = %v", err)
	}
}

func TestValidateRejectsMaxResultsRange(t *testing.T) {
	setRequiredKeys(t)
	t.Setenv("YOUTUBE_MAX_RESULTS", "500")

	if _, err := Load(); err == nil {
		t.Error("expected error for out-of-range max results")
	}
}
