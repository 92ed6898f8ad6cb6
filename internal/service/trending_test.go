package service

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/creatorcoach/creator-coach-go/pkg/errors"
	"google.golang.org/api/youtube/v3"
)

func TestNormalizeCountryCode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"uppercase passthrough", "US", "US", false},
		{"lowercase uppercased", "kr", "KR", false},
		{"surrounding whitespace", " jp ", "JP", false},
		{"empty", "", "", true},
		{"too long", "USA", "", true},
		{"digits", "U1", "", true},
		{"symbols", "u!", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeCountryCode(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NormalizeCountryCode(%q) = %q, want error", tt.input, got)
				}
				var validationErr *apperrors.ValidationError
				if !errors.As(err, &validationErr) {
					t.Errorf("error type = %T, want *ValidationError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeCountryCode(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeCountryCode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMapVideo(t *testing.T) {
	item := &youtube.Video{
		Id: "abc123",
		Snippet: &youtube.VideoSnippet{
			Title:        "Trending Title",
			Description:  "desc",
			ChannelTitle: "Some Channel",
			CategoryId:   "20",
			PublishedAt:  "2024-05-01T12:30:00Z",
			Thumbnails: &youtube.ThumbnailDetails{
				High:    &youtube.Thumbnail{Url: "https://img/high.jpg"},
				Default: &youtube.Thumbnail{Url: "https://img/default.jpg"},
			},
		},
		Statistics: &youtube.VideoStatistics{
			ViewCount:    1000,
			LikeCount:    50,
			CommentCount: 10,
		},
	}

	record := mapVideo(item)
	if record == nil {
		t.Fatal("mapVideo returned nil")
	}

	if record.ID != "abc123" || record.Title != "Trending Title" {
		t.Errorf("record = %+v, identity fields wrong", record)
	}
	if record.CategoryID != "20" {
		t.Errorf("categoryId = %q, want 20", record.CategoryID)
	}
	if record.ViewCount != 1000 || record.LikeCount != 50 || record.CommentCount != 10 {
		t.Errorf("statistics = %d/%d/%d, want 1000/50/10",
			record.ViewCount, record.LikeCount, record.CommentCount)
	}
	if record.Thumbnail != "https://img/high.jpg" {
		t.Errorf("thumbnail = %q, want high quality URL", record.Thumbnail)
	}
	if record.PublishedAt.IsZero() {
		t.Error("publishedAt not parsed")
	}
	if got := record.EngagementRate(); got != 6.0 {
		t.Errorf("engagement rate = %v, want 6.0", got)
	}
}

func TestMapVideoWithoutSnippet(t *testing.T) {
	if record := mapVideo(&youtube.Video{Id: "x"}); record != nil {
		t.Errorf("mapVideo without snippet = %+v, want nil", record)
	}
}

func TestQuotaResetLocationNeverNil(t *testing.T) {
	if quotaResetLocation() == nil {
		t.Fatal("quotaResetLocation returned nil")
	}
}

func TestNextQuotaResetIsUpcomingMidnight(t *testing.T) {
	// Fixed zone exercises the same path the tzdata fallback takes.
	for _, loc := range []*time.Location{quotaResetLocation(), time.FixedZone("PT", -8*60*60)} {
		reset := nextQuotaResetIn(loc)

		if !reset.After(time.Now()) {
			t.Errorf("reset %v is not in the future", reset)
		}
		if reset.Hour() != 0 || reset.Minute() != 0 || reset.Second() != 0 {
			t.Errorf("reset %v is not midnight in %v", reset, loc)
		}
	}
}

func TestExtractThumbnailQualityLadder(t *testing.T) {
	thumbs := &youtube.ThumbnailDetails{
		Medium:  &youtube.Thumbnail{Url: "medium"},
		Default: &youtube.Thumbnail{Url: "default"},
	}
	if got := extractThumbnail(thumbs); got != "medium" {
		t.Errorf("extractThumbnail = %q, want medium", got)
	}

	if got := extractThumbnail(nil); got != "" {
		t.Errorf("extractThumbnail(nil) = %q, want empty", got)
	}
}
