package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/creatorcoach/creator-coach-go/internal/domain"
	"github.com/creatorcoach/creator-coach-go/internal/service"
	apperrors "github.com/creatorcoach/creator-coach-go/pkg/errors"
	"go.uber.org/zap"
)

type fakeFetcher struct {
	records     []*domain.VideoRecord
	err         error
	gotCountry  string
	gotCategory string
}

func (f *fakeFetcher) FetchTrending(_ context.Context, country, categoryID string) ([]*domain.VideoRecord, error) {
	f.gotCountry = country
	f.gotCategory = categoryID
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

type fakeComposer struct {
	result    *domain.SuggestionResult
	report    string
	err       error
	gotGenre  string
	gotTitles []string
}

func (f *fakeComposer) SuggestIdeas(_ context.Context, _ *domain.TrendSummary, sampleTitles []string) (*domain.SuggestionResult, error) {
	f.gotTitles = sampleTitles
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeComposer) CoachReport(_ context.Context, _ *domain.TrendSummary, genre string, sampleTitles []string) (string, error) {
	f.gotGenre = genre
	f.gotTitles = sampleTitles
	if f.err != nil {
		return "", f.err
	}
	return f.report, nil
}

func sampleRecords() []*domain.VideoRecord {
	return []*domain.VideoRecord{
		{ID: "a", Title: "Minecraft Hardcore Challenge", CategoryID: "20", ViewCount: 1000, LikeCount: 50, CommentCount: 10},
		{ID: "b", Title: "Minecraft Speedrun Record", CategoryID: "20", ViewCount: 3000, LikeCount: 150, CommentCount: 30},
		{ID: "c", Title: "Street Food Tour Seoul", CategoryID: "24", ViewCount: 2000, LikeCount: 100, CommentCount: 20},
	}
}

func newTestRouter(fetcher *fakeFetcher, composer *fakeComposer) *Router {
	return NewRouter(RouterConfig{
		Fetcher:      fetcher,
		Aggregator:   service.NewAggregator(10),
		Composer:     composer,
		Logger:       zap.NewNop(),
		SampleTitles: 2,
	})
}

func doRequest(t *testing.T, router *Router, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, rec.Body.String())
	}
	return resp
}

func TestGetTrendingDataHappyPath(t *testing.T) {
	fetcher := &fakeFetcher{records: sampleRecords()}
	router := newTestRouter(fetcher, &fakeComposer{})

	rec := doRequest(t, router, "/get_trending_data?country=kr")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if fetcher.gotCountry != "KR" {
		t.Errorf("fetched country = %q, want normalized KR", fetcher.gotCountry)
	}

	var summary domain.TrendSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.Country != "KR" || summary.VideoCount != 3 {
		t.Errorf("summary = %+v, want country KR with 3 videos", summary)
	}
	if summary.CategoryCounts["20"] != 2 {
		t.Errorf("gaming count = %d, want 2", summary.CategoryCounts["20"])
	}
	if summary.Engagement.AvgViews != 2000 {
		t.Errorf("avgViews = %v, want 2000", summary.Engagement.AvgViews)
	}
}

func TestGetTrendingDataRequiresCountry(t *testing.T) {
	router := newTestRouter(&fakeFetcher{}, &fakeComposer{})

	rec := doRequest(t, router, "/get_trending_data")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != apperrors.CodeValidation {
		t.Errorf("code = %q, want %q", resp.Code, apperrors.CodeValidation)
	}
}

func TestGetTrendingDataRejectsMalformedCountry(t *testing.T) {
	fetcher := &fakeFetcher{records: sampleRecords()}
	router := newTestRouter(fetcher, &fakeComposer{})

	rec := doRequest(t, router, "/get_trending_data?country=USA")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if fetcher.gotCountry != "" {
		t.Error("fetcher called despite invalid country")
	}
}

func TestGetTrendingDataMapsUpstreamFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: apperrors.NewUpstreamError("trending fetch failed", "youtube", errors.New("quota exceeded: key detail"))}
	router := newTestRouter(fetcher, &fakeComposer{})

	rec := doRequest(t, router, "/get_trending_data?country=US")

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	resp := decodeError(t, rec)
	if resp.Code != apperrors.CodeUpstream {
		t.Errorf("code = %q, want %q", resp.Code, apperrors.CodeUpstream)
	}
	// Upstream detail stays in the logs.
	if strings.Contains(rec.Body.String(), "key detail") {
		t.Errorf("upstream detail leaked into response: %s", rec.Body.String())
	}
}

func TestGetCreatorSuggestionsHappyPath(t *testing.T) {
	composer := &fakeComposer{result: &domain.SuggestionResult{
		Ideas: []domain.ContentIdea{
			{Title: "Idea One", Cover: "cover", Hook: "hook", ThumbnailHint: "WOW"},
		},
		CoachText: "",
	}}
	router := newTestRouter(&fakeFetcher{records: sampleRecords()}, composer)

	rec := doRequest(t, router, "/get_creator_suggestions?country=us")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var result domain.SuggestionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if len(result.Ideas) != 1 || result.Ideas[0].Title != "Idea One" {
		t.Errorf("ideas = %+v", result.Ideas)
	}

	// Sample titles passed to the composer respect the configured cap.
	if len(composer.gotTitles) != 2 {
		t.Errorf("sample titles = %v, want 2 entries", composer.gotTitles)
	}
}

func TestGetCreatorCoachResolvesGenre(t *testing.T) {
	fetcher := &fakeFetcher{records: sampleRecords()}
	composer := &fakeComposer{report: "Creator Coach Report - US"}
	router := newTestRouter(fetcher, composer)

	rec := doRequest(t, router, "/get_creator_coach?country=us&genre=gaming")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if fetcher.gotCategory != "20" {
		t.Errorf("fetch category = %q, want 20 for gaming", fetcher.gotCategory)
	}
	if composer.gotGenre != "20" {
		t.Errorf("composer genre = %q, want 20", composer.gotGenre)
	}

	var resp coachResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode coach response: %v", err)
	}
	if resp.Country != "US" || resp.Genre != "gaming" || resp.CoachText == "" {
		t.Errorf("coach response = %+v", resp)
	}
}

func TestGetCreatorCoachNumericGenrePassthrough(t *testing.T) {
	fetcher := &fakeFetcher{records: sampleRecords()}
	router := newTestRouter(fetcher, &fakeComposer{report: "report"})

	rec := doRequest(t, router, "/get_creator_coach?country=us&genre=10")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if fetcher.gotCategory != "10" {
		t.Errorf("fetch category = %q, want 10", fetcher.gotCategory)
	}
}

func TestGetCreatorCoachRejectsUnknownGenre(t *testing.T) {
	fetcher := &fakeFetcher{records: sampleRecords()}
	router := newTestRouter(fetcher, &fakeComposer{})

	rec := doRequest(t, router, "/get_creator_coach?country=us&genre=underwater-basket-weaving")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if fetcher.gotCountry != "" {
		t.Error("fetcher called despite unknown genre")
	}
}

func TestGetCreatorCoachMapsComposerFailure(t *testing.T) {
	composer := &fakeComposer{err: apperrors.NewUpstreamError("generative-text request failed", "ai", errors.New("503"))}
	router := newTestRouter(&fakeFetcher{records: sampleRecords()}, composer)

	rec := doRequest(t, router, "/get_creator_coach?country=us")

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestHomeLiveness(t *testing.T) {
	router := newTestRouter(&fakeFetcher{}, &fakeComposer{})

	rec := doRequest(t, router, "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
