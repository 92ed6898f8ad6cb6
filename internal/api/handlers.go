package api

import (
	"context"
	"net/http"

	"github.com/creatorcoach/creator-coach-go/internal/constants"
	"github.com/creatorcoach/creator-coach-go/internal/domain"
	"github.com/creatorcoach/creator-coach-go/internal/service"
	apperrors "github.com/creatorcoach/creator-coach-go/pkg/errors"
)

type coachResponse struct {
	Country   string `json:"country"`
	Genre     string `json:"genre,omitempty"`
	CoachText string `json:"coachText"`
}

// GetTrendingData runs Fetcher → Aggregator and returns the summary.
func (router *Router) GetTrendingData(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")
	if country == "" {
		router.writeError(w, r, apperrors.NewValidationError("country query parameter is required", "country", ""))
		return
	}

	summary, _, err := router.summarize(r, country, "")
	if err != nil {
		router.writeError(w, r, err)
		return
	}

	router.writeJSON(w, http.StatusOK, summary)
}

// GetCreatorSuggestions runs Fetcher → Aggregator → Composer (ideas-focused).
func (router *Router) GetCreatorSuggestions(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")
	if country == "" {
		router.writeError(w, r, apperrors.NewValidationError("country query parameter is required", "country", ""))
		return
	}

	summary, records, err := router.summarize(r, country, "")
	if err != nil {
		router.writeError(w, r, err)
		return
	}

	genCtx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeouts.Generation)
	defer cancel()

	result, err := router.composer.SuggestIdeas(genCtx, summary, router.titles(records))
	if err != nil {
		router.writeError(w, r, err)
		return
	}

	router.writeJSON(w, http.StatusOK, result)
}

// GetCreatorCoach runs Fetcher (genre-filtered) → Aggregator → Composer
// (coaching-focused).
func (router *Router) GetCreatorCoach(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")
	if country == "" {
		router.writeError(w, r, apperrors.NewValidationError("country query parameter is required", "country", ""))
		return
	}

	genre := r.URL.Query().Get("genre")
	categoryID := ""
	if genre != "" {
		resolved, ok := domain.ResolveCategoryID(genre)
		if !ok {
			router.writeError(w, r, apperrors.NewValidationError("unknown genre", "genre", genre))
			return
		}
		categoryID = resolved
	}

	summary, records, err := router.summarize(r, country, categoryID)
	if err != nil {
		router.writeError(w, r, err)
		return
	}

	genCtx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeouts.Generation)
	defer cancel()

	coachText, err := router.composer.CoachReport(genCtx, summary, categoryID, router.titles(records))
	if err != nil {
		router.writeError(w, r, err)
		return
	}

	router.writeJSON(w, http.StatusOK, coachResponse{
		Country:   summary.Country,
		Genre:     genre,
		CoachText: coachText,
	})
}

// summarize is the shared Fetcher → Aggregator stage. When snapshots are
// enabled the summary is recorded without blocking the request.
func (router *Router) summarize(r *http.Request, country, categoryID string) (*domain.TrendSummary, []*domain.VideoRecord, error) {
	normalized, err := service.NormalizeCountryCode(country)
	if err != nil {
		return nil, nil, err
	}

	fetchCtx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeouts.TrendingFetch)
	defer cancel()

	records, err := router.fetcher.FetchTrending(fetchCtx, normalized, categoryID)
	if err != nil {
		return nil, nil, err
	}

	summary := router.aggregator.Summarize(normalized, records)

	if router.snapshots != nil {
		router.snapshots.RecordAsync(categoryID, summary, constants.RequestTimeouts.Snapshot)
	}

	return summary, records, nil
}

func (router *Router) titles(records []*domain.VideoRecord) []string {
	limit := min(router.sampleTitles, len(records))
	titles := make([]string, 0, limit)
	for _, record := range records[:limit] {
		titles = append(titles, record.Title)
	}
	return titles
}
