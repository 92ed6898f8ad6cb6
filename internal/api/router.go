package api

import (
	"context"
	"net/http"
	"time"

	"github.com/creatorcoach/creator-coach-go/internal/domain"
	"github.com/creatorcoach/creator-coach-go/internal/service/database"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// TrendFetcher fetches the regional trending chart.
type TrendFetcher interface {
	FetchTrending(ctx context.Context, country, categoryID string) ([]*domain.VideoRecord, error)
}

// Summarizer reduces a batch to a TrendSummary.
type Summarizer interface {
	Summarize(country string, records []*domain.VideoRecord) *domain.TrendSummary
}

// SuggestionComposer produces creator-facing text from a summary.
type SuggestionComposer interface {
	SuggestIdeas(ctx context.Context, summary *domain.TrendSummary, sampleTitles []string) (*domain.SuggestionResult, error)
	CoachReport(ctx context.Context, summary *domain.TrendSummary, genre string, sampleTitles []string) (string, error)
}

// Router wires the three pipeline endpoints onto gorilla/mux.
type Router struct {
	mux.Router
	fetcher      TrendFetcher
	aggregator   Summarizer
	composer     SuggestionComposer
	snapshots    *database.SnapshotRepository
	logger       *zap.Logger
	sampleTitles int
}

type RouterConfig struct {
	Fetcher      TrendFetcher
	Aggregator   Summarizer
	Composer     SuggestionComposer
	Snapshots    *database.SnapshotRepository
	Logger       *zap.Logger
	SampleTitles int
}

func NewRouter(cfg RouterConfig) *Router {
	router := &Router{
		Router:       *mux.NewRouter(),
		fetcher:      cfg.Fetcher,
		aggregator:   cfg.Aggregator,
		composer:     cfg.Composer,
		snapshots:    cfg.Snapshots,
		logger:       cfg.Logger,
		sampleTitles: cfg.SampleTitles,
	}
	if router.sampleTitles <= 0 {
		router.sampleTitles = 10
	}

	router.Path("/get_trending_data").Methods("GET").HandlerFunc(router.GetTrendingData)
	router.Path("/get_creator_suggestions").Methods("GET").HandlerFunc(router.GetCreatorSuggestions)
	router.Path("/get_creator_coach").Methods("GET").HandlerFunc(router.GetCreatorCoach)
	router.Path("/").Methods("GET").HandlerFunc(router.Home)

	router.Use(router.loggingMiddleware)

	return router
}

func (router *Router) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		router.logger.Info("Request handled",
			zap.String("method", r.Method),
			zap.String("uri", r.RequestURI),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

// Home is a plain liveness route.
func (router *Router) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Creator Coach backend is running."))
}
