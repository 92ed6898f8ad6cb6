package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/creatorcoach/creator-coach-go/internal/constants"
	"github.com/creatorcoach/creator-coach-go/internal/domain"
	"github.com/creatorcoach/creator-coach-go/internal/service/cache"
	apperrors "github.com/creatorcoach/creator-coach-go/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

var countryCodePattern = regexp.MustCompile(`^[A-Za-z]{2}$`)

// TrendingService fetches regional trending videos from the YouTube Data
// API v3. The optional cache holds raw batches for a short TTL to conserve
// quota; summaries downstream are always recomputed.
type TrendingService struct {
	service    *youtube.Service
	cache      *cache.CacheService
	logger     *zap.Logger
	maxResults int64
	quotaUsed  int
	quotaMu    sync.Mutex
	quotaReset time.Time
}

// NewTrendingService creates the YouTube trending fetcher. cache may be nil.
func NewTrendingService(apiKey string, maxResults int64, cacheSvc *cache.CacheService, logger *zap.Logger) (*TrendingService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	ctx := context.Background()
	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	ts := &TrendingService{
		service:    service,
		cache:      cacheSvc,
		logger:     logger,
		maxResults: maxResults,
		quotaReset: getNextQuotaReset(),
	}

	logger.Info("YouTube trending service initialized",
		zap.Int64("max_results", maxResults),
		zap.Bool("cache_enabled", cacheSvc != nil),
		zap.Time("quota_reset", ts.quotaReset))

	return ts, nil
}

// getNextQuotaReset calculates next quota reset time (midnight Pacific Time)
func getNextQuotaReset() time.Time {
	return nextQuotaResetIn(quotaResetLocation())
}

func nextQuotaResetIn(loc *time.Location) time.Time {
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, loc)
}

// quotaResetLocation falls back to a fixed UTC-8 zone on hosts without
// tzdata so service construction never panics.
func quotaResetLocation() *time.Location {
	if loc, err := time.LoadLocation("America/Los_Angeles"); err == nil {
		return loc
	}
	return time.FixedZone("PT", -8*60*60)
}

func (ts *TrendingService) checkQuota(cost int) error {
	ts.quotaMu.Lock()
	defer ts.quotaMu.Unlock()

	now := time.Now()
	if now.After(ts.quotaReset) {
		ts.quotaUsed = 0
		ts.quotaReset = getNextQuotaReset()
		ts.logger.Info("YouTube API quota auto-reset",
			zap.Time("next_reset", ts.quotaReset))
	}

	if ts.quotaUsed+cost > (constants.YouTubeQuota.DailyLimit - constants.YouTubeQuota.SafetyMargin) {
		return apperrors.NewUpstreamError("video metadata quota exhausted", "youtube",
			fmt.Errorf("quota used %d/%d, resets at %s",
				ts.quotaUsed, constants.YouTubeQuota.DailyLimit, ts.quotaReset.Format(time.RFC3339)))
	}

	return nil
}

func (ts *TrendingService) consumeQuota(cost int) {
	ts.quotaMu.Lock()
	defer ts.quotaMu.Unlock()

	ts.quotaUsed += cost
	remaining := constants.YouTubeQuota.DailyLimit - ts.quotaUsed

	ts.logger.Debug("YouTube API quota consumed",
		zap.Int("cost", cost),
		zap.Int("used", ts.quotaUsed),
		zap.Int("remaining", remaining))

	if remaining < constants.YouTubeQuota.SafetyMargin {
		ts.logger.Warn("YouTube API quota running low",
			zap.Int("remaining", remaining),
			zap.Time("reset_time", ts.quotaReset))
	}
}

// FetchTrending returns the regional trending chart in upstream rank order.
// categoryID optionally narrows the chart to one video category.
func (ts *TrendingService) FetchTrending(ctx context.Context, country, categoryID string) ([]*domain.VideoRecord, error) {
	normalized, err := NormalizeCountryCode(country)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("trending:%s:%s", normalized, categoryID)
	if ts.cache != nil {
		if cached, found := ts.cache.GetVideos(ctx, cacheKey); found {
			ts.logger.Debug("Trending cache hit",
				zap.String("country", normalized),
				zap.Int("videos", len(cached)))
			return cached, nil
		}
	}

	if err := ts.checkQuota(constants.YouTubeQuota.VideosCost); err != nil {
		return nil, err
	}

	call := ts.service.Videos.List([]string{"snippet", "statistics"}).
		Chart("mostPopular").
		RegionCode(normalized).
		MaxResults(ts.maxResults)
	if categoryID != "" {
		call = call.VideoCategoryId(categoryID)
	}

	response, err := call.Context(ctx).Do()
	if err != nil {
		return nil, ts.wrapAPIError(err, normalized)
	}

	ts.consumeQuota(constants.YouTubeQuota.VideosCost)

	records := make([]*domain.VideoRecord, 0, len(response.Items))
	for _, item := range response.Items {
		if record := mapVideo(item); record != nil {
			records = append(records, record)
		}
	}

	ts.logger.Info("Trending videos fetched",
		zap.String("country", normalized),
		zap.String("category", categoryID),
		zap.Int("videos", len(records)))

	if ts.cache != nil {
		ts.cache.SetVideos(ctx, cacheKey, records, constants.CacheTTL.TrendingBatch)
	}

	return records, nil
}

func (ts *TrendingService) wrapAPIError(err error, country string) error {
	if apiErr, ok := err.(*googleapi.Error); ok {
		// Unknown region codes come back as 400s from the API.
		if apiErr.Code == 400 {
			return apperrors.NewValidationError("unsupported country code", "country", country)
		}
		ts.logger.Error("YouTube API error",
			zap.Int("status", apiErr.Code),
			zap.String("country", country),
			zap.Error(err))
		return apperrors.NewUpstreamError("video metadata request failed", "youtube", err)
	}

	ts.logger.Error("YouTube request failed",
		zap.String("country", country),
		zap.Error(err))
	return apperrors.NewUpstreamError("video metadata service unreachable", "youtube", err)
}

// NormalizeCountryCode validates an ISO-3166 alpha-2 code and uppercases it.
func NormalizeCountryCode(country string) (string, error) {
	trimmed := strings.TrimSpace(country)
	if !countryCodePattern.MatchString(trimmed) {
		return "", apperrors.NewValidationError(
			"country must be an ISO-3166 alpha-2 code", "country", country)
	}
	return strings.ToUpper(trimmed), nil
}

func mapVideo(item *youtube.Video) *domain.VideoRecord {
	if item == nil || item.Snippet == nil {
		return nil
	}

	record := &domain.VideoRecord{
		ID:           item.Id,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		ChannelTitle: item.Snippet.ChannelTitle,
		CategoryID:   item.Snippet.CategoryId,
		Thumbnail:    extractThumbnail(item.Snippet.Thumbnails),
	}

	if item.Statistics != nil {
		record.ViewCount = item.Statistics.ViewCount
		record.LikeCount = item.Statistics.LikeCount
		record.CommentCount = item.Statistics.CommentCount
	}

	if item.Snippet.PublishedAt != "" {
		if publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			record.PublishedAt = publishedAt
		}
	}

	return record
}

// extractThumbnail gets the best quality thumbnail URL
func extractThumbnail(thumbnails *youtube.ThumbnailDetails) string {
	if thumbnails == nil {
		return ""
	}

	// Try from highest to lowest quality
	if thumbnails.Maxres != nil && thumbnails.Maxres.Url != "" {
		return thumbnails.Maxres.Url
	}
	if thumbnails.High != nil && thumbnails.High.Url != "" {
		return thumbnails.High.Url
	}
	if thumbnails.Medium != nil && thumbnails.Medium.Url != "" {
		return thumbnails.Medium.Url
	}
	if thumbnails.Default != nil && thumbnails.Default.Url != "" {
		return thumbnails.Default.Url
	}

	return ""
}

// GetQuotaStatus returns current quota usage information
func (ts *TrendingService) GetQuotaStatus() (used int, remaining int, resetTime time.Time) {
	ts.quotaMu.Lock()
	defer ts.quotaMu.Unlock()

	if time.Now().After(ts.quotaReset) {
		return 0, constants.YouTubeQuota.DailyLimit, getNextQuotaReset()
	}

	return ts.quotaUsed, constants.YouTubeQuota.DailyLimit - ts.quotaUsed, ts.quotaReset
}
