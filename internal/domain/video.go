package domain

import "time"

// VideoRecord is a single trending video as returned by the YouTube Data API.
// Records are immutable once fetched and live only for the request that
// fetched them.
type VideoRecord struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ChannelTitle string    `json:"channelTitle"`
	CategoryID   string    `json:"categoryId"`
	ViewCount    uint64    `json:"viewCount"`
	LikeCount    uint64    `json:"likeCount"`
	CommentCount uint64    `json:"commentCount"`
	PublishedAt  time.Time `json:"publishedAt"`
	Thumbnail    string    `json:"thumbnail,omitempty"`
}

// EngagementRate is (likes+comments)/views as a percentage, 0 for unviewed
// videos.
func (v *VideoRecord) EngagementRate() float64 {
	if v.ViewCount == 0 {
		return 0
	}
	return float64(v.LikeCount+v.CommentCount) / float64(v.ViewCount) * 100
}

// KeywordCount is one entry of the title keyword frequency table.
type KeywordCount struct {
	Word      string `json:"word"`
	Frequency int    `json:"frequency"`
}

// EngagementStats holds arithmetic means over one trending batch. An empty
// batch yields the zero value, not an error.
type EngagementStats struct {
	AvgViews          float64 `json:"avgViews"`
	AvgLikes          float64 `json:"avgLikes"`
	AvgComments       float64 `json:"avgComments"`
	AvgEngagementRate float64 `json:"avgEngagementRate"`
}

// TrendSummary is derived entirely from one batch of VideoRecords and is
// recomputed on every request.
type TrendSummary struct {
	Country        string          `json:"country"`
	VideoCount     int             `json:"videoCount"`
	CategoryCounts map[string]int  `json:"categoryCounts"`
	TopKeywords    []KeywordCount  `json:"topKeywords"`
	Engagement     EngagementStats `json:"engagementStats"`
}
