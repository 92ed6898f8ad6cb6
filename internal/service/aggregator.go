package service

import (
	"regexp"
	"sort"
	"strings"

	"github.com/creatorcoach/creator-coach-go/internal/domain"
)

var nonLetterPattern = regexp.MustCompile(`[^a-z\s]`)

const minKeywordLength = 3

// Aggregator reduces one trending batch to descriptive statistics. It is a
// pure transformation: no I/O, deterministic for identical input.
type Aggregator struct {
	topK int
}

func NewAggregator(topK int) *Aggregator {
	if topK < 1 {
		topK = 10
	}
	return &Aggregator{topK: topK}
}

// Summarize computes the category histogram, title keyword table and
// engagement means for a batch. An empty batch yields zero stats and an
// empty keyword list, not an error.
func (a *Aggregator) Summarize(country string, records []*domain.VideoRecord) *domain.TrendSummary {
	summary := &domain.TrendSummary{
		Country:        country,
		VideoCount:     len(records),
		CategoryCounts: make(map[string]int),
		TopKeywords:    []domain.KeywordCount{},
	}

	if len(records) == 0 {
		return summary
	}

	var totalViews, totalLikes, totalComments float64
	var totalEngagement float64

	for _, record := range records {
		if record.CategoryID != "" {
			summary.CategoryCounts[record.CategoryID]++
		}
		totalViews += float64(record.ViewCount)
		totalLikes += float64(record.LikeCount)
		totalComments += float64(record.CommentCount)
		totalEngagement += record.EngagementRate()
	}

	n := float64(len(records))
	summary.Engagement = domain.EngagementStats{
		AvgViews:          totalViews / n,
		AvgLikes:          totalLikes / n,
		AvgComments:       totalComments / n,
		AvgEngagementRate: totalEngagement / n,
	}

	summary.TopKeywords = a.extractKeywords(records)

	return summary
}

// extractKeywords tokenizes titles, drops stopwords and short tokens, and
// returns the topK words by descending frequency. Ties keep first-seen
// order within the batch.
func (a *Aggregator) extractKeywords(records []*domain.VideoRecord) []domain.KeywordCount {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0

	for _, record := range records {
		for _, word := range Tokenize(record.Title) {
			if _, seen := firstSeen[word]; !seen {
				firstSeen[word] = order
				order++
			}
			counts[word]++
		}
	}

	keywords := make([]domain.KeywordCount, 0, len(counts))
	for word, count := range counts {
		keywords = append(keywords, domain.KeywordCount{Word: word, Frequency: count})
	}

	sort.SliceStable(keywords, func(i, j int) bool {
		if keywords[i].Frequency != keywords[j].Frequency {
			return keywords[i].Frequency > keywords[j].Frequency
		}
		return firstSeen[keywords[i].Word] < firstSeen[keywords[j].Word]
	})

	if len(keywords) > a.topK {
		keywords = keywords[:a.topK]
	}

	return keywords
}

// Tokenize lowercases a title, strips everything but letters and spaces,
// and returns the tokens that survive stopword and length filtering.
func Tokenize(title string) []string {
	cleaned := nonLetterPattern.ReplaceAllString(strings.ToLower(title), "")

	var tokens []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) < minKeywordLength {
			continue
		}
		if IsStopword(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}
