package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/creatorcoach/creator-coach-go/internal/constants"
	"github.com/creatorcoach/creator-coach-go/internal/domain"
	"github.com/creatorcoach/creator-coach-go/internal/util"
)

// CoachPromptVars holds variables for the coaching report prompt.
type CoachPromptVars struct {
	Country      string
	Genre        string
	Summary      *domain.TrendSummary
	SampleTitles []string
}

// IdeasPromptVars holds variables for the content idea prompt.
type IdeasPromptVars struct {
	Country      string
	Summary      *domain.TrendSummary
	SampleTitles []string
}

// BuildCoachPrompt renders the coaching-focused prompt. Output length is
// bounded: keywords, categories and sample titles are capped before
// rendering.
func BuildCoachPrompt(vars CoachPromptVars) string {
	genreText := ""
	if vars.Genre != "" {
		genreText = fmt.Sprintf(" within the %s category", domain.CategoryName(vars.Genre))
	}

	return strings.TrimSpace(fmt.Sprintf(`You are Creator Coach, a YouTube mentor that delivers insights in a friendly,
structured, plain-text format (no code blocks, no markdown symbols).

Analyze this summary of trending YouTube videos from %s%s:
%s

Your task:
1. Summarize what is trending right now (3-5 key themes or categories).
2. Highlight what successful creators in this space are doing right.
3. Identify common mistakes creators face here and how to fix them.
4. Provide 5 clear, actionable recommendations for growth (content, SEO, thumbnails, engagement).
5. End with one short motivational line, as if you are a coach inspiring the creator.

Format your report exactly as follows (no markdown syntax like **, ##, or _):

Creator Coach Report - %s%s

What's Trending
- point 1
- point 2
- point 3

What Top Creators Are Doing Right
- insight 1
- insight 2

Common Struggles (and Fixes)
Problem: ...
Solution: ...

Actionable Recommendations
1. tip 1
2. tip 2
3. tip 3
4. tip 4
5. tip 5

Coach's Motivation
Short, inspiring line that ends the report.

Keep it conversational, practical, and professional.`,
		vars.Country, genreText,
		renderSummary(vars.Summary, vars.SampleTitles),
		vars.Country, genreText,
	))
}

// BuildIdeasPrompt renders the idea-generation prompt. The requested format
// matches what HeuristicIdeaParser expects back.
func BuildIdeasPrompt(vars IdeasPromptVars) string {
	return strings.TrimSpace(fmt.Sprintf(`You are a YouTube content strategist who helps creators go viral.

Use the trending analytics below to generate 5 creative video ideas.

Each idea must include:
1. A Title
2. A one-line Cover description (what to cover)
3. A Hook (first 10 seconds)
4. A short Thumbnail text (max 5 words)

Return the ideas in plain text (no markdown, no asterisks, no bold
formatting, no headers). Keep everything clean and readable.

Analytics for %s:
%s

Use exactly this format for every idea:
1. Surviving the Halloween Apocalypse
   - Cover: trending spooky challenges, short horror skits.
   - Hook: "What if your favorite YouTubers vanished on Halloween night?"
   - Thumbnail: "It Actually Happened"`,
		vars.Country,
		renderSummary(vars.Summary, vars.SampleTitles),
	))
}

// renderSummary turns a TrendSummary into the bounded analytics block shared
// by both prompts.
func renderSummary(summary *domain.TrendSummary, sampleTitles []string) string {
	if summary == nil {
		return "No trending data available."
	}

	var b strings.Builder

	keywords := summary.TopKeywords
	if len(keywords) > constants.PromptLimits.MaxKeywords {
		keywords = keywords[:constants.PromptLimits.MaxKeywords]
	}
	if len(keywords) > 0 {
		words := make([]string, 0, len(keywords))
		for _, kw := range keywords {
			words = append(words, fmt.Sprintf("%s (%d)", kw.Word, kw.Frequency))
		}
		fmt.Fprintf(&b, "Trending keywords: %s\n", strings.Join(words, ", "))
	}

	if len(summary.CategoryCounts) > 0 {
		type catCount struct {
			id    string
			count int
		}
		cats := make([]catCount, 0, len(summary.CategoryCounts))
		for id, count := range summary.CategoryCounts {
			cats = append(cats, catCount{id, count})
		}
		sort.Slice(cats, func(i, j int) bool {
			if cats[i].count != cats[j].count {
				return cats[i].count > cats[j].count
			}
			return cats[i].id < cats[j].id
		})
		if len(cats) > constants.PromptLimits.MaxCategories {
			cats = cats[:constants.PromptLimits.MaxCategories]
		}
		parts := make([]string, 0, len(cats))
		for _, c := range cats {
			parts = append(parts, fmt.Sprintf("%s: %d videos", domain.CategoryName(c.id), c.count))
		}
		fmt.Fprintf(&b, "Category distribution: %s\n", strings.Join(parts, ", "))
	}

	fmt.Fprintf(&b, "Average views: %.0f, average likes: %.0f, average comments: %.0f\n",
		summary.Engagement.AvgViews, summary.Engagement.AvgLikes, summary.Engagement.AvgComments)
	fmt.Fprintf(&b, "Average engagement rate: %.2f%%\n", summary.Engagement.AvgEngagementRate)

	if len(sampleTitles) > 0 {
		b.WriteString("Sample trending titles:\n")
		for _, title := range sampleTitles {
			fmt.Fprintf(&b, "- %s\n", util.TruncateString(title, constants.PromptLimits.MaxTitleRunes))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
