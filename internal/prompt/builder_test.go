package prompt

import (
	"strings"
	"testing"

	"github.com/creatorcoach/creator-coach-go/internal/domain"
)

func summaryFixture() *domain.TrendSummary {
	return &domain.TrendSummary{
		Country:    "KR",
		VideoCount: 3,
		CategoryCounts: map[string]int{
			"10": 2,
			"24": 1,
		},
		TopKeywords: []domain.KeywordCount{
			{Word: "comeback", Frequency: 4},
			{Word: "dance", Frequency: 2},
		},
		Engagement: domain.EngagementStats{
			AvgViews:          2000000,
			AvgLikes:          150000,
			AvgComments:       12000,
			AvgEngagementRate: 8.1,
		},
	}
}

func TestBuildCoachPromptIncludesSummary(t *testing.T) {
	prompt := BuildCoachPrompt(CoachPromptVars{
		Country:      "KR",
		Genre:        "10",
		Summary:      summaryFixture(),
		SampleTitles: []string{"IDOL Comeback Stage"},
	})

	for _, want := range []string{"KR", "Music", "comeback (4)", "Music: 2 videos", "IDOL Comeback Stage"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("coach prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "markdown syntax") == false {
		t.Error("coach prompt missing plain-text format instruction")
	}
}

func TestBuildIdeasPromptMatchesParserFormat(t *testing.T) {
	prompt := BuildIdeasPrompt(IdeasPromptVars{
		Country: "KR",
		Summary: summaryFixture(),
	})

	// The example block in the prompt must itself parse, otherwise the model
	// is being taught a format the parser rejects.
	parser := NewHeuristicIdeaParser()
	ideas, err := parser.Parse(prompt)
	if err != nil {
		t.Fatalf("prompt example does not parse: %v", err)
	}
	found := false
	for _, idea := range ideas {
		if idea.Title == "Surviving the Halloween Apocalypse" && idea.Hook != "" && idea.ThumbnailHint != "" {
			found = true
		}
	}
	if !found {
		t.Errorf("parsed example ideas = %+v, want the full halloween example", ideas)
	}
}

func TestBuildCoachPromptBoundsLength(t *testing.T) {
	summary := summaryFixture()
	for i := 0; i < 200; i++ {
		summary.TopKeywords = append(summary.TopKeywords, domain.KeywordCount{
			Word:      strings.Repeat("x", 20),
			Frequency: 1,
		})
	}
	longTitle := strings.Repeat("very long title ", 50)
	titles := make([]string, 30)
	for i := range titles {
		titles[i] = longTitle
	}

	prompt := BuildCoachPrompt(CoachPromptVars{
		Country:      "US",
		Summary:      summary,
		SampleTitles: titles,
	})

	if len(prompt) > 8000 {
		t.Errorf("prompt length = %d, want bounded under 8000", len(prompt))
	}
}

func TestCleanModelOutput(t *testing.T) {
	cleaned := CleanModelOutput("## Title\n\n**bold** and _italic_ and `code`\n\n\n\n----\ndouble  spaces")

	for _, forbidden := range []string{"#", "*", "_", "`", "---", "  "} {
		if strings.Contains(cleaned, forbidden) {
			t.Errorf("cleaned output still contains %q: %q", forbidden, cleaned)
		}
	}
}
