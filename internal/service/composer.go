package service

import (
	"context"

	"github.com/creatorcoach/creator-coach-go/internal/domain"
	"github.com/creatorcoach/creator-coach-go/internal/prompt"
	"github.com/creatorcoach/creator-coach-go/internal/service/ai"
	"go.uber.org/zap"
)

// TextGenerator is the slice of the model manager the composer needs.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, opts *ai.GenerateOptions) (string, *ai.GenerateMetadata, error)
}

// Composer turns a trend summary into creator-facing text: structured
// content ideas or a coaching report. Model failures propagate as
// UpstreamError; malformed model output never does — it degrades to raw
// text.
type Composer struct {
	models TextGenerator
	parser prompt.IdeaParser
	logger *zap.Logger
}

func NewComposer(models TextGenerator, parser prompt.IdeaParser, logger *zap.Logger) *Composer {
	if parser == nil {
		parser = prompt.NewHeuristicIdeaParser()
	}
	return &Composer{
		models: models,
		parser: parser,
		logger: logger,
	}
}

// SuggestIdeas asks the model for structured video ideas. When the output
// cannot be parsed, the result carries the cleaned raw text and no ideas.
func (c *Composer) SuggestIdeas(ctx context.Context, summary *domain.TrendSummary, sampleTitles []string) (*domain.SuggestionResult, error) {
	promptText := prompt.BuildIdeasPrompt(prompt.IdeasPromptVars{
		Country:      summary.Country,
		Summary:      summary,
		SampleTitles: sampleTitles,
	})

	text, metadata, err := c.models.GenerateText(ctx, promptText, &ai.GenerateOptions{
		Temperature:     0.9,
		MaxOutputTokens: 2048,
	})
	if err != nil {
		return nil, err
	}

	cleaned := prompt.CleanModelOutput(text)

	ideas, parseErr := c.parser.Parse(cleaned)
	if parseErr != nil {
		c.logger.Warn("Idea parsing failed, returning raw text",
			zap.String("provider", metadata.Provider),
			zap.Error(parseErr))
		return &domain.SuggestionResult{
			Ideas:     []domain.ContentIdea{},
			CoachText: cleaned,
		}, nil
	}

	c.logger.Info("Content ideas generated",
		zap.String("provider", metadata.Provider),
		zap.String("model", metadata.Model),
		zap.Bool("used_fallback", metadata.UsedFallback),
		zap.Int("ideas", len(ideas)))

	return &domain.SuggestionResult{
		Ideas:     ideas,
		CoachText: cleaned,
	}, nil
}

// CoachReport asks the model for the plain-text coaching report.
func (c *Composer) CoachReport(ctx context.Context, summary *domain.TrendSummary, genre string, sampleTitles []string) (string, error) {
	promptText := prompt.BuildCoachPrompt(prompt.CoachPromptVars{
		Country:      summary.Country,
		Genre:        genre,
		Summary:      summary,
		SampleTitles: sampleTitles,
	})

	text, metadata, err := c.models.GenerateText(ctx, promptText, &ai.GenerateOptions{
		Temperature:     0.7,
		MaxOutputTokens: 3072,
	})
	if err != nil {
		return "", err
	}

	c.logger.Info("Coach report generated",
		zap.String("provider", metadata.Provider),
		zap.String("model", metadata.Model),
		zap.Bool("used_fallback", metadata.UsedFallback),
		zap.Int("length", len(text)))

	return prompt.CleanModelOutput(text), nil
}
