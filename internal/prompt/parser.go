package prompt

import (
	"regexp"
	"strings"

	"github.com/creatorcoach/creator-coach-go/internal/domain"
	"github.com/creatorcoach/creator-coach-go/pkg/errors"
)

// IdeaParser extracts structured content ideas from free-form model output.
// Parsing is best-effort by contract: implementations return a ParseError
// when the text has no recognizable ideas, and callers degrade to raw text
// instead of failing the request.
type IdeaParser interface {
	Parse(text string) ([]domain.ContentIdea, error)
}

var (
	ideaTitlePattern = regexp.MustCompile(`^\s*(\d+)[.)]\s+(.+?)\s*$`)
	ideaFieldPattern = regexp.MustCompile(`^\s*[-•]?\s*(Cover|Description|Hook|Thumbnail(?: text)?)\s*:\s*(.+?)\s*$`)
)

// HeuristicIdeaParser parses the numbered idea blocks the ideas prompt asks
// for:
//
//  1. Some Title
//     - Cover: what to cover
//     - Hook: "first ten seconds"
//     - Thumbnail: "short text"
type HeuristicIdeaParser struct{}

func NewHeuristicIdeaParser() *HeuristicIdeaParser {
	return &HeuristicIdeaParser{}
}

func (p *HeuristicIdeaParser) Parse(text string) ([]domain.ContentIdea, error) {
	var ideas []domain.ContentIdea
	var current *domain.ContentIdea

	for _, line := range strings.Split(text, "\n") {
		if m := ideaTitlePattern.FindStringSubmatch(line); m != nil {
			if current != nil && current.Title != "" {
				ideas = append(ideas, *current)
			}
			current = &domain.ContentIdea{Title: unquote(m[2])}
			continue
		}

		if current == nil {
			continue
		}

		if m := ideaFieldPattern.FindStringSubmatch(line); m != nil {
			value := unquote(m[2])
			switch strings.ToLower(m[1]) {
			case "cover", "description":
				current.Cover = value
			case "hook":
				current.Hook = value
			default:
				current.ThumbnailHint = value
			}
		}
	}
	if current != nil && current.Title != "" {
		ideas = append(ideas, *current)
	}

	if len(ideas) == 0 {
		return nil, errors.NewParseError("no ideas found in model output", text, nil)
	}

	return ideas, nil
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}
