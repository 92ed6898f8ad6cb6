package prompt

import (
	"errors"
	"testing"

	apperrors "github.com/creatorcoach/creator-coach-go/pkg/errors"
)

func TestHeuristicParserExtractsIdeas(t *testing.T) {
	text := `Here are five ideas for you.

1. The 24 Hour Trend Chase
   - Cover: reacting to every trending video in one sitting.
   - Hook: "I watched everything so you don't have to."
   - Thumbnail: "24 HOURS OF CHAOS"

2) Cooking Like a Machine
   - Description: recreating viral recipes with zero experience.
   - Hook: "The recipe said easy. It lied."
   - Thumbnail text: "IT LIED"`

	parser := NewHeuristicIdeaParser()
	ideas, err := parser.Parse(text)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if len(ideas) != 2 {
		t.Fatalf("ideas = %d, want 2", len(ideas))
	}

	if ideas[0].Title != "The 24 Hour Trend Chase" {
		t.Errorf("first title = %q", ideas[0].Title)
	}
	if ideas[0].Cover != "reacting to every trending video in one sitting." {
		t.Errorf("first cover = %q", ideas[0].Cover)
	}
	if ideas[0].Hook != "I watched everything so you don't have to." {
		t.Errorf("first hook = %q", ideas[0].Hook)
	}
	if ideas[0].ThumbnailHint != "24 HOURS OF CHAOS" {
		t.Errorf("first thumbnailHint = %q", ideas[0].ThumbnailHint)
	}

	// "Description" and "Thumbnail text" labels map onto the same fields.
	if ideas[1].Cover == "" || ideas[1].ThumbnailHint != "IT LIED" {
		t.Errorf("second idea fields = %+v", ideas[1])
	}
}

func TestHeuristicParserRejectsProse(t *testing.T) {
	parser := NewHeuristicIdeaParser()

	_, err := parser.Parse("Keep uploading consistently and engage with your commenters.")
	if err == nil {
		t.Fatal("expected parse error for prose")
	}

	var parseErr *apperrors.ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("error type = %T, want *ParseError", err)
	}
}

func TestHeuristicParserRejectsEmptyInput(t *testing.T) {
	parser := NewHeuristicIdeaParser()
	if _, err := parser.Parse(""); err == nil {
		t.Fatal("expected parse error for empty input")
	}
}
