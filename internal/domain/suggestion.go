package domain

// ContentIdea is one structured video idea extracted from model output.
type ContentIdea struct {
	Title         string `json:"title"`
	Cover         string `json:"cover,omitempty"`
	Hook          string `json:"hook"`
	ThumbnailHint string `json:"thumbnailHint"`
}

// SuggestionResult carries the composer output for one request. When the
// model text cannot be parsed into ideas, Ideas is empty and CoachText holds
// the raw (cleaned) model output.
type SuggestionResult struct {
	Ideas     []ContentIdea `json:"ideas"`
	CoachText string        `json:"coachText"`
}
