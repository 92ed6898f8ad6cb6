package service

// English stopwords filtered out of title keyword extraction, plus the
// clickbait filler ("top", "best", "new", "official") that dominates
// trending titles without describing content.
var stopwords = map[string]struct{}{}

func init() {
	words := []string{
		"i", "me", "my", "myself", "we", "our", "ours", "ourselves",
		"you", "your", "yours", "yourself", "yourselves",
		"he", "him", "his", "himself", "she", "her", "hers", "herself",
		"it", "its", "itself", "they", "them", "their", "theirs", "themselves",
		"what", "which", "who", "whom", "this", "that", "these", "those",
		"am", "is", "are", "was", "were", "be", "been", "being",
		"have", "has", "had", "having", "do", "does", "did", "doing",
		"a", "an", "the", "and", "but", "if", "or", "because", "as",
		"until", "while", "of", "at", "by", "for", "with", "about",
		"against", "between", "into", "through", "during", "before",
		"after", "above", "below", "to", "from", "up", "down", "in",
		"out", "on", "off", "over", "under", "again", "further", "then",
		"once", "here", "there", "when", "where", "why", "how", "all",
		"any", "both", "each", "few", "more", "most", "other", "some",
		"such", "no", "nor", "not", "only", "own", "same", "so", "than",
		"too", "very", "can", "will", "just", "don", "should", "now",
		"get", "got", "one", "two", "like", "make", "made", "see", "day",
		// title filler
		"top", "best", "new", "official", "video", "episode", "part",
		"full", "live", "trailer", "feat", "vs",
	}
	for _, w := range words {
		stopwords[w] = struct{}{}
	}
}

// IsStopword reports whether a lowercase token is excluded from keyword
// extraction.
func IsStopword(word string) bool {
	_, ok := stopwords[word]
	return ok
}
