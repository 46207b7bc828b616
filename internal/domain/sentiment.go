package domain

// SentimentLabel classifies a piece of text as positive, negative or neutral.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// SentimentScores carries the raw lexicon hit counts a classification is
// derived from.
type SentimentScores struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// Total returns the number of lexicon hits across all three word lists.
func (s SentimentScores) Total() int {
	return s.Positive + s.Negative + s.Neutral
}

// SentimentResult is the authoritative classification output. It is computed
// exactly once, when a post or comment is created, and never recomputed.
type SentimentResult struct {
	Label      SentimentLabel  `json:"label"`
	Confidence float64         `json:"confidence"`
	Scores     SentimentScores `json:"scores"`
}

// SignedScore derives a single positive-minus-negative summary from the raw
// scores. It is a convenience view, not stored state.
func (r SentimentResult) SignedScore() int {
	return r.Scores.Positive - r.Scores.Negative
}
