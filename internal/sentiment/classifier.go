// Package sentiment implements the lexicon-based sentiment classifier.
//
// Classification is pure and deterministic: tokenize on whitespace, lowercase,
// count whole-word hits against the three lexicon word lists, and pick the
// label with the strictly higher positive/negative score (ties are neutral).
package sentiment

import (
	"math"
	"strings"
	"unicode"

	"github.com/ripple-social/ripple/internal/domain"
)

// neutralConfidence is the fixed confidence reported for the neutral label,
// regardless of token tallies. A 2-2 positive/negative tie reports the same
// confidence as a 0-0 one.
const neutralConfidence = 0.5

type Classifier struct {
	positive map[string]struct{}
	negative map[string]struct{}
	neutral  map[string]struct{}
}

func NewClassifier(lexicon Lexicon) *Classifier {
	return &Classifier{
		positive: toSet(lexicon.Positive),
		negative: toSet(lexicon.Negative),
		neutral:  toSet(lexicon.Neutral),
	}
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// Classify scores text against the lexicon. Empty or whitespace-only text
// fails with domain.ErrInvalidContent; callers must not persist a post or
// comment without a successful classification.
func (c *Classifier) Classify(text string) (domain.SentimentResult, error) {
	if strings.TrimSpace(text) == "" {
		return domain.SentimentResult{}, domain.ErrInvalidContent
	}

	var scores domain.SentimentScores
	for _, token := range strings.Fields(strings.ToLower(text)) {
		word := trimPunct(token)
		if word == "" {
			continue
		}
		switch {
		case contains(c.positive, word):
			scores.Positive++
		case contains(c.negative, word):
			scores.Negative++
		case contains(c.neutral, word):
			scores.Neutral++
		}
	}

	label := domain.SentimentNeutral
	winning := 0
	switch {
	case scores.Positive > scores.Negative:
		label = domain.SentimentPositive
		winning = scores.Positive
	case scores.Negative > scores.Positive:
		label = domain.SentimentNegative
		winning = scores.Negative
	}

	confidence := neutralConfidence
	if label != domain.SentimentNeutral {
		confidence = 0
		if total := scores.Total(); total > 0 {
			confidence = round2(float64(winning) / float64(total))
		}
	}

	return domain.SentimentResult{Label: label, Confidence: confidence, Scores: scores}, nil
}

func contains(set map[string]struct{}, word string) bool {
	_, ok := set[word]
	return ok
}

// trimPunct strips surrounding punctuation so "feliz!" matches the lexicon
// entry "feliz". Interior characters are left alone.
func trimPunct(token string) string {
	return strings.TrimFunc(token, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
