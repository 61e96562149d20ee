// Package sentiment provides a deterministic lexicon-based polarity scorer.
// Identical input always produces an identical score, a property the
// pipeline's tests rely on.
package sentiment

import "strings"

// Score maps a text snippet to a polarity in [-1, 1]. Empty or
// whitespace-only text scores 0, as does text with no lexicon matches.
func Score(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	lower := strings.ToLower(text)

	var pos, neg float64
	matches := 0

	for word, weight := range positiveWords {
		if strings.Contains(lower, word) {
			pos += weight
			matches++
		}
	}
	for word, weight := range negativeWords {
		if strings.Contains(lower, word) {
			neg += weight
			matches++
		}
	}

	if matches == 0 {
		return 0
	}

	total := pos + neg
	if total == 0 {
		return 0
	}

	score := (pos - neg) / total
	if score > 1 {
		score = 1
	} else if score < -1 {
		score = -1
	}
	return score
}

// Label classifies a score with the ternary contract used across the whole
// system: strictly positive scores are Positive, strictly negative scores
// are Negative, and exactly zero is Neutral.
func Label(score float64) string {
	switch {
	case score > 0:
		return "Positive"
	case score < 0:
		return "Negative"
	default:
		return "Neutral"
	}
}
