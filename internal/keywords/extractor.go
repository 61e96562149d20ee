// Package keywords turns free-text business descriptions into the short
// ranked list of salient terms that drives every downstream provider query.
package keywords

import (
	"strings"
	"unicode"
)

// MaxKeywords caps the number of keywords carried by a single request.
const MaxKeywords = 5

// Extract tokenizes the input, keeps noun-like tokens, drops stopwords,
// lower-cases, deduplicates preserving first-seen order and truncates to
// MaxKeywords. An input with no qualifying token yields an empty slice;
// callers must treat that as a terminal condition, not an error here.
func Extract(text string) []string {
	tokens := tokenize(text)

	keywords := make([]string, 0, MaxKeywords)
	seen := make(map[string]struct{}, MaxKeywords)

	for _, tok := range tokens {
		lower := strings.ToLower(tok.text)
		if isStopword(lower) {
			continue
		}
		if !nounLike(tok) {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		keywords = append(keywords, lower)
		if len(keywords) == MaxKeywords {
			break
		}
	}

	return keywords
}

// token is a single linguistic unit with enough positional context for the
// noun heuristic.
type token struct {
	text          string
	sentenceStart bool
}

// tokenize splits text on non-letter/digit boundaries, tracking which tokens
// open a sentence so capitalization can be read as a proper-noun signal.
func tokenize(text string) []token {
	var tokens []token
	var current strings.Builder
	sentenceStart := true

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, token{text: current.String(), sentenceStart: sentenceStart})
			current.Reset()
			sentenceStart = false
		}
	}

	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '-':
			current.WriteRune(r)
		case r == '.' || r == '!' || r == '?':
			flush()
			sentenceStart = true
		default:
			flush()
		}
	}
	flush()

	return tokens
}

// nounLike is a lightweight stand-in for part-of-speech tagging: a token
// qualifies when it is capitalized mid-sentence (proper noun) or when it is
// a plain content word of useful length. Single characters and pure numbers
// never qualify.
func nounLike(tok token) bool {
	runes := []rune(tok.text)
	if len(runes) < 2 {
		return false
	}

	hasLetter := false
	for _, r := range runes {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return false
	}

	// Capitalized mid-sentence reads as a proper noun regardless of length.
	if unicode.IsUpper(runes[0]) && !tok.sentenceStart {
		return true
	}

	// Verb-ish suffixes are filtered; remaining content words of three or
	// more characters are treated as noun-like.
	lower := strings.ToLower(tok.text)
	if strings.HasSuffix(lower, "ly") {
		return false
	}
	return len(runes) >= 3
}
