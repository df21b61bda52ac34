// Package extract implements the heuristic signal extractors that feed
// voice-signature fusion: keyword-density stylistic analysis, emotion-word
// analysis, and part-of-speech linguistic analysis.
//
// Every extractor is pure and stateless and returns a partial dimension
// mapping. Scores are ratios of pattern-match counts to a normalizing
// denominator (word or sentence count), scaled by a fixed multiplier and
// clamped to [0, 1]. The multipliers are calibrated against typical
// conversational transcripts; changing one shifts the whole signature
// distribution, so treat them as part of the scoring contract.
package extract

import (
	"regexp"
	"strings"

	"github.com/pbdna/brandvoice/internal/voice"
)

// wordCount returns the number of whitespace-separated words in text.
func wordCount(text string) int {
	return len(strings.Fields(text))
}

// countMatches sums the match counts of all patterns over text.
func countMatches(text string, patterns []*regexp.Regexp) int {
	total := 0
	for _, re := range patterns {
		total += len(re.FindAllStringIndex(text, -1))
	}
	return total
}

// densityScore converts a raw match count into a dimension score:
// count/denominator scaled by multiplier, clamped to [0, 1]. Returns 0 when
// the denominator is zero.
func densityScore(count, denominator int, multiplier float64) float64 {
	if denominator == 0 {
		return 0
	}
	score := float64(count) / float64(denominator) * multiplier
	if score > 1 {
		return 1
	}
	return score
}

// compile builds case-insensitive word-boundary regexps from alternation
// bodies, e.g. "when|then|after" → \b(when|then|after)\b.
func compile(bodies ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(bodies))
	for i, b := range bodies {
		res[i] = regexp.MustCompile(`(?i)\b(` + b + `)\b`)
	}
	return res
}

// Compile-time assertions that all extractors satisfy voice.Extractor.
var (
	_ voice.Extractor = (*Stylistic)(nil)
	_ voice.Extractor = (*Emotional)(nil)
	_ voice.Extractor = (*Linguistic)(nil)
)
