package content

import (
	"regexp"

	"github.com/pbdna/brandvoice/internal/voice"
)

// Keyword proxies for the three voice-match sub-scores. Each density is
// normalized by a fixed divisor calibrated to typical post lengths.
var (
	formalIndicatorRe   = regexp.MustCompile(`(?i)\b(furthermore|therefore|consequently|moreover)\b`)
	casualIndicatorRe   = regexp.MustCompile(`(?i)\b(btw|really|pretty|super|totally)\b`)
	storyIndicatorRe    = regexp.MustCompile(`(?i)\b(when|then|after|experience|remember|time)\b`)
	personalIndicatorRe = regexp.MustCompile(`(?i)\b(I|my|me|we|our)\b`)
)

// MatchScore estimates how well content reflects the target signature, in
// [0, 1]. It averages three independent sub-scores — formality, storytelling,
// and personal-experience sharing — each computed as 1 − |expected − actual|
// where "actual" is a keyword-density proxy measured on the content.
func MatchScore(text string, sig voice.Signature) float64 {
	formal := len(formalIndicatorRe.FindAllStringIndex(text, -1))
	casual := len(casualIndicatorRe.FindAllStringIndex(text, -1))

	expectedFormality := sig.Get(voice.DimFormality, 0.5)
	var actualFormality float64
	if formal > casual {
		actualFormality = min(float64(formal)/5, 1.0)
	} else {
		actualFormality = max(0, 1.0-float64(casual)/5)
	}
	formalityMatch := 1.0 - abs(expectedFormality-actualFormality)

	story := len(storyIndicatorRe.FindAllStringIndex(text, -1))
	expectedStorytelling := sig.Get(voice.DimStorytelling, 0.3)
	actualStorytelling := min(float64(story)/10, 1.0)
	storytellingMatch := 1.0 - abs(expectedStorytelling-actualStorytelling)

	personal := len(personalIndicatorRe.FindAllStringIndex(text, -1))
	expectedPersonal := sig.Get(voice.DimPersonalSharing, 0.4)
	actualPersonal := min(float64(personal)/20, 1.0)
	personalMatch := 1.0 - abs(expectedPersonal-actualPersonal)

	return (formalityMatch + storytellingMatch + personalMatch) / 3
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
