package extract

import (
	"github.com/pbdna/brandvoice/internal/voice"
)

var (
	positiveEmotionRes = compile(
		`excited|thrilled|amazing|fantastic|love|passionate|incredible`,
		`happy|joy|delighted|pleased|wonderful|excellent`,
	)

	negativeEmotionRes = compile(
		`frustrated|disappointed|angry|sad|terrible|awful`,
		`worried|concerned|anxious|stressed|overwhelmed`,
	)

	vulnerabilityRes = compile(
		`mistake|failed|wrong|difficult|challenge|admit`,
		`learned|growth|improve|better|change`,
	)
)

// Emotional scores emotional expressiveness (combined positive and negative
// emotion-word density) and vulnerability comfort (density of admission and
// growth language).
type Emotional struct{}

// NewEmotional creates the emotional extractor.
func NewEmotional() *Emotional {
	return &Emotional{}
}

// Extract implements voice.Extractor.
func (e *Emotional) Extract(text string) map[voice.Dimension]float64 {
	words := wordCount(text)

	positive := countMatches(text, positiveEmotionRes)
	negative := countMatches(text, negativeEmotionRes)
	vulnerability := countMatches(text, vulnerabilityRes)

	return map[voice.Dimension]float64{
		voice.DimExpressiveness: densityScore(positive+negative, words, 20),
		voice.DimVulnerability:  densityScore(vulnerability, words, 15),
	}
}
