package extract

import (
	"regexp"
	"strings"

	"github.com/pbdna/brandvoice/internal/voice"
)

// Keyword pattern sets for the stylistic dimensions. Each set is a group of
// alternation patterns whose combined match count, normalized by word count,
// drives one dimension score.
var (
	questionMarkRe = regexp.MustCompile(`\?`)

	firstPersonRes = compile(`I|my|me|myself|we|us|our`)

	storyRes = compile(
		`when|then|after|before|during|while`,
		`happened|experience|remember|time`,
		`first|last|next|finally`,
	)

	authorityRes = compile(
		`should|must|need to|important|critical|essential`,
		`recommend|suggest|advise|propose`,
		`believe|think|know|understand`,
	)

	empathyRes = compile(
		`understand|feel|empathize|relate|appreciate`,
		`challenge|difficult|struggle|help|support`,
	)

	humorRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(funny|humor|joke|lol|haha)\b`),
		regexp.MustCompile(`!{2,}`),
		regexp.MustCompile(`😄|😂|🤣|😊|😃`),
	}

	ctaRes = compile(
		`let|try|start|join|share|comment|thoughts`,
		`what do you|how do you|have you`,
	)
)

// Stylistic scores communication-style dimensions from keyword and
// punctuation densities: question-asking tendency, first-person sharing,
// storytelling, authority, empathy, humor, and call-to-action habits.
type Stylistic struct{}

// NewStylistic creates the stylistic extractor.
func NewStylistic() *Stylistic {
	return &Stylistic{}
}

// Extract implements voice.Extractor. The question score is normalized per
// sentence (period splits); all other scores are normalized per word. Empty
// text yields zero scores, not an empty mapping, since the patterns
// themselves always apply.
func (s *Stylistic) Extract(text string) map[voice.Dimension]float64 {
	words := wordCount(text)
	sentences := len(strings.Split(text, "."))

	questions := len(questionMarkRe.FindAllStringIndex(text, -1))

	return map[voice.Dimension]float64{
		voice.DimQuestionAsking:  densityScore(questions, sentences, 5),
		voice.DimPersonalSharing: densityScore(countMatches(text, firstPersonRes), words, 3),
		voice.DimStorytelling:    densityScore(countMatches(text, storyRes), words, 10),
		voice.DimAuthority:       densityScore(countMatches(text, authorityRes), words, 5),
		voice.DimEmpathy:         densityScore(countMatches(text, empathyRes), words, 8),
		voice.DimHumor:           densityScore(countMatches(text, humorRes), words, 20),
		voice.DimCallToAction:    densityScore(countMatches(text, ctaRes), words, 5),
	}
}
