package extract

import (
	"log/slog"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/pbdna/brandvoice/internal/voice"
)

// technicalWordMinLength is the minimum length for a content word to count
// as "technical" vocabulary. Long nouns and adjectives approximate domain
// terminology well enough for a density signal.
const technicalWordMinLength = 9

// longStopwords holds common English function words long enough to pass the
// technical-word length filter. They are excluded so that everyday long
// words do not inflate the technical density.
var longStopwords = map[string]struct{}{
	"themselves": {}, "therefore": {}, "otherwise": {}, "something": {},
	"everything": {}, "sometimes": {}, "different": {}, "whatever": {},
	"whenever": {}, "wherever": {}, "although": {}, "whichever": {},
	"regarding": {}, "meanwhile": {}, "furthermore": {}, "nevertheless": {},
}

// Linguistic scores grammatical structure signals with a part-of-speech
// tagger and named-entity recognizer: sentence length, POS-class ratios,
// entity density (a jargon proxy), and technical-word density.
//
// Unlike the keyword extractors it emits raw signal keys rather than
// canonical dimensions; the fuser derives technical_depth, industry_jargon,
// and explanation_style defaults from them.
type Linguistic struct {
	logger *slog.Logger
}

// NewLinguistic creates the linguistic extractor. logger may be nil, in
// which case slog.Default() is used for tagger-failure reporting.
func NewLinguistic(logger *slog.Logger) *Linguistic {
	if logger == nil {
		logger = slog.Default()
	}
	return &Linguistic{logger: logger}
}

// Extract implements voice.Extractor. A tagger failure returns an empty
// mapping; the fuser fills defaults downstream.
func (l *Linguistic) Extract(text string) map[voice.Dimension]float64 {
	doc, err := prose.NewDocument(text)
	if err != nil {
		l.logger.Warn("linguistic analysis failed", "error", err)
		return map[voice.Dimension]float64{}
	}

	tokens := doc.Tokens()
	totalTokens := len(tokens)
	if totalTokens == 0 {
		return map[voice.Dimension]float64{}
	}

	var adjectives, adverbs, verbs, nouns, technical int
	for _, tok := range tokens {
		switch {
		case strings.HasPrefix(tok.Tag, "JJ"):
			adjectives++
		case strings.HasPrefix(tok.Tag, "RB"):
			adverbs++
		case strings.HasPrefix(tok.Tag, "VB"):
			verbs++
		case strings.HasPrefix(tok.Tag, "NN"):
			nouns++
		}

		if len(tok.Text) >= technicalWordMinLength &&
			(strings.HasPrefix(tok.Tag, "NN") || strings.HasPrefix(tok.Tag, "JJ")) {
			if _, stop := longStopwords[strings.ToLower(tok.Text)]; !stop {
				technical++
			}
		}
	}

	sentences := doc.Sentences()
	var avgSentenceLength float64
	if len(sentences) > 0 {
		avgSentenceLength = float64(totalTokens) / float64(len(sentences))
	}

	n := float64(totalTokens)
	return map[voice.Dimension]float64{
		voice.SignalAvgSentenceLength: avgSentenceLength,
		voice.SignalAdjectiveRatio:    float64(adjectives) / n,
		voice.SignalAdverbRatio:       float64(adverbs) / n,
		voice.SignalVerbRatio:         float64(verbs) / n,
		voice.SignalNounRatio:         float64(nouns) / n,
		voice.SignalEntityDensity:     float64(len(doc.Entities())) / n,
		voice.SignalTechnicalDensity:  float64(technical) / n,
	}
}
