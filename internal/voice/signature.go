// Package voice implements voice-signature analysis: heuristic signal
// extraction, AI-assisted estimation, signal fusion into a canonical
// 14-dimension signature, confidence scoring, profile comparison, and
// industry-specific adjustment.
//
// A voice signature is a numeric profile of a person's communication style
// derived from conversation transcripts. All dimension scores are normalized
// to [0, 1]; missing signals fall back to documented per-dimension defaults
// so a complete signature always comes out of [Fuse], no matter how sparse
// the input evidence was.
package voice

import (
	"fmt"
	"sort"
	"strings"
)

// Dimension names one axis of a voice signature. Extractors may also emit
// raw signal keys (see the Signal* constants) that are not canonical
// dimensions; [Fuse] consumes those to derive fallback values.
type Dimension string

// The 14 canonical voice dimensions. Every signature produced by [Fuse]
// contains exactly these keys.
const (
	DimFormality         Dimension = "formality_level"
	DimExpressiveness    Dimension = "emotional_expressiveness"
	DimTechnicalDepth    Dimension = "technical_depth"
	DimStorytelling      Dimension = "storytelling_style"
	DimAuthority         Dimension = "authority_tone"
	DimEmpathy           Dimension = "empathy_level"
	DimHumor             Dimension = "humor_usage"
	DimVulnerability     Dimension = "vulnerability_comfort"
	DimJargon            Dimension = "industry_jargon"
	DimPace              Dimension = "communication_pace"
	DimExplanationStyle  Dimension = "explanation_style"
	DimQuestionAsking    Dimension = "question_asking_tendency"
	DimCallToAction      Dimension = "call_to_action_style"
	DimPersonalSharing   Dimension = "personal_experience_sharing"
)

// Raw signal keys emitted by the linguistic extractor. They are not part of
// the canonical signature; [Fuse] reads them to derive defaults for
// technical_depth, industry_jargon, and explanation_style.
const (
	SignalAvgSentenceLength Dimension = "avg_sentence_length"
	SignalAdjectiveRatio    Dimension = "adjective_ratio"
	SignalAdverbRatio       Dimension = "adverb_ratio"
	SignalVerbRatio         Dimension = "verb_ratio"
	SignalNounRatio         Dimension = "noun_ratio"
	SignalEntityDensity     Dimension = "entity_density"
	SignalTechnicalDensity  Dimension = "technical_density"
)

// Dimensions returns the canonical dimension list in its fixed order.
func Dimensions() []Dimension {
	return []Dimension{
		DimFormality,
		DimExpressiveness,
		DimTechnicalDepth,
		DimStorytelling,
		DimAuthority,
		DimEmpathy,
		DimHumor,
		DimVulnerability,
		DimJargon,
		DimPace,
		DimExplanationStyle,
		DimQuestionAsking,
		DimCallToAction,
		DimPersonalSharing,
	}
}

// Signature is a complete voice profile: every canonical dimension mapped to
// a score in [0, 1]. Produced by [Fuse]; treat as immutable once attached to
// a stored profile.
type Signature map[Dimension]float64

// Clone returns a deep copy of the signature.
func (s Signature) Clone() Signature {
	out := make(Signature, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Get returns the score for dim, or fallback when dim is absent.
func (s Signature) Get(dim Dimension, fallback float64) float64 {
	if v, ok := s[dim]; ok {
		return v
	}
	return fallback
}

// defaultScores holds the constant-tier neutral defaults applied by [Fuse]
// when no extractor produced a value for a dimension. technical_depth,
// industry_jargon, and explanation_style are absent here: their defaults are
// derived from raw linguistic signals (see [Fuse]).
var defaultScores = map[Dimension]float64{
	DimFormality:       0.5,
	DimExpressiveness:  0.3,
	DimStorytelling:    0.3,
	DimAuthority:       0.4,
	DimEmpathy:         0.4,
	DimHumor:           0.1,
	DimVulnerability:   0.3,
	DimPace:            0.5,
	DimQuestionAsking:  0.2,
	DimCallToAction:    0.3,
	DimPersonalSharing: 0.4,
}

// clamp01 bounds v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// band is one tier of a qualitative description: scores strictly above
// Threshold (and below any higher band) render as Label.
type band struct {
	threshold float64
	label     string
}

// describedDimensions lists, in render order, the dimensions that carry a
// qualitative banding table. Each entry has exactly three tiers; the last
// tier's threshold is negative so it always matches.
var describedDimensions = []struct {
	dim      Dimension
	fallback float64
	bands    []band
}{
	{DimFormality, 0.5, []band{
		{0.7, "Very formal and professional tone"},
		{0.3, "Balanced professional tone"},
		{-1, "Casual and approachable tone"},
	}},
	{DimExpressiveness, 0.3, []band{
		{0.6, "Highly expressive and emotionally engaging"},
		{0.3, "Moderately expressive with emotional connection"},
		{-1, "Reserved and measured emotional expression"},
	}},
	{DimTechnicalDepth, 0.3, []band{
		{0.6, "Uses technical language and industry expertise"},
		{0.3, "Balances technical concepts with accessibility"},
		{-1, "Uses simple, accessible language"},
	}},
	{DimStorytelling, 0.3, []band{
		{0.6, "Strong storytelling with narrative elements"},
		{0.3, "Incorporates some story elements"},
		{-1, "Direct and factual communication"},
	}},
	{DimAuthority, 0.4, []band{
		{0.6, "Confident and authoritative voice"},
		{0.3, "Balanced confidence and humility"},
		{-1, "Humble and questioning approach"},
	}},
	{DimPersonalSharing, 0.4, []band{
		{0.6, "Frequently shares personal experiences and insights"},
		{0.3, "Occasionally includes personal anecdotes"},
		{-1, "Focuses on general insights rather than personal stories"},
	}},
}

// DescribeDimension returns the qualitative label for dim at the signature's
// score, or "" when dim has no banding table.
func (s Signature) DescribeDimension(dim Dimension) string {
	for _, d := range describedDimensions {
		if d.dim != dim {
			continue
		}
		score := s.Get(dim, d.fallback)
		for _, b := range d.bands {
			if score > b.threshold {
				return b.label
			}
		}
	}
	return ""
}

// Describe renders the signature as a human-readable style summary: one
// bullet per banded dimension. Used verbatim in generation prompts and in
// profile display.
func (s Signature) Describe() string {
	lines := make([]string, 0, len(describedDimensions))
	for _, d := range describedDimensions {
		score := s.Get(d.dim, d.fallback)
		for _, b := range d.bands {
			if score > b.threshold {
				lines = append(lines, b.label)
				break
			}
		}
	}
	return "- " + strings.Join(lines, "\n- ")
}

// String renders the signature with dimensions in canonical order. Intended
// for logs and debugging.
func (s Signature) String() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%.2f", k, s[Dimension(k)]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}
