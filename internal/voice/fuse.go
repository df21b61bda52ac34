package voice

// Fuse merges any number of partial dimension mappings into one complete
// signature. Mappings are merged left to right, so later mappings overwrite
// earlier ones for the same key; callers should pass heuristic extractor
// output first and the AI estimator's output last.
//
// For each canonical dimension the merged value is used when present;
// otherwise a documented default applies. Most defaults are constants, but
// three dimensions derive their fallback from raw linguistic signals when
// those were observed:
//
//   - technical_depth  ← technical_density × 2
//   - industry_jargon  ← entity_density × 3
//   - explanation_style ← avg_sentence_length / 30 (15 when unobserved)
//
// The derived fallbacks mean a weak technical or jargon signal still shapes
// the signature even when no analyzer scored the dimension directly. Keep
// the multipliers as documented constants; they are calibrated against the
// heuristic extractors' output ranges.
//
// Every value in the returned signature is clamped to [0, 1].
func Fuse(partials ...map[Dimension]float64) Signature {
	merged := make(map[Dimension]float64)
	for _, p := range partials {
		for k, v := range p {
			merged[k] = v
		}
	}

	sig := make(Signature, len(defaultScores)+3)

	for dim, def := range defaultScores {
		if v, ok := merged[dim]; ok {
			sig[dim] = clamp01(v)
		} else {
			sig[dim] = def
		}
	}

	// Derived-default dimensions.
	if v, ok := merged[DimTechnicalDepth]; ok {
		sig[DimTechnicalDepth] = clamp01(v)
	} else {
		sig[DimTechnicalDepth] = clamp01(merged[SignalTechnicalDensity] * 2)
	}

	if v, ok := merged[DimJargon]; ok {
		sig[DimJargon] = clamp01(v)
	} else {
		sig[DimJargon] = clamp01(merged[SignalEntityDensity] * 3)
	}

	if v, ok := merged[DimExplanationStyle]; ok {
		sig[DimExplanationStyle] = clamp01(v)
	} else {
		avgLen := 15.0
		if l, ok := merged[SignalAvgSentenceLength]; ok {
			avgLen = l
		}
		sig[DimExplanationStyle] = clamp01(avgLen / 30)
	}

	return sig
}
