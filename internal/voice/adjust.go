package voice

// industryAdjustments scales selected dimensions for industries whose
// professional register differs systematically from the general baseline.
// Multipliers above 1 amplify a dimension, below 1 dampen it.
var industryAdjustments = map[string]map[Dimension]float64{
	"technology": {
		DimTechnicalDepth: 1.2,
		DimFormality:      0.9,
		DimJargon:         1.3,
	},
	"finance": {
		DimFormality:      1.3,
		DimAuthority:      1.2,
		DimTechnicalDepth: 1.1,
	},
	"healthcare": {
		DimEmpathy:        1.4,
		DimTechnicalDepth: 1.2,
		DimAuthority:      1.1,
	},
	"marketing": {
		DimExpressiveness: 1.3,
		DimStorytelling:   1.2,
		DimCallToAction:   1.4,
	},
	"consulting": {
		DimAuthority:        1.2,
		DimExplanationStyle: 1.3,
		DimQuestionAsking:   1.2,
	},
}

// ApplyIndustryAdjustments returns a copy of sig with industry-specific
// multipliers applied to the affected dimensions, each result clamped to
// [0, 1]. An unknown industry returns the signature unchanged (same copy
// semantics, no mutation of the input).
func ApplyIndustryAdjustments(sig Signature, industry string) Signature {
	adjustments, ok := industryAdjustments[industry]
	if !ok {
		return sig.Clone()
	}

	adjusted := sig.Clone()
	for dim, multiplier := range adjustments {
		if v, ok := adjusted[dim]; ok {
			adjusted[dim] = clamp01(v * multiplier)
		}
	}
	return adjusted
}
