package voice

// DimensionComparison holds the per-dimension breakdown of a profile
// comparison.
type DimensionComparison struct {
	// ScoreA and ScoreB are the two profiles' values for this dimension;
	// a dimension absent from one profile counts as 0.
	ScoreA float64
	ScoreB float64

	// Difference is |ScoreA − ScoreB|.
	Difference float64

	// Similarity is 1 − Difference.
	Similarity float64
}

// Comparison is the result of comparing two voice signatures.
type Comparison struct {
	// OverallSimilarity is the arithmetic mean of per-dimension similarities
	// over the union of both profiles' dimensions, in [0, 1].
	OverallSimilarity float64

	// Dimensions maps each compared dimension to its breakdown.
	Dimensions map[Dimension]DimensionComparison

	// Recommendation is a short textual assessment derived from fixed
	// thresholds on OverallSimilarity.
	Recommendation string
}

// Compare computes per-dimension and aggregate similarity between two
// signatures. The union of dimensions present in either signature is
// compared; a dimension missing from one side is treated as 0.0 rather than
// excluded, so disjoint profiles compare as dissimilar instead of trivially
// identical. Comparing two empty signatures yields OverallSimilarity 0.
func Compare(a, b Signature) Comparison {
	union := make(map[Dimension]struct{}, len(a)+len(b))
	for dim := range a {
		union[dim] = struct{}{}
	}
	for dim := range b {
		union[dim] = struct{}{}
	}

	dims := make(map[Dimension]DimensionComparison, len(union))
	var total float64
	for dim := range union {
		va := a[dim]
		vb := b[dim]
		diff := va - vb
		if diff < 0 {
			diff = -diff
		}
		dims[dim] = DimensionComparison{
			ScoreA:     va,
			ScoreB:     vb,
			Difference: diff,
			Similarity: 1 - diff,
		}
		total += 1 - diff
	}

	var overall float64
	if len(union) > 0 {
		overall = total / float64(len(union))
	}

	return Comparison{
		OverallSimilarity: overall,
		Dimensions:        dims,
		Recommendation:    recommendation(overall),
	}
}

// recommendation maps an overall similarity to a textual assessment.
func recommendation(similarity float64) string {
	switch {
	case similarity > 0.8:
		return "Very similar communication styles - content can be highly consistent"
	case similarity > 0.6:
		return "Similar communication styles - minor tone adjustments may help"
	case similarity > 0.4:
		return "Moderate differences - review content for voice consistency"
	default:
		return "Significant style differences - consider re-running voice analysis"
	}
}
