package voice

// Confidence derives a trust score in [0, 1] for a fused signature. It is a
// weighted sum of four factors:
//
//   - evidence length: textLength / 1000, capped at 1 (weight 0.3)
//   - turn count: turnCount / 5, capped at 1 (weight 0.2)
//   - completeness: dimensions scored above zero, out of 14 (weight 0.3)
//   - consistency: max(0.5, 1 − variance of all scores) (weight 0.2)
//
// Confidence rewards both evidence volume and signal stability: a signature
// whose dimensions swing between extremes is less trustworthy than one
// clustered in plausible human ranges. The variance runs over all 14 scores
// including defaulted ones, which can understate confidence for sparse
// input; that trade-off is deliberate and should not be changed without
// recalibrating the factor weights.
func Confidence(sig Signature, textLength, turnCount int) float64 {
	lengthFactor := min(float64(textLength)/1000, 1.0)
	turnsFactor := min(float64(turnCount)/5, 1.0)

	nonZero := 0
	for _, v := range sig {
		if v > 0 {
			nonZero++
		}
	}
	completenessFactor := float64(nonZero) / float64(len(Dimensions()))

	consistencyFactor := max(0.5, 1.0-variance(sig))

	confidence := lengthFactor*0.3 +
		turnsFactor*0.2 +
		completenessFactor*0.3 +
		consistencyFactor*0.2

	return clamp01(confidence)
}

// variance returns the sample variance of all signature scores, 0 for fewer
// than two scores.
func variance(sig Signature) float64 {
	n := len(sig)
	if n < 2 {
		return 0
	}
	var sum float64
	for _, v := range sig {
		sum += v
	}
	mean := sum / float64(n)
	var ss float64
	for _, v := range sig {
		d := v - mean
		ss += d * d
	}
	return ss / float64(n-1)
}
