package train

// FallbackThreshold is used when calibration is degenerate (no probabilities
// to calibrate against). Note this deliberately differs from the deployed
// default of 0.45 (artifact.DefaultThreshold): the deployed default is lower
// to favor recall in the fused system, while this value only ever applies to
// a calibration run that produced no usable curve.
const FallbackThreshold = 0.7

// f1Epsilon avoids division by zero when precision and recall are both 0
const f1Epsilon = 1e-8

// SelectThreshold picks the decision threshold maximizing F1 over the
// precision-recall curve of the held-out probabilities. Ties go to the
// first-encountered (lowest) threshold. With no probabilities it falls back
// to FallbackThreshold.
func SelectThreshold(probs []float64, truth []int) float64 {
	precision, recall, thresholds := PrecisionRecallCurve(probs, truth)
	if len(thresholds) == 0 {
		return FallbackThreshold
	}

	best := 0
	bestF1 := -1.0
	for i := range thresholds {
		f1 := 2 * precision[i] * recall[i] / (precision[i] + recall[i] + f1Epsilon)
		if f1 > bestF1 {
			bestF1 = f1
			best = i
		}
	}
	return thresholds[best]
}
