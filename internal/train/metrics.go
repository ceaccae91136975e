// Package train implements the offline training pipeline for the text
// classifiers: deduplication, leak-free train/test splitting, cross-validated
// model selection, held-out evaluation and decision-threshold calibration.
package train

import (
	"math"
	"sort"
)

// ClassMetrics holds precision/recall/F1 for one class
type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Evaluation is a full held-out evaluation of one model
type Evaluation struct {
	Accuracy float64
	// PerClass is indexed by class label (0 = negative, 1 = positive)
	PerClass [2]ClassMetrics
}

// F1Positive returns the positive-class F1, the model-selection criterion
func (e Evaluation) F1Positive() float64 {
	return e.PerClass[1].F1
}

// Evaluate computes accuracy and per-class precision/recall/F1
func Evaluate(pred, truth []int) Evaluation {
	var ev Evaluation
	if len(truth) == 0 {
		return ev
	}

	correct := 0
	var tp, fp, fn [2]int
	for i, t := range truth {
		p := pred[i]
		if p == t {
			correct++
			tp[t]++
		} else {
			fp[p]++
			fn[t]++
		}
	}

	ev.Accuracy = float64(correct) / float64(len(truth))
	for c := 0; c < 2; c++ {
		m := &ev.PerClass[c]
		m.Support = tp[c] + fn[c]
		if tp[c]+fp[c] > 0 {
			m.Precision = float64(tp[c]) / float64(tp[c]+fp[c])
		}
		if tp[c]+fn[c] > 0 {
			m.Recall = float64(tp[c]) / float64(tp[c]+fn[c])
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
	}
	return ev
}

// F1Score returns the positive-class F1 of hard predictions
func F1Score(pred, truth []int) float64 {
	return Evaluate(pred, truth).F1Positive()
}

// PrecisionRecallCurve computes the precision-recall curve over the full
// probability range. Thresholds are the unique scores in ascending order;
// point i uses the rule "positive iff score >= thresholds[i]".
func PrecisionRecallCurve(probs []float64, truth []int) (precision, recall, thresholds []float64) {
	if len(probs) == 0 {
		return nil, nil, nil
	}

	uniq := make(map[float64]struct{}, len(probs))
	for _, p := range probs {
		uniq[p] = struct{}{}
	}
	thresholds = make([]float64, 0, len(uniq))
	for p := range uniq {
		thresholds = append(thresholds, p)
	}
	sort.Float64s(thresholds)

	totalPos := 0
	for _, t := range truth {
		totalPos += t
	}

	precision = make([]float64, len(thresholds))
	recall = make([]float64, len(thresholds))
	for i, th := range thresholds {
		tp, fp := 0, 0
		for j, p := range probs {
			if p >= th {
				if truth[j] == 1 {
					tp++
				} else {
					fp++
				}
			}
		}
		if tp+fp > 0 {
			precision[i] = float64(tp) / float64(tp+fp)
		} else {
			precision[i] = 1
		}
		if totalPos > 0 {
			recall[i] = float64(tp) / float64(totalPos)
		}
	}
	return precision, recall, thresholds
}

// meanStd returns the mean and population standard deviation of a series
func meanStd(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	for _, v := range values {
		std += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(std / float64(len(values)))
}
