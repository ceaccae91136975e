package textclass

import "math"

// Additive smoothing for multinomial naive Bayes
const nbAlpha = 1.0

// MultinomialNB is a two-class multinomial naive Bayes over non-negative
// sparse features (TF-IDF values work; only non-negativity matters).
type MultinomialNB struct {
	ClassLogPrior  [2]float64   `json:"class_log_prior"`
	FeatureLogProb [2][]float64 `json:"feature_log_prob"`
}

// NewMultinomialNB creates an untrained model
func NewMultinomialNB() *MultinomialNB {
	return &MultinomialNB{}
}

// Fit estimates class priors and smoothed per-feature likelihoods
func (m *MultinomialNB) Fit(x []SparseVector, y []int, dim int) {
	counts := [2][]float64{make([]float64, dim), make([]float64, dim)}
	classDocs := [2]float64{}
	classTotal := [2]float64{}

	for i, vec := range x {
		c := y[i]
		classDocs[c]++
		for idx, val := range vec {
			counts[c][idx] += val
			classTotal[c] += val
		}
	}

	n := float64(len(x))
	for c := 0; c < 2; c++ {
		if classDocs[c] == 0 || n == 0 {
			m.ClassLogPrior[c] = math.Inf(-1)
		} else {
			m.ClassLogPrior[c] = math.Log(classDocs[c] / n)
		}
		m.FeatureLogProb[c] = make([]float64, dim)
		denom := classTotal[c] + nbAlpha*float64(dim)
		for idx := 0; idx < dim; idx++ {
			m.FeatureLogProb[c][idx] = math.Log((counts[c][idx] + nbAlpha) / denom)
		}
	}
}

// PredictProbability returns the class-1 probability for one vector
func (m *MultinomialNB) PredictProbability(vec SparseVector) float64 {
	joint := [2]float64{m.ClassLogPrior[0], m.ClassLogPrior[1]}
	for c := 0; c < 2; c++ {
		if math.IsInf(joint[c], -1) {
			continue
		}
		for idx, val := range vec {
			joint[c] += val * m.FeatureLogProb[c][idx]
		}
	}

	// Normalize via log-sum-exp
	max := math.Max(joint[0], joint[1])
	z := math.Exp(joint[0]-max) + math.Exp(joint[1]-max)
	return math.Exp(joint[1]-max) / z
}
