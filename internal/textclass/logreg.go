package textclass

import "math"

// Training hyperparameters for logistic regression. The epoch budget matches
// the original model's iteration cap; the learning rate suits L2-normalized
// TF-IDF inputs.
const (
	logRegEpochs       = 400
	logRegLearningRate = 0.5
	logRegL2           = 1e-4
)

// LogisticRegression is a binary logistic regression over sparse features,
// trained by full-batch gradient descent with balanced class weights.
type LogisticRegression struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// NewLogisticRegression creates an untrained model
func NewLogisticRegression() *LogisticRegression {
	return &LogisticRegression{}
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// Fit trains the model on sparse vectors of the given dimensionality.
// Labels must be 0 or 1. Classes are re-weighted inversely to their
// frequency so an imbalanced dataset does not collapse to the majority.
func (m *LogisticRegression) Fit(x []SparseVector, y []int, dim int) {
	m.Weights = make([]float64, dim)
	m.Bias = 0

	n := len(x)
	if n == 0 {
		return
	}

	pos := 0
	for _, label := range y {
		pos += label
	}
	neg := n - pos

	// Balanced class weights: n / (2 * class count)
	classWeight := [2]float64{1, 1}
	if pos > 0 && neg > 0 {
		classWeight[0] = float64(n) / (2 * float64(neg))
		classWeight[1] = float64(n) / (2 * float64(pos))
	}

	gradW := make([]float64, dim)
	for epoch := 0; epoch < logRegEpochs; epoch++ {
		for i := range gradW {
			gradW[i] = 0
		}
		gradB := 0.0

		for i, vec := range x {
			p := m.predict(vec)
			g := (p - float64(y[i])) * classWeight[y[i]]
			for idx, val := range vec {
				gradW[idx] += g * val
			}
			gradB += g
		}

		scale := logRegLearningRate / float64(n)
		for i := range m.Weights {
			m.Weights[i] -= scale*gradW[i] + logRegLearningRate*logRegL2*m.Weights[i]
		}
		m.Bias -= scale * gradB
	}
}

func (m *LogisticRegression) predict(vec SparseVector) float64 {
	z := m.Bias
	for idx, val := range vec {
		z += m.Weights[idx] * val
	}
	return sigmoid(z)
}

// PredictProbability returns the class-1 probability for one vector
func (m *LogisticRegression) PredictProbability(vec SparseVector) float64 {
	return m.predict(vec)
}
