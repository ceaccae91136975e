package textclass

import (
	"encoding/json"
	"fmt"
)

// Family identifies a classifier family
type Family string

const (
	FamilyLogisticRegression Family = "logistic_regression"
	FamilyMultinomialNB      Family = "multinomial_nb"
)

// Pipeline couples a fitted vectorizer with a fitted model; this is the unit
// that gets trained, compared, persisted and loaded.
type Pipeline struct {
	Family     Family              `json:"family"`
	Vectorizer *Vectorizer         `json:"vectorizer"`
	LogReg     *LogisticRegression `json:"logistic_regression,omitempty"`
	NaiveBayes *MultinomialNB      `json:"multinomial_nb,omitempty"`
}

// NewPipeline creates an unfitted pipeline of the given family
func NewPipeline(family Family) *Pipeline {
	return &Pipeline{
		Family:     family,
		Vectorizer: NewVectorizer(),
	}
}

// Fit fits the vectorizer on the texts and trains the model. Labels must be
// 0 (negative) or 1 (positive).
func (p *Pipeline) Fit(texts []string, labels []int) {
	p.Vectorizer.Fit(texts)
	vecs := p.Vectorizer.TransformAll(texts)
	dim := p.Vectorizer.Size()

	switch p.Family {
	case FamilyMultinomialNB:
		p.NaiveBayes = NewMultinomialNB()
		p.NaiveBayes.Fit(vecs, labels, dim)
	default:
		p.LogReg = NewLogisticRegression()
		p.LogReg.Fit(vecs, labels, dim)
	}
}

// PredictProbability returns the class-1 probability for one text
func (p *Pipeline) PredictProbability(text string) (float64, error) {
	vec := p.Vectorizer.Transform(text)
	switch {
	case p.Family == FamilyMultinomialNB && p.NaiveBayes != nil:
		return p.NaiveBayes.PredictProbability(vec), nil
	case p.LogReg != nil:
		return p.LogReg.PredictProbability(vec), nil
	}
	return 0, fmt.Errorf("pipeline %q has no fitted model", p.Family)
}

// Predict returns the hard label (probability at or above 0.5 is class 1)
func (p *Pipeline) Predict(text string) (int, error) {
	prob, err := p.PredictProbability(text)
	if err != nil {
		return 0, err
	}
	if prob >= 0.5 {
		return 1, nil
	}
	return 0, nil
}

// Marshal serializes the pipeline as the JSON model artifact
func (p *Pipeline) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// Unmarshal deserializes a JSON model artifact
func Unmarshal(data []byte) (*Pipeline, error) {
	var p Pipeline
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact: %w", err)
	}
	if p.Vectorizer == nil {
		return nil, fmt.Errorf("model artifact has no vectorizer")
	}
	if p.LogReg == nil && p.NaiveBayes == nil {
		return nil, fmt.Errorf("model artifact has no fitted model")
	}
	return &p, nil
}
