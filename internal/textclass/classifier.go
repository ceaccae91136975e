package textclass

import (
	"go.uber.org/zap"

	"github.com/SibhiSS/PhishNet/internal/core"
)

// Classifier adapts a loaded pipeline to the core.AttackClassifier port.
// A nil pipeline (no artifact found) and an inference failure both report
// unavailable; neither is ever surfaced as probability 0.
type Classifier struct {
	pipeline *Pipeline
	logger   *zap.Logger
}

// NewClassifier wraps a pipeline; pipeline may be nil when no artifact exists
func NewClassifier(pipeline *Pipeline, logger *zap.Logger) *Classifier {
	return &Classifier{pipeline: pipeline, logger: logger}
}

// Available reports whether a model artifact is loaded
func (c *Classifier) Available() bool {
	return c != nil && c.pipeline != nil
}

// PredictProbability implements core.AttackClassifier
func (c *Classifier) PredictProbability(text string) (float64, bool) {
	if !c.Available() {
		return 0, false
	}
	prob, err := c.pipeline.PredictProbability(text)
	if err != nil {
		c.logger.Warn("Classifier inference failed", zap.Error(err))
		return 0, false
	}
	return prob, true
}

// SpamModel adapts a loaded pipeline to the core.SpamClassifier port
type SpamModel struct {
	pipeline *Pipeline
	logger   *zap.Logger
}

// NewSpamModel wraps a pipeline; pipeline may be nil when no artifact exists
func NewSpamModel(pipeline *Pipeline, logger *zap.Logger) *SpamModel {
	return &SpamModel{pipeline: pipeline, logger: logger}
}

// Classify implements core.SpamClassifier. Subject and body are scored as a
// single text; with no artifact loaded the label is UNKNOWN.
func (m *SpamModel) Classify(subject, body string) core.SpamLabel {
	if m == nil || m.pipeline == nil {
		return core.SpamLabelUnknown
	}
	label, err := m.pipeline.Predict(subject + " " + body)
	if err != nil {
		m.logger.Warn("Spam inference failed", zap.Error(err))
		return core.SpamLabelUnknown
	}
	if label == 1 {
		return core.SpamLabelSpam
	}
	return core.SpamLabelHam
}
