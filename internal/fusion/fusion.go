// Package fusion combines the statistical classifier's probability with the
// indicator rule score into a single thresholded social-engineering decision.
package fusion

import (
	"go.uber.org/zap"

	"github.com/SibhiSS/PhishNet/internal/core"
	"github.com/SibhiSS/PhishNet/internal/rules"
)

// DefaultAlpha is the default mixing weight applied to the model probability
const DefaultAlpha = 0.7

// Engine fuses model probability and rule score. Alpha and threshold are set
// once at construction and immutable for the life of the engine; Decide is a
// pure function of the text and that static state.
type Engine struct {
	classifier core.AttackClassifier
	rules      *rules.Engine
	alpha      float64
	threshold  float64
	logger     *zap.Logger
}

// NewEngine creates a fusion engine. alpha is clamped to [0,1].
func NewEngine(classifier core.AttackClassifier, ruleEngine *rules.Engine, alpha, threshold float64, logger *zap.Logger) *Engine {
	return &Engine{
		classifier: classifier,
		rules:      ruleEngine,
		alpha:      clamp01(alpha),
		threshold:  threshold,
		logger:     logger,
	}
}

// Threshold returns the decision threshold in use
func (e *Engine) Threshold() float64 {
	return e.threshold
}

// Decide implements core.SocialScorer. When the classifier is unavailable the
// full weight shifts to the rule score; the combined probability is clamped
// to [0,1] to absorb floating-point drift.
func (e *Engine) Decide(text string) core.Decision {
	ruleScore, triggers := e.rules.Score(text)

	var modelProb *float64
	combined := ruleScore
	if prob, ok := e.classifier.PredictProbability(text); ok {
		p := prob
		modelProb = &p
		combined = e.alpha*p + (1-e.alpha)*ruleScore
	}
	combined = clamp01(combined)

	label := core.LabelNoAttack
	if combined >= e.threshold {
		label = core.LabelAttack
	}

	e.logger.Debug("Social-engineering decision",
		zap.String("label", string(label)),
		zap.Float64("combined", combined),
		zap.Float64("rule_score", ruleScore),
		zap.Float64("threshold", e.threshold),
		zap.Bool("model_available", modelProb != nil))

	return core.Decision{
		Label:            label,
		Combined:         combined,
		RuleScore:        ruleScore,
		ModelProbability: modelProb,
		Threshold:        e.threshold,
		Triggers:         triggers,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
