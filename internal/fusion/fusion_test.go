package fusion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SibhiSS/PhishNet/internal/core"
	"github.com/SibhiSS/PhishNet/internal/rules"
)

type stubClassifier struct {
	prob      float64
	available bool
}

func (s stubClassifier) PredictProbability(text string) (float64, bool) {
	return s.prob, s.available
}

func TestEngine_Decide_WithModel(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		prob      float64
		threshold float64
		wantLabel core.AttackLabel
	}{
		{
			name:      "high probability flags attack",
			text:      "Enter your password at https://secure-login.net/reset or you will lose access.",
			prob:      0.6,
			threshold: 0.45,
			wantLabel: core.LabelAttack,
		},
		{
			name:      "low probability benign text stays clean",
			text:      "See you at the team lunch on Friday.",
			prob:      0.1,
			threshold: 0.45,
			wantLabel: core.LabelNoAttack,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(stubClassifier{prob: tt.prob, available: true},
				rules.NewDefaultEngine(), DefaultAlpha, tt.threshold, zap.NewNop())

			decision := engine.Decide(tt.text)
			assert.Equal(t, tt.wantLabel, decision.Label)
			require.NotNil(t, decision.ModelProbability)
			assert.Equal(t, tt.prob, *decision.ModelProbability)
			assert.Equal(t, tt.threshold, decision.Threshold)
		})
	}
}

func TestEngine_Decide_ConvexCombination(t *testing.T) {
	text := "Urgent: verify your banking detail at https://trust-pay.io/confirm"
	ruleEngine := rules.NewDefaultEngine()
	ruleScore, _ := ruleEngine.Score(text)

	for _, prob := range []float64{0, 0.25, 0.5, 0.75, 1} {
		engine := NewEngine(stubClassifier{prob: prob, available: true},
			ruleEngine, 0.7, 0.45, zap.NewNop())
		decision := engine.Decide(text)

		assert.InDelta(t, 0.7*prob+0.3*ruleScore, decision.Combined, 1e-9)

		// Combined always lies between the two inputs
		lo, hi := prob, ruleScore
		if lo > hi {
			lo, hi = hi, lo
		}
		assert.GreaterOrEqual(t, decision.Combined, lo-1e-9)
		assert.LessOrEqual(t, decision.Combined, hi+1e-9)
	}
}

func TestEngine_Decide_ThresholdBoundaryInclusive(t *testing.T) {
	// With alpha 1 the combined score equals the model probability exactly
	engine := NewEngine(stubClassifier{prob: 0.45, available: true},
		rules.NewDefaultEngine(), 1.0, 0.45, zap.NewNop())

	decision := engine.Decide("hello there")
	assert.Equal(t, core.LabelAttack, decision.Label)
	assert.Equal(t, 0.45, decision.Combined)
}

func TestEngine_Decide_WithoutModel(t *testing.T) {
	engine := NewEngine(stubClassifier{available: false},
		rules.NewDefaultEngine(), DefaultAlpha, 0.45, zap.NewNop())

	text := "Enter your password at https://secure-login.net/reset or you will lose access."
	decision := engine.Decide(text)

	assert.Nil(t, decision.ModelProbability)
	assert.Equal(t, decision.RuleScore, decision.Combined)
	assert.Equal(t, core.LabelNoAttack, decision.Label)
	assert.NotEmpty(t, decision.Triggers)
}

func TestEngine_Decide_Idempotent(t *testing.T) {
	engine := NewEngine(stubClassifier{prob: 0.42, available: true},
		rules.NewDefaultEngine(), DefaultAlpha, 0.45, zap.NewNop())

	text := "Congratulations! You have been selected for an exclusive reward."
	first := engine.Decide(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, engine.Decide(text))
	}
}

func TestNewEngine_AlphaClamped(t *testing.T) {
	ruleEngine := rules.NewDefaultEngine()

	over := NewEngine(stubClassifier{prob: 1, available: true}, ruleEngine, 1.5, 0.45, zap.NewNop())
	decision := over.Decide("hello")
	assert.InDelta(t, 1.0, decision.Combined, 1e-9)

	under := NewEngine(stubClassifier{prob: 1, available: true}, ruleEngine, -0.5, 0.45, zap.NewNop())
	decision = under.Decide("hello")
	assert.InDelta(t, 0.0, decision.Combined, 1e-9)
}
