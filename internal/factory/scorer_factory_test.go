package factory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SibhiSS/PhishNet/internal/config"
	"github.com/SibhiSS/PhishNet/internal/core"
)

func scorerConfig(modelPath, thresholdPath string) *config.Config {
	v := config.NewEmptyViper()
	v.Set("social.model_paths", []string{modelPath})
	v.Set("social.threshold_path", thresholdPath)
	return config.NewFromViper(v)
}

func TestCreateSocialScorer_MissingModel(t *testing.T) {
	dir := t.TempDir()
	cfg := scorerConfig(filepath.Join(dir, "model.json"), filepath.Join(dir, "threshold.json"))

	f := NewScorerFactory(cfg, zap.NewNop())
	scorer, err := f.CreateSocialScorer()
	require.NoError(t, err)
	require.NotNil(t, scorer)

	// Rules-only: no model probability, rule score carries the decision
	decision := scorer.Decide("urgent, verify your password now https://example.com/a")
	assert.Nil(t, decision.ModelProbability)
	assert.Equal(t, decision.RuleScore, decision.Combined)
}

func TestCreateSocialScorer_CorruptModelDegrades(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.json")
	require.NoError(t, os.WriteFile(modelPath, []byte("garbage not json"), 0644))
	cfg := scorerConfig(modelPath, filepath.Join(dir, "threshold.json"))

	f := NewScorerFactory(cfg, zap.NewNop())
	scorer, err := f.CreateSocialScorer()
	require.NoError(t, err)
	require.NotNil(t, scorer)

	decision := scorer.Decide("urgent, verify your password now")
	assert.Nil(t, decision.ModelProbability)
	assert.Equal(t, decision.RuleScore, decision.Combined)
}

func TestCreateSpamClassifier_CorruptModelDegrades(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "spam.json")
	require.NoError(t, os.WriteFile(modelPath, []byte("{not json"), 0644))

	v := config.NewEmptyViper()
	v.Set("spam.model_paths", []string{modelPath})
	cfg := config.NewFromViper(v)

	f := NewScorerFactory(cfg, zap.NewNop())
	spam, err := f.CreateSpamClassifier()
	require.NoError(t, err)
	require.NotNil(t, spam)
	assert.Equal(t, core.SpamLabelUnknown, spam.Classify("any subject", "any body"))
}
