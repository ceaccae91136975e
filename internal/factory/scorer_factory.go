package factory

import (
	"github.com/SibhiSS/PhishNet/internal/artifact"
	"github.com/SibhiSS/PhishNet/internal/config"
	"github.com/SibhiSS/PhishNet/internal/fusion"
	"github.com/SibhiSS/PhishNet/internal/rules"
	"github.com/SibhiSS/PhishNet/internal/textclass"
	"go.uber.org/zap"
)

// ScorerFactory creates the social-engineering scorer from persisted
// artifacts and configuration
type ScorerFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewScorerFactory creates a new scorer factory
func NewScorerFactory(cfg *config.Config, logger *zap.Logger) *ScorerFactory {
	return &ScorerFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateSocialScorer builds the fusion engine: the default indicator catalog,
// the classifier artifact if one exists on disk, and the calibrated threshold
// if one was persisted. Missing or corrupt artifacts degrade to rules-only
// scoring.
func (f *ScorerFactory) CreateSocialScorer() (*fusion.Engine, error) {
	social := f.cfg.GetSocial()

	store := artifact.NewStore(social.ModelPaths, social.ThresholdPath, f.logger)
	classifier := textclass.NewClassifier(store.LoadModel(), f.logger)

	threshold, calibrated := store.LoadThreshold()
	if !calibrated && social.FallbackThreshold > 0 {
		threshold = social.FallbackThreshold
	}

	engine := rules.NewDefaultEngine()
	return fusion.NewEngine(classifier, engine, social.Alpha, threshold, f.logger), nil
}

// CreateSpamClassifier loads the spam model artifact, if any
func (f *ScorerFactory) CreateSpamClassifier() (*textclass.SpamModel, error) {
	spam := f.cfg.GetSpam()

	store := artifact.NewStore(spam.ModelPaths, "", f.logger)
	return textclass.NewSpamModel(store.LoadModel(), f.logger), nil
}
