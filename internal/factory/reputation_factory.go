package factory

import (
	"github.com/SibhiSS/PhishNet/internal/adapters/urlscan"
	"github.com/SibhiSS/PhishNet/internal/adapters/virustotal"
	"github.com/SibhiSS/PhishNet/internal/config"
	"go.uber.org/zap"
)

// ReputationFactory creates the URL and file reputation clients
type ReputationFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewReputationFactory creates a new reputation factory
func NewReputationFactory(cfg *config.Config, logger *zap.Logger) *ReputationFactory {
	return &ReputationFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateURLScanner creates the urlscan.io client
func (f *ReputationFactory) CreateURLScanner() *urlscan.Client {
	us := f.cfg.GetURLScan()
	return urlscan.NewClient(us.BaseURL, us.APIKey, us.PollTimeout, us.PollInterval, f.logger)
}

// CreateFileReputation creates the VirusTotal client
func (f *ReputationFactory) CreateFileReputation() *virustotal.Client {
	vt := f.cfg.GetVirusTotal()
	return virustotal.NewClient(vt.BaseURL, vt.APIKey, f.logger)
}
