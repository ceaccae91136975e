package di

import (
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/SibhiSS/PhishNet/internal/config"
	"github.com/SibhiSS/PhishNet/internal/core"
	"github.com/SibhiSS/PhishNet/internal/factory"
	"github.com/SibhiSS/PhishNet/internal/logging"
	"github.com/SibhiSS/PhishNet/internal/monitor"
	"github.com/SibhiSS/PhishNet/internal/utils"
	"github.com/SibhiSS/PhishNet/internal/whitelist"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewScorerFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewReputationFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewMailFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}

	// Register social-engineering scorer
	if err := container.Provide(func(f *factory.ScorerFactory) (core.SocialScorer, error) {
		return f.CreateSocialScorer()
	}); err != nil {
		return nil, err
	}

	// Register spam classifier
	if err := container.Provide(func(f *factory.ScorerFactory) (core.SpamClassifier, error) {
		return f.CreateSpamClassifier()
	}); err != nil {
		return nil, err
	}

	// Register reputation clients
	if err := container.Provide(func(f *factory.ReputationFactory) core.URLScanner {
		return f.CreateURLScanner()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.ReputationFactory) core.FileReputation {
		return f.CreateFileReputation()
	}); err != nil {
		return nil, err
	}

	// Register mail source
	if err := container.Provide(func(f *factory.MailFactory) (core.MailSource, error) {
		return f.CreateMailSource()
	}); err != nil {
		return nil, err
	}

	// Register reputation cache
	if err := container.Provide(func(f *factory.CacheFactory) (core.ReputationCache, error) {
		return f.CreateReputationCache()
	}); err != nil {
		return nil, err
	}

	// Register cache TTL and enabled flag
	if err := container.Provide(func(f *factory.CacheFactory) (time.Duration, error) {
		return f.GetCacheTTL()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.CacheFactory) bool {
		return f.IsCacheEnabled()
	}); err != nil {
		return nil, err
	}

	// Register trusted-domain checker
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.TrustChecker {
		domains := cfg.GetStringSlice("spam.whitelisted_domains")
		return whitelist.NewChecker(domains, logger)
	}); err != nil {
		return nil, err
	}

	// Register triage service
	if err := container.Provide(core.NewTriageService); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register mailbox monitor
	if err := container.Provide(func(
		source core.MailSource,
		service *core.TriageService,
		text *utils.TextProcessor,
		cfg *config.Config,
		logger *zap.Logger,
	) (*monitor.Monitor, error) {
		pollInterval, err := cfg.GetDuration("mail.poll_interval")
		if err != nil {
			return nil, err
		}
		attachmentDir := cfg.GetString("mail.attachment_dir")
		maxBodySize := cfg.GetInt("mail.max_body_size")
		return monitor.NewMonitor(source, service, text, logger, pollInterval, attachmentDir, maxBodySize), nil
	}); err != nil {
		return nil, err
	}

	return container, nil
}
