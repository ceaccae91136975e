package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Cache kinds used by the triage service
const (
	CacheKindURL  = "url"
	CacheKindFile = "file"
)

// TriageService is the core service for phishing triage
type TriageService struct {
	spam         SpamClassifier
	scorer       SocialScorer
	urls         URLScanner
	files        FileReputation
	cache        ReputationCache
	trust        TrustChecker
	logger       *zap.Logger
	cacheEnabled bool
	cacheTTL     time.Duration
}

// NewTriageService creates a new triage service
func NewTriageService(
	spam SpamClassifier,
	scorer SocialScorer,
	urls URLScanner,
	files FileReputation,
	cache ReputationCache,
	trust TrustChecker,
	logger *zap.Logger,
	cacheEnabled bool,
	cacheTTL time.Duration,
) *TriageService {
	return &TriageService{
		spam:         spam,
		scorer:       scorer,
		urls:         urls,
		files:        files,
		cache:        cache,
		trust:        trust,
		logger:       logger,
		cacheEnabled: cacheEnabled,
		cacheTTL:     cacheTTL,
	}
}

// Triage runs the full analysis for one email: spam label, social-engineering
// decision, URL reputation checks and attachment summaries. It never returns
// an error for a scoring request; degraded dependencies surface as UNKNOWN
// labels or Error verdicts in the report.
func (s *TriageService) Triage(ctx context.Context, email *Email, bodyURLs []string) *TriageReport {
	report := &TriageReport{
		ProcessingID: uuid.NewString(),
		AnalyzedAt:   time.Now(),
	}

	if s.trust != nil && s.trust.IsWhitelisted(email.From) {
		s.logger.Info("Skipping analysis for trusted sender domain",
			zap.String("sender", email.From),
			zap.String("action", "whitelist_bypass"))
		report.Trusted = true
		report.Spam = SpamLabelHam
		report.Decision = s.scorer.Decide("")
		report.Attachments = summarizeAttachments(email.Attachments)
		return report
	}

	report.Spam = s.spam.Classify(email.Subject, email.Body)
	report.Decision = s.scorer.Decide(email.Body)

	for _, u := range bodyURLs {
		report.URLs = append(report.URLs, s.checkURL(ctx, u))
	}

	report.Attachments = summarizeAttachments(email.Attachments)

	s.logger.Info("Triage complete",
		zap.String("processing_id", report.ProcessingID),
		zap.String("spam", string(report.Spam)),
		zap.String("label", string(report.Decision.Label)),
		zap.Float64("combined", report.Decision.Combined),
		zap.Int("urls", len(report.URLs)),
		zap.Int("attachments", len(report.Attachments)))

	return report
}

// checkURL scans one URL, consulting the reputation cache first
func (s *TriageService) checkURL(ctx context.Context, url string) URLCheck {
	if s.cacheEnabled {
		if payload, ok := s.cache.Get(ctx, CacheKindURL, url); ok {
			var check URLCheck
			if err := json.Unmarshal(payload, &check); err == nil {
				s.logger.Debug("URL cache hit", zap.String("url", url))
				return check
			}
			// Corrupt payload; drop it and rescan
			if err := s.cache.Delete(ctx, CacheKindURL, url); err != nil {
				s.logger.Warn("Failed to evict corrupt cache entry", zap.Error(err))
			}
		}
	}

	check := s.urls.Scan(ctx, url)

	// Error verdicts are transient and not worth caching
	if s.cacheEnabled && check.Verdict != VerdictError {
		if payload, err := json.Marshal(check); err == nil {
			if err := s.cache.Set(ctx, CacheKindURL, url, payload, s.cacheTTL); err != nil {
				s.logger.Error("Failed to update URL cache", zap.Error(err))
			}
		}
	}

	return check
}

// LookupAttachment checks one attachment hash against the file-reputation
// service, consulting the cache first
func (s *TriageService) LookupAttachment(ctx context.Context, sha string) (*FileReport, error) {
	if s.cacheEnabled {
		if payload, ok := s.cache.Get(ctx, CacheKindFile, sha); ok {
			var rep FileReport
			if err := json.Unmarshal(payload, &rep); err == nil {
				s.logger.Debug("File report cache hit", zap.String("sha256", sha))
				return &rep, nil
			}
		}
	}

	rep, err := s.files.Lookup(ctx, sha)
	if err != nil {
		return nil, err
	}

	if s.cacheEnabled {
		if payload, err := json.Marshal(rep); err == nil {
			if err := s.cache.Set(ctx, CacheKindFile, sha, payload, s.cacheTTL); err != nil {
				s.logger.Error("Failed to update file report cache", zap.Error(err))
			}
		}
	}

	return rep, nil
}

// HashAttachment returns the hex SHA-256 of an attachment body
func HashAttachment(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func summarizeAttachments(attachments []Attachment) []AttachmentInfo {
	if len(attachments) == 0 {
		return nil
	}
	infos := make([]AttachmentInfo, 0, len(attachments))
	for _, a := range attachments {
		infos = append(infos, AttachmentInfo{
			Filename: a.Filename,
			Size:     len(a.Data),
			SHA256:   HashAttachment(a.Data),
		})
	}
	return infos
}
