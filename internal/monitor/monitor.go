package monitor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SibhiSS/PhishNet/internal/core"
	"github.com/SibhiSS/PhishNet/internal/utils"
)

// Monitor polls a mailbox and triages each new message. Messages are keyed
// by subject|sender, so a message stays triaged once even when it remains
// the newest in the mailbox across polls.
type Monitor struct {
	source        core.MailSource
	service       *core.TriageService
	text          *utils.TextProcessor
	logger        *zap.Logger
	pollInterval  time.Duration
	attachmentDir string
	maxBodySize   int

	seen   map[string]struct{}
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewMonitor creates a new mailbox monitor
func NewMonitor(
	source core.MailSource,
	service *core.TriageService,
	text *utils.TextProcessor,
	logger *zap.Logger,
	pollInterval time.Duration,
	attachmentDir string,
	maxBodySize int,
) *Monitor {
	return &Monitor{
		source:        source,
		service:       service,
		text:          text,
		logger:        logger,
		pollInterval:  pollInterval,
		attachmentDir: attachmentDir,
		maxBodySize:   maxBodySize,
		seen:          make(map[string]struct{}),
		stopCh:        make(chan struct{}),
	}
}

// Start starts the poll loop
func (m *Monitor) Start() error {
	if m.attachmentDir != "" {
		if err := os.MkdirAll(m.attachmentDir, 0755); err != nil {
			return fmt.Errorf("failed to create attachment directory: %w", err)
		}
	}

	m.logger.Info("Mailbox monitor starting",
		zap.Duration("poll_interval", m.pollInterval))

	m.wg.Add(1)
	go m.run()
	return nil
}

// Stop stops the poll loop and waits for the current cycle to finish
func (m *Monitor) Stop() error {
	close(m.stopCh)
	m.wg.Wait()
	m.logger.Info("Mailbox monitor stopped")
	return nil
}

func (m *Monitor) run() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	// First poll immediately instead of waiting a full interval
	m.poll()

	for {
		select {
		case <-ticker.C:
			m.poll()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), m.pollInterval)
	defer cancel()

	email, err := m.source.FetchLatest(ctx)
	if err != nil {
		m.logger.Error("Failed to fetch latest email", zap.Error(err))
		return
	}
	if email == nil {
		m.logger.Debug("Mailbox is empty")
		return
	}

	id := email.Subject + "|" + email.From
	if _, done := m.seen[id]; done {
		return
	}

	body := m.text.ProcessText(m.text.StripHTML(email.Body), m.maxBodySize)
	urls := m.text.ExtractUniqueURLs(email.Body)

	report := m.service.Triage(ctx, &core.Email{
		From:        email.From,
		Subject:     email.Subject,
		Body:        body,
		Attachments: email.Attachments,
	}, urls)

	m.logReport(email, report)
	m.saveAttachments(email)

	m.seen[id] = struct{}{}
}

func (m *Monitor) logReport(email *core.Email, report *core.TriageReport) {
	fields := []zap.Field{
		zap.String("processing_id", report.ProcessingID),
		zap.String("from", email.From),
		zap.String("subject", email.Subject),
		zap.String("spam", string(report.Spam)),
		zap.String("label", string(report.Decision.Label)),
		zap.Float64("combined", report.Decision.Combined),
		zap.Float64("rule_score", report.Decision.RuleScore),
	}
	if report.Decision.ModelProbability != nil {
		fields = append(fields, zap.Float64("model_probability", *report.Decision.ModelProbability))
	}

	if len(report.URLs) > 0 {
		var safe, malicious, suspicious, failed int
		for _, check := range report.URLs {
			switch check.Verdict {
			case core.VerdictSafe:
				safe++
			case core.VerdictMalicious:
				malicious++
			case core.VerdictSuspicious:
				suspicious++
			default:
				failed++
			}
		}
		fields = append(fields,
			zap.Int("urls_safe", safe),
			zap.Int("urls_malicious", malicious),
			zap.Int("urls_suspicious", suspicious),
			zap.Int("urls_error", failed))
	}

	m.logger.Info("Email triaged", fields...)
}

// saveAttachments writes attachment bodies to the attachment directory,
// suffixing filenames that already exist.
func (m *Monitor) saveAttachments(email *core.Email) {
	if m.attachmentDir == "" {
		return
	}

	for _, a := range email.Attachments {
		path, err := m.saveAttachment(a)
		if err != nil {
			m.logger.Error("Failed to save attachment", zap.Error(err),
				zap.String("filename", a.Filename))
			continue
		}
		m.logger.Info("Attachment saved",
			zap.String("filename", a.Filename),
			zap.String("path", path),
			zap.String("sha256", core.HashAttachment(a.Data)))
	}
}

func (m *Monitor) saveAttachment(a core.Attachment) (string, error) {
	name := filepath.Base(a.Filename)
	ext := filepath.Ext(name)
	base := name[:len(name)-len(ext)]

	path := filepath.Join(m.attachmentDir, name)
	for i := 1; ; i++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		path = filepath.Join(m.attachmentDir, fmt.Sprintf("%s_%d%s", base, i, ext))
	}

	if err := os.WriteFile(path, a.Data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
