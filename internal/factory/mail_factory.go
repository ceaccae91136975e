package factory

import (
	"fmt"

	"github.com/SibhiSS/PhishNet/internal/adapters/mail"
	"github.com/SibhiSS/PhishNet/internal/config"
	"github.com/SibhiSS/PhishNet/internal/core"
	"go.uber.org/zap"
)

// MailFactory creates mail sources
type MailFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewMailFactory creates a new mail factory
func NewMailFactory(cfg *config.Config, logger *zap.Logger) *MailFactory {
	return &MailFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateMailSource creates the IMAP mail source
func (f *MailFactory) CreateMailSource() (core.MailSource, error) {
	imap := f.cfg.GetIMAP()
	if imap.Username == "" || imap.Password == "" {
		return nil, fmt.Errorf("IMAP credentials are not configured")
	}
	return mail.NewIMAPSource(imap.Address, imap.Username, imap.Password, imap.Mailbox, f.logger), nil
}
