package mail

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	gomail "github.com/emersion/go-message/mail"
	"go.uber.org/zap"

	"github.com/SibhiSS/PhishNet/internal/core"
)

// IMAPSource fetches messages over IMAP. Each FetchLatest call opens a fresh
// connection so a flaky server never wedges the poll loop.
type IMAPSource struct {
	address  string
	username string
	password string
	mailbox  string
	logger   *zap.Logger
}

// NewIMAPSource creates a new IMAP mail source
func NewIMAPSource(address, username, password, mailbox string, logger *zap.Logger) *IMAPSource {
	return &IMAPSource{
		address:  address,
		username: username,
		password: password,
		mailbox:  mailbox,
		logger:   logger,
	}
}

// FetchLatest returns the most recent message in the mailbox, or (nil, nil)
// when the mailbox is empty.
func (s *IMAPSource) FetchLatest(ctx context.Context) (*core.Email, error) {
	c, err := client.DialTLS(s.address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to IMAP server: %w", err)
	}
	defer c.Logout()

	if err := c.Login(s.username, s.password); err != nil {
		return nil, fmt.Errorf("failed to log in to IMAP server: %w", err)
	}

	mbox, err := c.Select(s.mailbox, true)
	if err != nil {
		return nil, fmt.Errorf("failed to select mailbox %s: %w", s.mailbox, err)
	}
	if mbox.Messages == 0 {
		return nil, nil
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(mbox.Messages)

	section := &imap.BodySectionName{}
	items := []imap.FetchItem{section.FetchItem(), imap.FetchEnvelope}

	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqSet, items, messages)
	}()

	var email *core.Email
	for msg := range messages {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		parsed, err := s.parseMessage(msg, section)
		if err != nil {
			s.logger.Warn("Failed to parse message", zap.Error(err))
			continue
		}
		email = parsed
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	return email, nil
}

func (s *IMAPSource) parseMessage(msg *imap.Message, section *imap.BodySectionName) (*core.Email, error) {
	r := msg.GetBody(section)
	if r == nil {
		return nil, fmt.Errorf("message has no body section")
	}

	mr, err := gomail.CreateReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail reader: %w", err)
	}

	email := &core.Email{
		Subject: mr.Header.Get("Subject"),
	}
	if msg.Envelope != nil && len(msg.Envelope.From) > 0 {
		addr := msg.Envelope.From[0]
		email.From = fmt.Sprintf("%s@%s", addr.MailboxName, addr.HostName)
	}

	var body strings.Builder
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.logger.Warn("Failed to read message part", zap.Error(err))
			break
		}

		switch h := part.Header.(type) {
		case *gomail.InlineHeader:
			contentType, _, _ := h.ContentType()
			if strings.HasPrefix(contentType, "text/plain") {
				if _, err := io.Copy(&body, part.Body); err != nil {
					s.logger.Warn("Failed to read text part", zap.Error(err))
				}
			} else if strings.HasPrefix(contentType, "text/html") && body.Len() == 0 {
				data, err := io.ReadAll(part.Body)
				if err != nil {
					s.logger.Warn("Failed to read html part", zap.Error(err))
					continue
				}
				body.WriteString(string(data))
			}
		case *gomail.AttachmentHeader:
			filename, err := h.Filename()
			if err != nil || filename == "" {
				filename = "attachment.bin"
			}
			data, err := io.ReadAll(part.Body)
			if err != nil {
				s.logger.Warn("Failed to read attachment", zap.Error(err),
					zap.String("filename", filename))
				continue
			}
			email.Attachments = append(email.Attachments, core.Attachment{
				Filename: filename,
				Data:     data,
			})
		}
	}
	email.Body = body.String()

	return email, nil
}
