package monitor

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SibhiSS/PhishNet/internal/core"
	"github.com/SibhiSS/PhishNet/internal/utils"
)

type stubSource struct {
	email *core.Email
}

func (s *stubSource) FetchLatest(ctx context.Context) (*core.Email, error) {
	return s.email, nil
}

type capturingScorer struct {
	texts []string
}

func (s *capturingScorer) Decide(text string) core.Decision {
	s.texts = append(s.texts, text)
	return core.Decision{Label: core.LabelNoAttack}
}

type stubSpam struct{}

func (stubSpam) Classify(subject, body string) core.SpamLabel { return core.SpamLabelHam }

type stubScanner struct{}

func (stubScanner) Scan(ctx context.Context, url string) core.URLCheck {
	return core.URLCheck{URL: url, Verdict: core.VerdictSafe}
}

type stubFiles struct{}

func (stubFiles) Lookup(ctx context.Context, sha256 string) (*core.FileReport, error) {
	return &core.FileReport{SHA256: sha256}, nil
}

func newTestMonitor(source core.MailSource, scorer core.SocialScorer, maxBodySize int) *Monitor {
	logger := zap.NewNop()
	service := core.NewTriageService(
		stubSpam{}, scorer, stubScanner{}, stubFiles{}, nil, nil, logger, false, 0,
	)
	return NewMonitor(source, service, utils.NewTextProcessor(logger),
		logger, time.Second, "", maxBodySize)
}

func TestMonitor_PollBoundsBody(t *testing.T) {
	body := "<p>" + strings.Repeat("urgent verify your password now ", 50) + "</p>"
	source := &stubSource{email: &core.Email{
		From:    "attacker@example.com",
		Subject: "act now",
		Body:    body,
	}}
	scorer := &capturingScorer{}
	m := newTestMonitor(source, scorer, 64)

	m.poll()

	require.Len(t, scorer.texts, 1)
	scored := scorer.texts[0]
	assert.NotContains(t, scored, "<p>")
	assert.Contains(t, scored, "Content truncated")
	assert.Less(t, len(scored), len(body))
}

func TestMonitor_PollSanitizesBody(t *testing.T) {
	source := &stubSource{email: &core.Email{
		From:    "sender@example.com",
		Subject: "hello",
		Body:    "valid text \xff\xfe more text",
	}}
	scorer := &capturingScorer{}
	m := newTestMonitor(source, scorer, 0)

	m.poll()

	require.Len(t, scorer.texts, 1)
	assert.NotContains(t, scorer.texts[0], "\xff")
}

func TestMonitor_PollSkipsSeenMessage(t *testing.T) {
	source := &stubSource{email: &core.Email{
		From:    "sender@example.com",
		Subject: "weekly report",
		Body:    "attached as usual",
	}}
	scorer := &capturingScorer{}
	m := newTestMonitor(source, scorer, 0)

	m.poll()
	m.poll()

	assert.Len(t, scorer.texts, 1)
}

func TestMonitor_PollEmptyMailbox(t *testing.T) {
	scorer := &capturingScorer{}
	m := newTestMonitor(&stubSource{}, scorer, 0)

	m.poll()

	assert.Empty(t, scorer.texts)
}
