package core

import (
	"context"
	"time"
)

// MailSource supplies messages from a mailbox
type MailSource interface {
	// FetchLatest returns the most recent message, or (nil, nil) when the
	// mailbox has no messages.
	FetchLatest(ctx context.Context) (*Email, error)
}

// AttackClassifier produces a calibrated probability that a message text is a
// social-engineering attempt. ok is false when no artifact is loaded or
// inference failed; callers must treat that distinctly from probability 0.
type AttackClassifier interface {
	PredictProbability(text string) (prob float64, ok bool)
}

// SocialScorer produces the fused social-engineering decision for a message text
type SocialScorer interface {
	Decide(text string) Decision
}

// SpamClassifier produces a hard spam/ham label for a message
type SpamClassifier interface {
	Classify(subject, body string) SpamLabel
}

// URLScanner checks one URL against a reputation service
type URLScanner interface {
	Scan(ctx context.Context, url string) URLCheck
}

// FileReputation looks up a content hash against a reputation service
type FileReputation interface {
	Lookup(ctx context.Context, sha256 string) (*FileReport, error)
}

// TrustChecker reports whether a sender address belongs to a trusted domain
type TrustChecker interface {
	IsWhitelisted(from string) bool
}

// ReputationCache stores serialized reputation verdicts keyed by (kind, key)
type ReputationCache interface {
	// Get retrieves a cached payload; ok is false on miss or expiry
	Get(ctx context.Context, kind, key string) (payload []byte, ok bool)

	// Set stores a payload with a TTL
	Set(ctx context.Context, kind, key string, payload []byte, ttl time.Duration) error

	// Delete removes a cache entry
	Delete(ctx context.Context, kind, key string) error

	// Cleanup removes expired entries
	Cleanup(ctx context.Context) error
}
