package core

import (
	"time"
)

// Attachment is a binary part of a fetched email
type Attachment struct {
	Filename string
	Data     []byte
}

// Email represents an email message
type Email struct {
	From        string
	Subject     string
	Body        string
	Attachments []Attachment
}

// SpamLabel is the hard spam/ham verdict for a message
type SpamLabel string

const (
	SpamLabelSpam    SpamLabel = "SPAM"
	SpamLabelHam     SpamLabel = "HAM"
	SpamLabelUnknown SpamLabel = "UNKNOWN"
)

// AttackLabel is the binary social-engineering verdict for a message
type AttackLabel string

const (
	LabelAttack   AttackLabel = "Attack"
	LabelNoAttack AttackLabel = "No Attack"
)

// Decision is the full explainable output of the social-engineering scorer
// for a single message. ModelProbability is nil when no classifier artifact
// is loaded or inference failed for this call.
type Decision struct {
	Label            AttackLabel
	Combined         float64
	RuleScore        float64
	ModelProbability *float64
	Threshold        float64
	Triggers         []string
}

// Verdict is a URL reputation verdict
type Verdict string

const (
	VerdictSafe       Verdict = "Safe"
	VerdictSuspicious Verdict = "Suspicious"
	VerdictMalicious  Verdict = "Malicious"
	VerdictUnknown    Verdict = "Unknown"
	VerdictError      Verdict = "Error"
)

// URLCheck is the reputation result for one extracted URL
type URLCheck struct {
	URL     string
	Verdict Verdict
	Detail  string
}

// FileReport is the file-reputation lookup result for one content hash.
// Found is false when the service has no record for the hash.
type FileReport struct {
	SHA256    string
	Found     bool
	Positives int
	Total     int
}

// AttachmentInfo summarizes one attachment for the triage report
type AttachmentInfo struct {
	Filename string
	Size     int
	SHA256   string
}

// TriageReport is the result of triaging a single email
type TriageReport struct {
	ProcessingID string
	Trusted      bool
	Spam         SpamLabel
	Decision     Decision
	URLs         []URLCheck
	Attachments  []AttachmentInfo
	AnalyzedAt   time.Time
}
