package rules

import "regexp"

var (
	linkPattern          = regexp.MustCompile(`https?://[^\s)>\]]+`)
	impersonationPattern = regexp.MustCompile(`\bit'?s +\w+( +\w+)? +from\b`)
)

// DefaultCatalog returns the built-in indicator catalog. Weights are fixed;
// the ordering here is definition order, not importance.
func DefaultCatalog() []Indicator {
	return []Indicator{
		{
			ID:          "layoff",
			Description: "Layoff or job-insecurity phrasing",
			Weight:      2.5,
			Phrases: []string{
				"layoff", "laid off", "lose your job", "job cut",
				"termination", "restructuring",
			},
		},
		{
			ID:          "credential_request",
			Description: "Request for credentials or personal information",
			Weight:      2.0,
			Phrases: []string{
				"password", "credential", "share your login",
				"verify your", "confirm your", "banking detail",
				"payment detail", "personal email", "ssn",
				"social security",
			},
		},
		{
			ID:          "urgency",
			Description: "Urgency pressure",
			Weight:      1.2,
			Phrases: []string{
				"urgent", "immediately", "right away", "asap",
				"act now", "immediate action", "before the meeting",
				"lose access", "suspension", "time-sensitive",
			},
		},
		{
			ID:          "emotional_appeal",
			Description: "Emotional appeal or sympathy play",
			Weight:      1.3,
			Phrases: []string{
				"worried about", "really worried", "devastated",
				"really stressed", "i hate to bother you",
				"do me a favour", "do me a favor", "i'm stuck",
				"i need your help", "everyone is so cold",
			},
		},
		{
			ID:          "reward_lure",
			Description: "Reward or prize lure",
			Weight:      1.6,
			Phrases: []string{
				"congratulations", "been selected", "exclusive reward",
				"exclusive offer", "pre-approved", "claim", "prize",
			},
		},
		{
			ID:          "impersonation",
			Description: "Sender impersonation claim",
			Weight:      1.0,
			Phrases: []string{
				"i'm from", "on behalf of", "i'm new here",
				"i've been assigned", "it support", "helpdesk",
			},
			Patterns: []*regexp.Regexp{impersonationPattern},
		},
		{
			ID:          "link",
			Description: "Contains a hyperlink",
			Weight:      0.8,
			Patterns:    []*regexp.Regexp{linkPattern},
		},
	}
}
