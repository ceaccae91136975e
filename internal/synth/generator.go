package synth

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"strings"
)

// Options controls dataset generation
type Options struct {
	Total       int
	AttackRatio float64
	Seed        int64
}

// DefaultOptions matches the reference dataset: 1000 rows, 61% attacks.
func DefaultOptions() Options {
	return Options{
		Total:       1000,
		AttackRatio: 0.61,
		Seed:        42,
	}
}

var firstNames = []string{
	"Alex", "Jordan", "Taylor", "Morgan", "Casey", "Riley", "Sam", "Chris", "Jamie", "Robin",
	"Pat", "Lee", "Drew", "Devon", "Avery", "Cameron", "Skyler", "Shawn", "Dana", "Nikhil",
	"Priya", "Arjun", "Meera", "Isha", "Rahul", "Sanjay", "Anita", "Vikram", "Leena", "Ravi",
}

var lastNames = []string{
	"Patel", "Kumar", "Singh", "Sharma", "Iyer", "Gupta", "Raghavan", "Nair", "Kapoor", "Mehta",
	"Smith", "Johnson", "Brown", "Davis", "Miller", "Wilson", "Taylor", "Anderson", "Thomas", "Jackson",
	"Ghosh", "Verma", "Chatterjee", "Saxena", "Fernando", "Khan", "Bose", "Das", "Mitra", "Roy",
}

var companies = []string{
	"Acme Corp", "Notion", "Globex", "Innotech", "Stellar Inc", "Finity", "BrightCo",
	"Nimbus Labs", "Quantum Solutions", "Astra Systems",
}

var projects = []string{
	"budget report", "financial forecast", "Q3 deliverables", "deployment script",
	"customer list", "research notes", "confidential roadmap", "product spec",
	"sales pipeline", "security audit",
}

var attackTemplates = []string{
	"Hey, it's {name} from {company}. I need your help urgently with the {project} - can you share your login so I can finish this now?",
	"I'm really worried about your account - we saw suspicious activity. Please verify your credentials immediately here: {link}",
	"Huge congratulations! You've been selected for an exclusive reward. Click {link} and provide your details to claim it.",
	"I can't believe what happened to your colleague! You must be devastated. Can we chat? I need some information about your access.",
	"The boss is furious about the {project}. Can you send me the latest files so I can fix this before the meeting?",
	"Please, I'm stuck and really need your password to resolve an urgent issue with {company}. I promise it's quick.",
	"Your account has been compromised. Reset your password now at {link} or you'll lose access.",
	"Can you do me a favour? This is super important to me - send over the client list and I'll handle the rest.",
	"I heard there may be layoffs. Are you okay? If so, share your personal email so I can tell you privately.",
	"You've been pre-approved for an exclusive offer. I need your details to process it at {link}.",
	"Hey, I'm new here and everyone is so cold. Could you share your access so I can finish this task?",
	"I found something alarming about your account - please confirm your banking details at {link}.",
	"Your recent project was outstanding! Could you send me the full report (including attachments)?",
	"I saw a weird transaction on your account. Confirm your payment details here: {link}",
	"I hate to bother you, but I'm really stressed and need you to give me access to the server now.",
	"We need to verify your identity before payroll - confirm details at {link}",
	"There was a policy change affecting your account. Please confirm your SSN and DOB at {link}",
	"I've been assigned to audit the {project}; share the files and I'll mark them confidential.",
	"Your mailbox exceeded quota. Follow {link} to avoid losing emails.",
	"Immediate action required: confirm your credentials at {link} to prevent account suspension.",
}

var noAttackTemplates = []string{
	"Hey {name}, just checking in - are you free for a quick sync on the {project} tomorrow?",
	"Thanks for the great work on the {project}. Let's celebrate at lunch on Friday.",
	"Reminder: the team meeting is at 10 AM. Agenda: {project} status and next steps.",
	"Please find attached the notes from today's call. Let me know if I missed anything.",
	"FYI: we've updated the internal wiki with the new onboarding steps.",
	"Great job on the presentation - the client loved it. Can you send the slides?",
	"Can you review this draft when you have a moment? No rush, just want your feedback.",
	"Happy Birthday {name}! Hope you have a great day.",
	"I'm impressed with your recent work - would you like to present it to the team?",
	"Would you be able to share the meeting minutes from last week?",
	"Let's schedule 1:1 next week to discuss career goals and development.",
	"Can you help me test the staging build later today? I need another pair of eyes.",
	"Thanks for your help earlier - the fix worked perfectly.",
	"Please update the spreadsheet with your holiday dates when you get a chance.",
	"Could you share the link to the document you mentioned? I couldn't find it.",
	"Quick FYI: the server maintenance is tomorrow night, expect brief downtime.",
	"Appreciate your input on the doc - minor edits only.",
	"Can we postpone the meeting to Thursday? I have a conflict.",
	"Thanks again for covering my shift - I owe you one.",
	"I'd love your feedback on the new template when you have time.",
}

var linkDomains = []string{
	"example.com", "notion.so", "acme-corp.com", "trust-pay.io", "secure-login.net", "safe-verify.org",
}

var linkPaths = []string{
	"verify", "claim", "login", "reset", "offer", "update", "confirm", "docs", "secure", "auth",
}

var fillers = []string{
	"Let me know if that works.",
	"Please advise.",
	"Thanks in advance.",
	"Can you confirm?",
	"Appreciate your help.",
	"Ping me if you have questions.",
}

// Generator produces a seeded synthetic social-engineering dataset
type Generator struct {
	opts Options
	rng  *rand.Rand
}

func NewGenerator(opts Options) *Generator {
	return &Generator{
		opts: opts,
		rng:  rand.New(rand.NewSource(opts.Seed)),
	}
}

// Row is one generated example
type Row struct {
	Message string
	Label   string
}

// Generate builds the full dataset: attack and benign rows from seeded
// templates with light punctuation and signature noise, shuffled and
// perturbed to limit exact duplicates.
func (g *Generator) Generate() []Row {
	numAttack := int(float64(g.opts.Total) * g.opts.AttackRatio)
	numBenign := g.opts.Total - numAttack

	rows := make([]Row, 0, g.opts.Total)
	for i := 0; i < numAttack; i++ {
		rows = append(rows, Row{Message: g.attackMessage(), Label: "Attack"})
	}
	for i := 0; i < numBenign; i++ {
		rows = append(rows, Row{Message: g.benignMessage(), Label: "No Attack"})
	}

	g.rng.Shuffle(len(rows), func(i, j int) {
		rows[i], rows[j] = rows[j], rows[i]
	})

	for i := range rows {
		if g.rng.Float64() < 0.07 {
			rows[i].Message += " " + g.pick(fillers)
		}
	}
	return rows[:g.opts.Total]
}

// WriteCSV writes the generated rows with a Message,Label header
func (g *Generator) WriteCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Message", "Label"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write([]string{row.Message, row.Label}); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func (g *Generator) attackMessage() string {
	name := g.pick(firstNames) + " " + g.pick(lastNames)
	msg := g.fill(g.pick(attackTemplates), name)
	if g.rng.Float64() < 0.15 {
		msg = g.pick([]string{"Urgent: ", "Important: ", "Please read: "}) + msg
	}
	if g.rng.Float64() < 0.12 {
		msg += "\n\nThanks, " + g.pick([]string{strings.Fields(name)[0], "Team", "Admin"})
	}
	if g.rng.Float64() < 0.08 {
		msg = strings.ReplaceAll(msg, ".", "...")
	}
	return msg
}

func (g *Generator) benignMessage() string {
	msg := g.fill(g.pick(noAttackTemplates), g.pick(firstNames))
	if g.rng.Float64() < 0.12 {
		msg += "\n\nBest,\n" + g.pick(firstNames)
	}
	if g.rng.Float64() < 0.06 {
		msg += " " + g.pick([]string{"Thanks!", "Appreciate it.", "Please advise."})
	}
	return msg
}

func (g *Generator) fill(template, name string) string {
	r := strings.NewReplacer(
		"{name}", name,
		"{company}", g.pick(companies),
		"{project}", g.pick(projects),
		"{link}", g.link(),
	)
	return r.Replace(template)
}

func (g *Generator) link() string {
	return fmt.Sprintf("https://%s/%s?id=%d",
		g.pick(linkDomains), g.pick(linkPaths), 10000+g.rng.Intn(90000))
}

func (g *Generator) pick(options []string) string {
	return options[g.rng.Intn(len(options))]
}
