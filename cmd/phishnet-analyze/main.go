package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/SibhiSS/PhishNet/internal/config"
	"github.com/SibhiSS/PhishNet/internal/core"
	"github.com/SibhiSS/PhishNet/internal/factory"
	"github.com/SibhiSS/PhishNet/internal/logging"
	"github.com/SibhiSS/PhishNet/internal/whitelist"
	"go.uber.org/zap"
)

var (
	// Scoring flags
	alpha         = flag.Float64("alpha", 0.7, "Mixing weight for the model probability")
	threshold     = flag.Float64("threshold", 0, "Fallback decision threshold when no calibrated value is persisted")
	modelPath     = flag.String("model", "", "Path to the social model artifact")
	thresholdPath = flag.String("threshold-file", "", "Path to the calibrated threshold file")

	// Spam flags
	spamModelPath    = flag.String("spam-model", "", "Path to the spam model artifact")
	whitelistDomains = flag.String("whitelist", "", "Comma-separated list of whitelisted domains")

	// Reputation flags
	checkURLs = flag.Bool("check-urls", false, "Submit body URLs to urlscan.io")

	// Input flags
	inputFile  = flag.String("file", "", "Input email file (use stdin if not specified)")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile = flag.String("config", "", "Path to config file (overrides command line flags)")
)

func main() {
	flag.Parse()

	var cfg *config.Config
	var err error

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Load configuration from file if specified
	if *configFile != "" {
		cfg, err = config.New()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
	} else {
		// Create config from command line flags
		cfg = createConfigFromFlags()
	}

	// Build the scorer and spam classifier from artifacts
	scorerFactory := factory.NewScorerFactory(cfg, logger)
	scorer, err := scorerFactory.CreateSocialScorer()
	if err != nil {
		logger.Fatal("Failed to create social scorer", zap.Error(err))
	}
	spamClassifier, err := scorerFactory.CreateSpamClassifier()
	if err != nil {
		logger.Fatal("Failed to create spam classifier", zap.Error(err))
	}

	// Parse whitelisted domains
	var whitelistedDomains []string
	if *whitelistDomains != "" {
		whitelistedDomains = strings.Split(*whitelistDomains, ",")
		for i, domain := range whitelistedDomains {
			whitelistedDomains[i] = strings.TrimSpace(domain)
		}
	} else {
		whitelistedDomains = cfg.GetStringSlice("spam.whitelisted_domains")
	}

	if len(whitelistedDomains) > 0 {
		logger.Info("Using whitelisted domains", zap.Strings("domains", whitelistedDomains))
	}

	// Create whitelist checker
	whitelistChecker := whitelist.NewChecker(whitelistedDomains, logger)

	// Read email from file or stdin
	var emailReader io.Reader
	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", *inputFile))
		}
		defer file.Close()
		emailReader = file
		logger.Info("Reading email from file", zap.String("file", *inputFile))
	} else {
		emailReader = os.Stdin
		logger.Info("Reading email from stdin")
	}

	// Parse email
	msg, err := mail.ReadMessage(bufio.NewReader(emailReader))
	if err != nil {
		logger.Fatal("Failed to parse email", zap.Error(err))
	}

	// Extract email content
	from := msg.Header.Get("From")
	subject := msg.Header.Get("Subject")

	// Read body
	bodyBytes, err := io.ReadAll(msg.Body)
	if err != nil {
		logger.Fatal("Failed to read email body", zap.Error(err))
	}
	body := string(bodyBytes)

	// Build reputation clients
	reputationFactory := factory.NewReputationFactory(cfg, logger)
	textFactory := factory.NewTextProcessorFactory(logger)
	text := textFactory.CreateTextProcessor()

	service := core.NewTriageService(
		spamClassifier,
		scorer,
		reputationFactory.CreateURLScanner(),
		reputationFactory.CreateFileReputation(),
		nil,
		whitelistChecker,
		logger,
		false,
		0,
	)

	// Print email summary
	fmt.Printf("\n=== Email Summary ===\n")
	fmt.Printf("From: %s\n", from)
	fmt.Printf("Subject: %s\n", subject)
	fmt.Printf("Body length: %d bytes\n", len(body))
	fmt.Printf("\n")

	fmt.Printf("=== Analysis ===\n")
	fmt.Printf("Alpha: %.2f\n", cfg.GetFloat64("social.alpha"))
	fmt.Printf("Decision threshold: %.4f\n", scorer.Threshold())

	startTime := time.Now()

	var urls []string
	if *checkURLs {
		urls = text.ExtractUniqueURLs(body)
	}

	report := service.Triage(context.Background(), &core.Email{
		From:    from,
		Subject: subject,
		Body:    text.ProcessText(text.StripHTML(body), cfg.GetInt("mail.max_body_size")),
	}, urls)

	duration := time.Since(startTime)

	// Print results
	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Trusted sender: %t\n", report.Trusted)
	fmt.Printf("Spam classification: %s\n", report.Spam)
	fmt.Printf("Social engineering: %s\n", report.Decision.Label)
	fmt.Printf("Combined score: %.4f\n", report.Decision.Combined)
	fmt.Printf("Rule score: %.4f\n", report.Decision.RuleScore)
	if report.Decision.ModelProbability != nil {
		fmt.Printf("Model probability: %.4f\n", *report.Decision.ModelProbability)
	} else {
		fmt.Printf("Model probability: n/a (no model artifact loaded)\n")
	}
	if len(report.Decision.Triggers) > 0 {
		fmt.Printf("Triggered indicators: %s\n", strings.Join(report.Decision.Triggers, ", "))
	}
	for _, check := range report.URLs {
		fmt.Printf("URL %s: %s\n", check.URL, check.Verdict)
	}
	fmt.Printf("Processing time: %v\n", duration)
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	v.Set("social.alpha", *alpha)
	if *threshold > 0 {
		v.Set("social.fallback_threshold", *threshold)
	}
	if *modelPath != "" {
		v.Set("social.model_paths", []string{*modelPath})
	}
	if *thresholdPath != "" {
		v.Set("social.threshold_path", *thresholdPath)
	}
	if *spamModelPath != "" {
		v.Set("spam.model_paths", []string{*spamModelPath})
	}

	// Set whitelisted domains
	if *whitelistDomains != "" {
		domains := strings.Split(*whitelistDomains, ",")
		for i, domain := range domains {
			domains[i] = strings.TrimSpace(domain)
		}
		v.Set("spam.whitelisted_domains", domains)
	} else {
		v.Set("spam.whitelisted_domains", []string{})
	}

	return config.NewFromViper(v)
}
