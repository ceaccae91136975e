package urlscan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/SibhiSS/PhishNet/internal/core"
)

// Client checks URLs against the urlscan.io API. A submission returns a scan
// UUID; the result endpoint answers 404 until the scan finishes, so the
// client polls it up to a deadline.
type Client struct {
	baseURL      string
	apiKey       string
	pollTimeout  time.Duration
	pollInterval time.Duration
	httpClient   *http.Client
	logger       *zap.Logger
}

// NewClient creates a new urlscan.io client
func NewClient(baseURL, apiKey string, pollTimeout, pollInterval time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:      baseURL,
		apiKey:       apiKey,
		pollTimeout:  pollTimeout,
		pollInterval: pollInterval,
		httpClient:   &http.Client{Timeout: 20 * time.Second},
		logger:       logger,
	}
}

type submitRequest struct {
	URL        string `json:"url"`
	Visibility string `json:"visibility"`
}

type submitResponse struct {
	UUID string `json:"uuid"`
}

type scanResult struct {
	Verdicts struct {
		Overall struct {
			Malicious  bool `json:"malicious"`
			Suspicious bool `json:"suspicious"`
		} `json:"overall"`
	} `json:"verdicts"`
}

// Scan submits a URL and polls for its verdict. Failures never abort triage:
// they come back as an Error verdict with the cause in Detail.
func (c *Client) Scan(ctx context.Context, url string) core.URLCheck {
	check := core.URLCheck{URL: url}

	if c.apiKey == "" {
		check.Verdict = core.VerdictError
		check.Detail = "urlscan API key not configured"
		return check
	}

	uuid, err := c.submit(ctx, url)
	if err != nil {
		c.logger.Warn("Failed to submit URL scan", zap.Error(err), zap.String("url", url))
		check.Verdict = core.VerdictError
		check.Detail = err.Error()
		return check
	}

	result, err := c.poll(ctx, uuid)
	if err != nil {
		c.logger.Warn("Failed to fetch URL scan result", zap.Error(err),
			zap.String("url", url), zap.String("uuid", uuid))
		check.Verdict = core.VerdictError
		check.Detail = err.Error()
		return check
	}

	switch {
	case result.Verdicts.Overall.Malicious:
		check.Verdict = core.VerdictMalicious
	case result.Verdicts.Overall.Suspicious:
		check.Verdict = core.VerdictSuspicious
	default:
		check.Verdict = core.VerdictSafe
	}
	return check
}

func (c *Client) submit(ctx context.Context, url string) (string, error) {
	body, err := json.Marshal(submitRequest{URL: url, Visibility: "public"})
	if err != nil {
		return "", fmt.Errorf("failed to encode scan request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/scan/", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create scan request: %w", err)
	}
	req.Header.Set("API-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to submit scan: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("scan submit failed with HTTP %d: %s", resp.StatusCode, data)
	}

	var submitted submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&submitted); err != nil {
		return "", fmt.Errorf("failed to decode submit response: %w", err)
	}
	if submitted.UUID == "" {
		return "", fmt.Errorf("scan submit response has no uuid")
	}
	return submitted.UUID, nil
}

func (c *Client) poll(ctx context.Context, uuid string) (*scanResult, error) {
	deadline := time.Now().Add(c.pollTimeout)
	for time.Now().Before(deadline) {
		result, retry, err := c.fetchResult(ctx, uuid)
		if err != nil {
			return nil, err
		}
		if !retry {
			return result, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
	return nil, fmt.Errorf("timed out waiting for scan result")
}

func (c *Client) fetchResult(ctx context.Context, uuid string) (*scanResult, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/result/"+uuid+"/", nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create result request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch result: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var result scanResult
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, false, fmt.Errorf("failed to decode result: %w", err)
		}
		return &result, false, nil
	case http.StatusNotFound:
		// Scan not finished yet
		return nil, true, nil
	default:
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, false, fmt.Errorf("result fetch failed with HTTP %d: %s", resp.StatusCode, data)
	}
}
