package virustotal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/SibhiSS/PhishNet/internal/core"
)

// Client looks up file hashes against the VirusTotal v2 report API. The free
// API tier is lookup-only, so unknown hashes come back as a no-record report
// rather than being uploaded for analysis.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new VirusTotal client
func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		logger:     logger,
	}
}

type reportResponse struct {
	ResponseCode int `json:"response_code"`
	Positives    int `json:"positives"`
	Total        int `json:"total"`
}

// Lookup fetches the scan report for a SHA-256 hash. A hash VirusTotal has
// never seen returns a report with Found false, not an error.
func (c *Client) Lookup(ctx context.Context, sha256 string) (*core.FileReport, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("virustotal API key not configured")
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("resource", sha256)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/file/report?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create report request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("report fetch failed with HTTP %d: %s", resp.StatusCode, data)
	}

	var report reportResponse
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}

	result := &core.FileReport{SHA256: sha256}
	if report.ResponseCode == 1 {
		result.Found = true
		result.Positives = report.Positives
		result.Total = report.Total
	} else {
		c.logger.Debug("No VirusTotal record for hash", zap.String("sha256", sha256))
	}
	return result, nil
}
