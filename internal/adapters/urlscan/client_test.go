package urlscan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SibhiSS/PhishNet/internal/core"
)

type verdictPayload struct {
	malicious  bool
	suspicious bool
}

// newScanServer serves the submit and result endpoints, answering 404 on the
// result endpoint for the first notFoundCount fetches.
func newScanServer(t *testing.T, verdict verdictPayload, notFoundCount int32) (*httptest.Server, *int32) {
	t.Helper()
	var resultCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/scan/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("API-Key"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "public", req["visibility"])
		assert.NotEmpty(t, req["url"])

		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"uuid":"scan-uuid-1"}`)
	})
	mux.HandleFunc("/result/scan-uuid-1/", func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&resultCalls, 1) <= notFoundCount {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{"verdicts":{"overall":{"malicious":%t,"suspicious":%t}}}`,
			verdict.malicious, verdict.suspicious)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &resultCalls
}

func newTestClient(baseURL string) *Client {
	return NewClient(baseURL, "test-key", 2*time.Second, 5*time.Millisecond, zap.NewNop())
}

func TestClient_Scan(t *testing.T) {
	tests := []struct {
		name    string
		verdict verdictPayload
		want    core.Verdict
	}{
		{
			name:    "malicious verdict",
			verdict: verdictPayload{malicious: true},
			want:    core.VerdictMalicious,
		},
		{
			name:    "suspicious verdict",
			verdict: verdictPayload{suspicious: true},
			want:    core.VerdictSuspicious,
		},
		{
			name:    "clean verdict",
			verdict: verdictPayload{},
			want:    core.VerdictSafe,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newScanServer(t, tt.verdict, 0)
			client := newTestClient(server.URL)

			check := client.Scan(context.Background(), "https://example.com/login")

			assert.Equal(t, "https://example.com/login", check.URL)
			assert.Equal(t, tt.want, check.Verdict)
			assert.Empty(t, check.Detail)
		})
	}
}

func TestClient_ScanPollsUntilReady(t *testing.T) {
	server, resultCalls := newScanServer(t, verdictPayload{malicious: true}, 2)
	client := newTestClient(server.URL)

	check := client.Scan(context.Background(), "https://example.com")

	assert.Equal(t, core.VerdictMalicious, check.Verdict)
	assert.Equal(t, int32(3), atomic.LoadInt32(resultCalls))
}

func TestClient_ScanPollTimeout(t *testing.T) {
	server, _ := newScanServer(t, verdictPayload{}, 1000)
	client := NewClient(server.URL, "test-key", 30*time.Millisecond, 5*time.Millisecond, zap.NewNop())

	check := client.Scan(context.Background(), "https://example.com")

	assert.Equal(t, core.VerdictError, check.Verdict)
	assert.Contains(t, check.Detail, "timed out")
}

func TestClient_ScanMissingAPIKey(t *testing.T) {
	client := NewClient("http://unused", "", time.Second, time.Millisecond, zap.NewNop())

	check := client.Scan(context.Background(), "https://example.com")

	assert.Equal(t, core.VerdictError, check.Verdict)
	assert.Contains(t, check.Detail, "API key")
}

func TestClient_ScanSubmitFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)
	client := newTestClient(server.URL)

	check := client.Scan(context.Background(), "https://example.com")

	assert.Equal(t, core.VerdictError, check.Verdict)
	assert.Contains(t, check.Detail, "429")
}

func TestClient_ScanContextCancelled(t *testing.T) {
	server, _ := newScanServer(t, verdictPayload{}, 1000)
	client := NewClient(server.URL, "test-key", time.Minute, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	check := client.Scan(ctx, "https://example.com")

	assert.Equal(t, core.VerdictError, check.Verdict)
}
