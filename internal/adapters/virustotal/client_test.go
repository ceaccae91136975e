package virustotal

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testHash = "2c26b46b68ffc68ff99b453c1d30413413422d706483bfa0f98a5e886266e7ae"

func TestClient_Lookup(t *testing.T) {
	tests := []struct {
		name          string
		response      string
		wantFound     bool
		wantPositives int
		wantTotal     int
	}{
		{
			name:          "known malicious hash",
			response:      `{"response_code":1,"positives":43,"total":70}`,
			wantFound:     true,
			wantPositives: 43,
			wantTotal:     70,
		},
		{
			name:      "known clean hash",
			response:  `{"response_code":1,"positives":0,"total":70}`,
			wantFound: true,
			wantTotal: 70,
		},
		{
			name:     "hash never seen",
			response: `{"response_code":0,"verbose_msg":"The requested resource is not among the finished, queued or pending scans"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/file/report", r.URL.Path)
				assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
				assert.Equal(t, testHash, r.URL.Query().Get("resource"))
				fmt.Fprint(w, tt.response)
			}))
			t.Cleanup(server.Close)

			client := NewClient(server.URL, "test-key", zap.NewNop())
			report, err := client.Lookup(context.Background(), testHash)

			require.NoError(t, err)
			require.NotNil(t, report)
			assert.Equal(t, testHash, report.SHA256)
			assert.Equal(t, tt.wantFound, report.Found)
			assert.Equal(t, tt.wantPositives, report.Positives)
			assert.Equal(t, tt.wantTotal, report.Total)
		})
	}
}

func TestClient_LookupMissingAPIKey(t *testing.T) {
	client := NewClient("http://unused", "", zap.NewNop())

	report, err := client.Lookup(context.Background(), testHash)

	require.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "API key")
}

func TestClient_LookupHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "exceeded rate limit", http.StatusForbidden)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "test-key", zap.NewNop())
	report, err := client.Lookup(context.Background(), testHash)

	require.Error(t, err)
	assert.Nil(t, report)
}

func TestClient_LookupBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json")
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "test-key", zap.NewNop())
	report, err := client.Lookup(context.Background(), testHash)

	require.Error(t, err)
	assert.Nil(t, report)
}
