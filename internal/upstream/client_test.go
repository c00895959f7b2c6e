package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/curatorhq/social-admin-gateway/internal/normalize"
	"github.com/curatorhq/social-admin-gateway/internal/testutil"
)

func TestFetchAccountsReplayed(t *testing.T) {
	r, cleanup := testutil.NewVCRRecorder(t, "accounts")
	defer cleanup()

	c := NewClient("test-key",
		WithBaseURL("https://backend.example.com/api"),
		WithHTTPClient(testutil.VCRHTTPClient(r)),
	)

	payload, err := c.FetchAccounts(context.Background(), ListParams{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("FetchAccounts() error = %v", err)
	}

	records := normalize.List(payload)
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	meta := normalize.Meta(payload, 1, 2, len(records))
	if meta.Total != 7 || meta.TotalPages != 4 {
		t.Errorf("meta = %+v, want total 7 / totalPages 4", meta)
	}
}

func TestClientSendsAuthAndParams(t *testing.T) {
	var gotPath, gotAuth, gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[]}`))
	}))
	defer ts.Close()

	c := NewClient("sk-backend", WithBaseURL(ts.URL))
	_, err := c.FetchJobs(context.Background(), ListParams{
		Page:    3,
		Limit:   25,
		Filters: map[string]string{"status": "failed", "empty": ""},
	})
	if err != nil {
		t.Fatalf("FetchJobs() error = %v", err)
	}

	if gotPath != "/jobs" {
		t.Errorf("path = %q, want /jobs", gotPath)
	}
	if gotAuth != "Bearer sk-backend" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotQuery != "limit=25&page=3&status=failed" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestClientErrorEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "string error field",
			status:  http.StatusBadGateway,
			body:    `{"error": "backend unavailable"}`,
			wantMsg: "backend unavailable",
		},
		{
			name:    "nested error object",
			status:  http.StatusNotFound,
			body:    `{"error": {"message": "account not found"}}`,
			wantMsg: "account not found",
		},
		{
			name:    "flat message field",
			status:  http.StatusInternalServerError,
			body:    `{"message": "boom"}`,
			wantMsg: "boom",
		},
		{
			name:    "non-json body kept verbatim",
			status:  http.StatusServiceUnavailable,
			body:    `upstream down`,
			wantMsg: "upstream down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			c := NewClient("", WithBaseURL(ts.URL))
			_, err := c.FetchAccount(context.Background(), "acc-1")
			if err == nil {
				t.Fatal("FetchAccount() error = nil, want APIError")
			}

			apiErr, ok := err.(*APIError)
			if !ok {
				t.Fatalf("error type = %T, want *APIError", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
		})
	}
}
