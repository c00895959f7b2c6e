package dashboard

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/curatorhq/social-admin-gateway/internal/storage"
	"github.com/curatorhq/social-admin-gateway/internal/storage/sqlite"
	"github.com/curatorhq/social-admin-gateway/internal/upstream"
)

// fakeFetcher returns canned payloads, standing in for the backend.
type fakeFetcher struct {
	accounts any
	account  any
	content  any
	jobs     any
	options  any
	err      error

	lastParams upstream.ListParams
}

func (f *fakeFetcher) FetchAccounts(_ context.Context, params upstream.ListParams) (any, error) {
	f.lastParams = params
	return f.accounts, f.err
}

func (f *fakeFetcher) FetchAccount(_ context.Context, _ string) (any, error) {
	return f.account, f.err
}

func (f *fakeFetcher) FetchContent(_ context.Context, params upstream.ListParams) (any, error) {
	f.lastParams = params
	return f.content, f.err
}

func (f *fakeFetcher) FetchJobs(_ context.Context, params upstream.ListParams) (any, error) {
	f.lastParams = params
	return f.jobs, f.err
}

func (f *fakeFetcher) FetchOptions(_ context.Context, _ string) (any, error) {
	return f.options, f.err
}

func newTestRouter(t *testing.T, fetcher Fetcher, store storage.ScheduleStore) *chi.Mux {
	t.Helper()
	h := NewHandler(fetcher, store, slog.New(slog.DiscardHandler), 20, 100)
	r := chi.NewRouter()
	r.Route("/api", h.Routes)
	return r
}

func newTestStore(t *testing.T) storage.ScheduleStore {
	t.Helper()
	s, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("sqlite.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, out
}

func TestUpstreamErrorMapsToBadGateway(t *testing.T) {
	fetcher := &fakeFetcher{err: &upstream.APIError{StatusCode: http.StatusInternalServerError, Message: "backend down"}}
	r := newTestRouter(t, fetcher, nil)

	rec, body := doJSON(t, r, http.MethodGet, "/api/accounts", "")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if body["error"] != "backend down" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestUpstreamNotFoundPassesThrough(t *testing.T) {
	fetcher := &fakeFetcher{err: &upstream.APIError{StatusCode: http.StatusNotFound, Message: "no such account"}}
	r := newTestRouter(t, fetcher, nil)

	rec, _ := doJSON(t, r, http.MethodGet, "/api/accounts/acc-404", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestListOptions(t *testing.T) {
	fetcher := &fakeFetcher{options: []any{
		map[string]any{"value": "pg-1", "label": "Residential EU"},
		map[string]any{"broken": true},
		map[string]any{"id": "pg-2", "name": "Datacenter US"},
	}}
	r := newTestRouter(t, fetcher, nil)

	rec, body := doJSON(t, r, http.MethodGet, "/api/options/proxy-groups", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	data := body["data"].([]any)
	if len(data) != 2 {
		t.Fatalf("options = %d, want 2 (malformed dropped)", len(data))
	}
	first := data[0].(map[string]any)
	if first["id"] != "pg-1" || first["label"] != "Residential EU" {
		t.Errorf("first option = %v", first)
	}
}

func TestListContentFiltersMalformed(t *testing.T) {
	fetcher := &fakeFetcher{content: map[string]any{
		"data": []any{
			map[string]any{"id": "m-1", "caption": "keep"},
			map[string]any{"caption": "no identity"},
		},
		"meta": map[string]any{"total": 2.0},
	}}
	r := newTestRouter(t, fetcher, nil)

	rec, body := doJSON(t, r, http.MethodGet, "/api/content?page=1&limit=10", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	data := body["data"].([]any)
	if len(data) != 1 {
		t.Fatalf("items = %d, want 1", len(data))
	}
	meta := body["meta"].(map[string]any)
	if meta["total"] != 2.0 {
		t.Errorf("meta total = %v, want upstream value 2", meta["total"])
	}
}

func TestListParamsClampedAndForwarded(t *testing.T) {
	fetcher := &fakeFetcher{jobs: []any{}}
	r := newTestRouter(t, fetcher, nil)

	rec, _ := doJSON(t, r, http.MethodGet, "/api/jobs?page=0&limit=9999&status=failed", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if fetcher.lastParams.Page != 1 {
		t.Errorf("page = %d, want clamped to 1", fetcher.lastParams.Page)
	}
	if fetcher.lastParams.Limit != 100 {
		t.Errorf("limit = %d, want clamped to 100", fetcher.lastParams.Limit)
	}
	if fetcher.lastParams.Filters["status"] != "failed" {
		t.Errorf("filters = %v", fetcher.lastParams.Filters)
	}
}
