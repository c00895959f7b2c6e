// Package dashboard serves the admin dashboard's REST API: normalized views
// over the upstream backend plus CRUD for republish schedules.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/go-chi/chi/v5"

	"github.com/curatorhq/social-admin-gateway/internal/normalize"
	"github.com/curatorhq/social-admin-gateway/internal/server"
	"github.com/curatorhq/social-admin-gateway/internal/storage"
	"github.com/curatorhq/social-admin-gateway/internal/upstream"
)

// Fetcher is the slice of the upstream client the handlers use.
type Fetcher interface {
	FetchAccounts(ctx context.Context, params upstream.ListParams) (any, error)
	FetchAccount(ctx context.Context, id string) (any, error)
	FetchContent(ctx context.Context, params upstream.ListParams) (any, error)
	FetchJobs(ctx context.Context, params upstream.ListParams) (any, error)
	FetchOptions(ctx context.Context, kind string) (any, error)
}

// Handler holds the dashboard API handlers.
type Handler struct {
	fetcher Fetcher
	store   storage.ScheduleStore
	logger  *slog.Logger

	// Page-size limits are atomics so a config reload can adjust them
	// while requests are in flight.
	defaultPageSize atomic.Int32
	maxPageSize     atomic.Int32
}

// NewHandler creates the dashboard handler set. store may be nil, which
// disables the schedule endpoints.
func NewHandler(fetcher Fetcher, store storage.ScheduleStore, logger *slog.Logger, defaultPageSize, maxPageSize int) *Handler {
	h := &Handler{
		fetcher: fetcher,
		store:   store,
		logger:  logger,
	}
	h.SetPageSizes(defaultPageSize, maxPageSize)
	return h
}

// SetPageSizes updates the page-size limits, e.g. after a config reload.
func (h *Handler) SetPageSizes(defaultPageSize, maxPageSize int) {
	if defaultPageSize < 1 {
		defaultPageSize = 20
	}
	if maxPageSize < defaultPageSize {
		maxPageSize = defaultPageSize
	}
	h.defaultPageSize.Store(int32(defaultPageSize))
	h.maxPageSize.Store(int32(maxPageSize))
}

func (h *Handler) pageSizes() (defaultSize, maxSize int) {
	return int(h.defaultPageSize.Load()), int(h.maxPageSize.Load())
}

// Routes mounts the dashboard API.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/accounts", h.handleListAccounts)
	r.Get("/accounts/{id}", h.handleGetAccount)
	r.Get("/content", h.handleListContent)
	r.Get("/jobs", h.handleListJobs)
	r.Get("/options/{kind}", h.handleListOptions)

	if h.store != nil {
		r.Post("/schedules", h.handleCreateSchedule)
		r.Get("/schedules", h.handleListSchedules)
		r.Patch("/schedules/{id}", h.handleUpdateSchedule)
		r.Delete("/schedules/{id}", h.handleDeleteSchedule)
	}
}

type listResponse struct {
	Data any                `json:"data"`
	Meta normalize.PageMeta `json:"meta"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// listParams reads page/limit plus any recognized filter params from the
// query string.
func (h *Handler) listParams(r *http.Request, filterKeys ...string) upstream.ListParams {
	q := r.URL.Query()
	defaultSize, maxSize := h.pageSizes()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = defaultSize
	}
	if limit > maxSize {
		limit = maxSize
	}

	filters := make(map[string]string)
	for _, key := range filterKeys {
		if v := q.Get(key); v != "" {
			filters[key] = v
		}
	}
	return upstream.ListParams{Page: page, Limit: limit, Filters: filters}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps internal failures onto the API error contract: upstream
// 404s pass through, every other upstream failure is a bad gateway.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	server.AddError(r.Context(), err)

	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		status := http.StatusBadGateway
		if apiErr.StatusCode == http.StatusNotFound {
			status = http.StatusNotFound
		}
		writeJSON(w, status, errorResponse{Error: apiErr.Message})
		return
	}

	var nf *storage.ErrNotFound
	if errors.As(err, &nf) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: nf.Error()})
		return
	}

	writeJSON(w, http.StatusBadGateway, errorResponse{Error: "upstream request failed"})
}
