package dashboard

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/curatorhq/social-admin-gateway/internal/normalize"
	"github.com/curatorhq/social-admin-gateway/internal/storage"
)

type createScheduleRequest struct {
	ContentID string `json:"contentId"`
	AccountID string `json:"accountId"`
	Caption   string `json:"caption"`
	PublishAt string `json:"publishAt"` // RFC 3339
}

func (h *Handler) handleCreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req createScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if req.ContentID == "" || req.AccountID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "contentId and accountId are required"})
		return
	}
	publishAt, err := time.Parse(time.RFC3339, req.PublishAt)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "publishAt must be an RFC 3339 timestamp"})
		return
	}

	sched := &storage.Schedule{
		ID:        uuid.New().String(),
		ContentID: req.ContentID,
		AccountID: req.AccountID,
		Caption:   req.Caption,
		PublishAt: publishAt.UTC(),
	}
	if err := h.store.CreateSchedule(r.Context(), sched); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sched)
}

func (h *Handler) handleListSchedules(w http.ResponseWriter, r *http.Request) {
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

	schedules, total, err := h.store.ListSchedules(r.Context(), page, limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if schedules == nil {
		schedules = []*storage.Schedule{}
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	if totalPages < 1 {
		totalPages = 1
	}
	writeJSON(w, http.StatusOK, listResponse{
		Data: schedules,
		Meta: normalize.PageMeta{Page: page, Limit: limit, Total: total, TotalPages: totalPages},
	})
}

type updateScheduleRequest struct {
	Status string `json:"status"`
}

func (h *Handler) handleUpdateSchedule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	switch req.Status {
	case storage.StatusPending, storage.StatusPublished, storage.StatusCancelled:
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "status must be pending, published, or cancelled"})
		return
	}

	if err := h.store.UpdateScheduleStatus(r.Context(), id, req.Status); err != nil {
		h.writeError(w, r, err)
		return
	}

	sched, err := h.store.GetSchedule(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sched)
}

func (h *Handler) handleDeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteSchedule(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
