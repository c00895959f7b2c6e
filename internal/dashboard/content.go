package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/curatorhq/social-admin-gateway/internal/normalize"
)

func (h *Handler) handleListContent(w http.ResponseWriter, r *http.Request) {
	params := h.listParams(r, "status", "mediaType", "accountId", "search")

	payload, err := h.fetcher.FetchContent(r.Context(), params)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	raws := normalize.List(payload)
	items := make([]normalize.ContentItem, 0, len(raws))
	for _, raw := range raws {
		if item := normalize.NormalizeContentItem(raw); item != nil {
			items = append(items, *item)
		}
	}

	writeJSON(w, http.StatusOK, listResponse{
		Data: items,
		Meta: normalize.Meta(payload, params.Page, params.Limit, len(items)),
	})
}

func (h *Handler) handleListJobs(w http.ResponseWriter, r *http.Request) {
	params := h.listParams(r, "status", "type", "accountId")

	payload, err := h.fetcher.FetchJobs(r.Context(), params)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	raws := normalize.List(payload)
	jobs := make([]normalize.Job, 0, len(raws))
	for _, raw := range raws {
		if job := normalize.NormalizeJob(raw); job != nil {
			jobs = append(jobs, *job)
		}
	}

	writeJSON(w, http.StatusOK, listResponse{
		Data: jobs,
		Meta: normalize.Meta(payload, params.Page, params.Limit, len(jobs)),
	})
}

func (h *Handler) handleListOptions(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	payload, err := h.fetcher.FetchOptions(r.Context(), kind)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	raws := normalize.List(payload)
	options := make([]normalize.Option, 0, len(raws))
	for _, raw := range raws {
		if opt := normalize.NormalizeOption(raw); opt != nil {
			options = append(options, *opt)
		}
	}

	// Option lists are not paginated upstream.
	writeJSON(w, http.StatusOK, map[string]any{"data": options})
}
