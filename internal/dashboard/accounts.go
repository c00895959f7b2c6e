package dashboard

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/curatorhq/social-admin-gateway/internal/normalize"
	"github.com/curatorhq/social-admin-gateway/internal/server"
	"github.com/curatorhq/social-admin-gateway/internal/session"
)

// accountView is an account with its session history and derived recency
// key, the shape the dashboard's account table renders.
type accountView struct {
	normalize.Account
	LastSessionAt string          `json:"lastSessionAt,omitempty"`
	Sessions      session.History `json:"sessions"`
}

func (h *Handler) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	params := h.listParams(r, "status", "platform", "search")

	payload, err := h.fetcher.FetchAccounts(r.Context(), params)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	raws := normalize.List(payload)
	views := make([]accountView, 0, len(raws))
	for _, raw := range raws {
		acc := normalize.NormalizeAccount(raw)
		if acc == nil {
			// One malformed record never aborts the batch.
			continue
		}
		hist := session.FromRecord(raw)
		views = append(views, accountView{
			Account:       *acc,
			LastSessionAt: session.DeriveSortKey(hist),
			Sessions:      hist,
		})
	}
	sortByRecency(views)

	server.AddLogField(r.Context(), "accounts", strconv.Itoa(len(views)))
	writeJSON(w, http.StatusOK, listResponse{
		Data: views,
		Meta: normalize.Meta(payload, params.Page, params.Limit, len(views)),
	})
}

func (h *Handler) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	payload, err := h.fetcher.FetchAccount(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	rec, _ := payload.(map[string]any)
	// Some backend versions wrap single records in a data envelope.
	if inner, ok := rec["data"].(map[string]any); ok {
		rec = inner
	}

	acc := normalize.NormalizeAccount(rec)
	if acc == nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "upstream returned an unusable account record"})
		return
	}

	hist := session.FromRecord(rec)
	writeJSON(w, http.StatusOK, accountView{
		Account:       *acc,
		LastSessionAt: session.DeriveSortKey(hist),
		Sessions:      hist,
	})
}

// sortByRecency orders accounts by their derived session sort key, newest
// first. Accounts without a parseable key sink to the end, keeping their
// upstream order.
func sortByRecency(views []accountView) {
	type ranked struct {
		view accountView
		at   time.Time
		ok   bool
	}
	rs := make([]ranked, len(views))
	for i, v := range views {
		at, ok := normalize.ParseTime(v.LastSessionAt)
		rs[i] = ranked{view: v, at: at, ok: ok}
	}

	sort.SliceStable(rs, func(i, j int) bool {
		a, b := rs[i], rs[j]
		if a.ok != b.ok {
			return a.ok
		}
		if !a.ok {
			return false
		}
		return a.at.After(b.at)
	})

	for i, r := range rs {
		views[i] = r.view
	}
}
