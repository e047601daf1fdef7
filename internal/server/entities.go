// ABOUTME: Generic create/list/get handlers shared by every entity route
// ABOUTME: Tenant scope always comes from the verified session, never the body

package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/harborview/orgadmin/internal/auth"
	"github.com/harborview/orgadmin/internal/collection"
)

// handleCreate decodes the request body into a fresh record, forces the
// session's tenant onto it and creates it. prepare, when set, stamps
// identity-derived fields before the write.
func handleCreate[T collection.Record](s *Server, col *collection.Collection[T], newRec func() T, prepare func(*auth.Identity, T)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := auth.MustFromContext(r.Context())

		rec := newRec()
		if err := json.NewDecoder(r.Body).Decode(rec); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		// Identity and lifecycle fields never come from the body: the
		// tenant is the session's and the status is the machine's initial.
		meta := rec.Meta()
		meta.ID = ""
		meta.OrgID = id.OrgID
		meta.Status = ""
		if prepare != nil {
			prepare(id, rec)
		}

		if err := col.Create(r.Context(), rec); err != nil {
			s.respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, rec)
	}
}

// handleList serves index-backed list queries with status, substring and
// pagination filters.
func handleList[T collection.Record](s *Server, col *collection.Collection[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := auth.MustFromContext(r.Context())

		f := collection.Filter{
			Status: r.URL.Query().Get("status"),
			Query:  r.URL.Query().Get("q"),
		}
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeError(w, http.StatusBadRequest, "invalid limit")
				return
			}
			f.Limit = n
		}
		if v := r.URL.Query().Get("offset"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeError(w, http.StatusBadRequest, "invalid offset")
				return
			}
			f.Offset = n
		}

		items, err := col.List(r.Context(), id.OrgID, f)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
	}
}

// handleGet serves single-record reads scoped to the session's tenant.
func handleGet[T collection.Record](s *Server, col *collection.Collection[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := auth.MustFromContext(r.Context())

		rec, err := col.Get(r.Context(), id.OrgID, r.PathValue("id"))
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

// statusRequest is the body for every PATCH .../status route. Fields beyond
// Status apply only to the transitions that use them.
type statusRequest struct {
	Status     string `json:"status"`
	Note       string `json:"note,omitempty"`
	Reason     string `json:"reason,omitempty"`
	AssignedTo string `json:"assignedTo,omitempty"`
	PaidAt     string `json:"paidAt,omitempty"` // RFC 3339; defaults to now on pay
}

func decodeStatusRequest(w http.ResponseWriter, r *http.Request) (statusRequest, bool) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if req.Status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return req, false
	}
	return req, true
}

// handleLifecycle serves the activation transitions shared by staff,
// agencies, LCs, LCCs and bank accounts.
func handleLifecycle[T collection.Record](s *Server, col *collection.Collection[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := auth.MustFromContext(r.Context())

		req, ok := decodeStatusRequest(w, r)
		if !ok {
			return
		}

		rec, err := col.UpdateStatus(r.Context(), id.OrgID, r.PathValue("id"), req.Status, nil)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}
