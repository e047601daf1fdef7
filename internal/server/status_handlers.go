// ABOUTME: Entity-specific handlers: expenditure, leave, payroll and query transitions
// ABOUTME: Transition preconditions live here; the machines themselves live in entity

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/harborview/orgadmin/internal/auth"
	"github.com/harborview/orgadmin/internal/collection"
	"github.com/harborview/orgadmin/internal/entity"
)

// handleExpenditureCreate stamps the creator and maintains the per-user
// expenditure id list alongside the collection write.
func (s *Server) handleExpenditureCreate(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())

	exp := &entity.Expenditure{}
	if err := json.NewDecoder(r.Body).Decode(exp); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	exp.ID = ""
	exp.OrgID = id.OrgID
	exp.Status = ""
	exp.CreatedBy = id.Subject
	exp.RejectionNote = ""

	if err := s.cols.Expenditures.Create(r.Context(), exp); err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := collection.AppendID(r.Context(), s.store, "user_expenditures:"+id.Subject, exp.ID); err != nil {
		// The canonical record exists; a stale per-user list is recoverable
		s.logger.Warn("appending user expenditure list failed", "user_id", id.Subject, "error", err)
	}

	writeJSON(w, http.StatusCreated, exp)
}

// handleMyExpenditures lists the caller's own expenditures via the
// per-user id list.
func (s *Server) handleMyExpenditures(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())

	ids, err := collection.ListIDs(r.Context(), s.store, "user_expenditures:"+id.Subject)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	items := make([]*entity.Expenditure, 0, len(ids))
	for _, expID := range ids {
		exp, err := s.cols.Expenditures.Get(r.Context(), id.OrgID, expID)
		if err != nil {
			// Dropped or cross-tenant entries are skipped; anything else is
			// a storage failure and must not shorten the list silently
			if errors.Is(err, collection.ErrNotFound) {
				continue
			}
			s.respondError(w, r, err)
			return
		}
		items = append(items, exp)
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

// handleExpenditureStatus decides a pending expenditure. Rejection requires
// a note explaining the decision.
func (s *Server) handleExpenditureStatus(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())

	req, ok := decodeStatusRequest(w, r)
	if !ok {
		return
	}

	if req.Status == entity.StatusRejected && strings.TrimSpace(req.Note) == "" {
		writeError(w, http.StatusBadRequest, "a rejection note is required")
		return
	}

	exp, err := s.cols.Expenditures.UpdateStatus(r.Context(), id.OrgID, r.PathValue("id"), req.Status, func(e *entity.Expenditure) error {
		if req.Status == entity.StatusRejected {
			e.RejectionNote = req.Note
		}
		return nil
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, exp)
}

// handleLeaveStatus decides or cancels a leave request. Approval and
// rejection are privileged; the requester may cancel without a role.
func (s *Server) handleLeaveStatus(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())

	req, ok := decodeStatusRequest(w, r)
	if !ok {
		return
	}

	if req.Status != entity.StatusCancel && !auth.Allowed(auth.ActionLeaveDecide, id.Role) {
		writeError(w, http.StatusForbidden, "insufficient role")
		return
	}

	leave, err := s.cols.Leaves.UpdateStatus(r.Context(), id.OrgID, r.PathValue("id"), req.Status, func(l *entity.Leave) error {
		if req.Status == entity.StatusRejected {
			l.RejectionReason = req.Reason
		}
		return nil
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, leave)
}

// handlePayrollStatus moves a payroll entry through approval, rejection and
// payment. Marking paid stamps the payment date when the caller omits one.
func (s *Server) handlePayrollStatus(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())

	req, ok := decodeStatusRequest(w, r)
	if !ok {
		return
	}

	var paidAt *time.Time
	if req.Status == entity.StatusPaid {
		when := time.Now().UTC()
		if req.PaidAt != "" {
			parsed, err := time.Parse(time.RFC3339, req.PaidAt)
			if err != nil {
				writeError(w, http.StatusBadRequest, "paidAt must be RFC 3339")
				return
			}
			when = parsed
		}
		paidAt = &when
	}

	entry, err := s.cols.Payrolls.UpdateStatus(r.Context(), id.OrgID, r.PathValue("id"), req.Status, func(p *entity.Payroll) error {
		if paidAt != nil && p.PaidAt == nil {
			p.PaidAt = paidAt
		}
		return nil
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// handleQueryStatus walks a query through its workflow. Assignment is
// privileged and must reference a staff record in the caller's tenant;
// later progress transitions use a broader allow-list.
func (s *Server) handleQueryStatus(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())

	req, ok := decodeStatusRequest(w, r)
	if !ok {
		return
	}

	action := auth.ActionQueryProgress
	if req.Status == entity.StatusAssigned {
		action = auth.ActionQueryAssign
	}
	if !auth.Allowed(action, id.Role) {
		writeError(w, http.StatusForbidden, "insufficient role")
		return
	}

	if req.Status == entity.StatusAssigned {
		if req.AssignedTo == "" {
			writeError(w, http.StatusBadRequest, "assignedTo is required")
			return
		}
		// The assignee must exist within the same tenant
		if _, err := s.cols.Staff.Get(r.Context(), id.OrgID, req.AssignedTo); err != nil {
			writeError(w, http.StatusBadRequest, "assignedTo does not reference a staff record")
			return
		}
	}

	query, err := s.cols.Queries.UpdateStatus(r.Context(), id.OrgID, r.PathValue("id"), req.Status, func(q *entity.Query) error {
		if req.Status == entity.StatusAssigned {
			q.AssignedTo = req.AssignedTo
		}
		return nil
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, query)
}
