// ABOUTME: Signup, login, logout, profile and password-change handlers
// ABOUTME: Session issuance happens only here; claims are immutable once signed

package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/harborview/orgadmin/internal/auth"
	"github.com/harborview/orgadmin/internal/collection"
	"github.com/harborview/orgadmin/internal/entity"
)

const minPasswordLength = 8

type signupRequest struct {
	OrgName  string `json:"orgName"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	OrgID   string `json:"orgId"`
	OrgName string `json:"orgName"`
	Role    string `json:"role"`
}

// handleSignup creates a new organization with its owner account and starts
// a session.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OrgName == "" || req.Name == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "orgName, name and email are required")
		return
	}
	if len(req.Password) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	// Reject the duplicate account before creating the organization
	if _, err := s.users.GetByEmail(r.Context(), req.Email); err == nil {
		writeError(w, http.StatusConflict, "an account with this email already exists")
		return
	} else if !errors.Is(err, collection.ErrNotFound) {
		s.respondError(w, r, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	// The organization record is scoped to itself
	orgID := uuid.New().String()
	org := &entity.Organization{Name: req.OrgName}
	org.ID = orgID
	org.OrgID = orgID
	if err := s.cols.Organizations.Create(r.Context(), org); err != nil {
		s.respondError(w, r, err)
		return
	}

	user := &entity.User{
		Email:        req.Email,
		Name:         req.Name,
		OrgID:        orgID,
		Role:         auth.RoleOwner,
		PasswordHash: hash,
	}
	if err := s.users.Create(r.Context(), user); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.logger.Info("organization created", "org_id", orgID, "owner", user.Email)
	s.startSession(w, r, user, org.Name)
}

// handleLogin verifies credentials and starts a session.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := s.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, collection.ErrNotFound) {
			// Burn a bcrypt compare so unknown accounts take as long as
			// known ones
			auth.DummyCompare(req.Password)
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		s.respondError(w, r, err)
		return
	}

	if !user.IsActive {
		auth.DummyCompare(req.Password)
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if err := auth.CheckPassword(req.Password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrWrongPassword) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		s.respondError(w, r, err)
		return
	}

	org, err := s.cols.Organizations.Get(r.Context(), user.OrgID, user.OrgID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.logger.Info("login", "user_id", user.ID, "org_id", user.OrgID)
	s.startSession(w, r, user, org.Name)
}

// handleLogout clears the session cookie. The token itself stays valid
// until expiry; this design keeps no server-side session state.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// handleMe returns the authenticated caller's profile.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())

	user, err := s.users.GetByEmail(r.Context(), id.Email)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	org, err := s.cols.Organizations.Get(r.Context(), user.OrgID, user.OrgID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.Name,
		OrgID:   user.OrgID,
		OrgName: org.Name,
		Role:    string(user.Role),
	})
}

type changePasswordRequest struct {
	Current string `json:"current"`
	New     string `json:"new"`
}

// handleChangePassword verifies the current password before storing a new
// hash. The session stays valid; claims carry no credential material.
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.New) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	user, err := s.users.GetByEmail(r.Context(), id.Email)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := auth.CheckPassword(req.Current, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrWrongPassword) {
			writeError(w, http.StatusUnauthorized, "current password is incorrect")
			return
		}
		s.respondError(w, r, err)
		return
	}

	hash, err := auth.HashPassword(req.New)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.users.SetPassword(r.Context(), user.Email, hash); err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "password changed"})
}

type deactivateRequest struct {
	Email string `json:"email"`
}

// handleUserDeactivate blocks an account from logging in. The record is
// kept; cross-tenant targets look identical to unknown ones.
func (s *Server) handleUserDeactivate(w http.ResponseWriter, r *http.Request) {
	id := auth.MustFromContext(r.Context())

	var req deactivateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}
	if entity.NormalizeEmail(req.Email) == entity.NormalizeEmail(id.Email) {
		writeError(w, http.StatusBadRequest, "cannot deactivate your own account")
		return
	}

	target, err := s.users.GetByEmail(r.Context(), req.Email)
	if err != nil || target.OrgID != id.OrgID {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if err := s.users.Deactivate(r.Context(), target.Email); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.logger.Info("user deactivated", "user_id", target.ID, "by", id.Subject)
	writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

// startSession issues a signed token, sets the cookie and writes the
// session profile.
func (s *Server) startSession(w http.ResponseWriter, r *http.Request, user *entity.User, orgName string) {
	token, err := s.issuer.Issue(auth.SessionClaims{
		Subject: user.ID,
		Email:   user.Email,
		Name:    user.Name,
		OrgID:   user.OrgID,
		OrgName: orgName,
		Role:    user.Role,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	auth.SetSessionCookie(w, token, s.secureCookies)
	writeJSON(w, http.StatusOK, sessionResponse{
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.Name,
		OrgID:   user.OrgID,
		OrgName: orgName,
		Role:    string(user.Role),
	})
}
