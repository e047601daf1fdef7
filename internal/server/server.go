// ABOUTME: HTTP server wiring handlers, session middleware and routes
// ABOUTME: The thin boundary between the web surface and the persistence core

package server

import (
	"log/slog"
	"net/http"

	"github.com/harborview/orgadmin/internal/auth"
	"github.com/harborview/orgadmin/internal/entity"
	"github.com/harborview/orgadmin/internal/kv"
)

// Server holds the dependencies shared by every handler.
type Server struct {
	issuer        *auth.Issuer
	users         *entity.Users
	cols          *entity.Collections
	store         kv.Store
	logger        *slog.Logger
	secureCookies bool
}

// New creates a Server over store. secureCookies marks the session cookie
// Secure and should be set in production.
func New(store kv.Store, issuer *auth.Issuer, secureCookies bool) *Server {
	return &Server{
		issuer:        issuer,
		users:         entity.NewUsers(store),
		cols:          entity.NewCollections(store),
		store:         store,
		logger:        slog.Default().With("component", "server"),
		secureCookies: secureCookies,
	}
}

// Handler builds the route table. Session verification wraps every route
// except signup and login; privileged transitions add a policy check on top.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("POST /api/signup", s.handleSignup)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.handleLogout)

	// Session
	mux.HandleFunc("GET /api/me", s.requireAuth(s.handleMe))
	mux.HandleFunc("POST /api/password", s.requireAuth(s.handleChangePassword))

	// Users
	mux.HandleFunc("POST /api/users/deactivate", s.requireAction(auth.ActionManageUsers, s.handleUserDeactivate))

	// Staff
	mux.HandleFunc("POST /api/staff", s.requireAuth(handleCreate(s, s.cols.Staff, func() *entity.Staff { return &entity.Staff{} }, nil)))
	mux.HandleFunc("GET /api/staff", s.requireAuth(handleList(s, s.cols.Staff)))
	mux.HandleFunc("GET /api/staff/{id}", s.requireAuth(handleGet(s, s.cols.Staff)))
	mux.HandleFunc("PATCH /api/staff/{id}/status", s.requireAction(auth.ActionRecordLifecycle, handleLifecycle(s, s.cols.Staff)))

	// Agencies
	mux.HandleFunc("POST /api/agencies", s.requireAuth(handleCreate(s, s.cols.Agencies, func() *entity.Agency { return &entity.Agency{} }, nil)))
	mux.HandleFunc("GET /api/agencies", s.requireAuth(handleList(s, s.cols.Agencies)))
	mux.HandleFunc("GET /api/agencies/{id}", s.requireAuth(handleGet(s, s.cols.Agencies)))
	mux.HandleFunc("PATCH /api/agencies/{id}/status", s.requireAction(auth.ActionRecordLifecycle, handleLifecycle(s, s.cols.Agencies)))

	// LCs
	mux.HandleFunc("POST /api/lcs", s.requireAuth(handleCreate(s, s.cols.LCs, func() *entity.LC { return &entity.LC{} }, nil)))
	mux.HandleFunc("GET /api/lcs", s.requireAuth(handleList(s, s.cols.LCs)))
	mux.HandleFunc("GET /api/lcs/{id}", s.requireAuth(handleGet(s, s.cols.LCs)))
	mux.HandleFunc("PATCH /api/lcs/{id}/status", s.requireAction(auth.ActionRecordLifecycle, handleLifecycle(s, s.cols.LCs)))

	// LCCs
	mux.HandleFunc("POST /api/lccs", s.requireAuth(handleCreate(s, s.cols.LCCs, func() *entity.LCC { return &entity.LCC{} }, nil)))
	mux.HandleFunc("GET /api/lccs", s.requireAuth(handleList(s, s.cols.LCCs)))
	mux.HandleFunc("GET /api/lccs/{id}", s.requireAuth(handleGet(s, s.cols.LCCs)))
	mux.HandleFunc("PATCH /api/lccs/{id}/status", s.requireAction(auth.ActionRecordLifecycle, handleLifecycle(s, s.cols.LCCs)))

	// Bank accounts
	mux.HandleFunc("POST /api/bank-accounts", s.requireAuth(handleCreate(s, s.cols.BankAccounts, func() *entity.BankAccount { return &entity.BankAccount{} }, nil)))
	mux.HandleFunc("GET /api/bank-accounts", s.requireAuth(handleList(s, s.cols.BankAccounts)))
	mux.HandleFunc("GET /api/bank-accounts/{id}", s.requireAuth(handleGet(s, s.cols.BankAccounts)))
	mux.HandleFunc("PATCH /api/bank-accounts/{id}/status", s.requireAction(auth.ActionRecordLifecycle, handleLifecycle(s, s.cols.BankAccounts)))

	// Expenditures
	mux.HandleFunc("POST /api/expenditures", s.requireAuth(s.handleExpenditureCreate))
	mux.HandleFunc("GET /api/expenditures", s.requireAuth(handleList(s, s.cols.Expenditures)))
	mux.HandleFunc("GET /api/expenditures/{id}", s.requireAuth(handleGet(s, s.cols.Expenditures)))
	mux.HandleFunc("GET /api/expenditures/mine", s.requireAuth(s.handleMyExpenditures))
	mux.HandleFunc("PATCH /api/expenditures/{id}/status", s.requireAction(auth.ActionExpenditureDecide, s.handleExpenditureStatus))

	// Leaves
	mux.HandleFunc("POST /api/leaves", s.requireAuth(handleCreate(s, s.cols.Leaves, func() *entity.Leave { return &entity.Leave{} }, nil)))
	mux.HandleFunc("GET /api/leaves", s.requireAuth(handleList(s, s.cols.Leaves)))
	mux.HandleFunc("GET /api/leaves/{id}", s.requireAuth(handleGet(s, s.cols.Leaves)))
	mux.HandleFunc("PATCH /api/leaves/{id}/status", s.requireAuth(s.handleLeaveStatus))

	// Payroll
	mux.HandleFunc("POST /api/payroll", s.requireAuth(handleCreate(s, s.cols.Payrolls, func() *entity.Payroll { return &entity.Payroll{} }, nil)))
	mux.HandleFunc("GET /api/payroll", s.requireAuth(handleList(s, s.cols.Payrolls)))
	mux.HandleFunc("GET /api/payroll/{id}", s.requireAuth(handleGet(s, s.cols.Payrolls)))
	mux.HandleFunc("PATCH /api/payroll/{id}/status", s.requireAction(auth.ActionPayrollDecide, s.handlePayrollStatus))

	// Queries
	mux.HandleFunc("POST /api/queries", s.requireAuth(handleCreate(s, s.cols.Queries, func() *entity.Query { return &entity.Query{} }, nil)))
	mux.HandleFunc("GET /api/queries", s.requireAuth(handleList(s, s.cols.Queries)))
	mux.HandleFunc("GET /api/queries/{id}", s.requireAuth(handleGet(s, s.cols.Queries)))
	mux.HandleFunc("PATCH /api/queries/{id}/status", s.requireAuth(s.handleQueryStatus))

	return mux
}

// requireAuth wraps a handler with session verification, mirroring the
// RequireSession middleware for per-route use.
func (s *Server) requireAuth(h http.HandlerFunc) http.HandlerFunc {
	wrapped := auth.RequireSession(s.issuer)(h)
	return wrapped.ServeHTTP
}

// requireAction stacks a policy check on top of session verification.
func (s *Server) requireAction(action auth.Action, h http.HandlerFunc) http.HandlerFunc {
	wrapped := auth.RequireSession(s.issuer)(auth.RequireAction(action)(h))
	return wrapped.ServeHTTP
}
