// ABOUTME: Handler-level tests over httptest with the in-memory backend
// ABOUTME: Covers sessions, tenant isolation and the decision workflows

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview/orgadmin/internal/auth"
	"github.com/harborview/orgadmin/internal/entity"
	"github.com/harborview/orgadmin/internal/kv"
)

type testEnv struct {
	t      *testing.T
	srv    *httptest.Server
	issuer *auth.Issuer
	store  kv.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithStore(t, kv.NewMemoryStore())
}

func newTestEnvWithStore(t *testing.T, store kv.Store) *testEnv {
	t.Helper()

	issuer, err := auth.NewIssuer([]byte("handler-test-secret"))
	require.NoError(t, err)

	srv := httptest.NewServer(New(store, issuer, false).Handler())
	t.Cleanup(srv.Close)

	return &testEnv{t: t, srv: srv, issuer: issuer, store: store}
}

// newClient returns a client with its own cookie jar, i.e. its own session.
func (e *testEnv) newClient() *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(e.t, err)
	return &http.Client{Jar: jar}
}

func (e *testEnv) do(client *http.Client, method, path string, body any) (*http.Response, map[string]any) {
	e.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, e.srv.URL+path, &buf)
	require.NoError(e.t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(e.t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

// signup registers a fresh organization and returns a client holding the
// owner session.
func (e *testEnv) signup(orgName, email string) *http.Client {
	e.t.Helper()

	client := e.newClient()
	resp, body := e.do(client, http.MethodPost, "/api/signup", map[string]string{
		"orgName":  orgName,
		"name":     "Test Owner",
		"email":    email,
		"password": "correct horse battery",
	})
	require.Equal(e.t, http.StatusOK, resp.StatusCode, "signup failed: %v", body)
	return client
}

// clientWithRole returns a client whose session carries the given role in
// orgID, bypassing signup. Used to exercise the policy checks.
func (e *testEnv) clientWithRole(orgID string, role auth.Role) *http.Client {
	e.t.Helper()

	token, err := e.issuer.Issue(auth.SessionClaims{
		Subject: "user-" + string(role),
		Email:   string(role) + "@example.com",
		Name:    "Policy Test",
		OrgID:   orgID,
		Role:    role,
	})
	require.NoError(e.t, err)

	client := e.newClient()
	rec := httptest.NewRecorder()
	auth.SetSessionCookie(rec, token, false)
	base, err := url.Parse(e.srv.URL)
	require.NoError(e.t, err)
	client.Jar.SetCookies(base, rec.Result().Cookies())
	return client
}

func (e *testEnv) orgID(client *http.Client) string {
	e.t.Helper()
	resp, body := e.do(client, http.MethodGet, "/api/me", nil)
	require.Equal(e.t, http.StatusOK, resp.StatusCode)
	return body["orgId"].(string)
}

func TestSignupLoginAndMe(t *testing.T) {
	env := newTestEnv(t)

	client := env.signup("Harborview", "owner@harborview.test")

	resp, body := env.do(client, http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "owner@harborview.test", body["email"])
	assert.Equal(t, "Harborview", body["orgName"])
	assert.Equal(t, "owner", body["role"])

	// Duplicate email rejected even with a different organization name
	dup := env.newClient()
	resp, _ = env.do(dup, http.MethodPost, "/api/signup", map[string]string{
		"orgName":  "Another Org",
		"name":     "Someone Else",
		"email":    "owner@harborview.test",
		"password": "another password",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Fresh client, wrong password
	login := env.newClient()
	resp, _ = env.do(login, http.MethodPost, "/api/login", map[string]string{
		"email":    "owner@harborview.test",
		"password": "wrong password here",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Right password
	resp, body = env.do(login, http.MethodPost, "/api/login", map[string]string{
		"email":    "owner@harborview.test",
		"password": "correct horse battery",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Harborview", body["orgName"])
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	env := newTestEnv(t)
	client := env.newClient()

	for _, probe := range []struct{ method, path string }{
		{http.MethodGet, "/api/me"},
		{http.MethodGet, "/api/staff"},
		{http.MethodPost, "/api/expenditures"},
		{http.MethodPatch, "/api/payroll/some-id/status"},
	} {
		resp, _ := env.do(client, probe.method, probe.path, map[string]string{})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", probe.method, probe.path)
	}
}

func TestExpiredSessionRejected(t *testing.T) {
	env := newTestEnv(t)

	// A second issuer with the same secret, clock wound back past the TTL
	past := time.Now().Add(-30 * 24 * time.Hour)
	stale, err := auth.NewIssuer([]byte("handler-test-secret"))
	require.NoError(t, err)
	stale = stale.WithClock(func() time.Time { return past })
	token, err := stale.Issue(auth.SessionClaims{
		Subject: "user-1",
		Email:   "gone@example.com",
		OrgID:   "org-1",
		Role:    auth.RoleOwner,
	})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, env.srv.URL+"/api/me", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStaffListIsTenantScoped(t *testing.T) {
	env := newTestEnv(t)

	alpha := env.signup("Alpha", "owner@alpha.test")
	beta := env.signup("Beta", "owner@beta.test")

	resp, _ := env.do(alpha, http.MethodPost, "/api/staff", map[string]string{
		"employeeNo": "EMP-1", "name": "Ada", "email": "ada@alpha.test",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = env.do(beta, http.MethodPost, "/api/staff", map[string]string{
		"employeeNo": "EMP-1", "name": "Bob", "email": "bob@beta.test",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "same employeeNo in another tenant must not conflict")

	resp, body := env.do(alpha, http.MethodGet, "/api/staff", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Ada", items[0].(map[string]any)["name"])
}

func TestLCCodeConflictIsTenantScoped(t *testing.T) {
	env := newTestEnv(t)

	alpha := env.signup("Alpha", "owner@alpha.test")
	beta := env.signup("Beta", "owner@beta.test")

	resp, _ := env.do(alpha, http.MethodPost, "/api/lcs", map[string]string{"code": "LC-01", "name": "North"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Same code in a different tenant is fine
	resp, _ = env.do(beta, http.MethodPost, "/api/lcs", map[string]string{"code": "LC-01", "name": "South"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Same code in the same tenant conflicts, case and space insensitively
	resp, _ = env.do(alpha, http.MethodPost, "/api/lcs", map[string]string{"code": "  lc-01 ", "name": "Duplicate"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCrossTenantGetIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	alpha := env.signup("Alpha", "owner@alpha.test")
	beta := env.signup("Beta", "owner@beta.test")

	resp, body := env.do(alpha, http.MethodPost, "/api/agencies", map[string]string{"code": "AG-1", "name": "Dockside"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := body["id"].(string)

	resp, _ = env.do(beta, http.MethodGet, "/api/agencies/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "foreign records must be indistinguishable from absent ones")

	resp, _ = env.do(alpha, http.MethodGet, "/api/agencies/"+id, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestExpenditureRejectionFlow(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signup("Alpha", "owner@alpha.test")

	resp, body := env.do(owner, http.MethodPost, "/api/expenditures", map[string]any{
		"title": "Dock repairs", "amount": 1250.50, "category": "maintenance",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := body["id"].(string)
	assert.Equal(t, "pending", body["status"])
	assert.NotEmpty(t, body["createdBy"])

	// Rejection without a note is a validation failure, not a transition
	resp, _ = env.do(owner, http.MethodPatch, "/api/expenditures/"+id+"/status", map[string]string{
		"status": "rejected",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = env.do(owner, http.MethodPatch, "/api/expenditures/"+id+"/status", map[string]string{
		"status": "rejected", "note": "no quotes attached",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "rejected", body["status"])
	assert.Equal(t, "no quotes attached", body["rejectionNote"])

	// Rejected is terminal
	resp, _ = env.do(owner, http.MethodPatch, "/api/expenditures/"+id+"/status", map[string]string{
		"status": "approved",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMyExpenditures(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signup("Alpha", "owner@alpha.test")

	for i := 0; i < 3; i++ {
		resp, _ := env.do(owner, http.MethodPost, "/api/expenditures", map[string]any{
			"title": fmt.Sprintf("Purchase %d", i), "amount": 10.0 * float64(i+1),
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := env.do(owner, http.MethodGet, "/api/expenditures/mine", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), body["count"])
}

// faultyStore fails reads for keys under failPrefix, passing everything
// else through. Lets tests simulate a partially unavailable backend.
type faultyStore struct {
	kv.Store
	failPrefix string
}

func (f *faultyStore) Get(ctx context.Context, key string) ([]byte, error) {
	if f.failPrefix != "" && strings.HasPrefix(key, f.failPrefix) {
		return nil, fmt.Errorf("backend unavailable")
	}
	return f.Store.Get(ctx, key)
}

func TestMyExpendituresBackendFailures(t *testing.T) {
	fs := &faultyStore{Store: kv.NewMemoryStore()}
	env := newTestEnvWithStore(t, fs)
	owner := env.signup("Alpha", "owner@alpha.test")

	var ids []string
	for i := 0; i < 2; i++ {
		resp, body := env.do(owner, http.MethodPost, "/api/expenditures", map[string]any{
			"title": fmt.Sprintf("Purchase %d", i), "amount": 25.0,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		ids = append(ids, body["id"].(string))
	}

	// A record dropped from the store is skipped, not an error
	require.NoError(t, fs.Store.Delete(context.Background(), "expenditure:"+ids[0]))
	resp, body := env.do(owner, http.MethodGet, "/api/expenditures/mine", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["count"])

	// A failing backend read must surface, not shorten the list
	fs.failPrefix = "expenditure:"
	resp, body = env.do(owner, http.MethodGet, "/api/expenditures/mine", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal error", body["error"])
}

func TestMemberCannotDecideExpenditures(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signup("Alpha", "owner@alpha.test")
	orgID := env.orgID(owner)

	resp, body := env.do(owner, http.MethodPost, "/api/expenditures", map[string]any{
		"title": "Fuel", "amount": 80.0,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := body["id"].(string)

	member := env.clientWithRole(orgID, auth.RoleMember)
	resp, _ = env.do(member, http.MethodPatch, "/api/expenditures/"+id+"/status", map[string]string{
		"status": "approved",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	manager := env.clientWithRole(orgID, auth.RoleManager)
	resp, body = env.do(manager, http.MethodPatch, "/api/expenditures/"+id+"/status", map[string]string{
		"status": "approved",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "approved", body["status"])
}

func TestPayrollPaidStampsDate(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signup("Alpha", "owner@alpha.test")

	resp, body := env.do(owner, http.MethodPost, "/api/payroll", map[string]any{
		"staffId": "staff-1", "period": "2026-08", "amount": 4200.0,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := body["id"].(string)
	assert.Nil(t, body["paidAt"])

	resp, _ = env.do(owner, http.MethodPatch, "/api/payroll/"+id+"/status", map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = env.do(owner, http.MethodPatch, "/api/payroll/"+id+"/status", map[string]string{"status": "paid"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	paidAt, ok := body["paidAt"].(string)
	require.True(t, ok, "paid entries carry a payment timestamp")
	parsed, err := time.Parse(time.RFC3339, paidAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed, time.Minute)

	// Manager may approve but not pay
	manager := env.clientWithRole(env.orgID(owner), auth.RoleManager)
	resp, _ = env.do(manager, http.MethodPatch, "/api/payroll/"+id+"/status", map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestQueryAssignmentRequiresStaff(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signup("Alpha", "owner@alpha.test")

	resp, body := env.do(owner, http.MethodPost, "/api/staff", map[string]string{
		"employeeNo": "EMP-9", "name": "Grace", "email": "grace@alpha.test",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	staffID := body["id"].(string)

	resp, body = env.do(owner, http.MethodPost, "/api/queries", map[string]string{
		"reference": "Q-100", "subject": "Berth allocation",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	queryID := body["id"].(string)
	assert.Equal(t, "open", body["status"])

	// Assignment to a non-existent staff id fails closed
	resp, _ = env.do(owner, http.MethodPatch, "/api/queries/"+queryID+"/status", map[string]string{
		"status": "assigned", "assignedTo": "nobody",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = env.do(owner, http.MethodPatch, "/api/queries/"+queryID+"/status", map[string]string{
		"status": "assigned", "assignedTo": staffID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, staffID, body["assignedTo"])

	resp, _ = env.do(owner, http.MethodPatch, "/api/queries/"+queryID+"/status", map[string]string{"status": "in_progress"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = env.do(owner, http.MethodPatch, "/api/queries/"+queryID+"/status", map[string]string{"status": "resolved"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = env.do(owner, http.MethodPatch, "/api/queries/"+queryID+"/status", map[string]string{"status": "closed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Closed is terminal
	resp, _ = env.do(owner, http.MethodPatch, "/api/queries/"+queryID+"/status", map[string]string{"status": "cancelled"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLeaveCancelAllowedWithoutRole(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signup("Alpha", "owner@alpha.test")
	orgID := env.orgID(owner)

	resp, body := env.do(owner, http.MethodPost, "/api/leaves", map[string]string{
		"staffId": "staff-1", "type": "annual",
		"from": "2026-09-10T00:00:00Z", "to": "2026-09-14T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := body["id"].(string)

	member := env.clientWithRole(orgID, auth.RoleMember)

	// Members cannot approve
	resp, _ = env.do(member, http.MethodPatch, "/api/leaves/"+id+"/status", map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// But cancelling needs no role
	resp, body = env.do(member, http.MethodPatch, "/api/leaves/"+id+"/status", map[string]string{"status": "cancelled"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "cancelled", body["status"])
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signup("Alpha", "owner@alpha.test")

	resp, _ := env.do(owner, http.MethodPost, "/api/password", map[string]string{
		"current": "not the password", "new": "a brand new password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = env.do(owner, http.MethodPost, "/api/password", map[string]string{
		"current": "correct horse battery", "new": "a brand new password",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Old password is dead, new one works
	login := env.newClient()
	resp, _ = env.do(login, http.MethodPost, "/api/login", map[string]string{
		"email": "owner@alpha.test", "password": "correct horse battery",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = env.do(login, http.MethodPost, "/api/login", map[string]string{
		"email": "owner@alpha.test", "password": "a brand new password",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDeactivateUser(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signup("Alpha", "owner@alpha.test")
	orgID := env.orgID(owner)

	users := entity.NewUsers(env.store)
	hash, err := auth.HashPassword("member password!")
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), &entity.User{
		Email:        "member@alpha.test",
		Name:         "Member",
		OrgID:        orgID,
		Role:         auth.RoleMember,
		PasswordHash: hash,
	}))

	login := env.newClient()
	resp, _ := env.do(login, http.MethodPost, "/api/login", map[string]string{
		"email": "member@alpha.test", "password": "member password!",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Owners cannot lock themselves out
	resp, _ = env.do(owner, http.MethodPost, "/api/users/deactivate", map[string]string{
		"email": "owner@alpha.test",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = env.do(owner, http.MethodPost, "/api/users/deactivate", map[string]string{
		"email": "member@alpha.test",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Deactivated accounts look like bad credentials on login
	login2 := env.newClient()
	resp, _ = env.do(login2, http.MethodPost, "/api/login", map[string]string{
		"email": "member@alpha.test", "password": "member password!",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// A deactivation attempt from another tenant reads as not found
	beta := env.signup("Beta", "owner@beta.test")
	resp, _ = env.do(beta, http.MethodPost, "/api/users/deactivate", map[string]string{
		"email": "owner@alpha.test",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestValidationErrorsAreBadRequests(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signup("Alpha", "owner@alpha.test")

	// Missing required field
	resp, _ := env.do(owner, http.MethodPost, "/api/staff", map[string]string{"name": "No Number"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Unknown status value
	resp, body := env.do(owner, http.MethodPost, "/api/staff", map[string]string{
		"employeeNo": "EMP-2", "name": "Valid",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := body["id"].(string)
	resp, _ = env.do(owner, http.MethodPatch, "/api/staff/"+id+"/status", map[string]string{"status": "vaporized"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestClientCannotChooseStatus(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signup("Alpha", "owner@alpha.test")
	member := env.clientWithRole(env.orgID(owner), auth.RoleMember)

	// A body-supplied status must not skip the state machine: every record
	// enters at its machine's initial state, whatever the caller claims.
	resp, body := env.do(member, http.MethodPost, "/api/expenditures", map[string]any{
		"title": "Self-approved", "amount": 9999.0, "status": "approved",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "pending", body["status"])

	resp, body = env.do(member, http.MethodPost, "/api/payroll", map[string]any{
		"staffId": "staff-1", "period": "2026-08", "amount": 4200.0, "status": "paid",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "pending", body["status"])
	assert.Nil(t, body["paidAt"])

	resp, body = env.do(member, http.MethodPost, "/api/queries", map[string]any{
		"reference": "Q-7", "subject": "Mooring", "status": "zzz",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "open", body["status"])
}

func TestClientCannotChooseTenant(t *testing.T) {
	env := newTestEnv(t)
	alpha := env.signup("Alpha", "owner@alpha.test")
	beta := env.signup("Beta", "owner@beta.test")
	betaOrg := env.orgID(beta)

	// orgId in the body is ignored; the record lands in the session's tenant
	resp, body := env.do(alpha, http.MethodPost, "/api/agencies", map[string]string{
		"code": "AG-7", "name": "Smuggled", "orgId": betaOrg,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, env.orgID(alpha), body["orgId"])

	resp, bodyList := env.do(beta, http.MethodGet, "/api/agencies", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), bodyList["count"])
}
