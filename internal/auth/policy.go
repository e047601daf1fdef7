// ABOUTME: Role definitions and the action allow-list policy table
// ABOUTME: One table maps each privileged action to the roles permitted to perform it

package auth

// Role represents a role a user can hold within their organization.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
)

// ValidRoles lists all assignable role names.
var ValidRoles = []Role{RoleOwner, RoleAdmin, RoleManager, RoleMember}

// Action names a privileged operation gated by the policy table.
type Action string

const (
	ActionExpenditureDecide Action = "expenditure.decide" // approve or reject
	ActionLeaveDecide       Action = "leave.decide"
	ActionPayrollDecide     Action = "payroll.decide" // approve, reject or pay
	ActionQueryAssign       Action = "query.assign"
	ActionQueryProgress     Action = "query.progress" // in_progress/resolved/closed/cancelled
	ActionRecordLifecycle   Action = "record.lifecycle" // activate/deactivate/suspend/close
	ActionManageUsers       Action = "users.manage"
)

// policy is the single allow-list consulted for every privileged action.
// Role checks never happen against literal role names at call sites.
var policy = map[Action][]Role{
	ActionExpenditureDecide: {RoleOwner, RoleAdmin, RoleManager},
	ActionLeaveDecide:       {RoleOwner, RoleAdmin, RoleManager},
	ActionPayrollDecide:     {RoleOwner, RoleAdmin},
	ActionQueryAssign:       {RoleOwner, RoleAdmin, RoleManager},
	ActionQueryProgress:     {RoleOwner, RoleAdmin, RoleManager, RoleMember},
	ActionRecordLifecycle:   {RoleOwner, RoleAdmin},
	ActionManageUsers:       {RoleOwner, RoleAdmin},
}

// Allowed reports whether role may perform action. Unknown actions are
// denied.
func Allowed(action Action, role Role) bool {
	for _, allowed := range policy[action] {
		if role == allowed {
			return true
		}
	}
	return false
}
