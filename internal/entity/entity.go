// ABOUTME: Business record types and their status constants
// ABOUTME: Every type embeds collection.Base and lives in its own indexed collection

package entity

import (
	"time"

	"github.com/harborview/orgadmin/internal/collection"
)

// Status values shared across entity lifecycles
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
	StatusClosed    = "closed"

	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusCancel   = "cancelled"
	StatusPaid     = "paid"

	StatusOpen       = "open"
	StatusAssigned   = "assigned"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
)

// Organization is the tenant boundary; every business record carries the id
// of exactly one.
type Organization struct {
	collection.Base
	Name string `json:"name"`
}

// Staff is an employee record.
type Staff struct {
	collection.Base
	EmployeeNo string `json:"employeeNo"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Position   string `json:"position,omitempty"`
	Department string `json:"department,omitempty"`
}

// Agency is an external agency the organization works with.
type Agency struct {
	collection.Base
	Code         string `json:"code"`
	Name         string `json:"name"`
	ContactEmail string `json:"contactEmail,omitempty"`
}

// LC is a local council record.
type LC struct {
	collection.Base
	Code string `json:"code"`
	Name string `json:"name"`
}

// LCC is a local council committee record.
type LCC struct {
	collection.Base
	Code string `json:"code"`
	Name string `json:"name"`
	LCID string `json:"lcId,omitempty"`
}

// BankAccount is an organization bank account.
type BankAccount struct {
	collection.Base
	AccountNo string `json:"accountNo"`
	BankName  string `json:"bankName"`
	Label     string `json:"label,omitempty"`
}

// Expenditure is a spend request moving pending → approved | rejected.
type Expenditure struct {
	collection.Base
	Title         string  `json:"title"`
	Amount        float64 `json:"amount"`
	Category      string  `json:"category,omitempty"`
	Note          string  `json:"note,omitempty"`
	RejectionNote string  `json:"rejectionNote,omitempty"`
	CreatedBy     string  `json:"createdBy"`
}

// Leave is a leave request.
type Leave struct {
	collection.Base
	StaffID         string    `json:"staffId"`
	Type            string    `json:"type,omitempty"`
	From            time.Time `json:"from"`
	To              time.Time `json:"to"`
	Reason          string    `json:"reason,omitempty"`
	RejectionReason string    `json:"rejectionReason,omitempty"`
}

// Payroll is a payroll run entry for one staff member.
type Payroll struct {
	collection.Base
	StaffID string     `json:"staffId"`
	Period  string     `json:"period"` // e.g. "2026-08"
	Amount  float64    `json:"amount"`
	PaidAt  *time.Time `json:"paidAt,omitempty"`
}

// Query is a tracked question or issue worked through assignment to closure.
type Query struct {
	collection.Base
	Reference  string `json:"reference"`
	Subject    string `json:"subject"`
	Detail     string `json:"detail,omitempty"`
	AssignedTo string `json:"assignedTo,omitempty"` // staff id within the same tenant
}
