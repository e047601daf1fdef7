// ABOUTME: Status state machines for every entity lifecycle
// ABOUTME: Terminal states are the ones with no outgoing transitions

package entity

import "github.com/harborview/orgadmin/internal/collection"

// ActivationMachine covers staff, agencies, LCs and LCCs: three states,
// fully connected, nothing terminal.
var ActivationMachine = &collection.Machine{
	Initial: StatusActive,
	Transitions: map[string][]string{
		StatusActive:    {StatusInactive, StatusSuspended},
		StatusInactive:  {StatusActive, StatusSuspended},
		StatusSuspended: {StatusActive, StatusInactive},
	},
}

// BankAccountMachine adds a reversible closed state to the activation
// lifecycle.
var BankAccountMachine = &collection.Machine{
	Initial: StatusActive,
	Transitions: map[string][]string{
		StatusActive:    {StatusInactive, StatusSuspended, StatusClosed},
		StatusInactive:  {StatusActive, StatusSuspended, StatusClosed},
		StatusSuspended: {StatusActive, StatusInactive, StatusClosed},
		StatusClosed:    {StatusActive},
	},
}

// ExpenditureMachine: one decision, then done.
var ExpenditureMachine = &collection.Machine{
	Initial: StatusPending,
	Transitions: map[string][]string{
		StatusPending: {StatusApproved, StatusRejected},
	},
}

// LeaveMachine: approval, rejection and cancellation are all final.
var LeaveMachine = &collection.Machine{
	Initial: StatusPending,
	Transitions: map[string][]string{
		StatusPending: {StatusApproved, StatusRejected, StatusCancel},
	},
}

// PayrollMachine: approval precedes payment; rejection is possible until
// the money moves.
var PayrollMachine = &collection.Machine{
	Initial: StatusPending,
	Transitions: map[string][]string{
		StatusPending:  {StatusApproved, StatusRejected},
		StatusApproved: {StatusPaid, StatusRejected},
	},
}

// QueryMachine walks open → assigned → in_progress → resolved → closed,
// with cancellation available from every state but closed.
var QueryMachine = &collection.Machine{
	Initial: StatusOpen,
	Transitions: map[string][]string{
		StatusOpen:       {StatusAssigned, StatusCancel},
		StatusAssigned:   {StatusInProgress, StatusCancel},
		StatusInProgress: {StatusResolved, StatusCancel},
		StatusResolved:   {StatusClosed, StatusCancel},
	},
}
