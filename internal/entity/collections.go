// ABOUTME: Collection definitions binding each entity type to its key namespace,
// ABOUTME: validator, uniqueness code, name field and state machine

package entity

import (
	"fmt"
	"strings"

	"github.com/harborview/orgadmin/internal/collection"
	"github.com/harborview/orgadmin/internal/kv"
)

// Collections bundles one indexed collection per entity type over the same
// record store. Handlers hold a single *Collections.
type Collections struct {
	Organizations *collection.Collection[*Organization]
	Staff         *collection.Collection[*Staff]
	Agencies      *collection.Collection[*Agency]
	LCs           *collection.Collection[*LC]
	LCCs          *collection.Collection[*LCC]
	BankAccounts  *collection.Collection[*BankAccount]
	Expenditures  *collection.Collection[*Expenditure]
	Leaves        *collection.Collection[*Leave]
	Payrolls      *collection.Collection[*Payroll]
	Queries       *collection.Collection[*Query]
}

// NewCollections wires every entity collection over store.
func NewCollections(store kv.Store) *Collections {
	return &Collections{
		Organizations: collection.New(store, collection.Definition[*Organization]{
			Type: "org",
			New:  func() *Organization { return &Organization{} },
			Validate: func(o *Organization) error {
				return required("name", o.Name)
			},
			Name: func(o *Organization) string { return o.Name },
		}),

		Staff: collection.New(store, collection.Definition[*Staff]{
			Type: "staff",
			New:  func() *Staff { return &Staff{} },
			Validate: func(s *Staff) error {
				if err := required("name", s.Name); err != nil {
					return err
				}
				return required("employeeNo", s.EmployeeNo)
			},
			Code:    func(s *Staff) string { return s.EmployeeNo },
			Name:    func(s *Staff) string { return s.Name },
			Machine: ActivationMachine,
		}),

		Agencies: collection.New(store, collection.Definition[*Agency]{
			Type: "agency",
			New:  func() *Agency { return &Agency{} },
			Validate: func(a *Agency) error {
				if err := required("name", a.Name); err != nil {
					return err
				}
				return required("code", a.Code)
			},
			Code:    func(a *Agency) string { return a.Code },
			Name:    func(a *Agency) string { return a.Name },
			Machine: ActivationMachine,
		}),

		LCs: collection.New(store, collection.Definition[*LC]{
			Type: "lc",
			New:  func() *LC { return &LC{} },
			Validate: func(l *LC) error {
				if err := required("name", l.Name); err != nil {
					return err
				}
				return required("code", l.Code)
			},
			Code:    func(l *LC) string { return l.Code },
			Name:    func(l *LC) string { return l.Name },
			Machine: ActivationMachine,
		}),

		LCCs: collection.New(store, collection.Definition[*LCC]{
			Type: "lcc",
			New:  func() *LCC { return &LCC{} },
			Validate: func(l *LCC) error {
				if err := required("name", l.Name); err != nil {
					return err
				}
				return required("code", l.Code)
			},
			Code:    func(l *LCC) string { return l.Code },
			Name:    func(l *LCC) string { return l.Name },
			Machine: ActivationMachine,
		}),

		BankAccounts: collection.New(store, collection.Definition[*BankAccount]{
			Type: "bank_account",
			New:  func() *BankAccount { return &BankAccount{} },
			Validate: func(b *BankAccount) error {
				if err := required("accountNo", b.AccountNo); err != nil {
					return err
				}
				return required("bankName", b.BankName)
			},
			Code:    func(b *BankAccount) string { return b.AccountNo },
			Name:    func(b *BankAccount) string { return b.Label },
			Machine: BankAccountMachine,
		}),

		Expenditures: collection.New(store, collection.Definition[*Expenditure]{
			Type: "expenditure",
			New:  func() *Expenditure { return &Expenditure{} },
			Validate: func(e *Expenditure) error {
				if err := required("title", e.Title); err != nil {
					return err
				}
				if e.Amount <= 0 {
					return fmt.Errorf("%w: amount must be positive", collection.ErrValidation)
				}
				return nil
			},
			Name:    func(e *Expenditure) string { return e.Title },
			Machine: ExpenditureMachine,
		}),

		Leaves: collection.New(store, collection.Definition[*Leave]{
			Type: "leave",
			New:  func() *Leave { return &Leave{} },
			Validate: func(l *Leave) error {
				if err := required("staffId", l.StaffID); err != nil {
					return err
				}
				if l.From.IsZero() || l.To.IsZero() {
					return fmt.Errorf("%w: from and to dates are required", collection.ErrValidation)
				}
				if l.To.Before(l.From) {
					return fmt.Errorf("%w: to date precedes from date", collection.ErrValidation)
				}
				return nil
			},
			Machine: LeaveMachine,
		}),

		Payrolls: collection.New(store, collection.Definition[*Payroll]{
			Type: "payroll",
			New:  func() *Payroll { return &Payroll{} },
			Validate: func(p *Payroll) error {
				if err := required("staffId", p.StaffID); err != nil {
					return err
				}
				if err := required("period", p.Period); err != nil {
					return err
				}
				if p.Amount <= 0 {
					return fmt.Errorf("%w: amount must be positive", collection.ErrValidation)
				}
				return nil
			},
			Machine: PayrollMachine,
		}),

		Queries: collection.New(store, collection.Definition[*Query]{
			Type: "query",
			New:  func() *Query { return &Query{} },
			Validate: func(q *Query) error {
				if err := required("reference", q.Reference); err != nil {
					return err
				}
				return required("subject", q.Subject)
			},
			Code:    func(q *Query) string { return q.Reference },
			Name:    func(q *Query) string { return q.Subject },
			Machine: QueryMachine,
		}),
	}
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", collection.ErrValidation, field)
	}
	return nil
}
