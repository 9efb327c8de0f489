// Package menu runs the interactive organization chart menu. Each entry
// gathers its inputs through a Prompter, calls one repository operation
// and prints the result as a table. The loop carries no business rules;
// validation and integrity checks belong to the store.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/orgchart/internal/render"
	"github.com/mesh-intelligence/orgchart/pkg/types"
)

// Repository is the data-access surface the menu drives.
type Repository interface {
	CreateDepartment(ctx context.Context, in types.NewDepartment) (types.InsertResult, error)
	CreateRole(ctx context.Context, in types.NewRole) (types.InsertResult, error)
	CreateEmployee(ctx context.Context, in types.NewEmployee) (types.InsertResult, error)
	ListDepartments(ctx context.Context, includeID bool) (*types.RowSet[types.DepartmentRow], error)
	ListDepartmentBudgets(ctx context.Context) (*types.RowSet[types.BudgetRow], error)
	ListRoles(ctx context.Context, includeID bool) (*types.RowSet[types.RoleRow], error)
	ListEmployees(ctx context.Context, q types.EmployeeQuery) (*types.RowSet[types.EmployeeRow], error)
	ListEmployeesByDepartment(ctx context.Context, departmentID int64) (*types.RowSet[types.DepartmentMemberRow], error)
	ListManagers(ctx context.Context, departmentID *int64) (*types.RowSet[types.ManagerRow], error)
	UpdateDepartment(ctx context.Context, in types.DepartmentUpdate) (int64, error)
	UpdateRole(ctx context.Context, in types.RoleUpdate) (int64, error)
	UpdateEmployee(ctx context.Context, in types.EmployeeUpdate) (int64, error)
	Delete(ctx context.Context, table types.Table, id int64) (int64, error)
}

// ExitLabel is the last menu entry.
const ExitLabel = "Exit"

const banner = `
  ___               ____ _                _
 / _ \ _ __ __ _   / ___| |__   __ _ _ __| |_
| | | | '__/ _' | | |   | '_ \ / _' | '__| __|
| |_| | | | (_| | | |___| | | | (_| | |  | |_
 \___/|_|  \__, |  \____|_| |_|\__,_|_|   \__|
           |___/
`

type action struct {
	label string
	run   func(ctx context.Context) error
}

// Menu is the interactive loop.
type Menu struct {
	repo    Repository
	prompt  Prompter
	out     io.Writer
	log     zerolog.Logger
	actions []action
}

// New returns a menu over repo that prompts through p and prints to out.
func New(repo Repository, p Prompter, out io.Writer, logger zerolog.Logger) *Menu {
	m := &Menu{repo: repo, prompt: p, out: out, log: logger}
	m.actions = []action{
		{"View Departments", m.viewDepartments},
		{"View Department Budgets", m.viewBudgets},
		{"View Roles", m.viewRoles},
		{"View Employees", m.viewEmployees},
		{"View Employees By Manager", m.viewEmployeesByManager},
		{"View Employees By Department", m.viewEmployeesByDepartment},
		{"Add a Department", m.addDepartment},
		{"Add a Role", m.addRole},
		{"Add an Employee", m.addEmployee},
		{"Update a Department", m.updateDepartment},
		{"Update a Role", m.updateRole},
		{"Update an Employee", m.updateEmployee},
		{"Delete Department", m.deleteDepartment},
		{"Delete Role", m.deleteRole},
		{"Delete Employee", m.deleteEmployee},
	}
	return m
}

// Labels returns the menu entries in display order, Exit last.
func (m *Menu) Labels() []string {
	labels := make([]string, 0, len(m.actions)+1)
	for _, a := range m.actions {
		labels = append(labels, a.label)
	}
	return append(labels, ExitLabel)
}

// Run shows the menu until the user picks Exit, declines to continue or
// interrupts a prompt. Errors from a single action are printed and the
// loop goes on; only prompt failures end Run with an error.
func (m *Menu) Run(ctx context.Context) error {
	fmt.Fprint(m.out, banner)
	labels := m.Labels()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		idx, err := m.prompt.Select("Choose an option below:", labels)
		if err != nil {
			return quit(err)
		}
		if idx < 0 || idx >= len(m.actions) {
			return nil
		}

		a := m.actions[idx]
		m.log.Debug().Str("action", a.label).Msg("menu action")
		fmt.Fprintln(m.out)
		if err := a.run(ctx); err != nil {
			if errors.Is(err, ErrAborted) {
				return nil
			}
			m.report(err)
		}
		fmt.Fprintln(m.out)

		again, err := m.prompt.Confirm("Continue?", true)
		if err != nil {
			return quit(err)
		}
		if !again {
			return nil
		}
	}
}

func quit(err error) error {
	if errors.Is(err, ErrAborted) {
		return nil
	}
	return err
}

// report prints an action failure in terms the user can act on.
func (m *Menu) report(err error) {
	m.log.Debug().Err(err).Msg("action failed")

	switch types.GetCode(err) {
	case types.CodeConstraint:
		fmt.Fprintf(m.out, "Error: the change was rejected by the store (%v)\n", err)
	case types.CodeConnection:
		fmt.Fprintf(m.out, "Error: the store is unreachable (%v)\n", err)
	default:
		fmt.Fprintf(m.out, "Error: %v\n", err)
	}
}

func (m *Menu) show(title string, t render.Tabular) error {
	fmt.Fprintf(m.out, "%s\n\n", title)
	return render.Write(m.out, render.FormatTable, t)
}
