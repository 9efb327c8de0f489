package menu

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/orgchart/internal/store"
	"github.com/mesh-intelligence/orgchart/pkg/types"
)

// step is one scripted answer. Select steps name the option label to pick.
type step struct {
	kind   string // select, input, confirm
	answer string
	yes    bool
}

func sel(label string) step { return step{kind: "select", answer: label} }
func input(text string) step { return step{kind: "input", answer: text} }
func confirm(yes bool) step { return step{kind: "confirm", yes: yes} }
func exit() []step { return []step{sel(ExitLabel)} }
func then(s ...step) []step { return append(s, confirm(false)) }

// scriptedPrompter replays steps in order and fails the test on a mismatch.
type scriptedPrompter struct {
	t     *testing.T
	steps []step
}

func (p *scriptedPrompter) next(kind, message string) step {
	p.t.Helper()
	require.NotEmpty(p.t, p.steps, "unexpected %s prompt %q", kind, message)
	s := p.steps[0]
	p.steps = p.steps[1:]
	require.Equal(p.t, s.kind, kind, "prompt %q", message)
	return s
}

func (p *scriptedPrompter) Select(message string, options []string) (int, error) {
	s := p.next("select", message)
	for i, o := range options {
		if o == s.answer {
			return i, nil
		}
	}
	p.t.Fatalf("option %q not offered for %q: %v", s.answer, message, options)
	return 0, nil
}

func (p *scriptedPrompter) Input(message, def string) (string, error) {
	s := p.next("input", message)
	if s.answer == "" {
		return def, nil
	}
	return s.answer, nil
}

func (p *scriptedPrompter) Confirm(message string, def bool) (bool, error) {
	return p.next("confirm", message).yes, nil
}

type abortingPrompter struct{}

func (abortingPrompter) Select(string, []string) (int, error) { return 0, ErrAborted }
func (abortingPrompter) Input(string, string) (string, error) { return "", ErrAborted }
func (abortingPrompter) Confirm(string, bool) (bool, error) { return false, ErrAborted }

func newRepo(t *testing.T) *store.Repository {
	t.Helper()
	ctx := context.Background()

	r, err := store.Open(ctx, store.Config{Driver: store.DriverSQLite, Path: filepath.Join(t.TempDir(), "orgchart.db")}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	require.NoError(t, r.Bootstrap(ctx))

	eng, err := r.CreateDepartment(ctx, types.NewDepartment{Name: "Engineering"})
	require.NoError(t, err)
	lead, err := r.CreateRole(ctx, types.NewRole{Title: "Lead", Salary: decimal.NewFromInt(75000), DepartmentID: eng.ID})
	require.NoError(t, err)
	dev, err := r.CreateRole(ctx, types.NewRole{Title: "Engineer", Salary: decimal.NewFromInt(50000), DepartmentID: eng.ID})
	require.NoError(t, err)
	ada, err := r.CreateEmployee(ctx, types.NewEmployee{FirstName: "Ada", LastName: "Lovelace", RoleID: lead.ID})
	require.NoError(t, err)
	_, err = r.CreateEmployee(ctx, types.NewEmployee{FirstName: "Grace", LastName: "Hopper", RoleID: dev.ID, ManagerID: types.ID(ada.ID)})
	require.NoError(t, err)
	return r
}

func run(t *testing.T, r Repository, steps ...[]step) string {
	t.Helper()
	var script []step
	for _, s := range steps {
		script = append(script, s...)
	}

	p := &scriptedPrompter{t: t, steps: script}
	var out bytes.Buffer
	require.NoError(t, New(r, p, &out, zerolog.Nop()).Run(context.Background()))
	assert.Empty(t, p.steps, "unused answers")
	return out.String()
}

func TestLabels(t *testing.T) {
	m := New(nil, nil, nil, zerolog.Nop())
	labels := m.Labels()
	require.Len(t, labels, 16)
	assert.Equal(t, "View Departments", labels[0])
	assert.Equal(t, "Delete Employee", labels[14])
	assert.Equal(t, ExitLabel, labels[15])
}

func TestExitAndAbort(t *testing.T) {
	r := newRepo(t)
	out := run(t, r, exit())
	assert.Contains(t, out, "___")

	var buf bytes.Buffer
	assert.NoError(t, New(r, abortingPrompter{}, &buf, zerolog.Nop()).Run(context.Background()))
}

func TestViewActions(t *testing.T) {
	r := newRepo(t)

	tests := []struct {
		name  string
		steps []step
		want  []string
	}{
		{name: "departments", steps: then(sel("View Departments")), want: []string{"All Departments", "Engineering"}},
		{name: "budgets", steps: then(sel("View Department Budgets")), want: []string{"Budget Utilization", "$125,000.00"}},
		{name: "roles", steps: then(sel("View Roles")), want: []string{"Lead", "$50,000.00"}},
		{name: "employees", steps: then(sel("View Employees")), want: []string{"Grace", "Ada Lovelace", "Mgr Salary"}},
		{
			name:  "by manager",
			steps: then(sel("View Employees By Manager"), sel("Ada Lovelace (Engineering)")),
			want:  []string{"Employees managed by Ada Lovelace", "Hopper"},
		},
		{
			name:  "by department",
			steps: then(sel("View Employees By Department"), sel("Engineering")),
			want:  []string{"Employees in Engineering", "Grace Hopper", "Engineer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := run(t, r, tt.steps)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestAddFlows(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	out := run(t, r,
		[]step{sel("Add a Department"), input("Sales"), confirm(true), confirm(true)},
		[]step{sel("Add a Role"), input("Account Rep"), input("$40,000"), sel("Sales"), confirm(true), confirm(true)},
		then(sel("Add an Employee"), input("Sam"), input("Rivera"), sel("Account Rep (Sales)"), sel("Ada Lovelace (Engineering)")),
	)
	assert.Contains(t, out, "Added department Sales.")
	assert.Contains(t, out, "Added role Account Rep.")
	assert.Contains(t, out, "Added employee Sam Rivera.")

	rs, err := r.ListEmployees(ctx, types.EmployeeQuery{IncludeManagerInfo: true})
	require.NoError(t, err)
	var found bool
	for _, e := range rs.Rows {
		if e.FullName() == "Sam Rivera" {
			found = true
			assert.Equal(t, "Account Rep", e.Role)
			require.NotNil(t, e.ManagerName)
			assert.Equal(t, "Ada Lovelace", *e.ManagerName)
			assert.True(t, decimal.NewFromInt(40000).Equal(e.Salary))
		}
	}
	assert.True(t, found)
}

func TestAddDeclinedAndInvalid(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	out := run(t, r,
		[]step{sel("Add a Department"), input("Legal"), confirm(false), confirm(true)},
		[]step{sel("Add a Role"), input("Clerk"), input("lots"), confirm(true)},
		then(sel("Add a Department"), input("Engineering"), confirm(true)),
	)
	assert.Contains(t, out, `salary "lots" is not a number`)
	assert.Contains(t, out, "rejected by the store")

	rs, err := r.ListDepartments(ctx, false)
	require.NoError(t, err)
	assert.Len(t, rs.Rows, 1)
}

func TestUpdateFlows(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	out := run(t, r,
		[]step{sel("Update a Department"), sel("Engineering"), input("R&D"), confirm(true)},
		[]step{sel("Update a Role"), sel("Engineer (R&D)"), input(""), input("55000"), sel("R&D"), confirm(true)},
		then(
			sel("Update an Employee"), sel("Grace Hopper (Engineer, R&D)"),
			input(""), input("Brewster Hopper"), sel("Lead (R&D)"), sel(noManager),
		),
	)
	assert.Contains(t, out, "Updated department R&D.")
	assert.Contains(t, out, "Updated role Engineer.")
	assert.Contains(t, out, "Updated employee Grace Brewster Hopper.")

	managers, err := r.ListManagers(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, managers.Rows, 2, "grace no longer has a manager")

	budgets, err := r.ListDepartmentBudgets(ctx)
	require.NoError(t, err)
	require.Len(t, budgets.Rows, 1)
	assert.True(t, decimal.NewFromInt(150000).Equal(budgets.Rows[0].TotalBudget))
}

func TestUpdateEmployeeOffersNoSelfManagement(t *testing.T) {
	r := newRepo(t)

	p := &scriptedPrompter{t: t}
	var offered []string
	m := New(r, recordingPrompter{p, &offered}, &bytes.Buffer{}, zerolog.Nop())
	p.steps = then(
		sel("Update an Employee"), sel("Ada Lovelace (Lead, Engineering)"),
		input(""), input(""), sel("Lead (Engineering)"), sel(noManager),
	)
	require.NoError(t, m.Run(context.Background()))
	assert.NotContains(t, offered, "Ada Lovelace (Engineering)")
	assert.Contains(t, offered, noManager)
}

// recordingPrompter keeps the options of the last Select.
type recordingPrompter struct {
	*scriptedPrompter
	last *[]string
}

func (p recordingPrompter) Select(message string, options []string) (int, error) {
	*p.last = options
	return p.scriptedPrompter.Select(message, options)
}

func TestDeleteFlows(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	out := run(t, r,
		[]step{sel("Delete Department"), sel("Engineering"), confirm(true), confirm(true)},
		[]step{sel("Delete Role"), sel(goBack), confirm(true)},
		[]step{sel("Delete Employee"), sel("Grace Hopper"), confirm(false), confirm(true)},
		then(sel("Delete Employee"), sel("Grace Hopper"), confirm(true)),
	)
	assert.Contains(t, out, "rejected by the store", "department still has roles")
	assert.Contains(t, out, "Deleted employee Grace Hopper.")

	rs, err := r.ListEmployees(ctx, types.EmployeeQuery{})
	require.NoError(t, err)
	require.Len(t, rs.Rows, 1)
	assert.Equal(t, "Ada", rs.Rows[0].FirstName)
}
