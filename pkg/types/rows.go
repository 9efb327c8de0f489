// Row shapes returned by the store's read operations.

package types

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Row is one record of a RowSet. Cells renders the record for display;
// includeID says whether the surrogate key columns were selected.
type Row interface {
	Cells(includeID bool) []string
}

// RowSet pairs display column headers with typed rows. Row order is whatever
// the store returned and must not be relied upon.
type RowSet[T Row] struct {
	Columns   []string
	IncludeID bool
	Rows      []T
}

// Header returns the display column headers.
func (rs *RowSet[T]) Header() []string {
	return rs.Columns
}

// Records renders every row to display cells, one cell per column.
func (rs *RowSet[T]) Records() [][]string {
	out := make([][]string, 0, len(rs.Rows))
	for _, r := range rs.Rows {
		cells := r.Cells(rs.IncludeID)
		if len(cells) > len(rs.Columns) {
			cells = cells[:len(rs.Columns)]
		}
		out = append(out, cells)
	}
	return out
}

// Data returns the typed rows for structured encoders.
func (rs *RowSet[T]) Data() any {
	if rs.Rows == nil {
		return []T{}
	}
	return rs.Rows
}

// Len returns the number of rows.
func (rs *RowSet[T]) Len() int {
	return len(rs.Rows)
}

// DepartmentRow is one row of ListDepartments.
type DepartmentRow struct {
	ID   int64  `json:"id,omitempty" yaml:"id,omitempty"`
	Name string `json:"name" yaml:"name"`
}

// DepartmentColumns returns the ListDepartments headers. Without ids the
// single name column carries the "All Departments" label.
func DepartmentColumns(includeID bool) []string {
	if includeID {
		return []string{"ID", "Name"}
	}
	return []string{"All Departments"}
}

func (r DepartmentRow) Cells(includeID bool) []string {
	if includeID {
		return []string{formatID(r.ID), r.Name}
	}
	return []string{r.Name}
}

// BudgetRow is one row of ListDepartmentBudgets.
type BudgetRow struct {
	DepartmentID int64           `json:"department_id" yaml:"department_id"`
	Department   string          `json:"department" yaml:"department"`
	Headcount    int64           `json:"headcount" yaml:"headcount"`
	TotalBudget  decimal.Decimal `json:"total_budget" yaml:"total_budget"`
}

// BudgetColumns are the ListDepartmentBudgets headers.
var BudgetColumns = []string{"Department", "Employees", "Budget Utilization"}

func (r BudgetRow) Cells(bool) []string {
	return []string{r.Department, strconv.FormatInt(r.Headcount, 10), FormatMoney(r.TotalBudget)}
}

// RoleRow is one row of ListRoles.
type RoleRow struct {
	ID           int64           `json:"id,omitempty" yaml:"id,omitempty"`
	DepartmentID int64           `json:"department_id,omitempty" yaml:"department_id,omitempty"`
	Department   string          `json:"department" yaml:"department"`
	Title        string          `json:"title" yaml:"title"`
	Salary       decimal.Decimal `json:"salary" yaml:"salary"`
}

// RoleColumns returns the ListRoles headers.
func RoleColumns(includeID bool) []string {
	cols := []string{"Department", "Title", "Salary"}
	if includeID {
		cols = append([]string{"Role ID", "Department ID"}, cols...)
	}
	return cols
}

func (r RoleRow) Cells(includeID bool) []string {
	cells := []string{r.Department, r.Title, FormatMoney(r.Salary)}
	if includeID {
		cells = append([]string{formatID(r.ID), formatID(r.DepartmentID)}, cells...)
	}
	return cells
}

// EmployeeRow is one row of ListEmployees. The Manager* fields are only
// populated when manager info was requested, and stay nil for employees
// without a manager.
type EmployeeRow struct {
	ID         int64           `json:"id,omitempty" yaml:"id,omitempty"`
	FirstName  string          `json:"first_name" yaml:"first_name"`
	LastName   string          `json:"last_name" yaml:"last_name"`
	Department string          `json:"department" yaml:"department"`
	Role       string          `json:"role" yaml:"role"`
	Salary     decimal.Decimal `json:"salary" yaml:"salary"`

	ManagerID         *int64           `json:"manager_id,omitempty" yaml:"manager_id,omitempty"`
	ManagerName       *string          `json:"manager_name,omitempty" yaml:"manager_name,omitempty"`
	ManagerDepartment *string          `json:"manager_department,omitempty" yaml:"manager_department,omitempty"`
	ManagerRole       *string          `json:"manager_role,omitempty" yaml:"manager_role,omitempty"`
	ManagerSalary     *decimal.Decimal `json:"manager_salary,omitempty" yaml:"manager_salary,omitempty"`
}

// FullName joins first and last name.
func (r EmployeeRow) FullName() string {
	return r.FirstName + " " + r.LastName
}

// EmployeeColumns returns the ListEmployees headers.
func EmployeeColumns(includeID, includeManagerInfo bool) []string {
	var cols []string
	if includeID {
		cols = append(cols, "ID")
	}
	cols = append(cols, "First Name", "Last Name", "Department", "Role", "Salary")
	if includeManagerInfo {
		cols = append(cols, "Manager", "Mgr Dept.", "Mgr Role", "Mgr Salary")
	}
	return cols
}

// Cells always renders the manager cells last; RowSet.Records trims them
// when the manager columns were not selected.
func (r EmployeeRow) Cells(includeID bool) []string {
	var cells []string
	if includeID {
		cells = append(cells, formatID(r.ID))
	}
	cells = append(cells, r.FirstName, r.LastName, r.Department, r.Role, FormatMoney(r.Salary))

	salary := ""
	if r.ManagerSalary != nil {
		salary = FormatMoney(*r.ManagerSalary)
	}
	return append(cells, deref(r.ManagerName), deref(r.ManagerDepartment), deref(r.ManagerRole), salary)
}

// DepartmentMemberRow is one row of ListEmployeesByDepartment.
type DepartmentMemberRow struct {
	Employee string `json:"employee" yaml:"employee"`
	Title    string `json:"title" yaml:"title"`
}

// DepartmentMemberColumns are the ListEmployeesByDepartment headers.
var DepartmentMemberColumns = []string{"Employee", "Title"}

func (r DepartmentMemberRow) Cells(bool) []string {
	return []string{r.Employee, r.Title}
}

// ManagerRow is one row of ListManagers.
type ManagerRow struct {
	ID         int64  `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Department string `json:"department" yaml:"department"`
}

// ManagerColumns are the ListManagers headers.
var ManagerColumns = []string{"ID", "Name", "Department"}

func (r ManagerRow) Cells(bool) []string {
	return []string{formatID(r.ID), r.Name, r.Department}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
