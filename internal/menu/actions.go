package menu

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/orgchart/pkg/types"
)

const (
	goBack       = "Go back"
	noManager    = "(None)"
	keepBlankMsg = " (blank to keep the same)"
)

func (m *Menu) viewDepartments(ctx context.Context) error {
	rs, err := m.repo.ListDepartments(ctx, false)
	if err != nil {
		return err
	}
	return m.show("Departments", rs)
}

func (m *Menu) viewBudgets(ctx context.Context) error {
	rs, err := m.repo.ListDepartmentBudgets(ctx)
	if err != nil {
		return err
	}
	return m.show("Department Budgets", rs)
}

func (m *Menu) viewRoles(ctx context.Context) error {
	rs, err := m.repo.ListRoles(ctx, false)
	if err != nil {
		return err
	}
	return m.show("Roles", rs)
}

func (m *Menu) viewEmployees(ctx context.Context) error {
	rs, err := m.repo.ListEmployees(ctx, types.EmployeeQuery{IncludeManagerInfo: true})
	if err != nil {
		return err
	}
	return m.show("Employees", rs)
}

func (m *Menu) viewEmployeesByManager(ctx context.Context) error {
	managers, err := m.repo.ListManagers(ctx, nil)
	if err != nil {
		return err
	}
	if managers.Len() == 0 {
		fmt.Fprintln(m.out, "There are no managers yet.")
		return nil
	}

	idx, err := m.prompt.Select("Select a manager to view the employees they manage:", managerLabels(managers.Rows))
	if err != nil {
		return err
	}
	mgr := managers.Rows[idx]

	rs, err := m.repo.ListEmployees(ctx, types.EmployeeQuery{Filter: types.EmployeeFilter{ManagerID: types.ID(mgr.ID)}})
	if err != nil {
		return err
	}
	return m.show("Employees managed by "+mgr.Name, rs)
}

func (m *Menu) viewEmployeesByDepartment(ctx context.Context) error {
	dept, ok, err := m.pickDepartment(ctx, "Select a department to view its employees:", false)
	if err != nil || !ok {
		return err
	}

	rs, err := m.repo.ListEmployeesByDepartment(ctx, dept.ID)
	if err != nil {
		return err
	}
	return m.show("Employees in "+dept.Name, rs)
}

func (m *Menu) addDepartment(ctx context.Context) error {
	name, err := m.prompt.Input("Enter the new department's name:", "")
	if err != nil {
		return err
	}
	if ok, err := m.prompt.Confirm("Confirm add department?", true); err != nil || !ok {
		return err
	}

	if _, err := m.repo.CreateDepartment(ctx, types.NewDepartment{Name: name}); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Added department %s.\n\n", strings.TrimSpace(name))
	return m.viewDepartments(ctx)
}

func (m *Menu) addRole(ctx context.Context) error {
	depts, err := m.repo.ListDepartments(ctx, true)
	if err != nil {
		return err
	}
	if depts.Len() == 0 {
		fmt.Fprintln(m.out, "Add a department first.")
		return nil
	}

	title, err := m.prompt.Input("Enter the new role's title:", "")
	if err != nil {
		return err
	}
	salary, err := m.askSalary("Enter the salary:", "")
	if err != nil {
		return err
	}
	idx, err := m.prompt.Select("Select the department:", departmentLabels(depts.Rows))
	if err != nil {
		return err
	}
	if ok, err := m.prompt.Confirm("Confirm add role?", true); err != nil || !ok {
		return err
	}

	in := types.NewRole{Title: title, Salary: salary, DepartmentID: depts.Rows[idx].ID}
	if _, err := m.repo.CreateRole(ctx, in); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Added role %s.\n\n", strings.TrimSpace(title))
	return m.viewRoles(ctx)
}

func (m *Menu) addEmployee(ctx context.Context) error {
	roles, err := m.repo.ListRoles(ctx, true)
	if err != nil {
		return err
	}
	if roles.Len() == 0 {
		fmt.Fprintln(m.out, "Add a role first.")
		return nil
	}
	managers, err := m.repo.ListManagers(ctx, nil)
	if err != nil {
		return err
	}

	first, err := m.prompt.Input("Enter the new employee's first name:", "")
	if err != nil {
		return err
	}
	last, err := m.prompt.Input("Enter the new employee's last name:", "")
	if err != nil {
		return err
	}
	roleIdx, err := m.prompt.Select("Select the new employee's role:", roleLabels(roles.Rows))
	if err != nil {
		return err
	}
	managerID, err := m.pickManager("Select the new employee's manager:", managers.Rows, 0)
	if err != nil {
		return err
	}

	in := types.NewEmployee{FirstName: first, LastName: last, RoleID: roles.Rows[roleIdx].ID, ManagerID: managerID}
	if _, err := m.repo.CreateEmployee(ctx, in); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Added employee %s %s.\n\n", strings.TrimSpace(first), strings.TrimSpace(last))
	return m.viewEmployees(ctx)
}

func (m *Menu) updateDepartment(ctx context.Context) error {
	dept, ok, err := m.pickDepartment(ctx, "Select the department you would like to update:", false)
	if err != nil || !ok {
		return err
	}

	name, err := m.prompt.Input("Edit the department's name:"+keepBlankMsg, dept.Name)
	if err != nil {
		return err
	}
	n, err := m.repo.UpdateDepartment(ctx, types.DepartmentUpdate{ID: dept.ID, Name: keep(name, dept.Name)})
	if err != nil {
		return err
	}
	if n == 0 {
		return gone("department", dept.Name)
	}
	fmt.Fprintf(m.out, "Updated department %s.\n\n", keep(name, dept.Name))
	return m.viewDepartments(ctx)
}

func (m *Menu) updateRole(ctx context.Context) error {
	roles, err := m.repo.ListRoles(ctx, true)
	if err != nil {
		return err
	}
	if roles.Len() == 0 {
		fmt.Fprintln(m.out, "There are no roles yet.")
		return nil
	}
	idx, err := m.prompt.Select("Select the role you would like to update:", roleLabels(roles.Rows))
	if err != nil {
		return err
	}
	role := roles.Rows[idx]

	depts, err := m.repo.ListDepartments(ctx, true)
	if err != nil {
		return err
	}
	title, err := m.prompt.Input("Edit the role's title:"+keepBlankMsg, role.Title)
	if err != nil {
		return err
	}
	salary, err := m.askSalary("Edit the role's salary:"+keepBlankMsg, role.Salary.StringFixed(2))
	if err != nil {
		return err
	}
	deptIdx, err := m.prompt.Select("Change the role's department:", departmentLabels(depts.Rows))
	if err != nil {
		return err
	}

	in := types.RoleUpdate{ID: role.ID, Title: keep(title, role.Title), Salary: salary, DepartmentID: depts.Rows[deptIdx].ID}
	n, err := m.repo.UpdateRole(ctx, in)
	if err != nil {
		return err
	}
	if n == 0 {
		return gone("role", role.Title)
	}
	fmt.Fprintf(m.out, "Updated role %s.\n\n", in.Title)
	return m.viewRoles(ctx)
}

func (m *Menu) updateEmployee(ctx context.Context) error {
	emps, err := m.repo.ListEmployees(ctx, types.EmployeeQuery{IncludeID: true, IncludeManagerInfo: true})
	if err != nil {
		return err
	}
	if emps.Len() == 0 {
		fmt.Fprintln(m.out, "There are no employees yet.")
		return nil
	}
	roles, err := m.repo.ListRoles(ctx, true)
	if err != nil {
		return err
	}
	managers, err := m.repo.ListManagers(ctx, nil)
	if err != nil {
		return err
	}

	idx, err := m.prompt.Select("Select the employee you would like to update:", employeeLabels(emps.Rows))
	if err != nil {
		return err
	}
	emp := emps.Rows[idx]

	first, err := m.prompt.Input("Edit the employee's first name:"+keepBlankMsg, emp.FirstName)
	if err != nil {
		return err
	}
	last, err := m.prompt.Input("Edit the employee's last name:"+keepBlankMsg, emp.LastName)
	if err != nil {
		return err
	}
	roleIdx, err := m.prompt.Select("Select the new role for the employee:", roleLabels(roles.Rows))
	if err != nil {
		return err
	}
	managerID, err := m.pickManager("Select the new manager for the employee:", managers.Rows, emp.ID)
	if err != nil {
		return err
	}

	in := types.EmployeeUpdate{
		ID:        emp.ID,
		FirstName: keep(first, emp.FirstName),
		LastName:  keep(last, emp.LastName),
		RoleID:    roles.Rows[roleIdx].ID,
		ManagerID: managerID,
	}
	n, err := m.repo.UpdateEmployee(ctx, in)
	if err != nil {
		return err
	}
	if n == 0 {
		return gone("employee", emp.FullName())
	}
	fmt.Fprintf(m.out, "Updated employee %s %s.\n\n", in.FirstName, in.LastName)
	return m.viewEmployees(ctx)
}

func (m *Menu) deleteDepartment(ctx context.Context) error {
	dept, ok, err := m.pickDepartment(ctx, "Select the department to delete:", true)
	if err != nil || !ok {
		return err
	}
	return m.remove(ctx, types.TableDepartments, dept.ID, "department", dept.Name, m.viewDepartments)
}

func (m *Menu) deleteRole(ctx context.Context) error {
	roles, err := m.repo.ListRoles(ctx, true)
	if err != nil {
		return err
	}
	idx, err := m.prompt.Select("Select the role to delete:", append(roleLabels(roles.Rows), goBack))
	if err != nil || idx >= roles.Len() {
		return err
	}
	role := roles.Rows[idx]
	return m.remove(ctx, types.TableRoles, role.ID, "role", role.Title, m.viewRoles)
}

func (m *Menu) deleteEmployee(ctx context.Context) error {
	emps, err := m.repo.ListEmployees(ctx, types.EmployeeQuery{IncludeID: true})
	if err != nil {
		return err
	}
	labels := make([]string, 0, emps.Len()+1)
	for _, e := range emps.Rows {
		labels = append(labels, e.FullName())
	}
	idx, err := m.prompt.Select("Select the employee to delete:", append(labels, goBack))
	if err != nil || idx >= emps.Len() {
		return err
	}
	emp := emps.Rows[idx]
	return m.remove(ctx, types.TableEmployees, emp.ID, "employee", emp.FullName(), m.viewEmployees)
}

// remove confirms and deletes one row, then shows the refreshed listing.
func (m *Menu) remove(ctx context.Context, table types.Table, id int64, kind, name string, then func(context.Context) error) error {
	ok, err := m.prompt.Confirm(fmt.Sprintf("Delete %s %s?", kind, name), false)
	if err != nil || !ok {
		return err
	}

	n, err := m.repo.Delete(ctx, table, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return gone(kind, name)
	}
	fmt.Fprintf(m.out, "Deleted %s %s.\n\n", kind, name)
	return then(ctx)
}

// pickDepartment lists departments for selection. ok is false when there
// is nothing to pick or the user chose to go back.
func (m *Menu) pickDepartment(ctx context.Context, message string, allowBack bool) (types.DepartmentRow, bool, error) {
	depts, err := m.repo.ListDepartments(ctx, true)
	if err != nil {
		return types.DepartmentRow{}, false, err
	}
	if depts.Len() == 0 {
		fmt.Fprintln(m.out, "There are no departments yet.")
		return types.DepartmentRow{}, false, nil
	}

	labels := departmentLabels(depts.Rows)
	if allowBack {
		labels = append(labels, goBack)
	}
	idx, err := m.prompt.Select(message, labels)
	if err != nil || idx >= depts.Len() {
		return types.DepartmentRow{}, false, err
	}
	return depts.Rows[idx], true, nil
}

// pickManager offers the current managers, minus self, plus "(None)".
func (m *Menu) pickManager(message string, managers []types.ManagerRow, self int64) (*int64, error) {
	var candidates []types.ManagerRow
	for _, mgr := range managers {
		if mgr.ID != self {
			candidates = append(candidates, mgr)
		}
	}

	idx, err := m.prompt.Select(message, append(managerLabels(candidates), noManager))
	if err != nil {
		return nil, err
	}
	if idx >= len(candidates) {
		return nil, nil
	}
	return types.ID(candidates[idx].ID), nil
}

func (m *Menu) askSalary(message, def string) (decimal.Decimal, error) {
	answer, err := m.prompt.Input(message, def)
	if err != nil {
		return decimal.Decimal{}, err
	}
	answer = strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(keep(answer, def)))
	d, err := decimal.NewFromString(answer)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: salary %q is not a number", types.ErrInvalidArgument, answer)
	}
	return d, nil
}

func keep(answer, current string) string {
	if strings.TrimSpace(answer) == "" {
		return current
	}
	return answer
}

func gone(kind, name string) error {
	return fmt.Errorf("%s %s: %w", kind, name, types.ErrNotFound)
}

func departmentLabels(rows []types.DepartmentRow) []string {
	labels := make([]string, 0, len(rows)+1)
	for _, d := range rows {
		labels = append(labels, d.Name)
	}
	return labels
}

func roleLabels(rows []types.RoleRow) []string {
	labels := make([]string, 0, len(rows)+1)
	for _, r := range rows {
		labels = append(labels, fmt.Sprintf("%s (%s)", r.Title, r.Department))
	}
	return labels
}

func managerLabels(rows []types.ManagerRow) []string {
	labels := make([]string, 0, len(rows)+1)
	for _, mgr := range rows {
		labels = append(labels, fmt.Sprintf("%s (%s)", mgr.Name, mgr.Department))
	}
	return labels
}

func employeeLabels(rows []types.EmployeeRow) []string {
	labels := make([]string, 0, len(rows))
	for _, e := range rows {
		labels = append(labels, fmt.Sprintf("%s (%s, %s)", e.FullName(), e.Role, e.Department))
	}
	return labels
}
