package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mesh-intelligence/orgchart/pkg/types"
)

// GetDepartment returns department id, or types.ErrNotFound.
func (r *Repository) GetDepartment(ctx context.Context, id int64) (types.Department, error) {
	const op = "get department"

	var d types.Department
	err := r.get(ctx, op, id, "SELECT id, name FROM departments WHERE id = ?", &d.ID, &d.Name)
	return d, err
}

// GetRole returns role id, or types.ErrNotFound.
func (r *Repository) GetRole(ctx context.Context, id int64) (types.Role, error) {
	const op = "get role"

	var role types.Role
	err := r.get(ctx, op, id, "SELECT id, title, salary, department_id FROM roles WHERE id = ?",
		&role.ID, &role.Title, &role.Salary, &role.DepartmentID)
	role.Salary = cents(role.Salary)
	return role, err
}

// GetEmployee returns employee id, or types.ErrNotFound.
func (r *Repository) GetEmployee(ctx context.Context, id int64) (types.Employee, error) {
	const op = "get employee"

	var (
		e       types.Employee
		manager sql.NullInt64
	)
	err := r.get(ctx, op, id, "SELECT id, first_name, last_name, role_id, manager_id FROM employees WHERE id = ?",
		&e.ID, &e.FirstName, &e.LastName, &e.RoleID, &manager)
	if err != nil {
		return types.Employee{}, err
	}
	if manager.Valid {
		e.ManagerID = types.ID(manager.Int64)
	}
	return e, nil
}

// get scans the single row selected by stmt. A missing row is
// types.ErrNotFound.
func (r *Repository) get(ctx context.Context, op string, id int64, stmt string, dest ...any) error {
	if id <= 0 {
		return invalid(op, fmt.Errorf("%w: id must be greater than 0", types.ErrInvalidArgument))
	}

	return r.do(op, func(db queryer) error {
		start := time.Now()
		if err := db.QueryRowContext(ctx, r.dialect.rebind(stmt), id).Scan(dest...); err != nil {
			return r.fail(op, err)
		}
		r.trace(op, start, 1)
		return nil
	})
}
