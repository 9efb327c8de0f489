package store

import (
	"context"
	"database/sql"

	"github.com/mesh-intelligence/orgchart/pkg/types"
)

// CreateRole inserts a role. An unknown department fails with
// types.ErrConstraintViolation.
func (r *Repository) CreateRole(ctx context.Context, in types.NewRole) (types.InsertResult, error) {
	const op = "create role"

	in = in.Normalize()
	if err := types.Validate(in); err != nil {
		return types.InsertResult{}, invalid(op, err)
	}

	var res types.InsertResult
	err := r.do(op, func(db queryer) error {
		var err error
		res, err = r.insert(ctx, db, op,
			"INSERT INTO roles (title, salary, department_id) VALUES (?, ?, ?)",
			in.Title, in.Salary, in.DepartmentID,
		)
		return err
	})
	return res, err
}

// ListRoles returns every role with its department name. A role always has
// a department, so the join is inner.
func (r *Repository) ListRoles(ctx context.Context, includeID bool) (*types.RowSet[types.RoleRow], error) {
	const op = "list roles"

	q := newSelect("roles r")
	if includeID {
		q.column("r.id", "d.id")
	}
	q.column("d.name", "r.title", "r.salary").
		join("JOIN departments d ON r.department_id = d.id")

	rs := &types.RowSet[types.RoleRow]{
		Columns:   types.RoleColumns(includeID),
		IncludeID: includeID,
	}
	err := r.do(op, func(db queryer) error {
		return r.query(ctx, db, op, q, func(rows *sql.Rows) error {
			var row types.RoleRow
			dest := []any{&row.Department, &row.Title, &row.Salary}
			if includeID {
				dest = append([]any{&row.ID, &row.DepartmentID}, dest...)
			}
			if err := rows.Scan(dest...); err != nil {
				return err
			}
			row.Salary = cents(row.Salary)
			rs.Rows = append(rs.Rows, row)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// UpdateRole replaces title, salary and department of role in.ID.
func (r *Repository) UpdateRole(ctx context.Context, in types.RoleUpdate) (int64, error) {
	const op = "update role"

	in = in.Normalize()
	if err := types.Validate(in); err != nil {
		return 0, invalid(op, err)
	}

	var n int64
	err := r.do(op, func(db queryer) error {
		var err error
		n, err = r.exec(ctx, db, op,
			"UPDATE roles SET title = ?, salary = ?, department_id = ? WHERE id = ?",
			in.Title, in.Salary, in.DepartmentID, in.ID,
		)
		return err
	})
	return n, err
}
