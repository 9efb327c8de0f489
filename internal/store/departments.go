package store

import (
	"context"
	"database/sql"

	"github.com/mesh-intelligence/orgchart/pkg/types"
)

// CreateDepartment inserts a department. A duplicate name fails with
// types.ErrConstraintViolation.
func (r *Repository) CreateDepartment(ctx context.Context, in types.NewDepartment) (types.InsertResult, error) {
	const op = "create department"

	in = in.Normalize()
	if err := types.Validate(in); err != nil {
		return types.InsertResult{}, invalid(op, err)
	}

	var res types.InsertResult
	err := r.do(op, func(db queryer) error {
		var err error
		res, err = r.insert(ctx, db, op, "INSERT INTO departments (name) VALUES (?)", in.Name)
		return err
	})
	return res, err
}

// ListDepartments returns every department. Without ids the name column is
// labelled "All Departments".
func (r *Repository) ListDepartments(ctx context.Context, includeID bool) (*types.RowSet[types.DepartmentRow], error) {
	const op = "list departments"

	q := newSelect("departments d")
	if includeID {
		q.column("d.id")
	}
	q.column("d.name")

	rs := &types.RowSet[types.DepartmentRow]{
		Columns:   types.DepartmentColumns(includeID),
		IncludeID: includeID,
	}
	err := r.do(op, func(db queryer) error {
		return r.query(ctx, db, op, q, func(rows *sql.Rows) error {
			var row types.DepartmentRow
			dest := []any{&row.Name}
			if includeID {
				dest = []any{&row.ID, &row.Name}
			}
			if err := rows.Scan(dest...); err != nil {
				return err
			}
			rs.Rows = append(rs.Rows, row)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// ListDepartmentBudgets sums the salaries of each department's employees
// through their roles. Departments without employees report a zero total.
func (r *Repository) ListDepartmentBudgets(ctx context.Context) (*types.RowSet[types.BudgetRow], error) {
	const op = "list department budgets"

	q := newSelect("departments d").
		column(
			"d.id",
			"d.name",
			"COUNT(e.id)",
			"COALESCE(SUM(CASE WHEN e.id IS NULL THEN 0 ELSE r.salary END), 0)",
		).
		join(
			"LEFT JOIN roles r ON r.department_id = d.id",
			"LEFT JOIN employees e ON e.role_id = r.id",
		).
		group("d.id", "d.name")

	rs := &types.RowSet[types.BudgetRow]{Columns: types.BudgetColumns}
	err := r.do(op, func(db queryer) error {
		return r.query(ctx, db, op, q, func(rows *sql.Rows) error {
			var row types.BudgetRow
			if err := rows.Scan(&row.DepartmentID, &row.Department, &row.Headcount, &row.TotalBudget); err != nil {
				return err
			}
			row.TotalBudget = cents(row.TotalBudget)
			rs.Rows = append(rs.Rows, row)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// UpdateDepartment renames department in.ID and returns the affected-row
// count. Renaming to the current name still counts the row.
func (r *Repository) UpdateDepartment(ctx context.Context, in types.DepartmentUpdate) (int64, error) {
	const op = "update department"

	in = in.Normalize()
	if err := types.Validate(in); err != nil {
		return 0, invalid(op, err)
	}

	var n int64
	err := r.do(op, func(db queryer) error {
		var err error
		n, err = r.exec(ctx, db, op, "UPDATE departments SET name = ? WHERE id = ?", in.Name, in.ID)
		return err
	})
	return n, err
}
