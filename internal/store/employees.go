package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/orgchart/pkg/types"
)

// Join chains shared by the employee reads. The subject side is aliased
// e/r/d and the manager side m/mr/md so both can appear in one statement.
var (
	subjectJoins = []string{
		"LEFT JOIN roles r ON e.role_id = r.id",
		"LEFT JOIN departments d ON r.department_id = d.id",
	}
	managerJoins = []string{
		"LEFT JOIN employees m ON e.manager_id = m.id",
		"LEFT JOIN roles mr ON m.role_id = mr.id",
		"LEFT JOIN departments md ON mr.department_id = md.id",
	}
)

// CreateEmployee inserts an employee. An unknown role or manager fails with
// types.ErrConstraintViolation.
func (r *Repository) CreateEmployee(ctx context.Context, in types.NewEmployee) (types.InsertResult, error) {
	const op = "create employee"

	in = in.Normalize()
	if err := types.Validate(in); err != nil {
		return types.InsertResult{}, invalid(op, err)
	}

	var res types.InsertResult
	err := r.do(op, func(db queryer) error {
		var err error
		res, err = r.insert(ctx, db, op,
			"INSERT INTO employees (first_name, last_name, role_id, manager_id) VALUES (?, ?, ?, ?)",
			in.FirstName, in.LastName, in.RoleID, nullableID(in.ManagerID),
		)
		return err
	})
	return res, err
}

// ListEmployees returns employees enriched with department, role and salary.
// With IncludeManagerInfo the manager's name, department, role and salary
// come from a second, independently aliased join chain; employees without a
// manager keep their row with nil manager fields.
func (r *Repository) ListEmployees(ctx context.Context, eq types.EmployeeQuery) (*types.RowSet[types.EmployeeRow], error) {
	const op = "list employees"

	if err := types.Validate(eq.Filter); err != nil {
		return nil, invalid(op, err)
	}

	q := newSelect("employees e")
	if eq.IncludeID {
		q.column("e.id")
	}
	q.column("e.first_name", "e.last_name", "d.name", "r.title", "r.salary").
		join(subjectJoins...)
	if eq.IncludeManagerInfo {
		q.column("m.id", "m.first_name", "m.last_name", "md.name", "mr.title", "mr.salary").
			join(managerJoins...)
	}

	f := eq.Filter
	if f.DepartmentID != nil {
		q.where("d.id = ?", *f.DepartmentID)
	}
	if f.RoleID != nil {
		q.where("e.role_id = ?", *f.RoleID)
	}
	if f.ManagerID != nil {
		q.where("e.manager_id = ?", *f.ManagerID)
	}

	rs := &types.RowSet[types.EmployeeRow]{
		Columns:   types.EmployeeColumns(eq.IncludeID, eq.IncludeManagerInfo),
		IncludeID: eq.IncludeID,
	}
	err := r.do(op, func(db queryer) error {
		return r.query(ctx, db, op, q, func(rows *sql.Rows) error {
			row, err := scanEmployee(rows, eq.IncludeID, eq.IncludeManagerInfo)
			if err != nil {
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

func scanEmployee(rows *sql.Rows, includeID, includeManager bool) (types.EmployeeRow, error) {
	var (
		row         types.EmployeeRow
		department  sql.NullString
		title       sql.NullString
		salary      decimal.NullDecimal
		mgrID       sql.NullInt64
		mgrFirst    sql.NullString
		mgrLast     sql.NullString
		mgrDept     sql.NullString
		mgrTitle    sql.NullString
		mgrSalary   decimal.NullDecimal
		destination []any
	)

	if includeID {
		destination = append(destination, &row.ID)
	}
	destination = append(destination, &row.FirstName, &row.LastName, &department, &title, &salary)
	if includeManager {
		destination = append(destination, &mgrID, &mgrFirst, &mgrLast, &mgrDept, &mgrTitle, &mgrSalary)
	}
	if err := rows.Scan(destination...); err != nil {
		return types.EmployeeRow{}, err
	}

	row.Department = department.String
	row.Role = title.String
	row.Salary = cents(salary.Decimal)

	if mgrID.Valid {
		id := mgrID.Int64
		name := mgrFirst.String + " " + mgrLast.String
		row.ManagerID = &id
		row.ManagerName = &name
		row.ManagerDepartment = nullString(mgrDept)
		row.ManagerRole = nullString(mgrTitle)
		if mgrSalary.Valid {
			s := cents(mgrSalary.Decimal)
			row.ManagerSalary = &s
		}
	}
	return row, nil
}

// ListEmployeesByDepartment returns the full name and role title of every
// employee whose role belongs to departmentID.
func (r *Repository) ListEmployeesByDepartment(ctx context.Context, departmentID int64) (*types.RowSet[types.DepartmentMemberRow], error) {
	const op = "list employees by department"

	if departmentID <= 0 {
		return nil, invalid(op, fmt.Errorf("%w: department id must be greater than 0", types.ErrInvalidArgument))
	}

	q := newSelect("employees e").
		column("e.first_name", "e.last_name", "r.title").
		join(subjectJoins...).
		where("d.id = ?", departmentID)

	rs := &types.RowSet[types.DepartmentMemberRow]{Columns: types.DepartmentMemberColumns}
	err := r.do(op, func(db queryer) error {
		return r.query(ctx, db, op, q, func(rows *sql.Rows) error {
			var first, last string
			var title sql.NullString
			if err := rows.Scan(&first, &last, &title); err != nil {
				return err
			}
			rs.Rows = append(rs.Rows, types.DepartmentMemberRow{
				Employee: first + " " + last,
				Title:    title.String,
			})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// ListManagers returns the employees that have no manager of their own,
// optionally restricted to one department. Being a manager is detected from
// the reporting structure, not declared by role or flag.
func (r *Repository) ListManagers(ctx context.Context, departmentID *int64) (*types.RowSet[types.ManagerRow], error) {
	const op = "list managers"

	if departmentID != nil && *departmentID <= 0 {
		return nil, invalid(op, fmt.Errorf("%w: department id must be greater than 0", types.ErrInvalidArgument))
	}

	q := newSelect("employees e").
		column("e.id", "e.first_name", "e.last_name", "d.name").
		join(subjectJoins...).
		where("e.manager_id IS NULL")
	if departmentID != nil {
		q.where("d.id = ?", *departmentID)
	}

	rs := &types.RowSet[types.ManagerRow]{Columns: types.ManagerColumns, IncludeID: true}
	err := r.do(op, func(db queryer) error {
		return r.query(ctx, db, op, q, func(rows *sql.Rows) error {
			var row types.ManagerRow
			var first, last string
			var department sql.NullString
			if err := rows.Scan(&row.ID, &first, &last, &department); err != nil {
				return err
			}
			row.Name = first + " " + last
			row.Department = department.String
			rs.Rows = append(rs.Rows, row)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// UpdateEmployee replaces name, role and manager of employee in.ID.
// Assigning the employee as their own manager, directly or through the
// proposed manager's chain, fails with types.ErrInvalidArgument.
func (r *Repository) UpdateEmployee(ctx context.Context, in types.EmployeeUpdate) (int64, error) {
	const op = "update employee"

	in = in.Normalize()
	if err := types.Validate(in); err != nil {
		return 0, invalid(op, err)
	}

	var n int64
	err := r.do(op, func(db queryer) error {
		if in.ManagerID != nil {
			if err := r.checkReportingChain(ctx, db, op, in.ID, *in.ManagerID); err != nil {
				return err
			}
		}

		var err error
		n, err = r.exec(ctx, db, op,
			"UPDATE employees SET first_name = ?, last_name = ?, role_id = ?, manager_id = ? WHERE id = ?",
			in.FirstName, in.LastName, in.RoleID, nullableID(in.ManagerID), in.ID,
		)
		return err
	})
	return n, err
}

// checkReportingChain walks upward from managerID and fails if it reaches
// employeeID. A missing link ends the walk; the foreign key reports an
// unknown manager when the update runs.
func (r *Repository) checkReportingChain(ctx context.Context, db queryer, op string, employeeID, managerID int64) error {
	stmt := r.dialect.rebind("SELECT manager_id FROM employees WHERE id = ?")
	seen := make(map[int64]bool)

	for current := managerID; ; {
		if current == employeeID {
			return invalid(op, fmt.Errorf("%w: employee %d would end up managing themselves through employee %d",
				types.ErrInvalidArgument, employeeID, managerID))
		}
		if seen[current] {
			// Pre-existing cycle that does not involve this employee.
			return nil
		}
		seen[current] = true

		var next sql.NullInt64
		err := db.QueryRowContext(ctx, stmt, current).Scan(&next)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && !next.Valid) {
			return nil
		}
		if err != nil {
			return r.fail(op, fmt.Errorf("walking reporting chain: %w", err))
		}
		current = next.Int64
	}
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
