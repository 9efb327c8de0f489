package store

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/orgchart/pkg/types"
)

// deleteStatements holds one fixed statement per table. The statement shape
// is identical across entities; only the identifier differs, and it comes
// from this closed map rather than from the caller.
var deleteStatements = map[types.Table]string{
	types.TableDepartments: "DELETE FROM departments WHERE id = ?",
	types.TableRoles:       "DELETE FROM roles WHERE id = ?",
	types.TableEmployees:   "DELETE FROM employees WHERE id = ?",
}

// Delete removes row id from table and returns the affected-row count: 1 for
// an existing id, 0 otherwise. Rows still referenced elsewhere are protected
// by the store's foreign keys and fail with types.ErrConstraintViolation.
func (r *Repository) Delete(ctx context.Context, table types.Table, id int64) (int64, error) {
	op := "delete " + string(table)

	if !table.Valid() {
		return 0, invalid("delete", fmt.Errorf("%w: unknown table %q", types.ErrInvalidArgument, string(table)))
	}
	stmt := deleteStatements[table]
	if id <= 0 {
		return 0, invalid(op, fmt.Errorf("%w: id must be greater than 0", types.ErrInvalidArgument))
	}

	var n int64
	err := r.do(op, func(db queryer) error {
		var err error
		n, err = r.exec(ctx, db, op, stmt, id)
		return err
	})
	return n, err
}
