package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectQueryBuild(t *testing.T) {
	tests := []struct {
		name     string
		query    *selectQuery
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "columns only",
			query:   newSelect("departments d").column("d.name"),
			wantSQL: "SELECT d.name FROM departments d",
		},
		{
			name: "joins and conditions keep argument order",
			query: newSelect("employees e").
				column("e.id", "e.first_name").
				join("LEFT JOIN roles r ON e.role_id = r.id").
				where("r.department_id = ?", int64(3)).
				where("e.manager_id IS NULL").
				where("e.role_id = ?", int64(7)),
			wantSQL:  "SELECT e.id, e.first_name FROM employees e LEFT JOIN roles r ON e.role_id = r.id WHERE r.department_id = ? AND e.manager_id IS NULL AND e.role_id = ?",
			wantArgs: []any{int64(3), int64(7)},
		},
		{
			name: "group by",
			query: newSelect("departments d").
				column("d.name", "COUNT(e.id)").
				join("LEFT JOIN employees e ON e.id = d.id").
				group("d.id", "d.name"),
			wantSQL: "SELECT d.name, COUNT(e.id) FROM departments d LEFT JOIN employees e ON e.id = d.id GROUP BY d.id, d.name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.query.build()
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
