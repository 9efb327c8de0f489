// Entity types persisted in the relational store.
package types

import "github.com/shopspring/decimal"

// Department is an organizational unit. Name is unique.
type Department struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Role is a job title with a salary, owned by exactly one department.
type Role struct {
	ID           int64           `json:"id" yaml:"id"`
	Title        string          `json:"title" yaml:"title"`
	Salary       decimal.Decimal `json:"salary" yaml:"salary"`
	DepartmentID int64           `json:"department_id" yaml:"department_id"`
}

// Employee holds a role and optionally reports to another employee.
// A nil ManagerID marks a root of the reporting forest.
type Employee struct {
	ID        int64  `json:"id" yaml:"id"`
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	RoleID    int64  `json:"role_id" yaml:"role_id"`
	ManagerID *int64 `json:"manager_id" yaml:"manager_id"`
}

// FullName joins first and last name with a single space.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
