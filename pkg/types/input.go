// Input structs accepted by the store. Each is normalized (whitespace
// trimmed) and validated before any statement is issued.

package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// InsertResult reports the store-assigned key of a created row.
type InsertResult struct {
	ID           int64 `json:"id" yaml:"id"`
	RowsAffected int64 `json:"rows_affected" yaml:"rows_affected"`
}

// NewDepartment is the input for creating a department.
type NewDepartment struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (n NewDepartment) Normalize() NewDepartment {
	n.Name = strings.TrimSpace(n.Name)
	return n
}

// NewRole is the input for creating a role.
type NewRole struct {
	Title        string          `json:"title" validate:"required,max=100"`
	Salary       decimal.Decimal `json:"salary" validate:"gte=0"`
	DepartmentID int64           `json:"department_id" validate:"gt=0"`
}

func (n NewRole) Normalize() NewRole {
	n.Title = strings.TrimSpace(n.Title)
	return n
}

// NewEmployee is the input for creating an employee. A nil ManagerID
// creates a top-level employee.
type NewEmployee struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	RoleID    int64  `json:"role_id" validate:"gt=0"`
	ManagerID *int64 `json:"manager_id" validate:"omitnil,gt=0"`
}

func (n NewEmployee) Normalize() NewEmployee {
	n.FirstName = strings.TrimSpace(n.FirstName)
	n.LastName = strings.TrimSpace(n.LastName)
	return n
}

// DepartmentUpdate replaces the name of department ID.
type DepartmentUpdate struct {
	ID   int64  `json:"id" validate:"gt=0"`
	Name string `json:"name" validate:"required,max=100"`
}

func (u DepartmentUpdate) Normalize() DepartmentUpdate {
	u.Name = strings.TrimSpace(u.Name)
	return u
}

// RoleUpdate replaces title, salary and department of role ID.
type RoleUpdate struct {
	ID           int64           `json:"id" validate:"gt=0"`
	Title        string          `json:"title" validate:"required,max=100"`
	Salary       decimal.Decimal `json:"salary" validate:"gte=0"`
	DepartmentID int64           `json:"department_id" validate:"gt=0"`
}

func (u RoleUpdate) Normalize() RoleUpdate {
	u.Title = strings.TrimSpace(u.Title)
	return u
}

// EmployeeUpdate replaces every mutable column of employee ID. A nil
// ManagerID clears the manager.
type EmployeeUpdate struct {
	ID        int64  `json:"id" validate:"gt=0"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	RoleID    int64  `json:"role_id" validate:"gt=0"`
	ManagerID *int64 `json:"manager_id" validate:"omitnil,gt=0"`
}

func (u EmployeeUpdate) Normalize() EmployeeUpdate {
	u.FirstName = strings.TrimSpace(u.FirstName)
	u.LastName = strings.TrimSpace(u.LastName)
	return u
}

// Check rejects an employee managing themselves.
func (u EmployeeUpdate) Check() error {
	if u.ManagerID != nil && *u.ManagerID == u.ID {
		return invalidf("employee %d cannot be their own manager", u.ID)
	}
	return nil
}

// EmployeeFilter narrows ListEmployees. Set fields are combined with AND.
type EmployeeFilter struct {
	DepartmentID *int64 `json:"department_id" validate:"omitnil,gt=0"`
	RoleID       *int64 `json:"role_id" validate:"omitnil,gt=0"`
	ManagerID    *int64 `json:"manager_id" validate:"omitnil,gt=0"`
}

// EmployeeQuery selects the shape of a ListEmployees result.
type EmployeeQuery struct {
	IncludeID          bool
	IncludeManagerInfo bool
	Filter             EmployeeFilter
}

// ID returns a pointer to id, for optional fields.
func ID(id int64) *int64 {
	return &id
}
