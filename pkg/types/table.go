// Table allow-list for generic deletes.
package types

import (
	"fmt"
	"strings"
)

// Table names one of the three entity tables. Only the constants below are
// valid; anything else is rejected before it can reach query text.
type Table string

// Entity tables.
const (
	TableDepartments Table = "departments"
	TableRoles       Table = "roles"
	TableEmployees   Table = "employees"
)

// Tables lists every valid table in dependency order.
var Tables = []Table{
	TableDepartments,
	TableRoles,
	TableEmployees,
}

// Valid reports whether t is one of the known tables.
func (t Table) Valid() bool {
	switch t {
	case TableDepartments, TableRoles, TableEmployees:
		return true
	}
	return false
}

func (t Table) String() string {
	return string(t)
}

// ParseTable maps user input to a Table. Matching is case-insensitive and
// accepts the singular form ("role" for "roles").
func ParseTable(s string) (Table, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, t := range Tables {
		if name == string(t) || name+"s" == string(t) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown table %q (valid: %s)", ErrInvalidArgument, s, tableList())
}

func tableList() string {
	names := make([]string, len(Tables))
	for i, t := range Tables {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
