package store

import (
	"context"
	"fmt"
	"time"
)

// Bootstrap DDL per dialect. Statements are idempotent (IF NOT EXISTS) and
// only create what is missing; the schema is otherwise owned outside this
// program. A deleted manager leaves their reports without a manager.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS departments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name VARCHAR(100) NOT NULL UNIQUE
);`,
	`CREATE TABLE IF NOT EXISTS roles (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title VARCHAR(100) NOT NULL,
    salary DECIMAL(12,2) NOT NULL CHECK (salary >= 0),
    department_id INTEGER NOT NULL,
    FOREIGN KEY (department_id) REFERENCES departments(id)
);`,
	`CREATE TABLE IF NOT EXISTS employees (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name VARCHAR(100) NOT NULL,
    last_name VARCHAR(100) NOT NULL,
    role_id INTEGER NOT NULL,
    manager_id INTEGER,
    FOREIGN KEY (role_id) REFERENCES roles(id),
    FOREIGN KEY (manager_id) REFERENCES employees(id) ON DELETE SET NULL
);`,
	`CREATE INDEX IF NOT EXISTS idx_roles_department ON roles(department_id);`,
	`CREATE INDEX IF NOT EXISTS idx_employees_role ON employees(role_id);`,
	`CREATE INDEX IF NOT EXISTS idx_employees_manager ON employees(manager_id);`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS departments (
    id SERIAL PRIMARY KEY,
    name VARCHAR(100) NOT NULL UNIQUE
);`,
	`CREATE TABLE IF NOT EXISTS roles (
    id SERIAL PRIMARY KEY,
    title VARCHAR(100) NOT NULL,
    salary NUMERIC(12,2) NOT NULL CHECK (salary >= 0),
    department_id INTEGER NOT NULL REFERENCES departments(id)
);`,
	`CREATE TABLE IF NOT EXISTS employees (
    id SERIAL PRIMARY KEY,
    first_name VARCHAR(100) NOT NULL,
    last_name VARCHAR(100) NOT NULL,
    role_id INTEGER NOT NULL REFERENCES roles(id),
    manager_id INTEGER REFERENCES employees(id) ON DELETE SET NULL
);`,
	`CREATE INDEX IF NOT EXISTS idx_roles_department ON roles(department_id);`,
	`CREATE INDEX IF NOT EXISTS idx_employees_role ON employees(role_id);`,
	`CREATE INDEX IF NOT EXISTS idx_employees_manager ON employees(manager_id);`,
}

// MySQL ignores inline REFERENCES, so foreign keys are table constraints
// and InnoDB indexes them implicitly.
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS departments (
    id INT AUTO_INCREMENT PRIMARY KEY,
    name VARCHAR(100) NOT NULL UNIQUE
) ENGINE=InnoDB;`,
	`CREATE TABLE IF NOT EXISTS roles (
    id INT AUTO_INCREMENT PRIMARY KEY,
    title VARCHAR(100) NOT NULL,
    salary DECIMAL(12,2) NOT NULL CHECK (salary >= 0),
    department_id INT NOT NULL,
    FOREIGN KEY (department_id) REFERENCES departments(id)
) ENGINE=InnoDB;`,
	`CREATE TABLE IF NOT EXISTS employees (
    id INT AUTO_INCREMENT PRIMARY KEY,
    first_name VARCHAR(100) NOT NULL,
    last_name VARCHAR(100) NOT NULL,
    role_id INT NOT NULL,
    manager_id INT NULL,
    FOREIGN KEY (role_id) REFERENCES roles(id),
    FOREIGN KEY (manager_id) REFERENCES employees(id) ON DELETE SET NULL
) ENGINE=InnoDB;`,
}

// Bootstrap creates the departments, roles and employees tables if they do
// not exist yet.
func (r *Repository) Bootstrap(ctx context.Context) error {
	const op = "bootstrap schema"

	return r.do(op, func(db queryer) error {
		for _, stmt := range r.dialect.schema {
			start := time.Now()
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return r.fail(op, fmt.Errorf("executing schema: %w", err))
			}
			r.trace(op, start, 0)
		}
		return nil
	})
}
