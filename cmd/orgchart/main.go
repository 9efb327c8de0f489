// Command orgchart manages an organization chart of departments, roles and
// employees.
package main

import "github.com/mesh-intelligence/orgchart/internal/cli"

func main() {
	cli.Execute()
}
