package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/orgchart/internal/store"
	"github.com/mesh-intelligence/orgchart/pkg/types"
)

type employeeFlags struct {
	first string
	last  string
	role  int64
}

func (f *employeeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.first, "first", "", "first name")
	cmd.Flags().StringVar(&f.last, "last", "", "last name")
	cmd.Flags().Int64Var(&f.role, "role", 0, "role id")
	cmd.Flags().Int64("manager", 0, "manager's employee id (omit for none)")
	markRequired(cmd, "first", "last", "role")
}

func newEmployeeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employee",
		Aliases: []string{"employees", "emp"},
		Short:   "List and change employees",
	}

	var (
		includeID   bool
		withManager bool
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List employees with department, role and salary",
		Long: "List employees. Filters combine with AND. --with-manager adds the\n" +
			"manager's name, department, role and salary.",
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				f   types.EmployeeFilter
				err error
			)
			if f.DepartmentID, err = optionalID(cmd, "department"); err != nil {
				return err
			}
			if f.RoleID, err = optionalID(cmd, "role"); err != nil {
				return err
			}
			if f.ManagerID, err = optionalID(cmd, "manager"); err != nil {
				return err
			}

			repo, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			rs, err := repo.ListEmployees(cmd.Context(), types.EmployeeQuery{
				IncludeID:          includeID,
				IncludeManagerInfo: withManager,
				Filter:             f,
			})
			if err != nil {
				return err
			}
			return a.list(cmd, rs)
		},
	}
	list.Flags().BoolVar(&includeID, "ids", false, "include employee ids")
	list.Flags().BoolVar(&withManager, "with-manager", false, "include manager details")
	list.Flags().Int64("department", 0, "only employees of this department")
	list.Flags().Int64("role", 0, "only employees with this role")
	list.Flags().Int64("manager", 0, "only employees reporting to this manager")

	managers := &cobra.Command{
		Use:   "managers",
		Short: "List employees who have no manager of their own",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			dept, err := optionalID(cmd, "department")
			if err != nil {
				return err
			}
			repo, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			rs, err := repo.ListManagers(cmd.Context(), dept)
			if err != nil {
				return err
			}
			return a.list(cmd, rs)
		},
	}
	managers.Flags().Int64("department", 0, "only managers in this department")

	var addFlags employeeFlags
	add := &cobra.Command{
		Use:   "add",
		Short: "Create an employee",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := optionalID(cmd, "manager")
			if err != nil {
				return err
			}
			repo, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			res, err := repo.CreateEmployee(cmd.Context(), types.NewEmployee{
				FirstName: addFlags.first,
				LastName:  addFlags.last,
				RoleID:    addFlags.role,
				ManagerID: manager,
			})
			if err != nil {
				return err
			}
			return a.created(cmd, "employee", res)
		},
	}
	addFlags.register(add)

	var updateFlags employeeFlags
	update := &cobra.Command{
		Use:   "update <employee-id>",
		Short: "Replace an employee's name, role and manager",
		Long: "Replace every mutable field of an employee. Omitting --manager clears\n" +
			"the employee's manager.",
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("employee", args[0])
			if err != nil {
				return err
			}
			manager, err := optionalID(cmd, "manager")
			if err != nil {
				return err
			}
			repo, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			n, err := repo.UpdateEmployee(cmd.Context(), types.EmployeeUpdate{
				ID:        id,
				FirstName: updateFlags.first,
				LastName:  updateFlags.last,
				RoleID:    updateFlags.role,
				ManagerID: manager,
			})
			if err != nil {
				return err
			}
			return a.affected(cmd, "Updated", "employee", id, n)
		},
	}
	updateFlags.register(update)

	get := newGetEntityCmd(a, "employee", func(ctx context.Context, repo *store.Repository, id int64) (any, error) {
		return repo.GetEmployee(ctx, id)
	})

	cmd.AddCommand(list, managers, get, add, update, newDeleteEntityCmd(a, types.TableEmployees, "employee"))
	return cmd
}
