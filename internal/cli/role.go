package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/orgchart/internal/store"
	"github.com/mesh-intelligence/orgchart/pkg/types"
)

type roleFlags struct {
	title      string
	salary     string
	department int64
}

func (f *roleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "role title")
	cmd.Flags().StringVar(&f.salary, "salary", "", "annual salary, e.g. 85000.00")
	cmd.Flags().Int64Var(&f.department, "department", 0, "department id")
	markRequired(cmd, "title", "salary", "department")
}

func newRoleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "role",
		Aliases: []string{"roles"},
		Short:   "List and change roles",
	}

	var includeID bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List roles with their department and salary",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			rs, err := repo.ListRoles(cmd.Context(), includeID)
			if err != nil {
				return err
			}
			return a.list(cmd, rs)
		},
	}
	list.Flags().BoolVar(&includeID, "ids", false, "include role and department ids")

	var addFlags roleFlags
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a role",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			salary, err := parseSalary(addFlags.salary)
			if err != nil {
				return err
			}
			repo, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			res, err := repo.CreateRole(cmd.Context(), types.NewRole{
				Title:        addFlags.title,
				Salary:       salary,
				DepartmentID: addFlags.department,
			})
			if err != nil {
				return err
			}
			return a.created(cmd, "role", res)
		},
	}
	addFlags.register(add)

	var updateFlags roleFlags
	update := &cobra.Command{
		Use:   "update <role-id>",
		Short: "Replace a role's title, salary and department",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("role", args[0])
			if err != nil {
				return err
			}
			salary, err := parseSalary(updateFlags.salary)
			if err != nil {
				return err
			}
			repo, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			n, err := repo.UpdateRole(cmd.Context(), types.RoleUpdate{
				ID:           id,
				Title:        updateFlags.title,
				Salary:       salary,
				DepartmentID: updateFlags.department,
			})
			if err != nil {
				return err
			}
			return a.affected(cmd, "Updated", "role", id, n)
		},
	}
	updateFlags.register(update)

	get := newGetEntityCmd(a, "role", func(ctx context.Context, repo *store.Repository, id int64) (any, error) {
		return repo.GetRole(ctx, id)
	})

	cmd.AddCommand(list, get, add, update, newDeleteEntityCmd(a, types.TableRoles, "role"))
	return cmd
}
