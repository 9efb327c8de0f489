package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/orgchart/internal/store"
	"github.com/mesh-intelligence/orgchart/pkg/types"
)

func newDepartmentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "department",
		Aliases: []string{"departments", "dept"},
		Short:   "List and change departments",
	}

	var includeID bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List departments",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			rs, err := repo.ListDepartments(cmd.Context(), includeID)
			if err != nil {
				return err
			}
			return a.list(cmd, rs)
		},
	}
	list.Flags().BoolVar(&includeID, "ids", false, "include department ids")

	budgets := &cobra.Command{
		Use:   "budgets",
		Short: "Show each department's headcount and total salary",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			rs, err := repo.ListDepartmentBudgets(cmd.Context())
			if err != nil {
				return err
			}
			return a.list(cmd, rs)
		},
	}

	members := &cobra.Command{
		Use:   "members <department-id>",
		Short: "List the employees of one department with their titles",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("department", args[0])
			if err != nil {
				return err
			}
			repo, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			rs, err := repo.ListEmployeesByDepartment(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.list(cmd, rs)
		},
	}

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a department",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			res, err := repo.CreateDepartment(cmd.Context(), types.NewDepartment{Name: args[0]})
			if err != nil {
				return err
			}
			return a.created(cmd, "department", res)
		},
	}

	update := &cobra.Command{
		Use:   "update <department-id> <name>",
		Short: "Rename a department",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("department", args[0])
			if err != nil {
				return err
			}
			repo, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			n, err := repo.UpdateDepartment(cmd.Context(), types.DepartmentUpdate{ID: id, Name: args[1]})
			if err != nil {
				return err
			}
			return a.affected(cmd, "Updated", "department", id, n)
		},
	}

	get := newGetEntityCmd(a, "department", func(ctx context.Context, repo *store.Repository, id int64) (any, error) {
		return repo.GetDepartment(ctx, id)
	})

	cmd.AddCommand(list, budgets, members, get, add, update, newDeleteEntityCmd(a, types.TableDepartments, "department"))
	return cmd
}
