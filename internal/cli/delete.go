package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/orgchart/pkg/types"
)

// newDeleteCmd is the generic "delete <table> <id>" command.
func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <table> <id>",
		Short: "Remove a row by id from departments, roles or employees",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := types.ParseTable(args[0])
			if err != nil {
				return err
			}
			return a.remove(cmd, table, singular(table), args[1])
		},
	}
}

// newDeleteEntityCmd is the per-entity "delete <id>" subcommand.
func newDeleteEntityCmd(a *app, table types.Table, kind string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <" + kind + "-id>",
		Short: "Delete a " + kind,
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.remove(cmd, table, kind, args[0])
		},
	}
}

func (a *app) remove(cmd *cobra.Command, table types.Table, kind, rawID string) error {
	id, err := parseID(kind, rawID)
	if err != nil {
		return err
	}
	repo, err := a.open(cmd.Context())
	if err != nil {
		return err
	}
	n, err := repo.Delete(cmd.Context(), table, id)
	if err != nil {
		return err
	}
	return a.affected(cmd, "Deleted", kind, id, n)
}

func singular(t types.Table) string {
	switch t {
	case types.TableDepartments:
		return "department"
	case types.TableRoles:
		return "role"
	default:
		return "employee"
	}
}
