package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/orgchart/internal/render"
	"github.com/mesh-intelligence/orgchart/internal/store"
)

// fetchFunc loads one entity by id.
type fetchFunc func(ctx context.Context, repo *store.Repository, id int64) (any, error)

// newGetEntityCmd is the per-entity "get <id>" subcommand.
func newGetEntityCmd(a *app, kind string, fetch fetchFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "get <" + kind + "-id>",
		Short: "Show one " + kind + " as stored",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(kind, args[0])
			if err != nil {
				return err
			}
			repo, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			v, err := fetch(cmd.Context(), repo, id)
			if err != nil {
				return err
			}
			return a.show(cmd, v)
		},
	}
}

// show prints a single record. The table format has no single-record layout
// and prints YAML instead.
func (a *app) show(cmd *cobra.Command, v any) error {
	format := a.format
	if format == render.FormatTable {
		format = render.FormatYAML
	}
	return render.Value(cmd.OutOrStdout(), format, v)
}
