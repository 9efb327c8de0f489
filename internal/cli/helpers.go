package cli

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/orgchart/internal/render"
	"github.com/mesh-intelligence/orgchart/pkg/types"
)

// exactArgs is cobra.ExactArgs with the error marked as a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

func parseID(kind, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s id must be a positive integer, got %q", types.ErrInvalidArgument, kind, s)
	}
	return id, nil
}

func parseSalary(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: salary %q is not a number", types.ErrInvalidArgument, s)
	}
	return d, nil
}

// optionalID reads an int64 flag as a pointer; unset flags give nil.
func optionalID(cmd *cobra.Command, name string) (*int64, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	id, err := cmd.Flags().GetInt64(name)
	if err != nil {
		return nil, usageError{err}
	}
	return types.ID(id), nil
}

// markRequired marks flags required, panicking on a misspelled name.
func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
}

// list prints a row set in the selected output format.
func (a *app) list(cmd *cobra.Command, t render.Tabular) error {
	return render.Write(cmd.OutOrStdout(), a.format, t)
}

// created reports an insert. Tables get a sentence, structured formats the
// result itself.
func (a *app) created(cmd *cobra.Command, kind string, res types.InsertResult) error {
	if a.format == render.FormatTable {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Created %s %d.\n", kind, res.ID)
		return err
	}
	return render.Value(cmd.OutOrStdout(), a.format, res)
}

// affected reports an update or delete. Zero rows means the id does not
// exist.
func (a *app) affected(cmd *cobra.Command, verb, kind string, id, n int64) error {
	if n == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, types.ErrNotFound)
	}
	if a.format == render.FormatTable {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s %d.\n", verb, kind, id)
		return err
	}
	return render.Value(cmd.OutOrStdout(), a.format, map[string]int64{"id": id, "rows_affected": n})
}
