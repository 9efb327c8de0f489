package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the orgchart release. mage build overrides it with -ldflags -X.
var Version = "1.0.0"

const modulePath = "github.com/mesh-intelligence/orgchart"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the orgchart version",
		Args:        exactArgs(0),
		Annotations: map[string]string{skipSetup: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "orgchart v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
