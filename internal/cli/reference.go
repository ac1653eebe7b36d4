package cli

import (
	"github.com/spf13/cobra"

	"cac-decision/internal/present"
)

// NewReferenceCommand creates the 'cac reference' command
func NewReferenceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reference",
		Short: "Print the CAC score reference table and evidence base",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return present.RenderReference(out, present.Reference(), present.DetectOptions(out))
		},
	}
}
