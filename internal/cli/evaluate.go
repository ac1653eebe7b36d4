package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cac-decision/internal/intake"
	"cac-decision/internal/present"
	"cac-decision/internal/scoring"
)

type evaluateOptions struct {
	form    intake.Form
	json    bool
	noColor bool
}

// NewEvaluateCommand creates the 'cac evaluate' command
func NewEvaluateCommand() *cobra.Command {
	opts := &evaluateOptions{}

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a single patient",
		Long: `Evaluate one patient and print the recommendation.

Example:
  cac evaluate --score 150 --age 60 --smoker

Exit code: 0 on success, 1 if the input is invalid`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.form.CACScore, "score", "", "CAC (Agatston) score, integer >= 0")
	cmd.Flags().StringVar(&opts.form.Age, "age", "", "Age in years, positive integer")
	cmd.Flags().BoolVar(&opts.form.HasDiabetes, "diabetes", false, "Diabetes mellitus")
	cmd.Flags().BoolVar(&opts.form.IsSmoker, "smoker", false, "Current or former smoker")
	cmd.Flags().BoolVar(&opts.form.FamilyHistory, "family-history", false, "Family history of premature CAD")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the recommendation as JSON")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable coloured output")

	return cmd
}

func runEvaluate(opts *evaluateOptions, output io.Writer) error {
	in, err := intake.Parse(opts.form)
	if err != nil {
		return fmt.Errorf("cannot evaluate: %w", err)
	}
	rec := scoring.Evaluate(in)

	if opts.json {
		enc := json.NewEncoder(output)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	renderOpts := present.DetectOptions(output)
	if opts.noColor {
		renderOpts.Color = false
	}
	for _, w := range intake.Warnings(in) {
		fmt.Fprintf(output, "warning: %s\n", w)
	}
	return present.Render(output, rec, renderOpts)
}
