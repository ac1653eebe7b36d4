package cli

import (
	"github.com/spf13/cobra"

	"cac-decision/internal/config"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates the root cobra command for the cac tool.
func NewRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "cac",
		Short: "Coronary artery calcium decision support",
		Long: `cac derives a risk category and therapy/follow-up recommendations from a
Coronary Artery Calcium (Agatston) score, patient age and three risk factors.

It is a decision-support calculator, not a diagnostic system.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg.ConfigureLogging()
			cmd.SetContext(withConfig(cmd.Context(), cfg))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", envOr("CAC_CONFIG", "cac.yaml"), "Path to YAML config file")

	cmd.AddCommand(NewEvaluateCommand())
	cmd.AddCommand(NewInteractiveCommand())
	cmd.AddCommand(NewReferenceCommand())
	cmd.AddCommand(NewServeCommand())

	return cmd
}
