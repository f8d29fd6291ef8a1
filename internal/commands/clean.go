package commands

import (
	"github.com/spf13/cobra"
)

// CleanCmd removes logs, caches and build output
func CleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove generated files from the model and MESA caches",
		Long: `Remove nohup.out, LOGS*/ contents, the star binary and *.mod files
from the model directory, and every cache/ directory's contents under
the MESA installation. Directories themselves are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := validate(cfg); err != nil {
				return err
			}
			return cleanModel(cmd.Context(), cmd, cfg)
		},
	}

	addModelFlags(cmd)
	cmd.Flags().Bool("dry-run", false, "List files without removing them")
	return cmd
}
