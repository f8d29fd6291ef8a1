package commands

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/starling/internal/config"
	"github.com/simonhull/firebird-suite/starling/internal/output"
)

// UpdateCmd is the full workflow: validate, patch and clean, then run
func UpdateCmd() *cobra.Command {
	d := config.Default()

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the model for new parameters and start it",
		Long: `Validate the configuration, then:

  1. with --rebuild, patch the model files and remove generated files
  2. with --run-after, run ./clean and ./mk and start ./rn

Both default to on. Turn rebuild off to re-run a model as it is.

Example:
  starling update --mass 1.5 --z 0.014
  starling update --rebuild=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := validate(cfg); err != nil {
				return err
			}

			ctx := cmd.Context()
			if cfg.Rebuild {
				if err := patchModel(ctx, cmd, cfg); err != nil {
					return err
				}
				if err := cleanModel(ctx, cmd, cfg); err != nil {
					return err
				}
			} else {
				output.Info("Rebuild off, model files left as they are")
			}

			if !cfg.RunAfter {
				return nil
			}
			if cfg.DryRun {
				output.Info("[DRY RUN] Would run ./clean, ./mk and start ./rn")
				return nil
			}
			return runModel(ctx, cfg)
		},
	}

	addModelFlags(cmd)
	cmd.Flags().Bool("rebuild", d.Rebuild, "Patch model files and remove generated files")
	cmd.Flags().Bool("run-after", d.RunAfter, "Run clean, mk and rn when done")
	cmd.Flags().Bool("dry-run", false, "Show what would change without writing or running anything")
	cmd.Flags().Bool("diff", false, "Show a diff of each patched file")
	cmd.Flags().String("shell", d.Shell, "Shell used to run the model scripts")
	return cmd
}
