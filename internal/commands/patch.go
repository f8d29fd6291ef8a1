package commands

import (
	"github.com/spf13/cobra"
)

// PatchCmd rewrites the inlists, rn and makefile for the configured parameters
func PatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Write the MESA directory, mass and metallicity into the model files",
		Long: `Patch every inlist* file, rn and make/makefile in the model directory.

MESA_DIR, mesa_dir, initial_mass and initial_z are set from the
configuration, pgstar and the optional rn stages are enabled, and
max_model_number is commented out. inlist_start also gets its
termination condition switched to power_h_burn_upper_limit.

All files are read and checked before any is written.

Example:
  starling patch --mass 3 --dry-run --diff`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := validate(cfg); err != nil {
				return err
			}
			return patchModel(cmd.Context(), cmd, cfg)
		},
	}

	addModelFlags(cmd)
	cmd.Flags().Bool("dry-run", false, "Show what would change without writing files")
	cmd.Flags().Bool("diff", false, "Show a diff of each patched file")
	return cmd
}
