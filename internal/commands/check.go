package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/starling/internal/mesa"
	"github.com/simonhull/firebird-suite/starling/internal/output"
)

// CheckCmd validates the configuration without touching any file
func CheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the MESA installation and model parameters",
		Long: `Check that the MESA installation and model directory exist, that the
installation is MESA ` + mesa.SupportedVersion + `, and that the initial mass and
metallicity are in range. Nothing is modified.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := validate(cfg); err != nil {
				return err
			}

			output.Success(fmt.Sprintf("MESA %s at %s", mesa.SupportedVersion, cfg.MesaDir))
			output.Step(fmt.Sprintf("model:  %s", cfg.ModelDir))
			output.Step(fmt.Sprintf("mass:   %s Msun", mesa.FormatMass(cfg.InitialMass)))
			output.Step(fmt.Sprintf("Z:      %s", mesa.FormatMetallicity(cfg.InitialZ)))
			return nil
		},
	}

	addModelFlags(cmd)
	return cmd
}
